package resource

// Hours is a bookable window in whole hours, Close exclusive. Close may be 24.
type Hours struct {
	Open  int
	Close int
}

func (h Hours) Contains(startMinute, endMinute int) bool {
	return startMinute >= h.Open*60 && endMinute <= h.Close*60
}

// OperatingHours resolves the bookable window per resource type.
type OperatingHours struct {
	Default Hours
	ByType  map[Type]Hours
}

func DefaultOperatingHours() OperatingHours {
	return OperatingHours{
		Default: Hours{Open: 6, Close: 24},
		ByType: map[Type]Hours{
			TypeSolo: {Open: 10, Close: 22},
		},
	}
}

func (o OperatingHours) For(t Type) Hours {
	if h, ok := o.ByType[t]; ok {
		return h
	}
	return o.Default
}
