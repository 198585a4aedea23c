package patch

// Coalesce returns *ptr when set, otherwise fallback.
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// Changes collects the fields a partial update actually touched, keyed by field name.
// The map is written to the audit log as the edit's detail.
type Changes map[string]any

// Apply runs fn with *v when v is set and records fn's result under name.
func Apply[T any](c Changes, name string, v *T, fn func(T) (any, error)) error {
	if v == nil {
		return nil
	}
	out, err := fn(*v)
	if err != nil {
		return err
	}
	c[name] = out
	return nil
}

func (c Changes) Empty() bool {
	return len(c) == 0
}
