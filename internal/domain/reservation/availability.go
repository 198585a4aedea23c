package reservation

import (
	"time"

	"court-booking-engine/internal/domain/resource"
	"court-booking-engine/internal/pkg/errs"
)

type Reason string

const (
	ReasonNone                  Reason = ""
	ReasonOccupied              Reason = "occupied"
	ReasonPast                  Reason = "past"
	ReasonOutsideOperatingHours Reason = "outside_operating_hours"
	ReasonInactive              Reason = "inactive"
)

type Availability struct {
	Available bool
	Reason    Reason
}

// Err converts an unavailable result into the matching sentinel.
func (a Availability) Err() error {
	switch a.Reason {
	case ReasonNone:
		return nil
	case ReasonOccupied:
		return errs.ErrSlotTaken
	case ReasonInactive:
		return errs.ErrResourceInactive
	case ReasonPast:
		return errs.Wrap(errs.ErrInvalidInterval, "slot starts too soon or in the past")
	case ReasonOutsideOperatingHours:
		return errs.Wrap(errs.ErrInvalidInterval, "slot is outside operating hours")
	default:
		return errs.New("unknown availability reason: " + string(a.Reason))
	}
}

type Checker struct {
	LeadTime time.Duration
	Hours    resource.OperatingHours
}

func NewChecker(leadTime time.Duration, hours resource.OperatingHours) Checker {
	return Checker{LeadTime: leadTime, Hours: hours}
}

// Check decides availability of slot on res against existing, which should hold the
// reservations of res on the slot's date. The same snapshot always yields the same answer.
func (c Checker) Check(res *resource.Resource, slot TimeSlot, existing []*Reservation, now time.Time) Availability {
	if !res.IsActive() {
		return Availability{Reason: ReasonInactive}
	}
	if !c.Hours.For(res.Type()).Contains(slot.StartMinute(), slot.EndMinute()) {
		return Availability{Reason: ReasonOutsideOperatingHours}
	}
	if slot.Start().Before(now.Add(c.LeadTime)) {
		return Availability{Reason: ReasonPast}
	}
	for _, r := range existing {
		if r.ResourceID() != res.ID() || !r.IsActive() {
			continue
		}
		if r.TimeSlot().Overlaps(slot) {
			return Availability{Reason: ReasonOccupied}
		}
	}
	return Availability{Available: true}
}
