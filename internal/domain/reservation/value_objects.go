package reservation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"court-booking-engine/internal/pkg/errs"
)

const (
	MinutesPerDay      = 24 * 60
	BillingUnitMinutes = 60
)

// DateOf truncates t to midnight in loc.
func DateOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func ParseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return time.Time{}, errs.Wrapf(errs.ErrInvalidInterval, "invalid date %q", s)
	}
	return d, nil
}

// ParseClock parses "HH:MM" into minutes after midnight. "24:00" is accepted as end of day.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, errs.Wrapf(errs.ErrInvalidInterval, "invalid time %q", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, errs.Wrapf(errs.ErrInvalidInterval, "invalid time %q", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 || h < 0 || h > 24 || (h == 24 && m != 0) {
		return 0, errs.Wrapf(errs.ErrInvalidInterval, "invalid time %q", s)
	}
	return h*60 + m, nil
}

func FormatClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// TimeSlot is a half-open interval [start, end) on one calendar date,
// expressed in minutes after midnight.
type TimeSlot struct {
	date  time.Time
	start int
	end   int
}

func NewTimeSlot(date time.Time, start, end int) (TimeSlot, error) {
	if start < 0 || end > MinutesPerDay || start >= end {
		return TimeSlot{}, errs.Wrapf(errs.ErrInvalidInterval, "start %s must be before end %s", FormatClock(start), FormatClock(end))
	}
	return TimeSlot{
		date:  time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location()),
		start: start,
		end:   end,
	}, nil
}

func ParseTimeSlot(date, start, end string, loc *time.Location) (TimeSlot, error) {
	d, err := ParseDate(date, loc)
	if err != nil {
		return TimeSlot{}, err
	}
	s, err := ParseClock(start)
	if err != nil {
		return TimeSlot{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return TimeSlot{}, err
	}
	return NewTimeSlot(d, s, e)
}

// ValidateBillable requires whole billing units starting on a unit boundary.
func (ts TimeSlot) ValidateBillable() error {
	if ts.IsZero() {
		return errs.Wrap(errs.ErrInvalidInterval, "time slot is empty")
	}
	if ts.start%BillingUnitMinutes != 0 {
		return errs.Wrapf(errs.ErrInvalidInterval, "start %s is not aligned to the hour", FormatClock(ts.start))
	}
	if (ts.end-ts.start)%BillingUnitMinutes != 0 {
		return errs.Wrapf(errs.ErrInvalidInterval, "duration %s is not a whole number of hours", ts.Duration())
	}
	return nil
}

func (ts TimeSlot) Date() time.Time    { return ts.date }
func (ts TimeSlot) StartMinute() int   { return ts.start }
func (ts TimeSlot) EndMinute() int     { return ts.end }
func (ts TimeSlot) DateString() string { return ts.date.Format(time.DateOnly) }
func (ts TimeSlot) StartClock() string { return FormatClock(ts.start) }
func (ts TimeSlot) EndClock() string   { return FormatClock(ts.end) }
func (ts TimeSlot) IsZero() bool       { return ts.date.IsZero() }

func (ts TimeSlot) Start() time.Time {
	return time.Date(ts.date.Year(), ts.date.Month(), ts.date.Day(), 0, ts.start, 0, 0, ts.date.Location())
}

func (ts TimeSlot) End() time.Time {
	return time.Date(ts.date.Year(), ts.date.Month(), ts.date.Day(), 0, ts.end, 0, 0, ts.date.Location())
}

func (ts TimeSlot) Duration() time.Duration {
	return time.Duration(ts.end-ts.start) * time.Minute
}

// Hours returns the starting hour of every billing unit in the slot.
func (ts TimeSlot) Hours() []int {
	hours := make([]int, 0, (ts.end-ts.start)/BillingUnitMinutes)
	for m := ts.start; m < ts.end; m += BillingUnitMinutes {
		hours = append(hours, m/60)
	}
	return hours
}

func (ts TimeSlot) SameDate(other TimeSlot) bool {
	return ts.date.Year() == other.date.Year() && ts.date.YearDay() == other.date.YearDay()
}

func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.SameDate(other) && ts.start < other.end && other.start < ts.end
}

func (ts TimeSlot) String() string {
	return fmt.Sprintf("%s %s-%s", ts.DateString(), ts.StartClock(), ts.EndClock())
}
