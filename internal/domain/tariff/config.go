package tariff

import (
	"errors"
	"maps"
	"slices"
	"time"

	"court-booking-engine/internal/domain/resource"
)

var (
	ErrInvalidSegments    = errors.New("segments must cover 00:00-24:00 without gaps")
	ErrInvalidRate        = errors.New("rate must be positive")
	ErrUnknownSegment     = errors.New("unknown segment")
	ErrInvalidWeekendHour = errors.New("friday evening hour must be between 0 and 23")
	ErrInvalidDayKind     = errors.New("day kind must be weekday or weekend")
)

type Segment string

const (
	SegmentOwl  Segment = "owl"
	SegmentDay  Segment = "day"
	SegmentPeak Segment = "peak"
)

type SegmentRange struct {
	Segment  Segment
	FromHour int
	ToHour   int
}

type DayKind string

const (
	DayKindWeekday DayKind = "weekday"
	DayKindWeekend DayKind = "weekend"
)

func (k DayKind) IsValid() bool {
	return k == DayKindWeekday || k == DayKindWeekend
}

// RateTable holds points per hour. Weekday and weekend tables are independent.
type RateTable struct {
	Weekday map[Segment]int64
	Weekend map[Segment]int64
}

type Config struct {
	WeekendDays          []time.Weekday
	IncludeFridayEvening bool
	FridayEveningHour    int
	// Holidays is keyed by YYYY-MM-DD in the venue time zone.
	Holidays map[string]bool
	Segments []SegmentRange
	Rates    map[resource.Type]RateTable
}

func DefaultSegments() []SegmentRange {
	return []SegmentRange{
		{Segment: SegmentOwl, FromHour: 0, ToHour: 8},
		{Segment: SegmentDay, FromHour: 8, ToHour: 17},
		{Segment: SegmentPeak, FromHour: 17, ToHour: 24},
	}
}

func DefaultConfig() Config {
	return Config{
		WeekendDays:          []time.Weekday{time.Saturday, time.Sunday},
		IncludeFridayEvening: false,
		FridayEveningHour:    18,
		Holidays:             map[string]bool{},
		Segments:             DefaultSegments(),
		Rates: map[resource.Type]RateTable{
			resource.TypeCompetition: {
				Weekday: map[Segment]int64{SegmentOwl: 200, SegmentDay: 300, SegmentPeak: 500},
				Weekend: map[Segment]int64{SegmentOwl: 300, SegmentDay: 450, SegmentPeak: 600},
			},
			resource.TypeTraining: {
				Weekday: map[Segment]int64{SegmentOwl: 150, SegmentDay: 250, SegmentPeak: 400},
				Weekend: map[Segment]int64{SegmentOwl: 250, SegmentDay: 350, SegmentPeak: 500},
			},
			resource.TypeSolo: {
				Weekday: map[Segment]int64{SegmentOwl: 100, SegmentDay: 150, SegmentPeak: 250},
				Weekend: map[Segment]int64{SegmentOwl: 150, SegmentDay: 200, SegmentPeak: 300},
			},
			resource.TypePractice: {
				Weekday: map[Segment]int64{SegmentOwl: 120, SegmentDay: 200, SegmentPeak: 320},
				Weekend: map[Segment]int64{SegmentOwl: 180, SegmentDay: 280, SegmentPeak: 400},
			},
		},
	}
}

func HolidayKey(date time.Time) string {
	return date.Format(time.DateOnly)
}

func (c Config) IsHoliday(date time.Time) bool {
	return c.Holidays[HolidayKey(date)]
}

func (c Config) IsWeekendDay(day time.Weekday) bool {
	return slices.Contains(c.WeekendDays, day)
}

func (c Config) SegmentAt(hour int) (Segment, bool) {
	for _, s := range c.Segments {
		if hour >= s.FromHour && hour < s.ToHour {
			return s.Segment, true
		}
	}
	return "", false
}

// Rate returns the configured points per hour, or false if none is set.
func (c Config) Rate(t resource.Type, kind DayKind, segment Segment) (int64, bool) {
	table, ok := c.Rates[t]
	if !ok {
		return 0, false
	}
	var rates map[Segment]int64
	if kind == DayKindWeekend {
		rates = table.Weekend
	} else {
		rates = table.Weekday
	}
	rate, ok := rates[segment]
	return rate, ok && rate > 0
}

func (c Config) HolidayList() []string {
	keys := make([]string, 0, len(c.Holidays))
	for k, on := range c.Holidays {
		if on {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

// Clone returns a deep copy so edits never leak into a shared snapshot.
func (c Config) Clone() Config {
	out := c
	out.WeekendDays = slices.Clone(c.WeekendDays)
	out.Holidays = maps.Clone(c.Holidays)
	if out.Holidays == nil {
		out.Holidays = map[string]bool{}
	}
	out.Segments = slices.Clone(c.Segments)
	out.Rates = make(map[resource.Type]RateTable, len(c.Rates))
	for t, table := range c.Rates {
		out.Rates[t] = RateTable{Weekday: maps.Clone(table.Weekday), Weekend: maps.Clone(table.Weekend)}
	}
	return out
}

func (c *Config) AddHoliday(date time.Time) {
	if c.Holidays == nil {
		c.Holidays = map[string]bool{}
	}
	c.Holidays[HolidayKey(date)] = true
}

func (c *Config) RemoveHoliday(date time.Time) {
	delete(c.Holidays, HolidayKey(date))
}

func (c *Config) SetWeekendPolicy(days []time.Weekday, includeFridayEvening bool, fridayEveningHour int) error {
	if fridayEveningHour < 0 || fridayEveningHour > 23 {
		return ErrInvalidWeekendHour
	}
	sorted := slices.Clone(days)
	slices.Sort(sorted)
	c.WeekendDays = slices.Compact(sorted)
	c.IncludeFridayEvening = includeFridayEvening
	c.FridayEveningHour = fridayEveningHour
	return nil
}

func (c *Config) SetRate(t resource.Type, kind DayKind, segment Segment, pointsPerHour int64) error {
	if !t.IsValid() {
		return resource.ErrInvalidType
	}
	if !kind.IsValid() {
		return ErrInvalidDayKind
	}
	if !slices.ContainsFunc(c.Segments, func(s SegmentRange) bool { return s.Segment == segment }) {
		return ErrUnknownSegment
	}
	if pointsPerHour <= 0 {
		return ErrInvalidRate
	}
	if c.Rates == nil {
		c.Rates = map[resource.Type]RateTable{}
	}
	table := c.Rates[t]
	if table.Weekday == nil {
		table.Weekday = map[Segment]int64{}
	}
	if table.Weekend == nil {
		table.Weekend = map[Segment]int64{}
	}
	if kind == DayKindWeekend {
		table.Weekend[segment] = pointsPerHour
	} else {
		table.Weekday[segment] = pointsPerHour
	}
	c.Rates[t] = table
	return nil
}

// ValidateSegments checks the segments tile the day in order.
func ValidateSegments(segments []SegmentRange) error {
	next := 0
	for _, s := range segments {
		if s.FromHour != next || s.ToHour <= s.FromHour || s.Segment == "" {
			return ErrInvalidSegments
		}
		next = s.ToHour
	}
	if next != 24 {
		return ErrInvalidSegments
	}
	return nil
}
