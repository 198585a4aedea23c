package tariff

import "time"

// IsWeekendRate reports whether the whole date is billed at the weekend rate.
func IsWeekendRate(date time.Time, cfg Config) bool {
	return cfg.IsWeekendDay(date.Weekday()) || cfg.IsHoliday(date)
}

// IsWeekendRateAt adds the Friday evening rule, which applies from FridayEveningHour onwards.
func IsWeekendRateAt(date time.Time, hour int, cfg Config) bool {
	if IsWeekendRate(date, cfg) {
		return true
	}
	return cfg.IncludeFridayEvening && date.Weekday() == time.Friday && hour >= cfg.FridayEveningHour
}

func DayKindAt(date time.Time, hour int, cfg Config) DayKind {
	if IsWeekendRateAt(date, hour, cfg) {
		return DayKindWeekend
	}
	return DayKindWeekday
}
