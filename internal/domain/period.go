package domain

import "time"

// PeriodKind names a predefined reporting window.
type PeriodKind string

const (
	// PeriodToday covers the current UTC day.
	PeriodToday PeriodKind = "today"

	// PeriodWeek covers the trailing 7 days.
	PeriodWeek PeriodKind = "week"

	// PeriodMonth covers the trailing 30 days.
	PeriodMonth PeriodKind = "month"

	// PeriodCustom requires explicit start and end dates.
	PeriodCustom PeriodKind = "custom"
)

// NewPeriod builds a validated reporting window.
func NewPeriod(start, end time.Time) (Period, error) {
	if !start.Before(end) {
		return Period{}, NewError(CodeValidation, "invalid date range: start date must be before end date")
	}
	return Period{Start: start, End: end}, nil
}

// PeriodRange resolves a predefined period kind into a concrete window
// anchored at now. Day boundaries are UTC.
func PeriodRange(kind PeriodKind, now time.Time) (Period, error) {
	now = now.UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24*time.Hour - time.Nanosecond)

	switch kind {
	case PeriodToday:
		return Period{Start: dayStart, End: dayEnd}, nil
	case PeriodWeek:
		return Period{Start: dayStart.AddDate(0, 0, -7), End: dayEnd}, nil
	case PeriodMonth:
		return Period{Start: dayStart.AddDate(0, 0, -30), End: dayEnd}, nil
	case PeriodCustom:
		return Period{}, NewError(CodeValidation, "custom period requires explicit start and end dates")
	default:
		return Period{}, NewError(CodeValidation, "invalid period: %s", kind)
	}
}
