package schedule

import (
	"fmt"
	"time"
)

// monthIndices maps schedule-section month tokens to month numbers. The table
// is case-sensitive and includes the regional spellings accepted by ECLIPSE
// decks (MAI, JLY, OKT, DES). Read-only after initialization.
var monthIndices = map[string]time.Month{
	"JAN": time.January,
	"FEB": time.February,
	"MAR": time.March,
	"APR": time.April,
	"MAI": time.May,
	"MAY": time.May,
	"JUN": time.June,
	"JUL": time.July,
	"JLY": time.July,
	"AUG": time.August,
	"SEP": time.September,
	"OCT": time.October,
	"OKT": time.October,
	"NOV": time.November,
	"DEC": time.December,
	"DES": time.December,
}

// MonthNumber resolves a month token to its month number.
func MonthNumber(name string) (time.Month, error) {
	month, ok := monthIndices[name]
	if !ok {
		return 0, fmt.Errorf("month token %q: %w", name, ErrUnknownMonthName)
	}
	return month, nil
}

// MakeDate builds the Instant at midnight of the given calendar date.
func MakeDate(year int, month time.Month, day int) (Instant, error) {
	return MakeDateTime(year, month, day, 0, 0, 0)
}

// MakeDateTime builds an Instant from calendar components. time.Date
// normalizes out-of-range components (January 33 becomes February 2), so the
// constructed instant is converted back to a calendar date and compared
// against the input; any mismatch fails with ErrInvalidCalendarDate.
func MakeDateTime(year int, month time.Month, day, hour, minute, second int) (Instant, error) {
	t := time.Date(year, month, day, hour, minute, second, 0, time.UTC)
	outYear, outMonth, outDay := t.Date()
	if outYear != year || outMonth != month || outDay != day {
		return 0, fmt.Errorf("date %04d-%02d-%02d %02d:%02d:%02d: %w",
			year, month, day, hour, minute, second, ErrInvalidCalendarDate)
	}
	return InstantFromTime(t), nil
}
