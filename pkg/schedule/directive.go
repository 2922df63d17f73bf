package schedule

import "fmt"

// Schedule keywords that carry time directives.
const (
	KeywordStart = "START"
	KeywordTStep = "TSTEP"
	KeywordDates = "DATES"
)

// Directive is one already-parsed time-advance directive from the schedule
// section. Directives must be applied in document order.
type Directive interface {
	// Keyword returns the schedule keyword this directive kind is carried by.
	Keyword() string

	apply(tm *TimeMap) error
}

// AbsoluteDate jumps the timeline to an absolute calendar date. Month is the
// textual month token as it appears in the deck (resolved via MonthNumber).
// Time is an optional "HH:MM:SS" string; empty means midnight.
type AbsoluteDate struct {
	Day   int
	Month string
	Year  int
	Time  string
}

// Keyword returns the keyword carrying absolute-date directives.
func (AbsoluteDate) Keyword() string { return KeywordDates }

// Instant resolves the directive to an absolute instant. It fails with
// ErrUnknownMonthName for an unrecognized month token and with
// ErrInvalidCalendarDate when the date does not exist on the calendar.
func (d AbsoluteDate) Instant() (Instant, error) {
	month, err := MonthNumber(d.Month)
	if err != nil {
		return 0, err
	}
	hour, minute, second := parseClock(d.Time)
	return MakeDateTime(d.Year, month, d.Day, hour, minute, second)
}

func (d AbsoluteDate) apply(tm *TimeMap) error {
	at, err := d.Instant()
	if err != nil {
		return err
	}
	return tm.AddInstant(at)
}

// RelativeAdvance advances the timeline by a number of days, possibly with a
// fractional part.
type RelativeAdvance struct {
	Days float64
}

// Keyword returns the keyword carrying relative-advance directives.
func (RelativeAdvance) Keyword() string { return KeywordTStep }

func (d RelativeAdvance) apply(tm *TimeMap) error {
	return tm.AddDays(d.Days)
}

// parseClock parses an optional "HH:MM:SS" string. Malformed text (wrong
// field count) degrades to midnight rather than failing, to tolerate minor
// input noise. Out-of-range fields are left to calendar validation.
func parseClock(text string) (hour, minute, second int) {
	if text == "" {
		return 0, 0, 0
	}
	if n, err := fmt.Sscanf(text, "%d:%d:%d", &hour, &minute, &second); err != nil || n != 3 {
		return 0, 0, 0
	}
	return hour, minute, second
}

// Apply applies directives in order, stopping at the first failure. The
// timeline keeps every directive applied before the failing one.
func (tm *TimeMap) Apply(directives ...Directive) error {
	for i, d := range directives {
		if err := d.apply(tm); err != nil {
			return fmt.Errorf("directive %d (%s): %w", i, d.Keyword(), err)
		}
	}
	return nil
}

// ApplyKeyword applies the directives carried by a single schedule keyword,
// guarding against misrouted dispatch: every directive must belong to the
// named keyword or the call fails with ErrWrongDirectiveKind before any
// directive is applied.
func (tm *TimeMap) ApplyKeyword(name string, directives ...Directive) error {
	for _, d := range directives {
		if d.Keyword() != name {
			return fmt.Errorf("keyword %s carries %s directives: %w", name, d.Keyword(), ErrWrongDirectiveKind)
		}
	}
	return tm.Apply(directives...)
}
