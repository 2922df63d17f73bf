package schedule

import "time"

// Instant is an absolute point in simulation time, counted in whole seconds
// since the Unix epoch. Instants are naive: there is no time zone, and all
// calendar conversions use the proleptic Gregorian calendar in UTC.
type Instant int64

// InstantFromTime converts a time.Time to an Instant, discarding any
// sub-second component.
func InstantFromTime(t time.Time) Instant {
	return Instant(t.Unix())
}

// Time returns the instant as a time.Time in UTC.
func (i Instant) Time() time.Time {
	return time.Unix(int64(i), 0).UTC()
}

// Unix returns the instant as raw seconds since the epoch.
func (i Instant) Unix() int64 {
	return int64(i)
}

// Date returns the calendar (year, month, day) of the instant.
func (i Instant) Date() (year int, month time.Month, day int) {
	return i.Time().Date()
}

// AddSeconds returns the instant shifted forward by the given number of
// seconds. Negative values shift backward.
func (i Instant) AddSeconds(seconds int64) Instant {
	return i + Instant(seconds)
}

func (i Instant) String() string {
	return i.Time().Format("2006-01-02 15:04:05")
}
