// Package schedule builds the report-step timeline of a simulation run.
//
// A TimeMap is an append-only sequence of strictly increasing absolute
// instants. Index 0 is the simulation start; each later index i closes report
// step i, which spans [T[i-1], T[i]]. While the timeline grows, the TimeMap
// incrementally records which steps open a new calendar month or year, and it
// can answer periodic membership queries against those boundary sequences
// ("is step S the N-th month boundary counted from anchor A?").
//
// A TimeMap is built single-threaded by applying directives in document
// order. Once construction has finished it is never mutated again, so all
// read queries are safe for concurrent use.
package schedule

import (
	"fmt"
	"slices"
	"sort"
)

// Granularity selects which boundary sequence a periodic query runs against.
type Granularity string

const (
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// IsValid checks if a granularity is supported.
func (g Granularity) IsValid() bool {
	return g == GranularityMonth || g == GranularityYear
}

// TimeMap is the timeline of a simulation run: the ordered instants plus the
// two boundary index sequences derived from them. Construct with New and
// grow with AddInstant / AddDays / Apply; the zero value is not usable.
type TimeMap struct {
	times []Instant

	// Step indices that open a new calendar month / year, ascending.
	// Grown only by append, in lockstep with times.
	firstStepMonths []int
	firstStepYears  []int
}

// New creates a TimeMap seeded with the simulation start instant. Both
// boundary sequences start empty.
func New(start Instant) *TimeMap {
	return &TimeMap{times: []Instant{start}}
}

// AddInstant appends the next report time. It fails with ErrNonMonotonicTime
// unless next is strictly after the current last instant, in which case the
// TimeMap is left unchanged.
//
// The boundary comparison runs against the pre-append last instant: if the
// calendar month (or year) differs, the index the new instant will occupy is
// appended to the month (or year) boundary sequence.
func (tm *TimeMap) AddInstant(next Instant) error {
	last := tm.times[len(tm.times)-1]
	if next <= last {
		return fmt.Errorf("instant %s is not after %s: %w", next, last, ErrNonMonotonicTime)
	}

	step := len(tm.times)
	lastYear, lastMonth, _ := last.Date()
	nextYear, nextMonth, _ := next.Date()

	if nextMonth != lastMonth {
		tm.firstStepMonths = append(tm.firstStepMonths, step)
	}
	if nextYear != lastYear {
		tm.firstStepYears = append(tm.firstStepYears, step)
	}

	tm.times = append(tm.times, next)
	return nil
}

// AddDays advances the timeline by a duration given in days, which may carry
// a fractional part. The duration is converted to whole seconds by truncating
// days*86400 toward zero.
func (tm *TimeMap) AddDays(days float64) error {
	seconds := int64(days * 24 * 60 * 60)
	return tm.AddInstant(tm.times[len(tm.times)-1].AddSeconds(seconds))
}

// Length returns the number of instants in the timeline, including the start.
func (tm *TimeMap) Length() int {
	return len(tm.times)
}

// NumSteps returns the number of report steps, i.e. Length() - 1.
func (tm *TimeMap) NumSteps() int {
	return len(tm.times) - 1
}

// StartTime returns the simulation start instant.
func (tm *TimeMap) StartTime() Instant {
	return tm.times[0]
}

// EndTime returns the last instant in the timeline.
func (tm *TimeMap) EndTime() Instant {
	return tm.times[len(tm.times)-1]
}

// InstantAt returns the instant at timeline index i.
func (tm *TimeMap) InstantAt(i int) (Instant, error) {
	if i < 0 || i >= len(tm.times) {
		return 0, fmt.Errorf("index %d with timeline length %d: %w", i, len(tm.times), ErrIndexOutOfRange)
	}
	return tm.times[i], nil
}

// ElapsedSinceStart returns the seconds elapsed from the start instant to
// timeline index i, as a float for downstream unit conversions.
func (tm *TimeMap) ElapsedSinceStart(i int) (float64, error) {
	at, err := tm.InstantAt(i)
	if err != nil {
		return 0, err
	}
	return float64(at - tm.times[0]), nil
}

// StepDuration returns the length of report step i+1 in seconds, i.e. the
// span from timeline index i to i+1. Requires i < NumSteps().
func (tm *TimeMap) StepDuration(i int) (float64, error) {
	if i < 0 || i >= tm.NumSteps() {
		return 0, fmt.Errorf("step index %d with %d steps: %w", i, tm.NumSteps(), ErrIndexOutOfRange)
	}
	return float64(tm.times[i+1] - tm.times[i]), nil
}

// TotalDuration returns the full simulated span in seconds, or 0 for a
// timeline holding only the start instant.
func (tm *TimeMap) TotalDuration() float64 {
	if len(tm.times) < 2 {
		return 0
	}
	return float64(tm.times[len(tm.times)-1] - tm.times[0])
}

// FirstStepMonths returns a copy of the ascending step indices that open a
// new calendar month, for callers doing custom aggregation beyond
// IsReportStep.
func (tm *TimeMap) FirstStepMonths() []int {
	return slices.Clone(tm.firstStepMonths)
}

// FirstStepYears returns a copy of the ascending step indices that open a
// new calendar year.
func (tm *TimeMap) FirstStepYears() []int {
	return slices.Clone(tm.firstStepYears)
}

// IsReportStep reports whether step is a periodic month/year boundary:
// counting boundaries from the resolved anchor as position 1, every
// frequency-th boundary qualifies.
//
// A step that is not in the boundary sequence never qualifies. With
// frequency <= 1 every boundary qualifies. An anchor that is not itself a
// boundary resolves forward to the first boundary at or after it; if no such
// boundary exists, nothing qualifies. Boundaries before the resolved anchor
// never qualify.
func (tm *TimeMap) IsReportStep(step int, granularity Granularity, anchorStep, frequency int) bool {
	boundaries := tm.boundaries(granularity)

	queryPos, ok := boundaryPosition(boundaries, step)
	if !ok {
		return false
	}
	if frequency <= 1 {
		return true
	}

	anchorPos, ok := boundaryPosition(boundaries, anchorStep)
	if !ok {
		// Resolve forward to the first boundary at or after the anchor.
		anchorPos = sort.SearchInts(boundaries, anchorStep)
		if anchorPos == len(boundaries) {
			return false
		}
	}

	// Count positions within the boundary sequence, not step indices.
	if queryPos < anchorPos {
		return false
	}
	return (queryPos-anchorPos+1)%frequency == 0
}

func (tm *TimeMap) boundaries(granularity Granularity) []int {
	switch granularity {
	case GranularityYear:
		return tm.firstStepYears
	case GranularityMonth:
		return tm.firstStepMonths
	default:
		return nil
	}
}

// boundaryPosition finds the position of step within the ascending boundary
// sequence, reporting false when step is not a boundary.
func boundaryPosition(boundaries []int, step int) (int, bool) {
	i := sort.SearchInts(boundaries, step)
	if i < len(boundaries) && boundaries[i] == step {
		return i, true
	}
	return 0, false
}
