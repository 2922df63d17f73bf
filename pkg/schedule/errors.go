package schedule

import "errors"

// Sentinel errors for schedule construction and query failures.
// Use errors.Is() for matching - never compare error strings.
var (
	// Timeline construction errors
	ErrNonMonotonicTime    = errors.New("times added must be in strictly increasing order")
	ErrInvalidCalendarDate = errors.New("invalid calendar date")

	// Directive errors
	ErrUnknownMonthName   = errors.New("unknown month name")
	ErrWrongDirectiveKind = errors.New("directive applied under wrong keyword")

	// Query errors
	ErrIndexOutOfRange = errors.New("step index out of range")
)

// inputErrors enumerates the errors caused by malformed schedule input.
var inputErrors = []error{
	ErrNonMonotonicTime,
	ErrInvalidCalendarDate,
	ErrUnknownMonthName,
	ErrWrongDirectiveKind,
}

// IsInputError returns true if the error was caused by the schedule input
// itself (as opposed to a caller misusing the query API). Input errors are
// fatal to construction; the timeline is left as it was before the failing
// directive.
func IsInputError(err error) bool {
	for _, target := range inputErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsQueryError returns true if the error represents caller misuse of the
// read API, such as a step index past the end of the timeline.
func IsQueryError(err error) bool {
	return errors.Is(err, ErrIndexOutOfRange)
}
