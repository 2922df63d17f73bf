package deck

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/PetroleumCyberneticsGroup/opm-parser/pkg/schedule"
)

// Default simulation start when the deck carries no START keyword:
// January 1st, 1983 (the ECLIPSE 100 default).
const (
	defaultStartYear  = 1983
	defaultStartMonth = time.January
	defaultStartDay   = 1
)

// BuildTimeMap scans a deck and builds its report-step timeline. The start
// instant comes from the first START keyword, or the 1983-01-01 default when
// none is present. TSTEP and DATES keywords advance the timeline in document
// order; all other keywords are ignored.
func BuildTimeMap(r io.Reader) (*schedule.TimeMap, error) {
	keywords, err := Parse(r)
	if err != nil {
		return nil, err
	}

	start, err := startTime(keywords)
	if err != nil {
		return nil, err
	}

	tm := schedule.New(start)
	for _, kw := range keywords {
		var directives []schedule.Directive
		switch kw.Name {
		case schedule.KeywordTStep:
			directives, err = tstepDirectives(kw)
		case schedule.KeywordDates:
			directives, err = datesDirectives(kw)
		default:
			continue
		}
		if err != nil {
			return nil, err
		}
		if err := tm.ApplyKeyword(kw.Name, directives...); err != nil {
			return nil, err
		}
	}
	return tm, nil
}

// startTime resolves the simulation start from the first START keyword.
func startTime(keywords []Keyword) (schedule.Instant, error) {
	for _, kw := range keywords {
		if kw.Name != schedule.KeywordStart {
			continue
		}
		if len(kw.Records) == 0 {
			return 0, fmt.Errorf("START keyword without a record: %w", ErrMalformedRecord)
		}
		directive, err := dateDirective(kw.Records[0])
		if err != nil {
			return 0, err
		}
		return directive.Instant()
	}
	return schedule.MakeDate(defaultStartYear, defaultStartMonth, defaultStartDay)
}

// tstepDirectives expands a TSTEP keyword into relative advances. Values are
// days; a "count*value" token repeats a value.
func tstepDirectives(kw Keyword) ([]schedule.Directive, error) {
	if len(kw.Records) == 0 {
		return nil, fmt.Errorf("TSTEP keyword without a record: %w", ErrMalformedRecord)
	}

	var directives []schedule.Directive
	for _, token := range kw.Records[0] {
		count := 1
		value := token
		if prefix, suffix, ok := strings.Cut(token, "*"); ok {
			n, err := strconv.Atoi(prefix)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("TSTEP repeat count %q: %w", token, ErrMalformedRecord)
			}
			count, value = n, suffix
		}
		days, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("TSTEP value %q: %w", token, ErrMalformedRecord)
		}
		for i := 0; i < count; i++ {
			directives = append(directives, schedule.RelativeAdvance{Days: days})
		}
	}
	return directives, nil
}

// datesDirectives turns each DATES record into an absolute-date directive.
func datesDirectives(kw Keyword) ([]schedule.Directive, error) {
	directives := make([]schedule.Directive, 0, len(kw.Records))
	for _, record := range kw.Records {
		directive, err := dateDirective(record)
		if err != nil {
			return nil, err
		}
		directives = append(directives, directive)
	}
	return directives, nil
}

// dateDirective parses a date record: day, month token, year, and an
// optional "HH:MM:SS" item.
func dateDirective(record []string) (schedule.AbsoluteDate, error) {
	if len(record) < 3 {
		return schedule.AbsoluteDate{}, fmt.Errorf("date record %v needs day, month and year: %w", record, ErrMalformedRecord)
	}
	day, err := strconv.Atoi(record[0])
	if err != nil {
		return schedule.AbsoluteDate{}, fmt.Errorf("date record day %q: %w", record[0], ErrMalformedRecord)
	}
	year, err := strconv.Atoi(record[2])
	if err != nil {
		return schedule.AbsoluteDate{}, fmt.Errorf("date record year %q: %w", record[2], ErrMalformedRecord)
	}

	directive := schedule.AbsoluteDate{Day: day, Month: record[1], Year: year}
	if len(record) > 3 {
		directive.Time = record[3]
	}
	return directive, nil
}
