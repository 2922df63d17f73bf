// Package deck reads the schedule-section keywords of a simulation deck.
//
// Only the raw textual structure is handled here: keyword headers, record
// lines terminated by a slash, and comments. The package recognizes the
// START, TSTEP and DATES keywords and turns them into schedule directives;
// every other keyword is scanned past and ignored.
package deck

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Sentinel errors for deck scanning failures.
var (
	ErrMalformedKeyword = errors.New("malformed keyword header")
	ErrMalformedRecord  = errors.New("malformed record")
)

// Keyword is one raw schedule keyword with its data records. Each record is
// the sequence of tokens that appeared before the terminating slash.
type Keyword struct {
	Name    string
	Records [][]string
}

// maxKeywordLength is the deck format's limit on keyword header length.
const maxKeywordLength = 8

// Parse scans a deck into its raw keywords, in document order. A line
// holding a valid keyword header opens a new keyword; subsequent lines are
// record data, accumulated until a terminating slash (records may span
// lines). Text after "--" is a comment.
func Parse(r io.Reader) ([]Keyword, error) {
	var (
		keywords []Keyword
		partial  []string
		lineNo   int
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNo++
		line := stripComment(scanner.Text())
		if strings.TrimSpace(line) == "" {
			continue
		}

		if name, ok := keywordHeader(line); ok {
			if len(partial) > 0 {
				return nil, fmt.Errorf("line %d: keyword %s begins inside an open record: %w", lineNo, name, ErrMalformedRecord)
			}
			keywords = append(keywords, Keyword{Name: name})
			continue
		}

		if len(keywords) == 0 {
			return nil, fmt.Errorf("line %d: record data before any keyword: %w", lineNo, ErrMalformedKeyword)
		}

		tokens, terminated := recordTokens(line)
		partial = append(partial, tokens...)
		if terminated {
			// A bare slash is a keyword terminator, not a record.
			if len(partial) > 0 {
				current := &keywords[len(keywords)-1]
				current.Records = append(current.Records, partial)
			}
			partial = nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read deck: %w", err)
	}
	if len(partial) > 0 {
		return nil, fmt.Errorf("unterminated record at end of deck: %w", ErrMalformedRecord)
	}

	return keywords, nil
}

// stripComment removes a trailing "--" comment from a line.
func stripComment(line string) string {
	if i := strings.Index(line, "--"); i >= 0 {
		return line[:i]
	}
	return line
}

// keywordHeader reports whether a line is a keyword header: a single
// unindented token of at most 8 characters, starting with an uppercase
// letter and continuing with uppercase letters or digits.
func keywordHeader(line string) (string, bool) {
	if line == "" || line[0] == ' ' || line[0] == '\t' {
		return "", false
	}
	fields := strings.Fields(line)
	if len(fields) != 1 {
		return "", false
	}
	name := fields[0]
	if len(name) > maxKeywordLength {
		return "", false
	}
	if name[0] < 'A' || name[0] > 'Z' {
		return "", false
	}
	for _, c := range name[1:] {
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return "", false
		}
	}
	return name, true
}

// recordTokens splits a record line into tokens, stopping at the
// terminating slash. Anything after the slash is ignored. Single quotes
// around tokens are stripped.
func recordTokens(line string) (tokens []string, terminated bool) {
	for _, field := range strings.Fields(line) {
		if strings.HasPrefix(field, "/") {
			return tokens, true
		}
		if i := strings.IndexByte(field, '/'); i >= 0 {
			tokens = append(tokens, strings.Trim(field[:i], "'"))
			return tokens, true
		}
		tokens = append(tokens, strings.Trim(field, "'"))
	}
	return tokens, false
}
