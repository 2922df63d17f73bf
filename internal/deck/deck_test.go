package deck_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PetroleumCyberneticsGroup/opm-parser/internal/deck"
	"github.com/PetroleumCyberneticsGroup/opm-parser/pkg/schedule"
)

const sampleDeck = `
-- Schedule section of a toy deck
START
  1 JAN 2020 /

GRID
  some unrelated record /

TSTEP
  31 28 /

DATES
  1 APR 2020 /
  1 MAI 2020 12:30:00 /
/
`

func TestParse(t *testing.T) {
	t.Run("keywords and records in document order", func(t *testing.T) {
		keywords, err := deck.Parse(strings.NewReader(sampleDeck))

		require.NoError(t, err)
		require.Len(t, keywords, 4)

		assert.Equal(t, "START", keywords[0].Name)
		assert.Equal(t, [][]string{{"1", "JAN", "2020"}}, keywords[0].Records)

		assert.Equal(t, "GRID", keywords[1].Name)

		assert.Equal(t, "TSTEP", keywords[2].Name)
		assert.Equal(t, [][]string{{"31", "28"}}, keywords[2].Records)

		assert.Equal(t, "DATES", keywords[3].Name)
		assert.Equal(t, [][]string{
			{"1", "APR", "2020"},
			{"1", "MAI", "2020", "12:30:00"},
		}, keywords[3].Records)
	})

	t.Run("records may span lines", func(t *testing.T) {
		keywords, err := deck.Parse(strings.NewReader("TSTEP\n 10 20\n 30 /\n"))

		require.NoError(t, err)
		require.Len(t, keywords, 1)
		assert.Equal(t, [][]string{{"10", "20", "30"}}, keywords[0].Records)
	})

	t.Run("comments are stripped", func(t *testing.T) {
		keywords, err := deck.Parse(strings.NewReader("TSTEP -- advance\n 10 / trailing text\n"))

		require.NoError(t, err)
		require.Len(t, keywords, 1)
		assert.Equal(t, "TSTEP", keywords[0].Name)
		assert.Equal(t, [][]string{{"10"}}, keywords[0].Records)
	})

	t.Run("quoted month tokens are unwrapped", func(t *testing.T) {
		keywords, err := deck.Parse(strings.NewReader("DATES\n 1 'JAN' 2021 /\n"))

		require.NoError(t, err)
		assert.Equal(t, [][]string{{"1", "JAN", "2021"}}, keywords[0].Records)
	})

	t.Run("lowercase header is not a keyword", func(t *testing.T) {
		_, err := deck.Parse(strings.NewReader("tstep\n 10 /\n"))

		assert.ErrorIs(t, err, deck.ErrMalformedKeyword)
	})

	t.Run("unterminated record fails", func(t *testing.T) {
		_, err := deck.Parse(strings.NewReader("TSTEP\n 10 20\n"))

		assert.ErrorIs(t, err, deck.ErrMalformedRecord)
	})
}

func TestBuildTimeMap(t *testing.T) {
	mustDate := func(year int, month time.Month, day int) schedule.Instant {
		at, err := schedule.MakeDate(year, month, day)
		require.NoError(t, err)
		return at
	}

	t.Run("full deck", func(t *testing.T) {
		tm, err := deck.BuildTimeMap(strings.NewReader(sampleDeck))

		require.NoError(t, err)
		assert.Equal(t, mustDate(2020, time.January, 1), tm.StartTime())
		assert.Equal(t, 4, tm.NumSteps())

		// 31 and 28 day steps land on Feb 1 and Feb 29 (leap year),
		// then DATES jumps to Apr 1 and May 1 12:30:00.
		second, err := tm.InstantAt(2)
		require.NoError(t, err)
		assert.Equal(t, mustDate(2020, time.February, 29), second)

		last, err := tm.InstantAt(4)
		require.NoError(t, err)
		assert.Equal(t, mustDate(2020, time.May, 1).AddSeconds(12*3600+30*60), last)

		assert.Equal(t, []int{1, 3, 4}, tm.FirstStepMonths())
		assert.Empty(t, tm.FirstStepYears())
	})

	t.Run("missing START defaults to 1983-01-01", func(t *testing.T) {
		tm, err := deck.BuildTimeMap(strings.NewReader("TSTEP\n 10 /\n"))

		require.NoError(t, err)
		assert.Equal(t, mustDate(1983, time.January, 1), tm.StartTime())
		assert.Equal(t, 1, tm.NumSteps())
	})

	t.Run("repeat counts expand", func(t *testing.T) {
		tm, err := deck.BuildTimeMap(strings.NewReader("START\n 1 JAN 2020 /\nTSTEP\n 3*10 /\n"))

		require.NoError(t, err)
		assert.Equal(t, 3, tm.NumSteps())
		assert.Equal(t, mustDate(2020, time.January, 31), tm.EndTime())
	})

	t.Run("unknown month name fails", func(t *testing.T) {
		_, err := deck.BuildTimeMap(strings.NewReader("DATES\n 1 FOO 2020 /\n"))

		assert.ErrorIs(t, err, schedule.ErrUnknownMonthName)
	})

	t.Run("malformed time text falls back to midnight", func(t *testing.T) {
		tm, err := deck.BuildTimeMap(strings.NewReader("START\n 1 JAN 2020 /\nDATES\n 1 FEB 2020 25:99 /\n"))

		require.NoError(t, err)
		assert.Equal(t, mustDate(2020, time.February, 1), tm.EndTime())
	})

	t.Run("dates moving backward fail", func(t *testing.T) {
		_, err := deck.BuildTimeMap(strings.NewReader("START\n 1 JAN 2020 /\nDATES\n 1 JAN 2019 /\n"))

		assert.ErrorIs(t, err, schedule.ErrNonMonotonicTime)
	})

	t.Run("nonexistent date fails", func(t *testing.T) {
		_, err := deck.BuildTimeMap(strings.NewReader("DATES\n 30 FEB 2021 /\n"))

		assert.ErrorIs(t, err, schedule.ErrInvalidCalendarDate)
	})
}
