package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PetroleumCyberneticsGroup/opm-parser/pkg/schedule"
)

func TestAbsoluteDate_Instant(t *testing.T) {
	t.Run("with time of day", func(t *testing.T) {
		d := schedule.AbsoluteDate{Day: 15, Month: "JUN", Year: 2021, Time: "06:30:15"}

		at, err := d.Instant()

		require.NoError(t, err)
		assert.Equal(t, time.Date(2021, time.June, 15, 6, 30, 15, 0, time.UTC), at.Time())
	})

	t.Run("empty time means midnight", func(t *testing.T) {
		d := schedule.AbsoluteDate{Day: 15, Month: "JUN", Year: 2021}

		at, err := d.Instant()

		require.NoError(t, err)
		assert.Equal(t, time.Date(2021, time.June, 15, 0, 0, 0, 0, time.UTC), at.Time())
	})

	t.Run("malformed time falls back to midnight", func(t *testing.T) {
		tests := []struct {
			name string
			text string
		}{
			{name: "two fields", text: "25:99"},
			{name: "one field", text: "12"},
			{name: "not a clock at all", text: "noon"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				d := schedule.AbsoluteDate{Day: 1, Month: "JAN", Year: 2021, Time: tt.text}

				at, err := d.Instant()

				require.NoError(t, err)
				assert.Equal(t, time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC), at.Time())
			})
		}
	})

	t.Run("well formed but out of range time fails validation", func(t *testing.T) {
		// Three fields parse, so there is no fallback; the wrapped day is
		// caught by the calendar round trip.
		d := schedule.AbsoluteDate{Day: 1, Month: "JAN", Year: 2021, Time: "25:00:00"}

		_, err := d.Instant()

		assert.ErrorIs(t, err, schedule.ErrInvalidCalendarDate)
	})

	t.Run("unknown month name fails", func(t *testing.T) {
		d := schedule.AbsoluteDate{Day: 1, Month: "JANUARY", Year: 2021}

		_, err := d.Instant()

		assert.ErrorIs(t, err, schedule.ErrUnknownMonthName)
		assert.True(t, schedule.IsInputError(err))
	})
}

func TestTimeMap_Apply(t *testing.T) {
	t.Run("directives apply in document order", func(t *testing.T) {
		tm := schedule.New(mustDate(t, 2020, time.January, 1))

		err := tm.Apply(
			schedule.RelativeAdvance{Days: 31},
			schedule.AbsoluteDate{Day: 1, Month: "MAR", Year: 2020},
			schedule.RelativeAdvance{Days: 0.5},
		)

		require.NoError(t, err)
		assert.Equal(t, 3, tm.NumSteps())
		assert.Equal(t, mustDate(t, 2020, time.March, 1).AddSeconds(43200), tm.EndTime())
	})

	t.Run("fractional days truncate toward zero", func(t *testing.T) {
		tm := schedule.New(mustDate(t, 2020, time.January, 1))

		// 1.9999884 days is 172798.99776 seconds; the fraction is dropped.
		require.NoError(t, tm.Apply(schedule.RelativeAdvance{Days: 1.9999884}))

		assert.Equal(t, tm.StartTime().AddSeconds(172798), tm.EndTime())
	})

	t.Run("failure keeps the directives already applied", func(t *testing.T) {
		tm := schedule.New(mustDate(t, 2020, time.January, 1))

		err := tm.Apply(
			schedule.RelativeAdvance{Days: 10},
			schedule.AbsoluteDate{Day: 30, Month: "FEB", Year: 2020},
			schedule.RelativeAdvance{Days: 10},
		)

		assert.ErrorIs(t, err, schedule.ErrInvalidCalendarDate)
		assert.Equal(t, 1, tm.NumSteps())
	})
}

func TestTimeMap_ApplyKeyword(t *testing.T) {
	t.Run("matching keyword applies", func(t *testing.T) {
		tm := schedule.New(mustDate(t, 2020, time.January, 1))

		err := tm.ApplyKeyword(schedule.KeywordTStep,
			schedule.RelativeAdvance{Days: 10},
			schedule.RelativeAdvance{Days: 10},
		)

		require.NoError(t, err)
		assert.Equal(t, 2, tm.NumSteps())
	})

	t.Run("misrouted directive fails before anything applies", func(t *testing.T) {
		tm := schedule.New(mustDate(t, 2020, time.January, 1))

		err := tm.ApplyKeyword(schedule.KeywordDates,
			schedule.AbsoluteDate{Day: 1, Month: "FEB", Year: 2020},
			schedule.RelativeAdvance{Days: 10},
		)

		assert.ErrorIs(t, err, schedule.ErrWrongDirectiveKind)
		assert.Equal(t, 0, tm.NumSteps())
	})
}
