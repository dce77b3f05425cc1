package season

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		label     string
		startYear int
		endYear   int
	}{
		{"2021/22", 2021, 2022},
		{"1992/93", 1992, 1993},
		{"1999/00", 1999, 2000},
		{"2006/07", 2006, 2007},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			s, err := Parse(tt.label)
			require.NoError(t, err)
			assert.Equal(t, tt.startYear, s.StartYear)
			assert.Equal(t, tt.endYear, s.EndYear)
		})
	}
}

func TestParseRejectsMalformedLabels(t *testing.T) {
	for _, label := range []string{"2021-22", "21/22", "2021/2022", "2021/23", ""} {
		_, err := Parse(label)
		assert.Error(t, err, "label %q", label)
	}
}

func TestParseURLSafe(t *testing.T) {
	s, err := ParseURLSafe("2021-22")
	require.NoError(t, err)
	assert.Equal(t, "2021/22", s.Label)

	_, err = ParseURLSafe("2021-2022")
	assert.Error(t, err)
}

func TestKey(t *testing.T) {
	s, err := Parse("2021/22")
	require.NoError(t, err)
	assert.Equal(t, "Chelsea-2122", s.Key("Chelsea"))

	s, err = Parse("1999/00")
	require.NoError(t, err)
	assert.Equal(t, "Leeds-9900", s.Key("Leeds"))
}

func TestExpectedFixtures(t *testing.T) {
	s, err := Parse("1993/94")
	require.NoError(t, err)
	assert.Equal(t, 42, s.ExpectedFixtures())

	s, err = Parse("2021/22")
	require.NoError(t, err)
	assert.Equal(t, 38, s.ExpectedFixtures())
}

func TestContainsBoundsAreExclusive(t *testing.T) {
	s, err := Parse("2021/22")
	require.NoError(t, err)

	aug1 := time.Date(2021, time.August, 1, 0, 0, 0, 0, time.UTC)
	assert.False(t, s.Contains(aug1), "August 1 of the start year is outside the window")

	aug2 := time.Date(2021, time.August, 2, 0, 0, 0, 0, time.UTC)
	assert.True(t, s.Contains(aug2))

	jul30 := time.Date(2022, time.July, 30, 0, 0, 0, 0, time.UTC)
	assert.True(t, s.Contains(jul30), "July 30 of the end year is inside the window")

	jul31 := time.Date(2022, time.July, 31, 0, 0, 0, 0, time.UTC)
	assert.False(t, s.Contains(jul31), "July 31 of the end year is outside the window")
}

func TestExpandYearRollover(t *testing.T) {
	assert.Equal(t, 1993, ExpandYear(93))
	assert.Equal(t, 2000, ExpandYear(0))
	assert.Equal(t, 2022, ExpandYear(22))
	assert.Equal(t, 2090, ExpandYear(90))
}
