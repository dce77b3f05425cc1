package stats

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRow(t *testing.T) {
	row, err := ParseRow("62.4 Possession % 37.6")
	require.NoError(t, err)
	assert.Equal(t, "62.4", row.HomeValue)
	assert.Equal(t, "37.6", row.AwayValue)
	assert.Equal(t, "Possession %", row.Label)

	row, err = ParseRow("7 Shots on target 2")
	require.NoError(t, err)
	assert.Equal(t, "7", row.HomeValue)
	assert.Equal(t, "2", row.AwayValue)
	assert.Equal(t, "Shots on target", row.Label)
}

func TestParseRowCollapsesWhitespace(t *testing.T) {
	row, err := ParseRow("  3   Fouls   conceded   11 ")
	require.NoError(t, err)
	assert.Equal(t, "3", row.HomeValue)
	assert.Equal(t, "11", row.AwayValue)
	assert.Equal(t, "Fouls conceded", row.Label)
}

func TestParseRowMalformed(t *testing.T) {
	for _, text := range []string{"", "7", "7 2"} {
		_, err := ParseRow(text)
		var malformed *MalformedStatRowError
		require.ErrorAs(t, err, &malformed, "text %q", text)
	}
}

// rowsOfCount builds a valid raw row sequence of the given length with
// distinct values so positional assignment can be asserted.
func rowsOfCount(n int) []RawStatRow {
	rows := make([]RawStatRow, n)
	for i := range rows {
		rows[i] = RawStatRow{
			HomeValue: fmt.Sprintf("h%d", i),
			AwayValue: fmt.Sprintf("a%d", i),
			Label:     "ignored",
		}
	}
	return rows
}

func TestNormalizeCategoryCounts(t *testing.T) {
	for rowCount := 9; rowCount <= 12; rowCount++ {
		t.Run(fmt.Sprintf("rows_%d", rowCount), func(t *testing.T) {
			table, err := Normalize(rowsOfCount(rowCount))
			require.NoError(t, err)

			for _, name := range MandatoryCategories {
				assert.Contains(t, table, name)
			}
			assert.Equal(t, rowCount-9, table.OptionalCount())
			assert.Len(t, table, rowCount)
		})
	}
}

func TestNormalizeTailIsPositional(t *testing.T) {
	// 11 rows: Offsides and Yellow cards occupy the last two positions
	// regardless of what the row labels claim.
	rows := rowsOfCount(11)
	table, err := Normalize(rows)
	require.NoError(t, err)

	assert.Equal(t, StatPair{Home: "h9", Away: "a9"}, table["Offsides"])
	assert.Equal(t, StatPair{Home: "h10", Away: "a10"}, table["Yellow cards"])
	assert.NotContains(t, table, "Red cards")

	// Fouls conceded stays the ninth mandatory row.
	assert.Equal(t, StatPair{Home: "h8", Away: "a8"}, table["Fouls conceded"])
}

func TestNormalizeRejectsUnknownRowCounts(t *testing.T) {
	for _, n := range []int{0, 5, 8, 13, 20} {
		_, err := Normalize(rowsOfCount(n))
		var unexpected *UnexpectedStatRowCountError
		require.ErrorAs(t, err, &unexpected, "row count %d", n)
		assert.Equal(t, n, unexpected.Count)
	}
}

func TestParseAndNormalize(t *testing.T) {
	texts := []string{
		"62.4 Possession % 37.6",
		"7 Shots on target 2",
		"15 Shots 8",
		"712 Touches 543",
		"587 Passes 401",
		"12 Tackles 19",
		"9 Clearances 31",
		"8 Corners 2",
		"10 Fouls conceded 12",
		"1 Offsides 3",
	}
	table, err := ParseAndNormalize(texts)
	require.NoError(t, err)
	assert.Equal(t, StatPair{Home: "62.4", Away: "37.6"}, table["Possession %"])
	assert.Equal(t, StatPair{Home: "1", Away: "3"}, table["Offsides"])
	assert.Equal(t, 1, table.OptionalCount())
}

func TestParseAndNormalizePropagatesRowErrors(t *testing.T) {
	_, err := ParseAndNormalize([]string{"62.4 Possession % 37.6", "bad"})
	var malformed *MalformedStatRowError
	require.ErrorAs(t, err, &malformed)
}
