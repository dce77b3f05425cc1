package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchday/matchday-data/internal/record"
	"github.com/matchday/matchday-data/internal/season"
)

func mustSeason(t *testing.T, label string) season.Season {
	t.Helper()
	s, err := season.Parse(label)
	require.NoError(t, err)
	return s
}

func sampleRecord(dateText string) *record.MatchRecord {
	return &record.MatchRecord{
		MatchID:      "66342-CHE",
		RecordID:     "11111111-2222-3333-4444-555555555555",
		DateText:     dateText,
		Location:     "Stamford Bridge, London",
		Side:         record.SideHome,
		Result:       record.ResultWin,
		GoalsFor:     3,
		GoalsAgainst: 1,
		Stats: map[string]string{
			"Possession %":    "62.4",
			"Shots on target": "7",
			"Shots":           "15",
			"Touches":         "712",
			"Passes":          "587",
			"Tackles":         "12",
			"Clearances":      "9",
			"Corners":         "8",
			"Fouls conceded":  "10",
			"Offsides":        "1",
		},
	}
}

func TestAssembleCoercesTypes(t *testing.T) {
	se := mustSeason(t, "2021/22")
	ds, err := Assemble([]*record.MatchRecord{sampleRecord("Sat 14 Aug 2021")}, "Chelsea", se)
	require.NoError(t, err)

	assert.Equal(t, "Chelsea-2122", ds.Key)
	require.Len(t, ds.Rows, 1)

	row := ds.Rows[0]
	assert.Equal(t, time.Date(2021, time.August, 14, 0, 0, 0, 0, time.UTC), row.Date)
	assert.Equal(t, 62.4, row.Possession)
	assert.Equal(t, 7, row.ShotsOnTarget)
	assert.Equal(t, 712, row.Touches)
	assert.Equal(t, 3, row.GoalsFor)
	assert.Equal(t, record.SideHome, row.Side)
}

func TestAssembleZeroFillsOptionalCategories(t *testing.T) {
	se := mustSeason(t, "2021/22")
	rec := sampleRecord("Sat 14 Aug 2021") // no Yellow cards / Red cards rows
	ds, err := Assemble([]*record.MatchRecord{rec}, "Chelsea", se)
	require.NoError(t, err)
	require.Len(t, ds.Rows, 1)

	assert.Equal(t, 1, ds.Rows[0].Offsides)
	assert.Equal(t, 0, ds.Rows[0].YellowCards)
	assert.Equal(t, 0, ds.Rows[0].RedCards)
}

func TestAssembleSeasonWindow(t *testing.T) {
	se := mustSeason(t, "2021/22")

	tests := []struct {
		dateText string
		kept     bool
	}{
		{"Sun 1 Aug 2021", false}, // exactly the lower bound: excluded
		{"Mon 2 Aug 2021", true},
		{"Sat 30 Jul 2022", true},
		{"Sun 31 Jul 2022", false}, // exactly the upper bound: excluded
		{"Sat 15 May 2021", false}, // previous season bleed
	}
	for _, tt := range tests {
		t.Run(tt.dateText, func(t *testing.T) {
			ds, err := Assemble([]*record.MatchRecord{sampleRecord(tt.dateText)}, "Chelsea", se)
			require.NoError(t, err)
			if tt.kept {
				assert.Len(t, ds.Rows, 1)
			} else {
				assert.Empty(t, ds.Rows)
			}
		})
	}
}

func TestAssembleRejectsUnparseableDate(t *testing.T) {
	se := mustSeason(t, "2021/22")
	_, err := Assemble([]*record.MatchRecord{sampleRecord("14/08/2021")}, "Chelsea", se)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse date")
}

func TestAssembleRejectsMissingMandatoryCategory(t *testing.T) {
	se := mustSeason(t, "2021/22")
	rec := sampleRecord("Sat 14 Aug 2021")
	delete(rec.Stats, "Touches")
	_, err := Assemble([]*record.MatchRecord{rec}, "Chelsea", se)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Touches")
}

func TestAssembleRejectsNegativeCounts(t *testing.T) {
	se := mustSeason(t, "2021/22")
	rec := sampleRecord("Sat 14 Aug 2021")
	rec.Stats["Corners"] = "-2"
	_, err := Assemble([]*record.MatchRecord{rec}, "Chelsea", se)
	require.Error(t, err)
}

func TestPublishedColumnCount(t *testing.T) {
	// The published table carries 19 stat columns; record-id is
	// bookkeeping, not a column.
	assert.Len(t, Columns, 19)
}
