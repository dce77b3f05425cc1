// Package dataset assembles accumulated match records into the published
// season dataset: type coercion, the season date-window filter, and
// zero-filling of optional categories the source omitted.
package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/matchday/matchday-data/internal/record"
	"github.com/matchday/matchday-data/internal/season"
	"github.com/matchday/matchday-data/internal/stats"
)

// dateLayout matches the match page's date display, e.g. "Sat 14 Aug 2021".
const dateLayout = "Mon 2 Jan 2006"

// countingCategories are the canonical stats coerced to integers on
// assembly. Possession is the one float column and is handled separately.
var countingCategories = []string{
	"Shots on target",
	"Shots",
	"Touches",
	"Passes",
	"Tackles",
	"Clearances",
	"Corners",
	"Offsides",
	"Fouls conceded",
	"Yellow cards",
	"Red cards",
}

// Columns lists the published stat columns of a season dataset row — every
// column except the record-id bookkeeping field.
var Columns = []string{
	"Match id",
	"Date",
	"Location",
	"Home or away",
	"Result",
	"Goals scored",
	"Goals against",
	"Possession %",
	"Shots on target",
	"Shots",
	"Touches",
	"Passes",
	"Tackles",
	"Clearances",
	"Corners",
	"Offsides",
	"Fouls conceded",
	"Yellow cards",
	"Red cards",
}

// Row is one type-coerced match entry in the published table.
type Row struct {
	MatchID       string        `json:"Match id"`
	RecordID      string        `json:"record-id"`
	Date          time.Time     `json:"Date"` // calendar date, midnight UTC
	Location      string        `json:"Location"`
	Side          record.Side   `json:"Home or away"`
	Result        record.Result `json:"Result"`
	GoalsFor      int           `json:"Goals scored"`
	GoalsAgainst  int           `json:"Goals against"`
	Possession    float64       `json:"Possession %"`
	ShotsOnTarget int           `json:"Shots on target"`
	Shots         int           `json:"Shots"`
	Touches       int           `json:"Touches"`
	Passes        int           `json:"Passes"`
	Tackles       int           `json:"Tackles"`
	Clearances    int           `json:"Clearances"`
	Corners       int           `json:"Corners"`
	Offsides      int           `json:"Offsides"`
	FoulsConceded int           `json:"Fouls conceded"`
	YellowCards   int           `json:"Yellow cards"`
	RedCards      int           `json:"Red cards"`
}

// SeasonDataset is the finished table for one club and season, keyed
// "{club}-{2-digit-start-year}{2-digit-end-year}". Published wholesale;
// re-ingestion replaces any prior publication under the same key.
type SeasonDataset struct {
	Key    string
	Club   string
	Season string
	Rows   []Row
}

// Assemble coerces and time-windows the accumulated records into a
// publishable dataset.
//
// Records dated outside the August–July season window are dropped — raw
// collection can pull fixtures bleeding across season boundaries on the
// source site. Optional categories missing from a record become 0, not
// null: the source omits a trailing category when both teams recorded
// zero, so absence genuinely means zero.
func Assemble(records []*record.MatchRecord, club string, se season.Season) (*SeasonDataset, error) {
	ds := &SeasonDataset{
		Key:    se.Key(club),
		Club:   club,
		Season: se.Label,
		Rows:   make([]Row, 0, len(records)),
	}

	for _, rec := range records {
		row, inWindow, err := coerce(rec, se)
		if err != nil {
			return nil, fmt.Errorf("coerce record %s: %w", rec.MatchID, err)
		}
		if !inWindow {
			continue
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}

// coerce turns one raw record into a typed row and applies the season
// window filter.
func coerce(rec *record.MatchRecord, se season.Season) (Row, bool, error) {
	date, err := time.Parse(dateLayout, rec.DateText)
	if err != nil {
		return Row{}, false, fmt.Errorf("parse date %q: %w", rec.DateText, err)
	}
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	if !se.Contains(date) {
		return Row{}, false, nil
	}

	possession, err := parsePossession(rec.Stats["Possession %"])
	if err != nil {
		return Row{}, false, err
	}

	counts := make(map[string]int, len(countingCategories))
	for _, name := range countingCategories {
		raw, ok := rec.Stats[name]
		if !ok {
			if !isOptional(name) {
				return Row{}, false, fmt.Errorf("record is missing mandatory category %q", name)
			}
			counts[name] = 0
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return Row{}, false, fmt.Errorf("category %q has non-count value %q", name, raw)
		}
		counts[name] = n
	}

	return Row{
		MatchID:       rec.MatchID,
		RecordID:      rec.RecordID,
		Date:          date,
		Location:      rec.Location,
		Side:          rec.Side,
		Result:        rec.Result,
		GoalsFor:      rec.GoalsFor,
		GoalsAgainst:  rec.GoalsAgainst,
		Possession:    possession,
		ShotsOnTarget: counts["Shots on target"],
		Shots:         counts["Shots"],
		Touches:       counts["Touches"],
		Passes:        counts["Passes"],
		Tackles:       counts["Tackles"],
		Clearances:    counts["Clearances"],
		Corners:       counts["Corners"],
		Offsides:      counts["Offsides"],
		FoulsConceded: counts["Fouls conceded"],
		YellowCards:   counts["Yellow cards"],
		RedCards:      counts["Red cards"],
	}, true, nil
}

func parsePossession(raw string) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("record is missing mandatory category %q", "Possession %")
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(raw, "%"), 64)
	if err != nil {
		return 0, fmt.Errorf("parse possession %q: %w", raw, err)
	}
	return f, nil
}

func isOptional(name string) bool {
	for _, opt := range stats.OptionalTail {
		if name == opt {
			return true
		}
	}
	return false
}
