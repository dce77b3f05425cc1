// Package record builds the immutable per-fixture match record from the
// pieces extracted off a match page: date, venue, scoreline, and the
// canonical stat table.
//
// Every record reports the inspected club's own perspective. Goals and
// stat values are projected onto the club's side before they land on the
// record, so consumers never see the opponent's raw figures.
package record

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/matchday/matchday-data/internal/stats"
)

// Side says which side of the fixture the inspected club played.
type Side string

const (
	SideHome Side = "Home"
	SideAway Side = "Away"
)

// Result is the outcome from the inspected club's perspective.
type Result string

const (
	ResultWin  Result = "Win"
	ResultDraw Result = "Draw"
	ResultLoss Result = "Loss"
)

// Scoreline is the full-time score as displayed: home first.
type Scoreline struct {
	Home int
	Away int
}

// MatchMeta carries the non-statistical page facts about a fixture.
type MatchMeta struct {
	DateText string // as displayed, e.g. "Sat 14 Aug 2021"
	Venue    string
}

// MatchRecord is the unit of persistence for one fixture. Created once by
// Build and never mutated; the assembler consumes it and discards it.
//
// Stat values stay as the raw strings read off the page. Type coercion is
// the season assembler's job.
type MatchRecord struct {
	MatchID      string // "{last-5-of-fixture-ref}-{club code}", unique per club+season
	RecordID     string // random unique id, de-duplication bookkeeping only
	DateText     string
	Location     string
	Side         Side
	Result       Result
	GoalsFor     int
	GoalsAgainst int
	Stats        map[string]string // canonical category -> inspected club's value
}

// SideFor compares the inspected club's short code against the short code
// the score box flags as home.
func SideFor(clubCode, homeCode string) Side {
	if clubCode == homeCode {
		return SideHome
	}
	return SideAway
}

// Build combines the extracted pieces into one MatchRecord.
//
// The fixture reference must be a numeric identifier of at least 5
// characters; anything shorter is a data-integrity defect on the source
// and is surfaced rather than silently truncated.
func Build(meta MatchMeta, side Side, score Scoreline, table stats.CanonicalStatTable, clubCode, fixtureRef string) (*MatchRecord, error) {
	if len(fixtureRef) < 5 {
		return nil, fmt.Errorf("fixture reference %q is shorter than 5 characters", fixtureRef)
	}

	goalsFor, goalsAgainst := score.Home, score.Away
	if side == SideAway {
		goalsFor, goalsAgainst = score.Away, score.Home
	}

	projected := make(map[string]string, len(table))
	for name, pair := range table {
		if side == SideHome {
			projected[name] = pair.Home
		} else {
			projected[name] = pair.Away
		}
	}

	return &MatchRecord{
		MatchID:      fmt.Sprintf("%s-%s", fixtureRef[len(fixtureRef)-5:], clubCode),
		RecordID:     uuid.NewString(),
		DateText:     meta.DateText,
		Location:     meta.Venue,
		Side:         side,
		Result:       resultOf(goalsFor, goalsAgainst),
		GoalsFor:     goalsFor,
		GoalsAgainst: goalsAgainst,
		Stats:        projected,
	}, nil
}

func resultOf(goalsFor, goalsAgainst int) Result {
	switch {
	case goalsFor > goalsAgainst:
		return ResultWin
	case goalsFor == goalsAgainst:
		return ResultDraw
	default:
		return ResultLoss
	}
}

// Flat returns the record as the flat key-value form persisted per match
// before aggregation. Optional categories the page omitted are absent here;
// the assembler zero-fills them.
func (r *MatchRecord) Flat() map[string]string {
	flat := map[string]string{
		"Match id":      r.MatchID,
		"record-id":     r.RecordID,
		"Date":          r.DateText,
		"Location":      r.Location,
		"Home or away":  string(r.Side),
		"Result":        string(r.Result),
		"Goals scored":  fmt.Sprintf("%d", r.GoalsFor),
		"Goals against": fmt.Sprintf("%d", r.GoalsAgainst),
	}
	for name, value := range r.Stats {
		flat[name] = value
	}
	return flat
}
