// Package stats turns the raw two-team statistic rows scraped from a match
// page into a canonical stat table.
//
// A raw row reads like "62.4 Possession % 37.6": first token is the home
// value, last token is the away value, everything between is the stat label.
// The source presents a fixed block of mandatory categories followed by an
// optional tail — a trailing category both teams finished on zero is omitted
// from the page entirely rather than rendered as a zero row, so the tail is
// resolved purely by position, never by matching label text.
package stats

import (
	"fmt"
	"strings"
)

// MandatoryCategories are always present, in this display order.
// Fouls conceded closes the block as the ninth row; the eight rows before it
// are the numeric categories every site layout has carried.
var MandatoryCategories = []string{
	"Possession %",
	"Shots on target",
	"Shots",
	"Touches",
	"Passes",
	"Tackles",
	"Clearances",
	"Corners",
	"Fouls conceded",
}

// OptionalTail lists the trailing categories in the order the source
// reports them when present. A row count of 9+n means the first n of
// these occupy the last n rows.
var OptionalTail = []string{
	"Offsides",
	"Yellow cards",
	"Red cards",
}

// tailSizeByRowCount is the single schema rule: total row count determines
// how many optional tail categories the page reported. Any other count is
// schema drift and must fail loudly.
var tailSizeByRowCount = map[int]int{
	9:  0,
	10: 1,
	11: 2,
	12: 3,
}

// --------------------------------------------------------------------------
// Errors
// --------------------------------------------------------------------------

// MalformedStatRowError reports a row whose text could not be split into
// home value, label, and away value.
type MalformedStatRowError struct {
	Text string
}

func (e *MalformedStatRowError) Error() string {
	return fmt.Sprintf("malformed stat row %q: need at least 3 tokens", e.Text)
}

// UnexpectedStatRowCountError reports a stat table whose row count matches
// no known page layout. This signals schema drift on the source, not a
// condition to absorb.
type UnexpectedStatRowCountError struct {
	Count int
}

func (e *UnexpectedStatRowCountError) Error() string {
	return fmt.Sprintf("unexpected stat row count %d: want 9-12", e.Count)
}

// --------------------------------------------------------------------------
// Row parsing
// --------------------------------------------------------------------------

// RawStatRow is one display row split into its parts. Consumed once by
// Normalize; the label is informational only and never drives category
// assignment.
type RawStatRow struct {
	HomeValue string
	AwayValue string
	Label     string
}

// ParseRow splits a row's text into whitespace-delimited tokens. The first
// token is the home value, the last the away value, and the tokens between
// are the human-readable label rejoined with single spaces.
func ParseRow(text string) (RawStatRow, error) {
	tokens := strings.Fields(text)
	if len(tokens) < 3 {
		return RawStatRow{}, &MalformedStatRowError{Text: text}
	}
	return RawStatRow{
		HomeValue: tokens[0],
		AwayValue: tokens[len(tokens)-1],
		Label:     strings.Join(tokens[1:len(tokens)-1], " "),
	}, nil
}

// --------------------------------------------------------------------------
// Normalization
// --------------------------------------------------------------------------

// StatPair holds the raw home and away values for one category.
type StatPair struct {
	Home string
	Away string
}

// CanonicalStatTable maps category name to the (home, away) value pair.
// It always contains every mandatory category, plus the leading
// OptionalTail categories the page reported.
type CanonicalStatTable map[string]StatPair

// OptionalCount returns how many optional tail categories the table carries.
func (t CanonicalStatTable) OptionalCount() int {
	n := 0
	for _, name := range OptionalTail {
		if _, ok := t[name]; ok {
			n++
		}
	}
	return n
}

// Normalize maps an ordered row sequence onto canonical categories.
//
// The mandatory block fills the leading positions; the optional tail is
// read by fixed offset from the end of the sequence. Row labels are
// deliberately ignored — they vary with locale and markup, while position
// does not.
func Normalize(rows []RawStatRow) (CanonicalStatTable, error) {
	tail, ok := tailSizeByRowCount[len(rows)]
	if !ok {
		return nil, &UnexpectedStatRowCountError{Count: len(rows)}
	}

	table := make(CanonicalStatTable, len(rows))
	for i, name := range MandatoryCategories {
		table[name] = StatPair{Home: rows[i].HomeValue, Away: rows[i].AwayValue}
	}
	for i := 0; i < tail; i++ {
		row := rows[len(rows)-tail+i]
		table[OptionalTail[i]] = StatPair{Home: row.HomeValue, Away: row.AwayValue}
	}
	return table, nil
}

// ParseAndNormalize parses each raw row text and normalizes the result.
func ParseAndNormalize(rowTexts []string) (CanonicalStatTable, error) {
	rows := make([]RawStatRow, 0, len(rowTexts))
	for _, text := range rowTexts {
		row, err := ParseRow(text)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return Normalize(rows)
}
