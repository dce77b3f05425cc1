// Package season handles season labels ("2021/22"), dataset keys
// ("Chelsea-2122"), expected fixture counts, and the August–July date
// window used to assign records to a season.
package season

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var labelPattern = regexp.MustCompile(`^(\d{4})/(\d{2})$`)

// seasonsWith22Teams lists the early seasons played with 22 clubs,
// which had 42 fixtures per club instead of the standard 38.
var seasonsWith22Teams = map[string]bool{
	"1992/93": true,
	"1993/94": true,
	"1994/95": true,
}

// Season is a parsed season label.
type Season struct {
	Label     string // "2021/22"
	StartYear int    // 2021
	EndYear   int    // 2022
}

// Parse validates and expands a season label of the form "2021/22".
//
// The end year is expanded from its two trailing digits: values above 90
// are taken as 19xx, everything else as 20xx. That heuristic holds for the
// competition's history but misreads two-digit years again from 2091
// onward; revisit if this code survives that long.
func Parse(label string) (Season, error) {
	m := labelPattern.FindStringSubmatch(label)
	if m == nil {
		return Season{}, fmt.Errorf("invalid season label %q: want YYYY/YY", label)
	}
	start, _ := strconv.Atoi(m[1])
	end := ExpandYear(mustAtoi(m[2]))
	if end != start+1 {
		return Season{}, fmt.Errorf("season %q does not span consecutive years", label)
	}
	return Season{Label: label, StartYear: start, EndYear: end}, nil
}

// ParseURLSafe parses the hyphenated label form used in URL paths, where
// "2021-22" stands in for "2021/22".
func ParseURLSafe(label string) (Season, error) {
	return Parse(strings.Replace(label, "-", "/", 1))
}

// ExpandYear expands a two-digit year. Values above 90 roll over to the
// 20th century.
func ExpandYear(yy int) int {
	if yy > 90 {
		return 1900 + yy
	}
	return 2000 + yy
}

// Key returns the dataset key for a club in this season,
// e.g. "Chelsea-2122".
func (s Season) Key(club string) string {
	return fmt.Sprintf("%s-%02d%02d", club, s.StartYear%100, s.EndYear%100)
}

// ExpectedFixtures returns how many fixtures one club plays in this season.
func (s Season) ExpectedFixtures() int {
	if seasonsWith22Teams[s.Label] {
		return 42
	}
	return 38
}

// Window returns the exclusive bounds of the season's date window:
// August 1 of the start year and July 31 of the end year.
func (s Season) Window() (lower, upper time.Time) {
	lower = time.Date(s.StartYear, time.August, 1, 0, 0, 0, 0, time.UTC)
	upper = time.Date(s.EndYear, time.July, 31, 0, 0, 0, 0, time.UTC)
	return lower, upper
}

// Contains reports whether a date falls inside the season window.
// Both bounds are exclusive: August 1 itself is out, July 30 is in.
func (s Season) Contains(d time.Time) bool {
	lower, upper := s.Window()
	return d.After(lower) && d.Before(upper)
}

func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
