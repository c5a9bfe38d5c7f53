package filter

import (
	"strings"
	"time"

	"t20cli/internal/dataset"
)

// Selection enumerates every recognized filter key. Zero values are
// no-ops; all set fields combine with logical AND. Selections are
// value types and applying the same selection twice yields identical
// results.
type Selection struct {
	Batter      string    `json:"batter,omitempty"`
	FixtureID   string    `json:"fixture_id,omitempty"`
	BattingTeam string    `json:"batting_team,omitempty"`
	BowlingTeam string    `json:"bowling_team,omitempty"`
	Bowler      string    `json:"bowler,omitempty"`
	BowlerHand  string    `json:"bowler_hand,omitempty"`
	BowlerType  string    `json:"bowler_type,omitempty"`
	Line        string    `json:"line,omitempty"`
	Length      string    `json:"length,omitempty"`
	OverMin     int       `json:"over_min,omitempty"`
	OverMax     int       `json:"over_max,omitempty"`
	DateFrom    time.Time `json:"date_from,omitempty"`
	DateTo      time.Time `json:"date_to,omitempty"`
}

// IsZero reports whether no predicate is active
func (s Selection) IsZero() bool {
	return s == Selection{}
}

// WithoutBatter returns the selection with the batter predicate
// cleared. Baseline populations are built from this wider selection.
func (s Selection) WithoutBatter() Selection {
	s.Batter = ""
	return s
}

// Matches reports whether a delivery satisfies every active predicate
func (s Selection) Matches(d dataset.Delivery) bool {
	if s.Batter != "" && !equalFold(d.Batter, s.Batter) {
		return false
	}
	if s.FixtureID != "" && d.FixtureID != s.FixtureID {
		return false
	}
	if s.BattingTeam != "" && !equalFold(d.BattingTeam, s.BattingTeam) {
		return false
	}
	if s.BowlingTeam != "" && !equalFold(d.BowlingTeam, s.BowlingTeam) {
		return false
	}
	if s.Bowler != "" && !equalFold(d.Bowler, s.Bowler) {
		return false
	}
	if s.BowlerHand != "" && !equalFold(string(d.BowlerHand), s.BowlerHand) {
		return false
	}
	if s.BowlerType != "" && !equalFold(d.BowlerType, s.BowlerType) {
		return false
	}
	if s.Line != "" && !equalFold(d.Line, s.Line) {
		return false
	}
	if s.Length != "" && !equalFold(d.Length, s.Length) {
		return false
	}
	if s.OverMin > 0 && d.Over < s.OverMin {
		return false
	}
	if s.OverMax > 0 && d.Over > s.OverMax {
		return false
	}
	if !s.DateFrom.IsZero() && d.Date.Before(s.DateFrom) {
		return false
	}
	if !s.DateTo.IsZero() && d.Date.After(s.DateTo) {
		return false
	}
	return true
}

// Apply returns the subset of rows satisfying the selection. The
// result preserves input order; an empty result is valid and flows
// through to downstream components as-is.
func Apply(rows []dataset.Delivery, sel Selection) []dataset.Delivery {
	if sel.IsZero() {
		return rows
	}

	var out []dataset.Delivery
	for _, d := range rows {
		if sel.Matches(d) {
			out = append(out, d)
		}
	}
	return out
}

// Fixtures returns the distinct fixture IDs present in rows, in
// first-seen order. Used to widen a batter's subset into the
// same-match baseline population.
func Fixtures(rows []dataset.Delivery) []string {
	seen := make(map[string]struct{}, 8)
	var fixtures []string
	for _, d := range rows {
		if _, ok := seen[d.FixtureID]; ok {
			continue
		}
		seen[d.FixtureID] = struct{}{}
		fixtures = append(fixtures, d.FixtureID)
	}
	return fixtures
}

// InFixtures returns the subset of rows belonging to the given fixtures
func InFixtures(rows []dataset.Delivery, fixtures []string) []dataset.Delivery {
	if len(fixtures) == 0 {
		return nil
	}

	want := make(map[string]struct{}, len(fixtures))
	for _, f := range fixtures {
		want[f] = struct{}{}
	}

	var out []dataset.Delivery
	for _, d := range rows {
		if _, ok := want[d.FixtureID]; ok {
			out = append(out, d)
		}
	}
	return out
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
