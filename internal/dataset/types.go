package dataset

import (
	"time"
)

// Hand represents a batter's or bowler's handedness
type Hand string

const (
	// HandRight is a right-handed player
	HandRight Hand = "Right"
	// HandLeft is a left-handed player
	HandLeft Hand = "Left"
)

// IsRight reports whether the hand is right (the default when the
// column is blank or unrecognized).
func (h Hand) IsRight() bool {
	return h != HandLeft
}

// Delivery represents a single ball of a T20 innings as recorded in
// the ball-by-ball CSV. Immutable once loaded.
type Delivery struct {
	FixtureID   string    `json:"fixture_id"`
	Date        time.Time `json:"date"`
	BattingTeam string    `json:"batting_team"`
	BowlingTeam string    `json:"bowling_team"`

	Batter     string `json:"batter"`
	BatterHand Hand   `json:"batter_hand"`
	Bowler     string `json:"bowler"`
	BowlerHand Hand   `json:"bowler_hand"`
	BowlerType string `json:"bowler_type"`

	// Over is 1-based over number in the innings, Ball is the 1-based
	// delivery number within the over.
	Over int `json:"over"`
	Ball int `json:"ball"`

	RunsScored    int    `json:"runs_scored"`
	IsWicket      bool   `json:"is_wicket"`
	DismissalType string `json:"dismissal_type,omitempty"`

	Line   string `json:"line,omitempty"`
	Length string `json:"length,omitempty"`

	ShotType string `json:"shot_type,omitempty"`
	// ShotAngle is the absolute field direction in degrees [0, 360);
	// nil when the ball was not traced.
	ShotAngle *float64 `json:"shot_angle,omitempty"`
	// ShotMagnitude is the traced carry distance in metres; nil when
	// the ball was not traced.
	ShotMagnitude *float64 `json:"shot_magnitude,omitempty"`

	Control      bool   `json:"control"`
	Aerial       bool   `json:"aerial"`
	FeetMovement string `json:"feet_movement,omitempty"`
	Variation    string `json:"variation,omitempty"`
}

// IsBoundary reports whether the delivery was hit for four or six
func (d Delivery) IsBoundary() bool {
	return d.RunsScored == 4 || d.RunsScored == 6
}

// IsDot reports whether no runs were scored off the delivery
func (d Delivery) IsDot() bool {
	return d.RunsScored == 0
}

// IsValid checks basic row-level invariants after parsing
func (d Delivery) IsValid() bool {
	return d.FixtureID != "" && d.Batter != "" &&
		d.Over > 0 && d.Ball > 0 && d.RunsScored >= 0 &&
		!d.Date.IsZero()
}

// Table is the immutable in-memory form of the dataset. It is loaded
// once per file and shared read-only across requests.
type Table struct {
	Path       string
	Deliveries []Delivery
	LoadedAt   time.Time
}

// Len returns the number of deliveries in the table
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Deliveries)
}

// Batters returns the distinct batter names in first-seen order
func (t *Table) Batters() []string {
	seen := make(map[string]struct{}, 64)
	var batters []string
	for _, d := range t.Deliveries {
		if _, ok := seen[d.Batter]; ok {
			continue
		}
		seen[d.Batter] = struct{}{}
		batters = append(batters, d.Batter)
	}
	return batters
}

// Fixtures returns the distinct fixture IDs in first-seen order
func (t *Table) Fixtures() []string {
	seen := make(map[string]struct{}, 16)
	var fixtures []string
	for _, d := range t.Deliveries {
		if _, ok := seen[d.FixtureID]; ok {
			continue
		}
		seen[d.FixtureID] = struct{}{}
		fixtures = append(fixtures, d.FixtureID)
	}
	return fixtures
}

// BatterHand returns the recorded handedness for a batter, defaulting
// to right-handed when the batter is unknown.
func (t *Table) BatterHand(batter string) Hand {
	for _, d := range t.Deliveries {
		if d.Batter == batter {
			return d.BatterHand
		}
	}
	return HandRight
}
