package analytics

import (
	"sort"
	"strconv"

	"t20cli/internal/dataset"
)

// Summarize computes the batting summary for a delivery subset.
// A zero-ball subset yields the undefined sentinel for every rate.
func Summarize(rows []dataset.Delivery) BattingSummary {
	var s BattingSummary

	for _, d := range rows {
		s.Balls++
		s.Runs += d.RunsScored
		if d.IsWicket {
			s.Dismissals++
		}
		if d.IsBoundary() {
			s.Boundaries++
		}
		if d.IsDot() {
			s.Dots++
		}
		if d.Control {
			s.Controlled++
		}
		if d.Aerial {
			s.AerialShots++
		}
	}

	balls := float64(s.Balls)
	s.StrikeRate = Ratio(float64(s.Runs), balls, 100)
	s.Average = Ratio(float64(s.Runs), float64(s.Dismissals), 1)
	s.ControlPct = Ratio(float64(s.Controlled), balls, 100)
	s.AerialPct = Ratio(float64(s.AerialShots), balls, 100)
	s.BoundaryPct = Ratio(float64(s.Boundaries), balls, 100)
	s.DotPct = Ratio(float64(s.Dots), balls, 100)
	s.DismissalRate = Ratio(float64(s.Dismissals), balls, 100)

	return s
}

// KeyFunc extracts a grouping key from a delivery. Returning false
// excludes the delivery from the grouping (e.g. untagged line/length).
type KeyFunc func(d dataset.Delivery) (string, bool)

// GroupBy summarizes rows per grouping key, in first-seen key order
func GroupBy(rows []dataset.Delivery, key KeyFunc) []BattingSummary {
	groups := make(map[string][]dataset.Delivery)
	var order []string

	for _, d := range rows {
		k, ok := key(d)
		if !ok {
			continue
		}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], d)
	}

	summaries := make([]BattingSummary, 0, len(order))
	for _, k := range order {
		s := Summarize(groups[k])
		s.Group = k
		summaries = append(summaries, s)
	}
	return summaries
}

// SortByBalls orders summaries by descending balls faced, then key
func SortByBalls(summaries []BattingSummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].Balls != summaries[j].Balls {
			return summaries[i].Balls > summaries[j].Balls
		}
		return summaries[i].Group < summaries[j].Group
	})
}

// SortByNumericGroup orders summaries by their key parsed as an
// integer (over and ball-in-over groupings).
func SortByNumericGroup(summaries []BattingSummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		a, _ := strconv.Atoi(summaries[i].Group)
		b, _ := strconv.Atoi(summaries[j].Group)
		return a < b
	})
}

// Standard grouping keys

// KeyLineLength groups by bowling line and length
func KeyLineLength(d dataset.Delivery) (string, bool) {
	if d.Line == "" && d.Length == "" {
		return "", false
	}
	return d.Line + " / " + d.Length, true
}

// KeyBowler groups by bowler identity
func KeyBowler(d dataset.Delivery) (string, bool) {
	if d.Bowler == "" {
		return "", false
	}
	return d.Bowler, true
}

// KeyBowlerType groups by bowler type (pace/spin classification)
func KeyBowlerType(d dataset.Delivery) (string, bool) {
	if d.BowlerType == "" {
		return "", false
	}
	return d.BowlerType, true
}

// KeyShotType groups by shot played
func KeyShotType(d dataset.Delivery) (string, bool) {
	if d.ShotType == "" {
		return "", false
	}
	return d.ShotType, true
}

// KeyVariation groups by ball variation
func KeyVariation(d dataset.Delivery) (string, bool) {
	if d.Variation == "" {
		return "", false
	}
	return d.Variation, true
}

// KeyFeetMovement groups by the batter's foot movement
func KeyFeetMovement(d dataset.Delivery) (string, bool) {
	if d.FeetMovement == "" {
		return "", false
	}
	return d.FeetMovement, true
}

// KeyOver groups by over number in the innings
func KeyOver(d dataset.Delivery) (string, bool) {
	return strconv.Itoa(d.Over), true
}

// KeyBallInOver groups by delivery number within the over. Deliveries
// beyond the sixth (re-bowled extras) are excluded, matching the
// over-progression table.
func KeyBallInOver(d dataset.Delivery) (string, bool) {
	if d.Ball < 1 || d.Ball > 6 {
		return "", false
	}
	return strconv.Itoa(d.Ball), true
}

// Dismissals breaks down wickets by dismissal type and ball variation.
// RatePer100 is relative to all balls faced in the subset, so the
// breakdown rates sum to the overall dismissal rate.
func Dismissals(rows []dataset.Delivery) []DismissalBreakdown {
	type key struct {
		dismissal string
		variation string
	}

	counts := make(map[key]int)
	var order []key
	totalBalls := 0

	for _, d := range rows {
		totalBalls++
		if !d.IsWicket {
			continue
		}
		dismissal := d.DismissalType
		if dismissal == "" {
			dismissal = "Unknown"
		}
		k := key{dismissal: dismissal, variation: d.Variation}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	breakdown := make([]DismissalBreakdown, 0, len(order))
	for _, k := range order {
		breakdown = append(breakdown, DismissalBreakdown{
			DismissalType: k.dismissal,
			Variation:     k.variation,
			Count:         counts[k],
			RatePer100:    Ratio(float64(counts[k]), float64(totalBalls), 100),
		})
	}

	sort.SliceStable(breakdown, func(i, j int) bool {
		if breakdown[i].Count != breakdown[j].Count {
			return breakdown[i].Count > breakdown[j].Count
		}
		if breakdown[i].DismissalType != breakdown[j].DismissalType {
			return breakdown[i].DismissalType < breakdown[j].DismissalType
		}
		return breakdown[i].Variation < breakdown[j].Variation
	})

	return breakdown
}
