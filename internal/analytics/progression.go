package analytics

import (
	"t20cli/internal/dataset"
)

// Progression computes rolling-window metrics over a batter's
// ball-faced sequence. Rows must already be in the order the balls
// were faced. A window of N over a sequence of L balls produces
// exactly L−N+1 points; a window longer than the sequence produces
// none.
func Progression(rows []dataset.Delivery, window int) []ProgressionPoint {
	if window <= 0 || len(rows) < window {
		return nil
	}

	points := make([]ProgressionPoint, 0, len(rows)-window+1)

	var runs, boundaries, dots, aerial int
	for i, d := range rows {
		runs += d.RunsScored
		if d.IsBoundary() {
			boundaries++
		}
		if d.IsDot() {
			dots++
		}
		if d.Aerial {
			aerial++
		}

		if i >= window {
			out := rows[i-window]
			runs -= out.RunsScored
			if out.IsBoundary() {
				boundaries--
			}
			if out.IsDot() {
				dots--
			}
			if out.Aerial {
				aerial--
			}
		}

		if i >= window-1 {
			balls := float64(window)
			points = append(points, ProgressionPoint{
				Ball:        i + 1,
				StrikeRate:  Ratio(float64(runs), balls, 100),
				BoundaryPct: Ratio(float64(boundaries), balls, 100),
				DotPct:      Ratio(float64(dots), balls, 100),
				AerialPct:   Ratio(float64(aerial), balls, 100),
			})
		}
	}

	return points
}
