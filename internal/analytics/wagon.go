package analytics

import (
	"math"

	"t20cli/internal/dataset"
)

// DefaultMagnitudeCap is the carry distance in metres mapped to the
// boundary rope when normalizing caught-out traces.
const DefaultMagnitudeCap = 167.0

// sectorCount divides the ground into 45-degree scoring areas
const sectorCount = 8

// caughtDismissals are the dismissal type spellings that place a
// catch on the wagon wheel.
var caughtDismissals = map[string]bool{
	"Caught":     true,
	"CaughtSub":  true,
	"Caught Out": true,
}

// WheelTrace is a single traced shot on a wagon wheel. Angle is the
// display angle in degrees; Radius is normalized to [0, 1] with 1 at
// the boundary rope.
type WheelTrace struct {
	Angle  float64 `json:"angle"`
	Radius float64 `json:"radius"`
	Runs   int     `json:"runs"`
}

// SectorStats holds scoring-area statistics for one 45-degree sector
type SectorStats struct {
	Sector     int     `json:"sector"`
	StartDeg   float64 `json:"start_deg"`
	EndDeg     float64 `json:"end_deg"`
	Balls      int     `json:"balls"`
	Runs       int     `json:"runs"`
	Outs       int     `json:"outs"`
	Average    Rate    `json:"average"`
	StrikeRate Rate    `json:"strike_rate"`
	// RunsShare is the sector's share of all runs in the subset
	RunsShare Rate `json:"runs_share"`
}

// WagonWheel bundles the three wheel views for a batter subset
type WagonWheel struct {
	Boundaries []WheelTrace  `json:"boundaries"`
	CaughtOut  []WheelTrace  `json:"caught_out"`
	Sectors    []SectorStats `json:"sectors"`
}

// DisplayAngle converts a recorded shot angle (absolute field
// direction) to a display angle measured anticlockwise from the
// x-axis. The shot angle is absolute, so handedness does not change
// the trace position.
func DisplayAngle(shotAngle float64) float64 {
	return math.Mod(math.Mod(90-shotAngle, 360)+360, 360)
}

// ScoringAreaDisplayAngle converts a shot angle to the display angle
// for the scoring-areas wheel. Left-handers get a 90-degree
// anticlockwise shift so sector stats line up with field positions.
func ScoringAreaDisplayAngle(shotAngle float64, rightHanded bool) float64 {
	angle := DisplayAngle(shotAngle)
	if !rightHanded {
		angle = math.Mod(angle+90, 360)
	}
	return angle
}

// BuildWagonWheel computes all three wheels from the traced deliveries
// in rows. Untraced deliveries (no shot angle) are ignored.
func BuildWagonWheel(rows []dataset.Delivery, rightHanded bool, magnitudeCap float64) WagonWheel {
	if magnitudeCap <= 0 {
		magnitudeCap = DefaultMagnitudeCap
	}

	return WagonWheel{
		Boundaries: BoundaryTraces(rows),
		CaughtOut:  CaughtTraces(rows, magnitudeCap),
		Sectors:    ScoringAreas(rows, rightHanded),
	}
}

// BoundaryTraces returns a trace for every traced four and six, drawn
// from the center to the rope.
func BoundaryTraces(rows []dataset.Delivery) []WheelTrace {
	var traces []WheelTrace
	for _, d := range rows {
		if !d.IsBoundary() || d.ShotAngle == nil {
			continue
		}
		traces = append(traces, WheelTrace{
			Angle:  DisplayAngle(*d.ShotAngle),
			Radius: 1.0,
			Runs:   d.RunsScored,
		})
	}
	return traces
}

// CaughtTraces returns a trace for every traced caught dismissal,
// with the radius scaled by carry distance and clamped at the rope.
func CaughtTraces(rows []dataset.Delivery, magnitudeCap float64) []WheelTrace {
	var traces []WheelTrace
	for _, d := range rows {
		if !d.IsWicket || !caughtDismissals[d.DismissalType] {
			continue
		}
		if d.ShotAngle == nil || d.ShotMagnitude == nil {
			continue
		}

		radius := *d.ShotMagnitude / magnitudeCap
		if radius > 1 {
			radius = 1
		}

		traces = append(traces, WheelTrace{
			Angle:  DisplayAngle(*d.ShotAngle),
			Radius: radius,
			Runs:   d.RunsScored,
		})
	}
	return traces
}

// ScoringAreas divides the ground into eight 45-degree sectors and
// computes per-sector scoring statistics over the traced deliveries.
func ScoringAreas(rows []dataset.Delivery, rightHanded bool) []SectorStats {
	totalRuns := 0
	for _, d := range rows {
		if d.ShotAngle != nil {
			totalRuns += d.RunsScored
		}
	}

	sectors := make([]SectorStats, sectorCount)
	for i := range sectors {
		sectors[i].Sector = i + 1
		sectors[i].StartDeg = float64(i * 45)
		sectors[i].EndDeg = float64((i + 1) * 45)
	}

	for _, d := range rows {
		if d.ShotAngle == nil {
			continue
		}

		idx := sectorIndex(*d.ShotAngle)
		sectors[idx].Balls++
		sectors[idx].Runs += d.RunsScored
		if d.IsWicket {
			sectors[idx].Outs++
		}
	}

	for i := range sectors {
		s := &sectors[i]
		s.Average = Ratio(float64(s.Runs), float64(s.Outs), 1)
		s.StrikeRate = Ratio(float64(s.Runs), float64(s.Balls), 100)
		s.RunsShare = Ratio(float64(s.Runs), float64(totalRuns), 100)
	}

	// The sector definitions are in absolute shot angles; the display
	// shift for left-handers only affects where the frontend draws
	// them, carried here as rotated bounds.
	if !rightHanded {
		for i := range sectors {
			sectors[i].StartDeg = math.Mod(sectors[i].StartDeg+90, 360)
			sectors[i].EndDeg = sectors[i].EndDeg + 90
			if sectors[i].EndDeg > 360 {
				sectors[i].EndDeg = math.Mod(sectors[i].EndDeg, 360)
				if sectors[i].EndDeg == 0 {
					sectors[i].EndDeg = 360
				}
			}
		}
	}

	return sectors
}

// sectorIndex maps a shot angle to its 45-degree sector, with 360
// folding into the last sector.
func sectorIndex(angle float64) int {
	if angle >= 360 {
		return sectorCount - 1
	}
	idx := int(angle / 45)
	if idx < 0 {
		idx = 0
	}
	if idx >= sectorCount {
		idx = sectorCount - 1
	}
	return idx
}
