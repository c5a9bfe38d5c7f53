package analytics

// Effective derives baseline-relative metrics from a batter's summary
// and the summary of the baseline population. Each effective value is
// batter − baseline; positive means above baseline. Any metric whose
// baseline is undefined is itself undefined.
func Effective(batter, baseline BattingSummary) EffectiveMetrics {
	return EffectiveMetrics{
		StrikeRate:    batter.StrikeRate.Minus(baseline.StrikeRate),
		ControlPct:    batter.ControlPct.Minus(baseline.ControlPct),
		AerialPct:     batter.AerialPct.Minus(baseline.AerialPct),
		BoundaryPct:   batter.BoundaryPct.Minus(baseline.BoundaryPct),
		DotPct:        batter.DotPct.Minus(baseline.DotPct),
		DismissalRate: batter.DismissalRate.Minus(baseline.DismissalRate),
	}
}
