package exporter

import (
	"fmt"

	"t20cli/internal/analytics"
)

// formatRate formats a rate for report output. Undefined rates render
// as a dash so zero-ball groups are visibly distinct from true zeros.
func formatRate(r analytics.Rate, precision int) string {
	if !r.Defined() {
		return "-"
	}
	return fmt.Sprintf("%.*f", precision, r.Value())
}

// formatSigned formats an effective (batter minus baseline) rate with
// an explicit sign, matching how the dashboard annotates deltas.
func formatSigned(r analytics.Rate, precision int) string {
	if !r.Defined() {
		return "-"
	}
	return fmt.Sprintf("%+.*f", precision, r.Value())
}

// formatInt formats an integer count for report output
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
