// Package analytics computes per-batter batting metrics over delivery
// subsets: grouped summaries (strike rate, control %, aerial %,
// boundary %, dot %, dismissal rates), baseline-relative effective
// metrics, rolling-window innings progression, and wagon-wheel
// scoring areas. Ratio metrics carry an explicit undefined sentinel
// instead of dividing by zero.
package analytics
