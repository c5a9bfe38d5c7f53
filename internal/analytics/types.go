package analytics

import (
	"encoding/json"
	"math"
)

// Rate is a ratio metric with an explicit undefined state. A rate is
// undefined when its denominator was zero (e.g. zero balls faced);
// undefined rates marshal to JSON null and never read as zero.
type Rate struct {
	value   float64
	defined bool
}

// NewRate returns a defined rate
func NewRate(v float64) Rate {
	return Rate{value: v, defined: true}
}

// Undefined returns the undefined sentinel
func Undefined() Rate {
	return Rate{}
}

// Ratio returns numerator/denominator scaled by scale, or the
// undefined sentinel when the denominator is zero.
func Ratio(numerator, denominator, scale float64) Rate {
	if denominator == 0 {
		return Undefined()
	}
	return NewRate(numerator / denominator * scale)
}

// Defined reports whether the rate has a value
func (r Rate) Defined() bool {
	return r.defined
}

// Value returns the rate value; it is only meaningful when Defined
func (r Rate) Value() float64 {
	return r.value
}

// Minus returns r − other, undefined if either side is undefined.
// Used for effective metrics, where positive means above baseline.
func (r Rate) Minus(other Rate) Rate {
	if !r.defined || !other.defined {
		return Undefined()
	}
	return NewRate(r.value - other.value)
}

// Round returns the rate rounded to the given number of decimals
func (r Rate) Round(decimals int) Rate {
	if !r.defined {
		return r
	}
	pow := math.Pow(10, float64(decimals))
	return NewRate(math.Round(r.value*pow) / pow)
}

// MarshalJSON marshals undefined rates as null
func (r Rate) MarshalJSON() ([]byte, error) {
	if !r.defined {
		return []byte("null"), nil
	}
	return json.Marshal(r.value)
}

// UnmarshalJSON restores a rate from its JSON form
func (r *Rate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Undefined()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = NewRate(v)
	return nil
}

// BattingSummary holds the derived metrics for one grouping key over a
// delivery subset. It is a pure function of that subset, recomputed on
// every filter change and never mutated in place.
type BattingSummary struct {
	// Group is the grouping key label ("" for the overall summary)
	Group string `json:"group,omitempty"`

	Balls      int `json:"balls"`
	Runs       int `json:"runs"`
	Dismissals int `json:"dismissals"`
	Boundaries int `json:"boundaries"`
	Dots       int `json:"dots"`
	Controlled int `json:"controlled"`
	AerialShots int `json:"aerial_shots"`

	StrikeRate    Rate `json:"strike_rate"`
	Average       Rate `json:"average"`
	ControlPct    Rate `json:"control_pct"`
	AerialPct     Rate `json:"aerial_pct"`
	BoundaryPct   Rate `json:"boundary_pct"`
	DotPct        Rate `json:"dot_pct"`
	DismissalRate Rate `json:"dismissal_rate"`
}

// IsEmpty reports whether the summary covers zero balls
func (s BattingSummary) IsEmpty() bool {
	return s.Balls == 0
}

// EffectiveMetrics holds baseline-relative metrics: the batter's rate
// minus the baseline population's rate. Positive means above baseline.
// Undefined when the baseline metric itself is undefined.
type EffectiveMetrics struct {
	StrikeRate    Rate `json:"e_strike_rate"`
	ControlPct    Rate `json:"e_control_pct"`
	AerialPct     Rate `json:"e_aerial_pct"`
	BoundaryPct   Rate `json:"e_boundary_pct"`
	DotPct        Rate `json:"e_dot_pct"`
	DismissalRate Rate `json:"e_dismissal_rate"`
}

// DismissalBreakdown counts dismissals of one type against one ball
// variation, with the rate expressed per 100 balls faced overall.
type DismissalBreakdown struct {
	DismissalType string `json:"dismissal_type"`
	Variation     string `json:"variation,omitempty"`
	Count         int    `json:"count"`
	RatePer100    Rate   `json:"rate_per_100_balls"`
}

// ProgressionPoint is one rolling-window sample of an innings
// progression sequence. Ball is the 1-based position of the window's
// last delivery in the batter's ball-faced sequence.
type ProgressionPoint struct {
	Ball        int  `json:"ball"`
	StrikeRate  Rate `json:"strike_rate"`
	BoundaryPct Rate `json:"boundary_pct"`
	DotPct      Rate `json:"dot_pct"`
	AerialPct   Rate `json:"aerial_pct"`
}
