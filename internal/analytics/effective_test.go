package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffective(t *testing.T) {
	batter := BattingSummary{
		StrikeRate: NewRate(150),
		ControlPct: NewRate(80),
		AerialPct:  NewRate(20),
	}
	baseline := BattingSummary{
		StrikeRate: NewRate(120),
		ControlPct: NewRate(85),
		AerialPct:  NewRate(25),
	}

	e := Effective(batter, baseline)

	// Batter SR 150 vs baseline 120: +30, above baseline
	require.True(t, e.StrikeRate.Defined())
	assert.InDelta(t, 30, e.StrikeRate.Value(), 1e-9)
	assert.Positive(t, e.StrikeRate.Value())

	require.True(t, e.ControlPct.Defined())
	assert.InDelta(t, -5, e.ControlPct.Value(), 1e-9)

	require.True(t, e.AerialPct.Defined())
	assert.InDelta(t, -5, e.AerialPct.Value(), 1e-9)
}

func TestEffectiveUndefinedBaseline(t *testing.T) {
	batter := BattingSummary{StrikeRate: NewRate(150)}
	baseline := BattingSummary{} // zero balls: everything undefined

	e := Effective(batter, baseline)

	assert.False(t, e.StrikeRate.Defined())
	assert.False(t, e.ControlPct.Defined())
	assert.False(t, e.DismissalRate.Defined())
}

func TestEffectiveUndefinedBatter(t *testing.T) {
	batter := BattingSummary{} // batter filtered down to zero balls
	baseline := BattingSummary{StrikeRate: NewRate(120)}

	e := Effective(batter, baseline)

	assert.False(t, e.StrikeRate.Defined())
}
