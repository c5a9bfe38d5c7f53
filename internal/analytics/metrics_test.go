package analytics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"t20cli/internal/dataset"
)

func TestRate(t *testing.T) {
	t.Run("ratio with zero denominator is undefined", func(t *testing.T) {
		r := Ratio(10, 0, 100)
		assert.False(t, r.Defined())
	})

	t.Run("minus propagates undefined", func(t *testing.T) {
		assert.False(t, NewRate(100).Minus(Undefined()).Defined())
		assert.False(t, Undefined().Minus(NewRate(100)).Defined())

		diff := NewRate(150).Minus(NewRate(120))
		require.True(t, diff.Defined())
		assert.InDelta(t, 30, diff.Value(), 1e-9)
	})

	t.Run("round", func(t *testing.T) {
		r := NewRate(333.33333).Round(2)
		assert.InDelta(t, 333.33, r.Value(), 1e-9)
		assert.False(t, Undefined().Round(2).Defined())
	})

	t.Run("json null for undefined", func(t *testing.T) {
		data, err := json.Marshal(Undefined())
		require.NoError(t, err)
		assert.Equal(t, "null", string(data))

		data, err = json.Marshal(NewRate(42.5))
		require.NoError(t, err)
		assert.Equal(t, "42.5", string(data))

		var r Rate
		require.NoError(t, json.Unmarshal([]byte("null"), &r))
		assert.False(t, r.Defined())
		require.NoError(t, json.Unmarshal([]byte("42.5"), &r))
		assert.InDelta(t, 42.5, r.Value(), 1e-9)
	})
}

func TestSummarizeStrikeRate(t *testing.T) {
	// Three deliveries for one batter with runs 4, 0, 6
	rows := []dataset.Delivery{
		{Batter: "A", RunsScored: 4, Control: true},
		{Batter: "A", RunsScored: 0, Control: true},
		{Batter: "A", RunsScored: 6, Aerial: true},
	}

	s := Summarize(rows)

	assert.Equal(t, 3, s.Balls)
	assert.Equal(t, 10, s.Runs)
	require.True(t, s.StrikeRate.Defined())
	assert.InDelta(t, 333.3333, s.StrikeRate.Value(), 0.001)

	require.True(t, s.BoundaryPct.Defined())
	assert.InDelta(t, 66.6667, s.BoundaryPct.Value(), 0.001)
	require.True(t, s.ControlPct.Defined())
	assert.InDelta(t, 66.6667, s.ControlPct.Value(), 0.001)
	require.True(t, s.AerialPct.Defined())
	assert.InDelta(t, 33.3333, s.AerialPct.Value(), 0.001)
	require.True(t, s.DotPct.Defined())
	assert.InDelta(t, 33.3333, s.DotPct.Value(), 0.001)

	// No dismissals: average undefined, dismissal rate zero
	assert.False(t, s.Average.Defined())
	require.True(t, s.DismissalRate.Defined())
	assert.Zero(t, s.DismissalRate.Value())
}

func TestSummarizeEmptySubset(t *testing.T) {
	s := Summarize(nil)

	assert.True(t, s.IsEmpty())
	assert.False(t, s.StrikeRate.Defined())
	assert.False(t, s.Average.Defined())
	assert.False(t, s.ControlPct.Defined())
	assert.False(t, s.AerialPct.Defined())
	assert.False(t, s.BoundaryPct.Defined())
	assert.False(t, s.DotPct.Defined())
	assert.False(t, s.DismissalRate.Defined())
}

func TestSummarizeRatesNonNegative(t *testing.T) {
	rows := []dataset.Delivery{
		{RunsScored: 0, IsWicket: true, DismissalType: "Bowled"},
		{RunsScored: 1},
		{RunsScored: 2, Control: true},
	}

	s := Summarize(rows)

	for name, r := range map[string]Rate{
		"strike_rate":    s.StrikeRate,
		"control_pct":    s.ControlPct,
		"aerial_pct":     s.AerialPct,
		"boundary_pct":   s.BoundaryPct,
		"dot_pct":        s.DotPct,
		"dismissal_rate": s.DismissalRate,
	} {
		require.True(t, r.Defined(), name)
		assert.GreaterOrEqual(t, r.Value(), 0.0, name)
	}
}

func TestGroupBy(t *testing.T) {
	rows := []dataset.Delivery{
		{Line: "Off Stump", Length: "Full", RunsScored: 4},
		{Line: "Off Stump", Length: "Full", RunsScored: 0},
		{Line: "Leg Stump", Length: "Short", RunsScored: 6},
		{RunsScored: 1}, // untagged, excluded
	}

	groups := GroupBy(rows, KeyLineLength)
	require.Len(t, groups, 2)

	assert.Equal(t, "Off Stump / Full", groups[0].Group)
	assert.Equal(t, 2, groups[0].Balls)
	assert.Equal(t, "Leg Stump / Short", groups[1].Group)
	assert.Equal(t, 1, groups[1].Balls)
}

func TestGroupByBallInOverExcludesExtras(t *testing.T) {
	rows := []dataset.Delivery{
		{Ball: 1, RunsScored: 1},
		{Ball: 6, RunsScored: 4},
		{Ball: 7, RunsScored: 2}, // re-bowled extra
	}

	groups := GroupBy(rows, KeyBallInOver)
	require.Len(t, groups, 2)

	SortByNumericGroup(groups)
	assert.Equal(t, "1", groups[0].Group)
	assert.Equal(t, "6", groups[1].Group)
}

func TestSortByBalls(t *testing.T) {
	groups := []BattingSummary{
		{Group: "Cut", Balls: 2},
		{Group: "Drive", Balls: 5},
		{Group: "Pull", Balls: 5},
	}

	SortByBalls(groups)

	assert.Equal(t, "Drive", groups[0].Group)
	assert.Equal(t, "Pull", groups[1].Group)
	assert.Equal(t, "Cut", groups[2].Group)
}

func TestDismissals(t *testing.T) {
	rows := []dataset.Delivery{
		{IsWicket: true, DismissalType: "Caught", Variation: "Googly"},
		{IsWicket: true, DismissalType: "Caught", Variation: "Googly"},
		{IsWicket: true, DismissalType: "Bowled", Variation: "Leg Break"},
		{IsWicket: true},
		{RunsScored: 1},
		{RunsScored: 4},
		{RunsScored: 0},
		{RunsScored: 2},
		{RunsScored: 1},
		{RunsScored: 0},
	}

	breakdown := Dismissals(rows)
	require.Len(t, breakdown, 3)

	assert.Equal(t, "Caught", breakdown[0].DismissalType)
	assert.Equal(t, 2, breakdown[0].Count)
	require.True(t, breakdown[0].RatePer100.Defined())
	assert.InDelta(t, 20, breakdown[0].RatePer100.Value(), 1e-9)

	// Untyped wickets fall under Unknown
	types := []string{breakdown[0].DismissalType, breakdown[1].DismissalType, breakdown[2].DismissalType}
	assert.Contains(t, types, "Unknown")
}

func TestDismissalsEmpty(t *testing.T) {
	assert.Empty(t, Dismissals(nil))
	assert.Empty(t, Dismissals([]dataset.Delivery{{RunsScored: 1}}))
}
