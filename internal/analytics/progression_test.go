package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"t20cli/internal/dataset"
)

func makeInnings(runs ...int) []dataset.Delivery {
	rows := make([]dataset.Delivery, len(runs))
	for i, r := range runs {
		rows[i] = dataset.Delivery{
			Batter:     "A",
			Over:       i/6 + 1,
			Ball:       i%6 + 1,
			RunsScored: r,
		}
	}
	return rows
}

func TestProgressionWindowCount(t *testing.T) {
	// 20-ball innings, window 6: exactly 20 - 6 + 1 = 15 points
	rows := makeInnings(
		0, 1, 4, 0, 2, 6,
		1, 0, 0, 4, 1, 2,
		0, 6, 4, 1, 0, 2,
		1, 4,
	)

	points := Progression(rows, 6)
	require.Len(t, points, 15)

	// Points are indexed by the window's last ball
	assert.Equal(t, 6, points[0].Ball)
	assert.Equal(t, 20, points[len(points)-1].Ball)
}

func TestProgressionValues(t *testing.T) {
	rows := makeInnings(4, 0, 6, 0, 1)

	points := Progression(rows, 3)
	require.Len(t, points, 3)

	// First window [4,0,6]: SR (4+0+6)/3*100
	require.True(t, points[0].StrikeRate.Defined())
	assert.InDelta(t, 333.3333, points[0].StrikeRate.Value(), 0.001)
	assert.InDelta(t, 66.6667, points[0].BoundaryPct.Value(), 0.001)
	assert.InDelta(t, 33.3333, points[0].DotPct.Value(), 0.001)

	// Second window [0,6,0]
	assert.InDelta(t, 200, points[1].StrikeRate.Value(), 0.001)
	assert.InDelta(t, 66.6667, points[1].DotPct.Value(), 0.001)

	// Third window [6,0,1]
	assert.InDelta(t, 233.3333, points[2].StrikeRate.Value(), 0.001)
}

func TestProgressionShortSequence(t *testing.T) {
	rows := makeInnings(1, 2)

	assert.Nil(t, Progression(rows, 6))
	assert.Nil(t, Progression(rows, 0))
	assert.Nil(t, Progression(nil, 6))
}

func TestProgressionWindowEqualsLength(t *testing.T) {
	rows := makeInnings(1, 2, 3)

	points := Progression(rows, 3)
	require.Len(t, points, 1)
	assert.Equal(t, 3, points[0].Ball)
	assert.InDelta(t, 200, points[0].StrikeRate.Value(), 0.001)
}

func TestProgressionAerialWindow(t *testing.T) {
	rows := makeInnings(0, 0, 0, 0)
	rows[1].Aerial = true

	points := Progression(rows, 2)
	require.Len(t, points, 3)

	assert.InDelta(t, 50, points[0].AerialPct.Value(), 0.001)
	assert.InDelta(t, 50, points[1].AerialPct.Value(), 0.001)
	assert.InDelta(t, 0, points[2].AerialPct.Value(), 0.001)
}
