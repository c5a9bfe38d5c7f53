package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"t20cli/internal/dataset"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleRows() []dataset.Delivery {
	return []dataset.Delivery{
		{FixtureID: "F1", Date: day("2024-02-10"), Batter: "A Healy", BattingTeam: "Australia", BowlingTeam: "India", Bowler: "R Yadav", BowlerType: "Leg Spin", BowlerHand: dataset.HandRight, Over: 3, Ball: 1, RunsScored: 4},
		{FixtureID: "F1", Date: day("2024-02-10"), Batter: "A Healy", BattingTeam: "Australia", BowlingTeam: "India", Bowler: "R Yadav", BowlerType: "Leg Spin", BowlerHand: dataset.HandRight, Over: 3, Ball: 2, RunsScored: 0},
		{FixtureID: "F1", Date: day("2024-02-10"), Batter: "B Mooney", BattingTeam: "Australia", BowlingTeam: "India", Bowler: "P Yadav", BowlerType: "Leg Spin", BowlerHand: dataset.HandRight, Over: 4, Ball: 1, RunsScored: 1},
		{FixtureID: "F2", Date: day("2024-02-14"), Batter: "A Healy", BattingTeam: "Australia", BowlingTeam: "England", Bowler: "S Ecclestone", BowlerType: "Left Arm Orthodox", BowlerHand: dataset.HandLeft, Over: 18, Ball: 3, RunsScored: 6},
	}
}

func TestApply(t *testing.T) {
	rows := sampleRows()

	tests := []struct {
		name string
		sel  Selection
		want int
	}{
		{"empty selection is a no-op", Selection{}, 4},
		{"batter", Selection{Batter: "A Healy"}, 3},
		{"batter is case insensitive", Selection{Batter: "a healy"}, 3},
		{"fixture", Selection{FixtureID: "F2"}, 1},
		{"bowler type", Selection{BowlerType: "Leg Spin"}, 3},
		{"bowler hand", Selection{BowlerHand: "Left"}, 1},
		{"over phase", Selection{OverMin: 1, OverMax: 6}, 3},
		{"death overs", Selection{OverMin: 16}, 1},
		{"date range", Selection{DateFrom: day("2024-02-11"), DateTo: day("2024-02-20")}, 1},
		{"predicates AND together", Selection{Batter: "A Healy", BowlerType: "Leg Spin"}, 2},
		{"no match yields empty", Selection{Batter: "A Healy", BowlingTeam: "South Africa"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(rows, tt.sel)
			assert.Len(t, got, tt.want)

			// Output is always a subset of the input
			assert.LessOrEqual(t, len(got), len(rows))
		})
	}
}

func TestApplyIdempotent(t *testing.T) {
	rows := sampleRows()
	sel := Selection{Batter: "A Healy", OverMax: 10}

	once := Apply(rows, sel)
	twice := Apply(once, sel)

	assert.Equal(t, once, twice)
}

func TestWithoutBatter(t *testing.T) {
	sel := Selection{Batter: "A Healy", BowlerType: "Leg Spin"}
	wider := sel.WithoutBatter()

	assert.Empty(t, wider.Batter)
	assert.Equal(t, "Leg Spin", wider.BowlerType)
	// Original selection is unchanged
	assert.Equal(t, "A Healy", sel.Batter)
}

func TestFixtures(t *testing.T) {
	rows := sampleRows()

	fixtures := Fixtures(Apply(rows, Selection{Batter: "A Healy"}))
	require.Equal(t, []string{"F1", "F2"}, fixtures)

	population := InFixtures(rows, fixtures)
	assert.Len(t, population, 4)

	assert.Nil(t, InFixtures(rows, nil))
}
