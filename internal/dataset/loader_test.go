package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"t20cli/internal/shared/testutil"
)

const testHeader = "fixture_id,date,batting_team,bowling_team,batter,batter_hand,bowler,bowler_hand,bowler_type,over,ball,runs_scored,is_wicket,dismissal_type,line,length,shot_type,shot_angle,shot_magnitude,control,aerial,feet_movement,variation"

func writeCSV(t *testing.T, rows ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "deliveries.csv")
	content := testHeader + "\n"
	for _, row := range rows {
		content += row + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	logger := testutil.NewTestLogger(t)

	path := writeCSV(t,
		"F1,2024-02-10,Australia,India,A Healy,Right,R Yadav,Right,Leg Spin,3,4,4,false,,Off Stump,Full,Cover Drive,245.5,63.0,true,false,Front Foot,Leg Break",
		"F1,2024-02-10,Australia,India,A Healy,Right,R Yadav,Right,Leg Spin,3,5,0,true,Caught,Off Stump,Good,Cut,90,35.5,false,true,Back Foot,Googly",
	)

	table, err := Load(path, logger)
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	first := table.Deliveries[0]
	assert.Equal(t, "F1", first.FixtureID)
	assert.Equal(t, "A Healy", first.Batter)
	assert.Equal(t, HandRight, first.BatterHand)
	assert.Equal(t, 3, first.Over)
	assert.Equal(t, 4, first.Ball)
	assert.Equal(t, 4, first.RunsScored)
	assert.True(t, first.Control)
	assert.False(t, first.IsWicket)
	require.NotNil(t, first.ShotAngle)
	assert.InDelta(t, 245.5, *first.ShotAngle, 1e-9)
	assert.Equal(t, "2024-02-10", first.Date.Format("2006-01-02"))

	second := table.Deliveries[1]
	assert.True(t, second.IsWicket)
	assert.Equal(t, "Caught", second.DismissalType)
	assert.True(t, second.Aerial)
	assert.True(t, second.IsDot())
}

func TestLoadMissingFile(t *testing.T) {
	logger := testutil.NewTestLogger(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), logger)
	require.Error(t, err)

	var dataErr *DataError
	require.ErrorAs(t, err, &dataErr)
}

func TestLoadMissingRequiredColumn(t *testing.T) {
	logger := testutil.NewTestLogger(t)

	path := filepath.Join(t.TempDir(), "deliveries.csv")
	require.NoError(t, os.WriteFile(path, []byte("fixture_id,date,batter\nF1,2024-02-10,A Healy\n"), 0644))

	_, err := Load(path, logger)
	require.Error(t, err)

	var dataErr *DataError
	require.ErrorAs(t, err, &dataErr)
	assert.Equal(t, ColBattingTeam, dataErr.Column)
	assert.Contains(t, err.Error(), "missing required column")
}

func TestLoadUnparseableRequiredField(t *testing.T) {
	logger := testutil.NewTestLogger(t)

	path := writeCSV(t,
		"F1,2024-02-10,Australia,India,A Healy,Right,R Yadav,Right,Leg Spin,3,4,four,false,,,,,,,true,false,,",
	)

	_, err := Load(path, logger)
	require.Error(t, err)

	var dataErr *DataError
	require.ErrorAs(t, err, &dataErr)
	assert.Equal(t, 2, dataErr.Line)
	assert.Contains(t, err.Error(), "runs_scored")
}

func TestLoadDropsBadOptionalTrace(t *testing.T) {
	logger := testutil.NewTestLogger(t)

	path := writeCSV(t,
		"F1,2024-02-10,Australia,India,A Healy,Right,R Yadav,Right,Leg Spin,3,4,1,false,,,,,not-a-number,,true,false,,",
	)

	table, err := Load(path, logger)
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Nil(t, table.Deliveries[0].ShotAngle)
}

func TestLoadDisplayHeaderNormalization(t *testing.T) {
	logger := testutil.NewTestLogger(t)

	path := filepath.Join(t.TempDir(), "deliveries.csv")
	header := "Fixture_ID,Date,Batting Team,Bowling Team,Batter,Batter Hand,Bowler,Bowler Hand,Bowler Type,Over,Ball,Runs Scored,Is Wicket,Dismissal Type,Line,Length,Shot Type,Shot Angle,Shot Magnitude,Control,Aerial,Feet Movement,Variation"
	row := "F1,2024-02-10,Australia,India,A Healy,Right,R Yadav,Right,Leg Spin,1,1,6,false,,,,,,,true,true,,"
	require.NoError(t, os.WriteFile(path, []byte(header+"\n"+row+"\n"), 0644))

	table, err := Load(path, logger)
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.True(t, table.Deliveries[0].IsBoundary())
}

func TestTableHelpers(t *testing.T) {
	logger := testutil.NewTestLogger(t)

	path := writeCSV(t,
		"F1,2024-02-10,Australia,India,A Healy,Right,R Yadav,Right,Leg Spin,1,1,1,false,,,,,,,true,false,,",
		"F1,2024-02-10,Australia,India,B Mooney,Left,R Yadav,Right,Leg Spin,1,2,0,false,,,,,,,true,false,,",
		"F2,2024-02-14,Australia,England,A Healy,Right,S Ecclestone,Left,Left Arm Orthodox,2,1,4,false,,,,,,,true,false,,",
	)

	table, err := Load(path, logger)
	require.NoError(t, err)

	assert.Equal(t, []string{"A Healy", "B Mooney"}, table.Batters())
	assert.Equal(t, []string{"F1", "F2"}, table.Fixtures())
	assert.Equal(t, HandLeft, table.BatterHand("B Mooney"))
	assert.Equal(t, HandRight, table.BatterHand("unknown"))
}
