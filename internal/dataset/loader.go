package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Required CSV columns. Optional columns (dismissal_type, line, length,
// shot_type, shot_angle, shot_magnitude, feet_movement, variation,
// bowler_hand, bowler_type) may be absent from the header entirely.
var requiredColumns = []string{
	ColFixtureID, ColDate, ColBattingTeam, ColBowlingTeam,
	ColBatter, ColBatterHand, ColBowler,
	ColOver, ColBall, ColRunsScored, ColIsWicket,
	ColControl, ColAerial,
}

// Column names of the documented CSV schema
const (
	ColFixtureID     = "fixture_id"
	ColDate          = "date"
	ColBattingTeam   = "batting_team"
	ColBowlingTeam   = "bowling_team"
	ColBatter        = "batter"
	ColBatterHand    = "batter_hand"
	ColBowler        = "bowler"
	ColBowlerHand    = "bowler_hand"
	ColBowlerType    = "bowler_type"
	ColOver          = "over"
	ColBall          = "ball"
	ColRunsScored    = "runs_scored"
	ColIsWicket      = "is_wicket"
	ColDismissalType = "dismissal_type"
	ColLine          = "line"
	ColLength        = "length"
	ColShotType      = "shot_type"
	ColShotAngle     = "shot_angle"
	ColShotMagnitude = "shot_magnitude"
	ColControl       = "control"
	ColAerial        = "aerial"
	ColFeetMovement  = "feet_movement"
	ColVariation     = "variation"
)

// Load reads the ball-by-ball CSV at path into an immutable Table.
// The header row is matched against the documented schema; a missing
// file, a missing required column, or an unparseable required field
// fails with a DataError. Rows whose optional fields fail to parse
// keep the delivery with the field unset.
func Load(path string, logger *slog.Logger) (*Table, error) {
	if logger == nil {
		logger = slog.Default()
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, &DataError{Path: path, Err: fmt.Errorf("open CSV file: %w", err)}
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, &DataError{Path: path, Err: fmt.Errorf("read CSV header: %w", err)}
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[normalizeColumn(name)] = i
	}

	for _, required := range requiredColumns {
		if _, ok := cols[required]; !ok {
			return nil, &DataError{Path: path, Column: required}
		}
	}

	var deliveries []Delivery
	line := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, &DataError{Path: path, Line: line, Err: fmt.Errorf("read CSV record: %w", err)}
		}

		d, err := parseDelivery(record, cols, line, logger)
		if err != nil {
			return nil, &DataError{Path: path, Line: line, Err: err}
		}

		if !d.IsValid() {
			logger.Warn("skipping invalid delivery row",
				slog.String("file", path),
				slog.Int("line", line),
			)
			continue
		}

		deliveries = append(deliveries, d)
	}

	logger.Info("dataset loaded",
		slog.String("file", path),
		slog.Int("deliveries", len(deliveries)),
	)

	return &Table{
		Path:       path,
		Deliveries: deliveries,
		LoadedAt:   time.Now(),
	}, nil
}

// parseDelivery parses a single CSV record into a Delivery
func parseDelivery(record []string, cols map[string]int, line int, logger *slog.Logger) (Delivery, error) {
	get := func(col string) string {
		idx, ok := cols[col]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	date, err := parseDate(get(ColDate))
	if err != nil {
		return Delivery{}, fmt.Errorf("parse date: %w", err)
	}

	over, err := strconv.Atoi(get(ColOver))
	if err != nil {
		return Delivery{}, fmt.Errorf("parse over: %w", err)
	}

	ball, err := strconv.Atoi(get(ColBall))
	if err != nil {
		return Delivery{}, fmt.Errorf("parse ball: %w", err)
	}

	runs, err := strconv.Atoi(get(ColRunsScored))
	if err != nil {
		return Delivery{}, fmt.Errorf("parse runs_scored: %w", err)
	}

	isWicket, err := parseBool(get(ColIsWicket))
	if err != nil {
		return Delivery{}, fmt.Errorf("parse is_wicket: %w", err)
	}

	control, err := parseBool(get(ColControl))
	if err != nil {
		return Delivery{}, fmt.Errorf("parse control: %w", err)
	}

	aerial, err := parseBool(get(ColAerial))
	if err != nil {
		return Delivery{}, fmt.Errorf("parse aerial: %w", err)
	}

	d := Delivery{
		FixtureID:     get(ColFixtureID),
		Date:          date,
		BattingTeam:   get(ColBattingTeam),
		BowlingTeam:   get(ColBowlingTeam),
		Batter:        get(ColBatter),
		BatterHand:    parseHand(get(ColBatterHand)),
		Bowler:        get(ColBowler),
		BowlerHand:    parseHand(get(ColBowlerHand)),
		BowlerType:    get(ColBowlerType),
		Over:          over,
		Ball:          ball,
		RunsScored:    runs,
		IsWicket:      isWicket,
		DismissalType: get(ColDismissalType),
		Line:          get(ColLine),
		Length:        get(ColLength),
		ShotType:      get(ColShotType),
		Control:       control,
		Aerial:        aerial,
		FeetMovement:  get(ColFeetMovement),
		Variation:     get(ColVariation),
	}

	// Shot trace fields are optional per delivery; a bad value drops
	// the trace, not the row.
	if raw := get(ColShotAngle); raw != "" {
		if angle, err := strconv.ParseFloat(raw, 64); err == nil && angle >= 0 && angle <= 360 {
			d.ShotAngle = &angle
		} else {
			logger.Warn("dropping unparseable shot_angle",
				slog.Int("line", line),
				slog.String("value", raw),
			)
		}
	}
	if raw := get(ColShotMagnitude); raw != "" {
		if mag, err := strconv.ParseFloat(raw, 64); err == nil && mag >= 0 {
			d.ShotMagnitude = &mag
		} else {
			logger.Warn("dropping unparseable shot_magnitude",
				slog.Int("line", line),
				slog.String("value", raw),
			)
		}
	}

	return d, nil
}

// parseDate attempts to parse date strings in multiple formats
func parseDate(dateStr string) (time.Time, error) {
	dateFormats := []string{
		"2006-01-02",          // ISO format
		"2006-01-02 15:04:05", // With time
		"2006-01-02T15:04:05Z",
		"02/01/2006", // European format
		"2006/01/02", // Alternative ISO
	}

	for _, format := range dateFormats {
		if date, err := time.Parse(format, dateStr); err == nil {
			return date, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// parseBool parses the flag encodings seen in exported scoring data
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "1", "true", "t", "yes", "y":
		return true, nil
	case "0", "false", "f", "no", "n", "":
		return false, nil
	}
	return false, fmt.Errorf("unrecognized boolean value: %q", s)
}

// parseHand parses handedness, defaulting to right
func parseHand(s string) Hand {
	switch strings.ToLower(s) {
	case "left", "l", "lhb":
		return HandLeft
	default:
		return HandRight
	}
}

// normalizeColumn lowercases and snake_cases a header cell so files
// exported with display headers ("Runs Scored") still match.
func normalizeColumn(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")
	return name
}
