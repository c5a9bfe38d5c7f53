package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	apierrors "t20cli/internal/errors"
	"t20cli/internal/filter"
)

var validate = validator.New()

// statsQuery carries the recognized filter query parameters. Every
// field is optional except the batter on batter-scoped endpoints.
type statsQuery struct {
	Batter      string `validate:"omitempty,max=100"`
	FixtureID   string `validate:"omitempty,max=50"`
	BattingTeam string `validate:"omitempty,max=100"`
	BowlingTeam string `validate:"omitempty,max=100"`
	Bowler      string `validate:"omitempty,max=100"`
	BowlerHand  string `validate:"omitempty,oneof=Right Left right left"`
	BowlerType  string `validate:"omitempty,max=50"`
	Line        string `validate:"omitempty,max=50"`
	Length      string `validate:"omitempty,max=50"`
	OverMin     int    `validate:"omitempty,min=1,max=20"`
	OverMax     int    `validate:"omitempty,min=1,max=20,gtefield=OverMin"`
	DateFrom    time.Time
	DateTo      time.Time
}

// bindSelection parses and validates the filter query parameters
func bindSelection(r *http.Request, requireBatter bool) (filter.Selection, error) {
	q := r.URL.Query()

	query := statsQuery{
		Batter:      q.Get("batter"),
		FixtureID:   q.Get("fixture_id"),
		BattingTeam: q.Get("batting_team"),
		BowlingTeam: q.Get("bowling_team"),
		Bowler:      q.Get("bowler"),
		BowlerHand:  q.Get("bowler_hand"),
		BowlerType:  q.Get("bowler_type"),
		Line:        q.Get("line"),
		Length:      q.Get("length"),
	}

	var err error
	if query.OverMin, err = parseIntParam(q.Get("over_min"), "over_min"); err != nil {
		return filter.Selection{}, err
	}
	if query.OverMax, err = parseIntParam(q.Get("over_max"), "over_max"); err != nil {
		return filter.Selection{}, err
	}
	if query.DateFrom, err = parseDateParam(q.Get("date_from"), "date_from"); err != nil {
		return filter.Selection{}, err
	}
	if query.DateTo, err = parseDateParam(q.Get("date_to"), "date_to"); err != nil {
		return filter.Selection{}, err
	}

	if requireBatter && query.Batter == "" {
		return filter.Selection{}, apierrors.ErrValidation("batter", "Batter is required")
	}

	if err := validate.Struct(query); err != nil {
		return filter.Selection{}, validationProblem(err)
	}

	return filter.Selection{
		Batter:      query.Batter,
		FixtureID:   query.FixtureID,
		BattingTeam: query.BattingTeam,
		BowlingTeam: query.BowlingTeam,
		Bowler:      query.Bowler,
		BowlerHand:  query.BowlerHand,
		BowlerType:  query.BowlerType,
		Line:        query.Line,
		Length:      query.Length,
		OverMin:     query.OverMin,
		OverMax:     query.OverMax,
		DateFrom:    query.DateFrom,
		DateTo:      query.DateTo,
	}, nil
}

// parseWindow parses the rolling window parameter with a fallback
func parseWindow(r *http.Request, fallback int) (int, error) {
	raw := r.URL.Query().Get("window")
	if raw == "" {
		return fallback, nil
	}
	window, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierrors.ErrValidation("window", "Window must be an integer")
	}
	return window, nil
}

func parseIntParam(raw, field string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierrors.ErrValidation(field, fmt.Sprintf("%s must be an integer", field))
	}
	return v, nil
}

func parseDateParam(raw, field string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, apierrors.ErrValidation(field, fmt.Sprintf("%s must be a YYYY-MM-DD date", field))
	}
	return t, nil
}

// validationProblem converts validator errors to the API error shape
func validationProblem(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		errs := make([]apierrors.ValidationError, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			errs = append(errs, apierrors.ValidationError{
				Field:   fe.Field(),
				Message: fmt.Sprintf("failed %q validation", fe.Tag()),
			})
		}
		return apierrors.NewValidationErrors(errs)
	}
	return apierrors.InvalidRequestWithError(err)
}
