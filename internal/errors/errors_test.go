package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"t20cli/internal/shared/testutil"
)

func TestAPIError(t *testing.T) {
	err := New(http.StatusBadRequest, "INVALID_PARAMETER", "bad window size")

	assert.Equal(t, "bad window size", err.Error())
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "INVALID_PARAMETER", err.ErrorCode)
}

func TestErrValidation(t *testing.T) {
	err := ErrValidation("window", "must be between 1 and 120")

	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	details, ok := err.Details.(ValidationError)
	require.True(t, ok)
	assert.Equal(t, "window", details.Field)
}

func TestProblemDetailsMarshalJSON(t *testing.T) {
	pd := NewProblemDetails(
		http.StatusNotFound,
		TypeBatterNotFound,
		"Batter Not Found",
		"no deliveries recorded for this batter",
		"/api/stats/summary",
	).WithExtension("trace_id", "abc-123")

	data, err := json.Marshal(pd)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, TypeBatterNotFound, decoded["type"])
	assert.Equal(t, float64(http.StatusNotFound), decoded["status"])
	assert.Equal(t, "abc-123", decoded["trace_id"])
	assert.Equal(t, "no deliveries recorded for this batter", decoded["detail"])
}

func TestErrorHandlerHandleError(t *testing.T) {
	logger := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, false)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{
			name:       "api error maps by code",
			err:        DatasetError(fmt.Errorf("open deliveries.csv: no such file")),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeDatasetUnreadable,
		},
		{
			name:       "validation error",
			err:        ErrValidation("date_from", "invalid date"),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeValidation,
		},
		{
			name:       "missing column maps to schema problem",
			err:        fmt.Errorf("missing required column %q", "runs_scored"),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeDatasetSchema,
		},
		{
			name:       "plain not found string",
			err:        fmt.Errorf("fixture not found"),
			wantStatus: http.StatusNotFound,
			wantType:   TypeNotFound,
		},
		{
			name:       "unknown error is internal",
			err:        fmt.Errorf("boom"),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/stats/summary", nil)
			rec := httptest.NewRecorder()

			handler.HandleError(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var decoded map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
			assert.Equal(t, tt.wantType, decoded["type"])
		})
	}
}

func TestErrorHandlerNotFound(t *testing.T) {
	logger := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, false)

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	rec := httptest.NewRecorder()

	handler.NotFound(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), TypeNotFound)
}
