package app

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"t20cli/internal/config"
	"t20cli/internal/infrastructure"
	"t20cli/internal/shared/testutil"
)

const testCSV = `fixture_id,date,batting_team,bowling_team,batter,batter_hand,bowler,bowler_hand,bowler_type,over,ball,runs_scored,is_wicket,dismissal_type,line,length,shot_type,shot_angle,shot_magnitude,control,aerial,feet_movement,variation
F1,2024-02-10,Australia,India,A Healy,Right,R Yadav,Right,Leg Spin,1,1,4,false,,Off Stump,Full,Cover Drive,245.5,63.0,true,false,Front Foot,Leg Break
F1,2024-02-10,Australia,India,B Mooney,Left,R Yadav,Right,Leg Spin,2,1,1,false,,Off Stump,Good,Cut,90,30.0,true,false,Back Foot,Leg Break
`

// Telemetry registers collectors with the process-global prometheus
// registry, so the test binary shares one instance.
var (
	testTelemetry     *infrastructure.Telemetry
	testTelemetryErr  error
	testTelemetryOnce sync.Once
)

func newTestApplication(t *testing.T) *Application {
	t.Helper()

	path := filepath.Join(t.TempDir(), "deliveries.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCSV), 0644))

	cfg := config.Default()
	cfg.Dataset.CSVPath = path
	cfg.Security.RateLimit.Enabled = false

	logger := testutil.NewTestLogger(t)
	testTelemetryOnce.Do(func() {
		testTelemetry, testTelemetryErr = infrastructure.InitializeTelemetry(logger)
	})
	require.NoError(t, testTelemetryErr)
	telemetry := testTelemetry

	a := &Application{
		Config:    cfg,
		Logger:    logger,
		Telemetry: telemetry,
	}
	a.initializeServices()
	a.setupRouter()
	a.createServer()
	return a
}

func TestRouterHealth(t *testing.T) {
	a := newTestApplication(t)

	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestRouterReadiness(t *testing.T) {
	a := newTestApplication(t)

	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health/ready", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ready")
}

func TestRouterStatsFlow(t *testing.T) {
	a := newTestApplication(t)

	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/batters", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "A Healy")

	rec = httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats/summary?batter=A+Healy", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"strike_rate":400`)
}

func TestRouterUnknownBatter(t *testing.T) {
	a := newTestApplication(t)

	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats/summary?batter=Nobody", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "json")
}

func TestRouterNotFound(t *testing.T) {
	a := newTestApplication(t)

	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "/errors/not-found")
}

func TestRouterMetricsEndpoint(t *testing.T) {
	a := newTestApplication(t)

	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestIDHeaderOnResponses(t *testing.T) {
	a := newTestApplication(t)

	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
