package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edgestats/internal/config"
	"edgestats/internal/featurestore"
	"edgestats/internal/shared/testutil"
	"edgestats/pkg/contracts/domain"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()

	cfg := config.Default()
	cfg.FeatureStore.LocalDir = filepath.Join(root, "store")
	cfg.Pipeline.Seasons = []int{2023}
	cfg.Pipeline.WarmOnStart = false
	cfg.Security.RateLimit.Enabled = false
	cfg.Paths = config.PathsConfig{
		DataDir:   filepath.Join(root, "data"),
		LogsDir:   filepath.Join(root, "logs"),
		ExportDir: filepath.Join(root, "exports"),
	}
	require.NoError(t, cfg.Validate())

	store := featurestore.NewDirProvider(cfg.FeatureStore.LocalDir)
	_, err := store.WriteGames(2023, []domain.GameRow{
		testutil.NewGame(2023, 1, "KC", "DET", 20, 21),
		testutil.NewGame(2023, 2, "DET", "SEA", 31, 37),
	})
	require.NoError(t, err)
	return cfg
}

func newTestApp(t *testing.T) *Application {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	app, err := NewApplication(testConfig(t), logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = app.OTelProviders.Shutdown(context.Background())
	})
	return app
}

func serve(app *Application, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func TestNewProvider(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)

	local := NewProvider(config.FeatureStoreConfig{LocalDir: t.TempDir()}, logger)
	assert.IsType(t, &featurestore.DirProvider{}, local)

	remote := NewProvider(config.Default().FeatureStore, logger)
	assert.IsType(t, &featurestore.HTTPProvider{}, remote)
}

func TestApplication_FeatureRoutes(t *testing.T) {
	app := newTestApp(t)

	rec := serve(app, http.MethodGet, "/api/features/games?season=2023")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var body struct {
		Count int              `json:"count"`
		Rows  []map[string]any `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, "2023_1_DET_KC", body.Rows[0]["game_id"])

	rec = serve(app, http.MethodGet, "/api/features/teams?team=DET")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)

	// Player tables are absent from the store; the build degrades to no rows.
	rec = serve(app, http.MethodGet, "/api/features/players?season=2023")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Zero(t, body.Count)
}

func TestApplication_Health(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/api/health", "/api/health/ready", "/api/health/live", "/api/version"} {
		t.Run(path, func(t *testing.T) {
			rec := serve(app, http.MethodGet, path)
			assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		})
	}
}

func TestApplication_Metrics(t *testing.T) {
	app := newTestApp(t)

	require.Equal(t, http.StatusOK, serve(app, http.MethodGet, "/api/features/games").Code)

	rec := serve(app, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pipeline_builds_total")
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestApplication_Errors(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name   string
		method string
		target string
		status int
	}{
		{"unknown route", http.MethodGet, "/api/unknown", http.StatusNotFound},
		{"wrong method", http.MethodPost, "/api/features/games", http.StatusMethodNotAllowed},
		{"bad week", http.MethodGet, "/api/features/games?week=abc", http.StatusBadRequest},
		{"unknown game", http.MethodGet, "/api/features/games/2023_9_XX_YY", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(app, tt.method, tt.target)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestApplication_RequestIDEcho(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
}

func TestApplication_WarmPopulatesCache(t *testing.T) {
	app := newTestApp(t)

	app.Warm(context.Background())
	assert.Equal(t, 1, app.FeatureService.CacheStats().Entries)
}

func TestApplication_RunStopsOnCancel(t *testing.T) {
	app := newTestApp(t)
	app.Server.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestGenerateBuildID(t *testing.T) {
	id := generateBuildID()
	assert.Len(t, id, 12)
	assert.Equal(t, id, generateBuildID())
}
