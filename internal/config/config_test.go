package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, time.Hour, cfg.Pipeline.CacheTTL)
				assert.Equal(t, DefaultFirstSeason, cfg.Pipeline.FirstSeason)
				assert.Equal(t, "mean", cfg.Pipeline.BlendMethod)
				assert.Equal(t, 0.5, cfg.Pipeline.BlendOwnWeight)
				assert.Contains(t, cfg.FeatureStore.GameURL, SeasonPlaceholder)
				assert.Equal(t, "console", cfg.Logging.Output)
			},
		},
		{
			name: "file overrides defaults",
			file: `
server:
  port: 9090
pipeline:
  seasons: [2022, 2023]
  blend_method: league_adjusted
feature_store:
  local_dir: /srv/store
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, []int{2022, 2023}, cfg.Pipeline.Seasons)
				assert.Equal(t, "league_adjusted", cfg.Pipeline.BlendMethod)
				assert.Equal(t, "/srv/store", cfg.FeatureStore.LocalDir)
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
			},
		},
		{
			name: "env wins over file",
			file: "server:\n  port: 9090\n",
			env: map[string]string{
				"EDGE_SERVER_PORT":        "7070",
				"EDGE_PIPELINE_CACHE_TTL": "10m",
				"EDGE_PIPELINE_SEASONS":   "2021,2024",
				"EDGE_LOGGING_LEVEL":      "debug",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 7070, cfg.Server.Port)
				assert.Equal(t, 10*time.Minute, cfg.Pipeline.CacheTTL)
				assert.Equal(t, []int{2021, 2024}, cfg.Pipeline.Seasons)
				assert.Equal(t, "debug", cfg.Logging.Level)
			},
		},
		{
			name:    "invalid port",
			env:     map[string]string{"EDGE_SERVER_PORT": "70000"},
			wantErr: true,
		},
		{
			name:    "unknown blend method",
			env:     map[string]string{"EDGE_PIPELINE_BLEND_METHOD": "median"},
			wantErr: true,
		},
		{
			name:    "own weight out of range",
			file:    "pipeline:\n  blend_own_weight: 1.5\n",
			wantErr: true,
		},
		{
			name:    "url template without season",
			env:     map[string]string{"EDGE_FEATURE_STORE_GAME_URL": "https://example.test/latest.csv"},
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			file:    "server: [port",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = writeConfig(t, tt.file)
			}

			cfg, err := LoadFile(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoad_ConfigFileFromEnv(t *testing.T) {
	t.Setenv("EDGE_CONFIG_FILE", writeConfig(t, "telemetry:\n  service_name: edge-test\n"))
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "edge-test", cfg.Telemetry.ServiceName)
}

func TestCurrentSeason(t *testing.T) {
	tests := []struct {
		now  time.Time
		want int
	}{
		{time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), 2023},
		{time.Date(2024, time.April, 30, 23, 0, 0, 0, time.UTC), 2023},
		{time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), 2024},
		{time.Date(2024, time.September, 8, 0, 0, 0, 0, time.UTC), 2024},
		{time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), 2024},
	}
	for _, tt := range tests {
		t.Run(tt.now.Format("2006-01-02"), func(t *testing.T) {
			assert.Equal(t, tt.want, CurrentSeason(tt.now))
		})
	}
}

func TestDefaultSeasons(t *testing.T) {
	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, []int{2019, 2020, 2021, 2022, 2023}, DefaultSeasons(2019, now))
	assert.Nil(t, DefaultSeasons(2025, now))

	p := PipelineConfig{FirstSeason: 2022}
	assert.Equal(t, []int{2022, 2023}, p.SeasonsAt(now))
	p.Seasons = []int{2020}
	assert.Equal(t, []int{2020}, p.SeasonsAt(now))
}

func TestPathsConfig(t *testing.T) {
	root := t.TempDir()
	p := PathsConfig{
		DataDir:   filepath.Join(root, "data"),
		LogsDir:   filepath.Join(root, "logs"),
		ExportDir: filepath.Join(root, "data", "exports"),
	}
	require.NoError(t, p.EnsureDirectories())
	assert.DirExists(t, p.ExportDir)
	assert.Equal(t, filepath.Join(p.ExportDir, "games.csv"), p.ExportPath("games.csv"))
	assert.Equal(t, filepath.Join(p.DataDir, "feature-store"), p.MirrorDir())
}
