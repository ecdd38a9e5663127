package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"edgestats/internal/featurestore"
	"edgestats/internal/shared/testutil"
	"edgestats/pkg/contracts/domain"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		seasons []int
		format  string
		mode    domain.AggregationMode
		wantErr string
	}{
		{name: "defaults", args: nil, format: formatBoth, mode: domain.ModeWeekly},
		{name: "seasons", args: []string{"-seasons", "2022, 2023"}, seasons: []int{2022, 2023}, format: formatBoth, mode: domain.ModeWeekly},
		{name: "season mode csv", args: []string{"-mode", "SEASON", "-format", "csv"}, format: formatCSV, mode: domain.ModeSeason},
		{name: "bad format", args: []string{"-format", "json"}, wantErr: "invalid -format"},
		{name: "bad mode", args: []string{"-mode", "daily"}, wantErr: "invalid -mode"},
		{name: "bad season", args: []string{"-seasons", "2023,x"}, wantErr: "invalid season"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseFlags(tt.args)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.seasons, opts.seasons)
			assert.Equal(t, tt.format, opts.format)
			assert.Equal(t, tt.mode, opts.mode)
		})
	}
}

func writeConfig(t *testing.T, root, storeDir string) string {
	t.Helper()
	cfg := fmt.Sprintf(`logging:
  level: error
  output: console
feature_store:
  local_dir: %q
pipeline:
  seasons: [2023]
paths:
  data_dir: %q
  logs_dir: %q
  export_dir: %q
`, storeDir, filepath.Join(root, "data"), filepath.Join(root, "logs"), filepath.Join(root, "exports"))
	path := filepath.Join(root, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	return path
}

func TestRun_WritesTables(t *testing.T) {
	root := t.TempDir()
	storeDir := filepath.Join(root, "store")
	_, err := featurestore.NewDirProvider(storeDir).WriteGames(2023, []domain.GameRow{
		testutil.NewGame(2023, 1, "KC", "DET", 20, 21),
		testutil.NewGame(2023, 2, "DET", "SEA", 31, 37),
	})
	require.NoError(t, err)
	configPath := writeConfig(t, root, storeDir)
	outDir := filepath.Join(root, "out")

	var stdout bytes.Buffer
	err = run(context.Background(), []string{"-config", configPath, "-out", outDir, "-prefix", "nfl"}, &stdout)
	require.NoError(t, err)

	for _, name := range []string{"nfl_games.csv", "nfl_teams.csv", "nfl_players.csv", "nfl_weekly.xlsx"} {
		assert.FileExists(t, filepath.Join(outDir, name))
		assert.Contains(t, stdout.String(), name)
	}

	games, err := os.ReadFile(filepath.Join(outDir, "nfl_games.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(games)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "game_id,"))
	assert.True(t, strings.HasPrefix(lines[1], "2023_1_DET_KC,"))
}

func TestRun_MissingGamesFails(t *testing.T) {
	root := t.TempDir()
	configPath := writeConfig(t, root, filepath.Join(root, "empty"))

	err := run(context.Background(), []string{"-config", configPath, "-format", "csv"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(root, "exports", "features_games.csv"))
}

func TestMirrorProvider(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	games := []domain.GameRow{testutil.NewGame(2023, 1, "KC", "DET", 20, 21)}

	upstream := &testutil.MockProvider{}
	upstream.On("FetchGameFeatures", mock.Anything, 2023).Return(games, nil)
	upstream.On("FetchGameFeatures", mock.Anything, 2024).Return(nil, errors.New("upstream down"))

	dir := t.TempDir()
	p := newMirrorProvider(upstream, featurestore.NewDirProvider(dir), logger)

	got, err := p.FetchGameFeatures(context.Background(), 2023)
	require.NoError(t, err)
	assert.Equal(t, games, got)

	mirrored, err := featurestore.NewDirProvider(dir).FetchGameFeatures(context.Background(), 2023)
	require.NoError(t, err)
	require.Len(t, mirrored, 1)
	assert.Equal(t, "KC", mirrored[0].Home.Team)

	_, err = p.FetchGameFeatures(context.Background(), 2024)
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, featurestore.SeasonFile(featurestore.KindGames, 2024)))
	upstream.AssertExpectations(t)
}

func TestMirrorProvider_Players(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	wr := testutil.NewPlayer(2023, 1, "wr1", "WR", "KC", 12, map[string]float64{"projected_receiving_yards": 80})
	kicker := testutil.NewPlayer(2023, 1, "k1", "K", "DET", 8, map[string]float64{"projected_made_field_goals": 2})

	upstream := &testutil.MockProvider{}
	upstream.On("FetchPlayerProjections", mock.Anything, 2023, domain.GroupOffense).Return([]domain.PlayerWeekRow{wr}, nil)
	upstream.On("FetchPlayerProjections", mock.Anything, 2023, domain.GroupSpecialTeams).Return([]domain.PlayerWeekRow{kicker}, nil)
	upstream.On("FetchPlayerProjections", mock.Anything, 2023, domain.GroupDefense).Return(nil, errors.New("upstream down"))

	dir := t.TempDir()
	p := newMirrorProvider(upstream, featurestore.NewDirProvider(dir), logger)
	ctx := context.Background()

	for _, g := range []domain.PositionGroup{domain.GroupOffense, domain.GroupSpecialTeams} {
		_, err := p.FetchPlayerProjections(ctx, 2023, g)
		require.NoError(t, err)
	}
	_, err := p.FetchPlayerProjections(ctx, 2023, domain.GroupDefense)
	require.Error(t, err)

	local := featurestore.NewDirProvider(dir)
	offense, err := local.FetchPlayerProjections(ctx, 2023, domain.GroupOffense)
	require.NoError(t, err)
	require.Len(t, offense, 1)
	assert.Equal(t, "wr1", offense[0].PlayerID)
	assert.Equal(t, 80.0, offense[0].Stats["projected_receiving_yards"])

	special, err := local.FetchPlayerProjections(ctx, 2023, domain.GroupSpecialTeams)
	require.NoError(t, err)
	require.Len(t, special, 1)
	assert.Equal(t, 2.0, special[0].Stats["projected_made_field_goals"])

	defense, err := local.FetchPlayerProjections(ctx, 2023, domain.GroupDefense)
	require.NoError(t, err)
	assert.Empty(t, defense)
	upstream.AssertExpectations(t)
}
