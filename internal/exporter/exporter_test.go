package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"edgestats/internal/config"
	apierrors "edgestats/internal/errors"
	"edgestats/internal/shared/testutil"
	"edgestats/pkg/contracts/domain"
)

func sampleTables() []Table {
	return []Table{
		NewTable(TableGames, []domain.Record{
			{{Name: "game_id", Value: "2023_1_B_A"}, {Name: "home_rating", Value: 1500}, {Name: "expected_spread", Value: nil}},
			{{Name: "game_id", Value: "2023_2_A_B"}, {Name: "home_rating", Value: 1410}, {Name: "expected_spread", Value: -3.5}},
		}),
		NewTable(TableTeams, []domain.Record{
			{{Name: "team", Value: "A"}, {Name: "actual_team_win", Value: true}},
		}),
		NewTable(TablePlayers, nil),
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   interface{}
		want string
	}{
		{nil, ""},
		{"2:05", "2:05"},
		{24.0, "24"},
		{0.125, "0.125"},
		{-3.5, "-3.5"},
		{(*float64)(nil), ""},
		{domain.Float(1.5), "1.5"},
		{1500, "1500"},
		{int64(7), "7"},
		{true, "true"},
		{(*bool)(nil), ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatValue(tt.in))
	}
}

func TestNewTable(t *testing.T) {
	tables := sampleTables()

	assert.Equal(t, []string{"game_id", "home_rating", "expected_spread"}, tables[0].Columns)
	assert.Equal(t, [][]string{
		{"2023_1_B_A", "1500", ""},
		{"2023_2_A_B", "1410", "-3.5"},
	}, tables[0].StringRows())

	assert.Empty(t, tables[2].Columns)
	assert.Empty(t, tables[2].Rows)
}

func TestEncodeCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(&buf, []string{"a", "b"}, [][]string{{"1", "x,y"}}, true))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\ufeff"))
	assert.Equal(t, "\ufeffa,b\n1,\"x,y\"\n", out)

	buf.Reset()
	require.NoError(t, EncodeCSV(&buf, nil, [][]string{{"1"}}, false))
	assert.Equal(t, "1\n", buf.String())
}

func TestCSVWriter_WriteTables(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	dir := t.TempDir()
	w := NewCSVWriter(config.PathsConfig{ExportDir: dir}, logger)

	paths, err := w.WriteTables("2023", sampleTables(), false)
	require.NoError(t, err)
	require.Len(t, paths, 3)
	assert.Equal(t, filepath.Join(dir, "2023_games.csv"), paths[0])
	assert.Equal(t, filepath.Join(dir, "2023_players.csv"), paths[2])

	f, err := os.Open(paths[0])
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"game_id", "home_rating", "expected_spread"},
		{"2023_1_B_A", "1500", ""},
		{"2023_2_A_B", "1410", "-3.5"},
	}, rows)

	empty, err := os.ReadFile(paths[2])
	require.NoError(t, err)
	assert.Empty(t, empty)

	assert.Equal(t, 3, logs.Count())
}

func TestCSVWriter_Append(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(config.PathsConfig{ExportDir: dir}, nil)

	path, err := w.WriteCSV("log.csv", WriteOptions{Headers: []string{"n"}, Records: [][]string{{"1"}}, BOMPrefix: true})
	require.NoError(t, err)
	_, err = w.WriteCSV("log.csv", WriteOptions{Headers: []string{"n"}, Records: [][]string{{"2"}}, Append: true, BOMPrefix: true})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\ufeffn\n1\n2\n", string(data))
}

func TestCSVWriter_StorageError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	w := NewCSVWriter(config.PathsConfig{ExportDir: filepath.Join(blocker, "sub")}, nil)
	_, err := w.WriteTable("games.csv", sampleTables()[0], false)
	require.Error(t, err)
	assert.True(t, apierrors.IsType(err, apierrors.ErrTypeStorage))
}

func TestWriteWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, sampleTables()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{TableGames, TableTeams, TablePlayers}, f.GetSheetList())

	rows, err := f.GetRows(TableGames)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"game_id", "home_rating", "expected_spread"}, rows[0])
	assert.Equal(t, "2023_1_B_A", rows[1][0])
	assert.Equal(t, "1500", rows[1][1])
	assert.Equal(t, "-3.5", rows[2][2])

	teams, err := f.GetRows(TableTeams)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"team", "actual_team_win"}, {"A", "TRUE"}}, teams)
}

func TestSaveWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "features.xlsx")
	require.NoError(t, SaveWorkbook(path, sampleTables()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Len(t, f.GetSheetList(), 3)

	assert.Error(t, WriteWorkbook(&bytes.Buffer{}, nil))
}

func TestFeatureTables(t *testing.T) {
	tables := &domain.FeatureTables{
		Players: []domain.PlayerWeekRow{
			testutil.NewPlayer(2023, 1, "qb1", "QB", "KC", 20, map[string]float64{"passing_yards": 250}),
			testutil.NewPlayer(2023, 2, "qb1", "QB", "KC", 22, map[string]float64{"passing_yards": 300}),
		},
	}

	weekly := FeatureTables(tables, domain.ModeWeekly)
	require.Len(t, weekly, 3)
	assert.Equal(t, TablePlayers, weekly[2].Name)
	assert.Len(t, weekly[2].Rows, 2)
	assert.Empty(t, weekly[0].Rows)

	season := FeatureTables(tables, domain.ModeSeason)
	require.Len(t, season[2].Rows, 1)
	assert.Contains(t, season[2].Columns, "weeks")
}
