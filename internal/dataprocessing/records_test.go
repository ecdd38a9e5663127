package dataprocessing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{125.0, "2:05"},
		{0, "0:00"},
		{59.9, "0:59"},
		{60, "1:00"},
		{1800, "30:00"},
		{1925.4, "32:05"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatClock(tt.seconds))
		})
	}
}

func TestHomeAwayRecord(t *testing.T) {
	games := threeWeeks()
	rows, err := AssembleHomeAway(PrepareFold(games), NewExpectedAverager(DefaultBlend()).Build(Shift(games)))
	require.NoError(t, err)

	rec := HomeAwayRecord(rows[3])

	cols := rec.Columns()
	assert.Equal(t, "game_id", cols[0])
	assert.Contains(t, cols, "home_rating")
	assert.Contains(t, cols, "actual_home_points")
	assert.Contains(t, cols, "home_expected_points")
	assert.Contains(t, cols, "away_expected_field_goal_made")
	assert.NotContains(t, cols, "home_elo_pre")
	assert.Equal(t, "expected_total", cols[len(cols)-1])

	v, ok := rec.Get("home_expected_time_of_possession")
	require.True(t, ok)
	assert.Equal(t, "30:00", v)

	v, _ = rec.Get("home_rating")
	assert.Equal(t, 1500, v)

	v, _ = rec.Get("expected_spread")
	assert.InDelta(t, -0.5, v.(float64), 1e-9)
}

func TestHomeAwayRecord_NullExpectations(t *testing.T) {
	games := threeWeeks()
	rows, err := AssembleHomeAway(PrepareFold(games), nil)
	require.NoError(t, err)

	rec := HomeAwayRecord(rows[0])
	v, ok := rec.Get("home_expected_points")
	require.True(t, ok)
	assert.Nil(t, v)

	raw, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"home_expected_points":null`)
	assert.Contains(t, string(raw), `{"game_id":"2023_1_B_A","season":2023,"week":1`)
}

func TestFoldedRecord(t *testing.T) {
	games := threeWeeks()
	rows := AssembleFolded(Fold(PrepareFold(games)), NewExpectedAverager(DefaultBlend()).Build(Shift(games)))

	rec := FoldedRecord(rows[7])

	for col, want := range map[string]interface{}{
		"team":                        "A",
		"opponent":                    "D",
		"rating":                      1500,
		"opponent_rating":             1400,
		"actual_points":               27.0,
		"opponent_actual_points":      13.0,
		"actual_team_win":             true,
		"expected_time_of_possession": "30:00",
		"is_home":                     true,
	} {
		got, ok := rec.Get(col)
		require.True(t, ok, col)
		assert.Equal(t, want, got, col)
	}
	assert.Len(t, rec.Values(), len(rec.Columns()))
}
