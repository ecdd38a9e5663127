package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edgestats/internal/errors"
	"edgestats/internal/shared/testutil"
	"edgestats/pkg/contracts/domain"
)

func TestAssembleHomeAway(t *testing.T) {
	games := threeWeeks()
	expected := NewExpectedAverager(DefaultBlend()).Build(Shift(games))

	rows, err := AssembleHomeAway(PrepareFold(games), expected)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	first := rows[0]
	assert.Equal(t, "2023_1_B_A", first.GameID)
	assert.Empty(t, first.HomeExpected)
	assert.Nil(t, first.ExpectedSpread)
	assert.Nil(t, first.ExpectedTotal)
	assert.Equal(t, 1500, first.HomeRating)
	assert.Equal(t, 1400, first.AwayRating)
	assert.Equal(t, 24.0, *first.ActualHomePoints)
	assert.True(t, *first.ActualHomeTeamWin)
	assert.False(t, *first.ActualAwayTeamWin)

	last := rows[3]
	assert.Equal(t, "2023_3_D_A", last.GameID)
	assert.InDelta(t, 19.0, last.HomeExpected["points"], 1e-9)
	assert.InDelta(t, 19.5, last.AwayExpected["points"], 1e-9)
	require.NotNil(t, last.ExpectedSpread)
	assert.InDelta(t, -0.5, *last.ExpectedSpread, 1e-9)
	assert.InDelta(t, 38.5, *last.ExpectedTotal, 1e-9)
}

func TestAssembleHomeAway_UniqueGameIDs(t *testing.T) {
	games := threeWeeks()
	rows, err := AssembleHomeAway(PrepareFold(games), nil)
	require.NoError(t, err)

	ids := make(map[string]bool)
	for _, r := range rows {
		assert.False(t, ids[r.GameID], r.GameID)
		ids[r.GameID] = true
	}
}

func TestAssembleHomeAway_DuplicateGame(t *testing.T) {
	games := []domain.GameRow{
		testutil.NewGame(2023, 1, "A", "B", 24, 20),
		testutil.NewGame(2023, 1, "A", "B", 24, 20),
	}

	_, err := AssembleHomeAway(PrepareFold(games), nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeData))
}

func TestAssembleFolded(t *testing.T) {
	games := threeWeeks()
	expected := NewExpectedAverager(DefaultBlend()).Build(Shift(games))

	rows := AssembleFolded(Fold(PrepareFold(games)), expected)
	require.Len(t, rows, 8)

	for _, r := range rows {
		if r.Team == "A" && r.Week == 3 {
			assert.InDelta(t, 19.0, r.Expected["points"], 1e-9)
		}
		if r.Week == 1 {
			assert.Empty(t, r.Expected)
		}
	}
}
