package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edgestats/internal/shared/testutil"
	"edgestats/pkg/contracts/domain"
)

func TestPrepareFold_SymmetryInvariants(t *testing.T) {
	games := []domain.GameRow{
		testutil.NewGame(2023, 1, "KC", "DET", 20, 21),
		testutil.NewGame(2023, 1, "BUF", "NYJ", 16, 22),
		testutil.NewGame(2023, 2, "DAL", "NYG", 40, 0),
	}

	for _, in := range PrepareFold(games) {
		require.NotNil(t, in.HomeSpreadLine)
		assert.Equal(t, -*in.AwaySpreadLine, *in.HomeSpreadLine)
		assert.Equal(t, -*in.Outcome.AwaySpread, *in.ActualHomeSpread)
		assert.Equal(t, !*in.ActualAwayTeamWin, *in.ActualHomeTeamWin)
		assert.Equal(t, !*in.Outcome.AwayTeamCoveredSpread, *in.ActualHomeTeamCoveredSpread)
		assert.Equal(t, in.GameRow.GameID(), in.GameID)
	}
}

func TestPrepareFold_NullsStayNull(t *testing.T) {
	g := testutil.NewGame(2024, 18, "KC", "DEN", 0, 0, testutil.Unplayed())
	g.Vegas.SpreadLine = nil

	in := PrepareFold([]domain.GameRow{g})[0]

	assert.Nil(t, in.HomeSpreadLine)
	assert.Nil(t, in.ActualHomeSpread)
	assert.Nil(t, in.ActualHomeTeamWin)
	assert.Nil(t, in.ActualHomeTeamCoveredSpread)
}

func TestPrepareFold_WinFromScores(t *testing.T) {
	tests := []struct {
		name     string
		home     float64
		away     float64
		wantAway *bool
	}{
		{"home wins", 24, 20, domain.Bool(false)},
		{"away wins", 17, 27, domain.Bool(true)},
		{"tie stays unknown", 20, 20, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testutil.NewGame(2023, 1, "A", "B", tt.home, tt.away)
			g.Outcome.AwayTeamWin = nil

			in := PrepareFold([]domain.GameRow{g})[0]

			assert.Equal(t, tt.wantAway, in.ActualAwayTeamWin)
			if tt.wantAway != nil {
				assert.Equal(t, !*tt.wantAway, *in.ActualHomeTeamWin)
			}
		})
	}
}

func TestFold_Scenario(t *testing.T) {
	g := testutil.NewGame(2023, 1, "A", "B", 24, 20,
		testutil.WithRatings(domain.Float(1500), domain.Float(1400)))
	g.Outcome.AwayTeamWin = nil

	in := PrepareFold([]domain.GameRow{g})
	require.True(t, *in[0].ActualHomeTeamWin)

	rows := Fold(in)
	require.Len(t, rows, 2)

	b, a := rows[0], rows[1]

	assert.Equal(t, "A", a.Team)
	assert.Equal(t, "B", a.Opponent)
	assert.True(t, a.IsHome)
	assert.Equal(t, 24.0, *a.ActualPoints)
	assert.Equal(t, 20.0, *a.OpponentActualPoints)
	assert.True(t, *a.ActualTeamWin)
	assert.Equal(t, 1500, a.Rating)
	assert.Equal(t, 1400, a.OpponentRating)

	assert.Equal(t, "B", b.Team)
	assert.False(t, b.IsHome)
	assert.Equal(t, 20.0, *b.ActualPoints)
	assert.False(t, *b.ActualTeamWin)
	assert.Equal(t, 1400, b.Rating)

	assert.Equal(t, "2023_1_B_A", a.GameID)
	assert.Equal(t, a.GameID, b.GameID)
}

func TestFold_MirrorsSpreadAndCover(t *testing.T) {
	g := testutil.NewGame(2023, 3, "KC", "CHI", 41, 10)

	rows := Fold(PrepareFold([]domain.GameRow{g}))
	away, home := rows[0], rows[1]

	assert.Equal(t, -*away.SpreadLine, *home.SpreadLine)
	assert.Equal(t, -*away.ActualSpread, *home.ActualSpread)
	assert.Equal(t, !*away.ActualTeamCoveredSpread, *home.ActualTeamCoveredSpread)
	assert.Equal(t, *g.Vegas.AwayMoneyline, *away.Moneyline)
	assert.Equal(t, *g.Vegas.HomeMoneyline, *home.Moneyline)
	assert.Equal(t, away.ActualPointTotal, home.ActualPointTotal)
}

func TestFold_TruncatesRatings(t *testing.T) {
	g := testutil.NewGame(2023, 1, "A", "B", 1, 0,
		testutil.WithRatings(domain.Float(1523.97), domain.Float(1399.01)))

	rows := Fold(PrepareFold([]domain.GameRow{g}))

	assert.Equal(t, 1399, rows[0].Rating)
	assert.Equal(t, 1523, rows[1].Rating)
}
