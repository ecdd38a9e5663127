package projections

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edgestats/internal/errors"
	"edgestats/internal/shared/testutil"
	"edgestats/pkg/contracts/domain"
)

func slice(season int, group domain.PositionGroup, n int) []domain.PlayerWeekRow {
	position := map[domain.PositionGroup]string{
		domain.GroupOffense: "QB", domain.GroupDefense: "D/ST", domain.GroupSpecialTeams: "K",
	}[group]
	rows := make([]domain.PlayerWeekRow, n)
	for i := range rows {
		rows[i] = testutil.NewPlayer(season, 1, fmt.Sprintf("%d-%s-%d", season, group, i), position, "KC", 10, nil)
	}
	return rows
}

func TestCollect_SkipsUnavailableSlices(t *testing.T) {
	ctx := context.Background()
	p := &testutil.MockProvider{}
	p.On("FetchPlayerProjections", ctx, 2022, domain.GroupOffense).Return(slice(2022, domain.GroupOffense, 3), nil)
	p.On("FetchPlayerProjections", ctx, 2022, domain.GroupDefense).Return(slice(2022, domain.GroupDefense, 2), nil)
	p.On("FetchPlayerProjections", ctx, 2022, domain.GroupSpecialTeams).Return(slice(2022, domain.GroupSpecialTeams, 1), nil)
	for _, g := range domain.PositionGroups {
		p.On("FetchPlayerProjections", ctx, 2030, g).
			Return(nil, errors.NewNetworkError("fetch players season 2030: status 404", nil))
	}

	logger, logs := testutil.NewTestLogger(t)
	b := NewBuilder(p, logger)
	got := b.Collect(ctx, []int{2030, 2022})

	assert.Len(t, got.Rows, 6)
	require.Len(t, got.Failures, 3)
	for i, g := range domain.PositionGroups {
		assert.Equal(t, 2030, got.Failures[i].Season)
		assert.Equal(t, g, got.Failures[i].Group)
		assert.Contains(t, got.Failures[i].Reason, "404")
	}
	assert.True(t, logs.ContainsMessage("skipping player projections"))
	p.AssertExpectations(t)
}

func TestCollect_Order(t *testing.T) {
	ctx := context.Background()
	p := &testutil.MockProvider{}
	for _, season := range []int{2021, 2022} {
		for _, g := range domain.PositionGroups {
			p.On("FetchPlayerProjections", ctx, season, g).Return(slice(season, g, 1), nil)
		}
	}

	got := NewBuilder(p, nil).Collect(ctx, []int{2022, 2021})
	require.Len(t, got.Rows, 6)
	var order []string
	for _, r := range got.Rows {
		order = append(order, fmt.Sprintf("%d/%s", r.Season, r.Group))
	}
	assert.Equal(t, []string{"2022/OFF", "2022/DEF", "2022/ST", "2021/OFF", "2021/DEF", "2021/ST"}, order)
	assert.Empty(t, got.Failures)
}

func TestAggregateSeason(t *testing.T) {
	w1 := testutil.NewPlayer(2023, 1, "p1", "RB", "DET", 12, map[string]float64{"projected_rushing_yards": 80, "projected_rushing_touchdowns": 1})
	w1.TotalPoints = domain.Float(200)
	w2 := testutil.NewPlayer(2023, 2, "p1", "RB", "DET", 15, map[string]float64{"projected_rushing_yards": 95})
	w2.Name = "Renamed Later"
	w2.TotalPoints = domain.Float(999)
	other := testutil.NewPlayer(2023, 1, "p2", "WR", "DET", 9, map[string]float64{"projected_receiving_yards": 70})
	nextSeason := testutil.NewPlayer(2024, 1, "p1", "RB", "DET", 14, map[string]float64{"projected_rushing_yards": 60})

	got := AggregateSeason([]domain.PlayerWeekRow{w1, other, w2, nextSeason})
	require.Len(t, got, 3)

	p1 := got[0]
	assert.Equal(t, "p1", p1.PlayerID)
	assert.Equal(t, 2023, p1.Season)
	assert.Equal(t, "Player p1", p1.Name)
	assert.InDelta(t, 200, *p1.TotalPoints, 1e-9)
	assert.Equal(t, 2, p1.Weeks)
	assert.InDelta(t, 175, p1.Stats["projected_rushing_yards"], 1e-9)
	assert.InDelta(t, 1, p1.Stats["projected_rushing_touchdowns"], 1e-9)

	assert.Equal(t, "p2", got[1].PlayerID)
	assert.Equal(t, 2024, got[2].Season)

	// Input rows keep their own stats.
	assert.InDelta(t, 80, w1.Stats["projected_rushing_yards"], 1e-9)
}

func TestAggregateSeason_RefilterIsIdempotent(t *testing.T) {
	rows := []domain.PlayerWeekRow{
		testutil.NewPlayer(2023, 1, "p1", "QB", "BUF", 20, map[string]float64{"projected_passing_yards": 250}),
		testutil.NewPlayer(2023, 2, "p1", "QB", "BUF", 21, map[string]float64{"projected_passing_yards": 300}),
		testutil.NewPlayer(2022, 5, "p1", "QB", "BUF", 19, map[string]float64{"projected_passing_yards": 100}),
	}

	direct := AggregateSeason(FilterSeason(rows, 2023))
	refiltered := AggregateSeason(FilterSeason(FilterSeason(rows, 2023), 2023))
	assert.Equal(t, direct, refiltered)
	require.Len(t, direct, 1)
	assert.InDelta(t, 550, direct[0].Stats["projected_passing_yards"], 1e-9)
}

func TestFilters(t *testing.T) {
	rows := []domain.PlayerWeekRow{
		testutil.NewPlayer(2023, 1, "a", "QB", "WAS", 20, nil),
		testutil.NewPlayer(2023, 2, "b", "K", "WAS", 8, nil),
		testutil.NewPlayer(2023, 2, "c", "QB", "DAL", 18, nil),
		testutil.NewPlayer(2022, 7, "d", "TE", "DAL", 9, nil),
	}

	assert.Len(t, FilterSeason(rows, 2023), 3)
	assert.Len(t, FilterWeek(rows, 2), 2)
	assert.Len(t, FilterTeam(rows, "WSH"), 2)
	assert.Len(t, FilterPosition(rows, "qb"), 2)
	assert.Equal(t, []int{1, 2}, Weeks(rows, 2023))
	assert.Len(t, rows, 4)
}

func TestForGame(t *testing.T) {
	rows := []domain.PlayerWeekRow{
		testutil.NewPlayer(2023, 3, "dst", "D/ST", "KC", 6, nil),
		testutil.NewPlayer(2023, 3, "wr2", "WR", "KC", 9, nil),
		testutil.NewPlayer(2023, 3, "qb", "QB", "KC", 22, nil),
		testutil.NewPlayer(2023, 3, "wr1", "WR", "KC", 14, nil),
		testutil.NewPlayer(2023, 3, "k", "K", "CHI", 7, nil),
		testutil.NewPlayer(2023, 4, "qb-next", "QB", "KC", 21, nil),
	}

	got := ForGame(rows, 2023, 3, "KC", "CHI")
	var home []string
	for _, r := range got.Home {
		home = append(home, r.PlayerID)
	}
	assert.Equal(t, []string{"qb", "wr1", "wr2", "dst"}, home)
	require.Len(t, got.Away, 1)
	assert.Equal(t, "k", got.Away[0].PlayerID)
}

func TestWeeklyRecords_NullOutsideGroup(t *testing.T) {
	rows := []domain.PlayerWeekRow{
		testutil.NewPlayer(2023, 1, "qb", "QB", "KC", 22, map[string]float64{"projected_passing_yards": 280}),
		testutil.NewPlayer(2023, 1, "k", "K", "KC", 8, map[string]float64{"projected_made_field_goals": 2}),
	}

	recs := WeeklyRecords(rows)
	require.Len(t, recs, 2)
	assert.Equal(t, recs[0].Columns(), recs[1].Columns())
	assert.Equal(t, []string{"season", "week", "player_id"}, recs[0].Columns()[:3])

	v, ok := recs[0].Get("projected_passing_yards")
	require.True(t, ok)
	assert.Equal(t, 280.0, v)
	v, ok = recs[0].Get("projected_made_field_goals")
	require.True(t, ok)
	assert.Nil(t, v)
	_, ok = recs[0].Get("projected_defensive_sacks")
	assert.False(t, ok)

	season := SeasonRecords(AggregateSeason(rows))
	weeks, _ := season[0].Get("weeks")
	assert.Equal(t, 1, weeks)
}
