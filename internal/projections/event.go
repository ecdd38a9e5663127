package projections

import (
	"sort"

	"edgestats/internal/taxonomy"
	"edgestats/pkg/contracts/domain"
)

// EventPlayers lists both rosters of one game.
type EventPlayers struct {
	Home []domain.PlayerWeekRow `json:"home"`
	Away []domain.PlayerWeekRow `json:"away"`
}

// ForGame picks the players of home and away for a season week, each side
// ordered by position (QB, RB, WR, TE, K, D/ST) then by projected points.
func ForGame(rows []domain.PlayerWeekRow, season, week int, home, away string) EventPlayers {
	slate := FilterWeek(FilterSeason(rows, season), week)
	return EventPlayers{
		Home: byPosition(FilterTeam(slate, home)),
		Away: byPosition(FilterTeam(slate, away)),
	}
}

var positionRank = func() map[string]int {
	m := make(map[string]int, len(taxonomy.PositionOrder))
	for i, p := range taxonomy.PositionOrder {
		m[p] = i
	}
	return m
}()

func rank(position string) int {
	if r, ok := positionRank[position]; ok {
		return r
	}
	return len(positionRank)
}

func byPosition(rows []domain.PlayerWeekRow) []domain.PlayerWeekRow {
	sort.SliceStable(rows, func(i, j int) bool {
		ri, rj := rank(rows[i].Position), rank(rows[j].Position)
		if ri != rj {
			return ri < rj
		}
		return projected(rows[i]) > projected(rows[j])
	})
	return rows
}

func projected(r domain.PlayerWeekRow) float64 {
	if r.ProjectedPoints == nil {
		return 0
	}
	return *r.ProjectedPoints
}
