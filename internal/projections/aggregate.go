package projections

import (
	"edgestats/pkg/contracts/domain"
)

type playerKey struct {
	season int
	id     string
}

// AggregateSeason collapses weekly rows into one row per (season, player).
// Meta values come from the first row seen for the player; stat columns
// are summed. Output keeps first-seen order.
func AggregateSeason(rows []domain.PlayerWeekRow) []domain.PlayerSeasonRow {
	index := make(map[playerKey]int, len(rows))
	out := make([]domain.PlayerSeasonRow, 0)

	for _, r := range rows {
		k := playerKey{season: r.Season, id: r.PlayerID}
		i, seen := index[k]
		if !seen {
			index[k] = len(out)
			out = append(out, seasonRow(r))
			continue
		}
		agg := &out[i]
		agg.Weeks++
		for col, v := range r.Stats {
			agg.Stats[col] += v
		}
	}
	return out
}

func seasonRow(r domain.PlayerWeekRow) domain.PlayerSeasonRow {
	stats := make(map[string]float64, len(r.Stats))
	for col, v := range r.Stats {
		stats[col] = v
	}
	return domain.PlayerSeasonRow{
		Season:               r.Season,
		PlayerID:             r.PlayerID,
		Name:                 r.Name,
		Position:             r.Position,
		Team:                 r.Team,
		Group:                r.Group,
		PercentOwned:         r.PercentOwned,
		PercentStarted:       r.PercentStarted,
		TotalPoints:          r.TotalPoints,
		ProjectedTotalPoints: r.ProjectedTotalPoints,
		AvgPoints:            r.AvgPoints,
		ProjectedAvgPoints:   r.ProjectedAvgPoints,
		Weeks:                1,
		Stats:                stats,
	}
}
