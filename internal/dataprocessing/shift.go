package dataprocessing

import (
	"edgestats/pkg/contracts/domain"
)

// Shift splits every game into two team rows, home first. Each row carries
// only its own side's features and records the other team as opponent.
// Season and week are shared unchanged, so the two rows of a game differ
// only in team, opponent and is_home.
func Shift(games []domain.GameRow) []domain.TeamWeekRow {
	rows := make([]domain.TeamWeekRow, 0, len(games)*2)
	for _, g := range games {
		rows = append(rows,
			shiftSide(g, g.Home, g.Away.Team, true),
			shiftSide(g, g.Away, g.Home.Team, false),
		)
	}
	return rows
}

func shiftSide(g domain.GameRow, side domain.Side, opponent string, isHome bool) domain.TeamWeekRow {
	return domain.TeamWeekRow{
		Team:     side.Team,
		Opponent: opponent,
		Season:   g.Season,
		Week:     g.Week,
		IsHome:   isHome,
		Offense:  copyValues(side.Offense),
		Defense:  copyValues(side.Defense),
		Simple:   copyValues(side.Simple),
	}
}

func copyValues(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
