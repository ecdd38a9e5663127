package dataprocessing

import (
	"edgestats/pkg/contracts/domain"
)

// PrepareFold derives the home-perspective targets from the authoritative
// away-perspective columns:
//
//	home_spread_line                = -away_spread_line (the raw spread_line)
//	actual_home_spread              = -actual_away_spread
//	actual_home_team_win            = NOT actual_away_team_win
//	actual_home_team_covered_spread = NOT actual_away_team_covered_spread
//
// Null sources stay null. When the away win flag is missing but both scores
// are known and differ, the flag is taken from the scores.
func PrepareFold(games []domain.GameRow) []domain.FoldInput {
	out := make([]domain.FoldInput, 0, len(games))
	for _, g := range games {
		awayWin := g.Outcome.AwayTeamWin
		if awayWin == nil {
			awayWin = winFromScores(g.Outcome.AwayScore, g.Outcome.HomeScore)
		}

		out = append(out, domain.FoldInput{
			GameRow:                     g,
			GameID:                      g.GameID(),
			AwaySpreadLine:              g.Vegas.SpreadLine,
			HomeSpreadLine:              negate(g.Vegas.SpreadLine),
			ActualHomeSpread:            negate(g.Outcome.AwaySpread),
			ActualAwayTeamWin:           awayWin,
			ActualHomeTeamWin:           not(awayWin),
			ActualHomeTeamCoveredSpread: not(g.Outcome.AwayTeamCoveredSpread),
		})
	}
	return out
}

// Fold emits one row per team and game: the away team's view then the home
// team's view. Each sees its own columns as self and the other side's as
// opponent. Fold never derives values; it only reshapes a FoldInput.
func Fold(inputs []domain.FoldInput) []domain.FoldedGameRow {
	rows := make([]domain.FoldedGameRow, 0, len(inputs)*2)
	for _, in := range inputs {
		rows = append(rows, foldAway(in), foldHome(in))
	}
	return rows
}

func foldAway(in domain.FoldInput) domain.FoldedGameRow {
	return domain.FoldedGameRow{
		GameID:                  in.GameID,
		Team:                    in.Away.Team,
		Opponent:                in.Home.Team,
		Season:                  in.Season,
		Week:                    in.Week,
		IsHome:                  false,
		Rating:                  truncate(in.Away.Rating),
		OpponentRating:          truncate(in.Home.Rating),
		SpreadLine:              in.AwaySpreadLine,
		TotalLine:               in.Vegas.TotalLine,
		Moneyline:               in.Vegas.AwayMoneyline,
		ActualPoints:            in.Outcome.AwayScore,
		OpponentActualPoints:    in.Outcome.HomeScore,
		ActualSpread:            in.Outcome.AwaySpread,
		ActualTeamWin:           in.ActualAwayTeamWin,
		ActualTeamCoveredSpread: in.Outcome.AwayTeamCoveredSpread,
		ActualPointTotal:        in.Outcome.PointTotal,
		OffensiveRank:           in.Away.OffensiveRank,
		DefensiveRank:           in.Away.DefensiveRank,
		OpponentOffensiveRank:   in.Home.OffensiveRank,
		OpponentDefensiveRank:   in.Home.DefensiveRank,
	}
}

func foldHome(in domain.FoldInput) domain.FoldedGameRow {
	return domain.FoldedGameRow{
		GameID:                  in.GameID,
		Team:                    in.Home.Team,
		Opponent:                in.Away.Team,
		Season:                  in.Season,
		Week:                    in.Week,
		IsHome:                  true,
		Rating:                  truncate(in.Home.Rating),
		OpponentRating:          truncate(in.Away.Rating),
		SpreadLine:              in.HomeSpreadLine,
		TotalLine:               in.Vegas.TotalLine,
		Moneyline:               in.Vegas.HomeMoneyline,
		ActualPoints:            in.Outcome.HomeScore,
		OpponentActualPoints:    in.Outcome.AwayScore,
		ActualSpread:            in.ActualHomeSpread,
		ActualTeamWin:           in.ActualHomeTeamWin,
		ActualTeamCoveredSpread: in.ActualHomeTeamCoveredSpread,
		ActualPointTotal:        in.Outcome.PointTotal,
		OffensiveRank:           in.Home.OffensiveRank,
		DefensiveRank:           in.Home.DefensiveRank,
		OpponentOffensiveRank:   in.Away.OffensiveRank,
		OpponentDefensiveRank:   in.Away.DefensiveRank,
	}
}

func negate(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return domain.Float(-*v)
}

func not(v *bool) *bool {
	if v == nil {
		return nil
	}
	return domain.Bool(!*v)
}

func winFromScores(own, other *float64) *bool {
	if own == nil || other == nil || *own == *other {
		return nil
	}
	return domain.Bool(*own > *other)
}

// truncate casts a rating to int, dropping the fraction. Incomplete rows
// are removed before folding, so nil only appears for direct callers.
func truncate(v *float64) int {
	if v == nil {
		return 0
	}
	return int(*v)
}
