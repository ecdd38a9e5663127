package dataprocessing

import (
	"edgestats/internal/errors"
	"edgestats/internal/taxonomy"
	"edgestats/pkg/contracts/domain"
)

// AssembleHomeAway left-joins each game with the home side's expected row
// on (home_team, season, week) and the away side's on (away_team, season,
// week). Unmatched sides keep empty expectations. Ratings are truncated to
// int. A repeated game id is a data defect.
func AssembleHomeAway(games []domain.FoldInput, expected []domain.ExpectedAverageRow) ([]domain.HomeAwayRow, error) {
	idx := ExpectedIndex(expected)
	seen := make(map[string]struct{}, len(games))
	rows := make([]domain.HomeAwayRow, 0, len(games))

	for _, g := range games {
		if _, dup := seen[g.GameID]; dup {
			return nil, errors.NewDataError("duplicate game id in feature store").
				WithContext("game_id", g.GameID)
		}
		seen[g.GameID] = struct{}{}

		home := idx[domain.TeamWeekKey{Team: g.Home.Team, Season: g.Season, Week: g.Week}]
		away := idx[domain.TeamWeekKey{Team: g.Away.Team, Season: g.Season, Week: g.Week}]

		row := domain.HomeAwayRow{
			GameID:                      g.GameID,
			Season:                      g.Season,
			Week:                        g.Week,
			HomeTeam:                    g.Home.Team,
			AwayTeam:                    g.Away.Team,
			HomeRating:                  truncate(g.Home.Rating),
			AwayRating:                  truncate(g.Away.Rating),
			Vegas:                       g.Vegas,
			ActualHomePoints:            g.Outcome.HomeScore,
			ActualAwayPoints:            g.Outcome.AwayScore,
			ActualHomeSpread:            g.ActualHomeSpread,
			ActualAwaySpread:            g.Outcome.AwaySpread,
			ActualHomeTeamWin:           g.ActualHomeTeamWin,
			ActualAwayTeamWin:           g.ActualAwayTeamWin,
			ActualHomeTeamCoveredSpread: g.ActualHomeTeamCoveredSpread,
			ActualAwayTeamCoveredSpread: g.Outcome.AwayTeamCoveredSpread,
			ActualPointTotal:            g.Outcome.PointTotal,
			HomeOffensiveRank:           g.Home.OffensiveRank,
			HomeDefensiveRank:           g.Home.DefensiveRank,
			AwayOffensiveRank:           g.Away.OffensiveRank,
			AwayDefensiveRank:           g.Away.DefensiveRank,
			HomeExpected:                copyValues(home.Expected),
			AwayExpected:                copyValues(away.Expected),
		}

		hp, hok := row.HomeExpected[taxonomy.FeaturePoints]
		ap, aok := row.AwayExpected[taxonomy.FeaturePoints]
		if hok && aok {
			row.ExpectedSpread = domain.Float(hp - ap)
			row.ExpectedTotal = domain.Float(hp + ap)
		}

		rows = append(rows, row)
	}
	return rows, nil
}

// AssembleFolded left-joins folded rows with expected rows on
// (team, season, week).
func AssembleFolded(folded []domain.FoldedGameRow, expected []domain.ExpectedAverageRow) []domain.FoldedGameRow {
	idx := ExpectedIndex(expected)
	out := make([]domain.FoldedGameRow, len(folded))
	for i, r := range folded {
		r.Expected = copyValues(idx[r.Key()].Expected)
		out[i] = r
	}
	return out
}
