package dataprocessing

import (
	"edgestats/internal/taxonomy"
	"edgestats/pkg/contracts/domain"
)

// HomeAwayRecord renders a home/away row with public column names.
// Time of possession expectations are rendered as M:SS.
func HomeAwayRecord(row domain.HomeAwayRow) domain.Record {
	rec := domain.Record{
		field(taxonomy.ColGameID, row.GameID),
		field("season", row.Season),
		field("week", row.Week),
		field("home_team", row.HomeTeam),
		field("away_team", row.AwayTeam),
		field("home_elo_pre", row.HomeRating),
		field("away_elo_pre", row.AwayRating),
		field("spread_line", optFloat(row.Vegas.SpreadLine)),
		field("total_line", optFloat(row.Vegas.TotalLine)),
		field("home_moneyline", optFloat(row.Vegas.HomeMoneyline)),
		field("away_moneyline", optFloat(row.Vegas.AwayMoneyline)),
		field("actual_home_score", optFloat(row.ActualHomePoints)),
		field("actual_away_score", optFloat(row.ActualAwayPoints)),
		field(taxonomy.ColActualHomeSpread, optFloat(row.ActualHomeSpread)),
		field("actual_away_spread", optFloat(row.ActualAwaySpread)),
		field(taxonomy.ColActualHomeWin, optBool(row.ActualHomeTeamWin)),
		field("actual_away_team_win", optBool(row.ActualAwayTeamWin)),
		field(taxonomy.ColActualHomeCover, optBool(row.ActualHomeTeamCoveredSpread)),
		field("actual_away_team_covered_spread", optBool(row.ActualAwayTeamCoveredSpread)),
		field("actual_point_total", optFloat(row.ActualPointTotal)),
		field("home_offensive_rank", optFloat(row.HomeOffensiveRank)),
		field("home_defensive_rank", optFloat(row.HomeDefensiveRank)),
		field("away_offensive_rank", optFloat(row.AwayOffensiveRank)),
		field("away_defensive_rank", optFloat(row.AwayDefensiveRank)),
	}
	rec = appendExpected(rec, taxonomy.Home, row.HomeExpected)
	rec = appendExpected(rec, taxonomy.Away, row.AwayExpected)
	rec = append(rec,
		field(taxonomy.ColExpectedSpread, optFloat(row.ExpectedSpread)),
		field(taxonomy.ColExpectedTotal, optFloat(row.ExpectedTotal)),
	)
	return rec
}

// FoldedRecord renders a folded row with public column names.
func FoldedRecord(row domain.FoldedGameRow) domain.Record {
	rec := domain.Record{
		field(taxonomy.ColGameID, row.GameID),
		field(taxonomy.ColTeam, row.Team),
		field(taxonomy.ColOpponent, row.Opponent),
		field("season", row.Season),
		field("week", row.Week),
		field(taxonomy.ColIsHome, row.IsHome),
		field("elo_pre", row.Rating),
		field("opponent_elo_pre", row.OpponentRating),
		field("spread_line", optFloat(row.SpreadLine)),
		field("total_line", optFloat(row.TotalLine)),
		field("moneyline", optFloat(row.Moneyline)),
		field("actual_score", optFloat(row.ActualPoints)),
		field("opponent_actual_score", optFloat(row.OpponentActualPoints)),
		field("actual_spread", optFloat(row.ActualSpread)),
		field("actual_team_win", optBool(row.ActualTeamWin)),
		field("actual_team_covered_spread", optBool(row.ActualTeamCoveredSpread)),
		field("actual_point_total", optFloat(row.ActualPointTotal)),
		field("offensive_rank", optFloat(row.OffensiveRank)),
		field("defensive_rank", optFloat(row.DefensiveRank)),
		field("opponent_offensive_rank", optFloat(row.OpponentOffensiveRank)),
		field("opponent_defensive_rank", optFloat(row.OpponentDefensiveRank)),
	}
	return appendExpected(rec, "", row.Expected)
}

func appendExpected(rec domain.Record, side taxonomy.Side, expected map[string]float64) domain.Record {
	for _, f := range taxonomy.PointFeatures {
		var v interface{}
		if x, ok := expected[f.Name]; ok {
			if f.Name == taxonomy.FeatureTimeOfPossession {
				v = FormatClock(x)
			} else {
				v = x
			}
		}
		rec = append(rec, field(taxonomy.ExpectedColumn(f.Name, side), v))
	}
	return rec
}

// field names a cell by its internal column, renamed to the public schema.
func field(internal string, value interface{}) domain.Field {
	return domain.Field{Name: taxonomy.MustPublicName(internal), Value: value}
}

func optFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func optBool(v *bool) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
