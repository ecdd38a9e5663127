package taxonomy

import (
	"strings"
)

// Internal column names of the derived tables that are not raw feature
// store columns.
const (
	ColGameID           = "game_id"
	ColTeam             = "team"
	ColOpponent         = "opponent"
	ColIsHome           = "is_home"
	ColExpectedSpread   = "expected_spread"
	ColExpectedTotal    = "expected_total"
	ColHomeSpreadLine   = "home_spread_line"
	ColAwaySpreadLine   = "away_spread_line"
	ColActualHomeSpread = "actual_home_spread"
	ColActualHomeWin    = "actual_home_team_win"
	ColActualHomeCover  = "actual_home_team_covered_spread"
)

// renames maps internal column names to public ones. Names absent from
// renames but present in passthrough keep their name.
var renames = map[string]string{
	"home_elo_pre":          "home_rating",
	"away_elo_pre":          "away_rating",
	"elo_pre":               "rating",
	"opponent_elo_pre":      "opponent_rating",
	"actual_home_score":     "actual_home_points",
	"actual_away_score":     "actual_away_points",
	"actual_score":          "actual_points",
	"opponent_actual_score": "opponent_actual_points",
}

var passthrough = map[string]struct{}{}

func init() {
	for _, f := range PointFeatures {
		renames[f.ExpectedColumn()] = "expected_" + f.Name
		for _, side := range Sides {
			renames[string(side)+"_"+f.ExpectedColumn()] = string(side) + "_expected_" + f.Name
		}
	}

	keep := []string{
		ColGameID, ColTeam, ColOpponent, ColIsHome,
		ColExpectedSpread, ColExpectedTotal,
		ColHomeSpreadLine, ColAwaySpreadLine, ColActualHomeSpread,
		ColActualHomeWin, ColActualHomeCover,
		"moneyline", "opponent_moneyline",
		"actual_spread", "actual_team_win", "actual_team_covered_spread",
		"offensive_rank", "defensive_rank",
		"opponent_offensive_rank", "opponent_defensive_rank",
	}
	for _, set := range [][]Feature{Meta, Vegas, Targets, Rankings, SimpleFeatures} {
		for _, f := range set {
			keep = append(keep, f.Columns()...)
			if f.Paired {
				keep = append(keep, f.Name)
			}
		}
	}
	for _, col := range keep {
		passthrough[col] = struct{}{}
	}
}

// PublicName maps an internal column name onto the public schema.
func PublicName(internal string) (string, error) {
	if public, ok := renames[internal]; ok {
		return public, nil
	}
	if _, ok := passthrough[internal]; ok {
		return internal, nil
	}
	return "", &UndeclaredError{Name: internal}
}

// MustPublicName is PublicName that panics on undeclared names.
func MustPublicName(internal string) string {
	public, err := PublicName(internal)
	if err != nil {
		panic(err)
	}
	return public
}

// RenameMap returns a copy of the internal to public rename map.
func RenameMap() map[string]string {
	out := make(map[string]string, len(renames))
	for k, v := range renames {
		out[k] = v
	}
	return out
}

// ExpectedColumn returns the internal expected column of a feature on a
// side, or the unsided one when side is empty.
func ExpectedColumn(feature string, side Side) string {
	col := MustLookup(feature).ExpectedColumn()
	if side == "" {
		return col
	}
	return string(side) + "_" + col
}

// StripSide removes a home_ or away_ prefix from a paired column name.
func StripSide(col string) (string, Side) {
	for _, side := range Sides {
		if rest, ok := strings.CutPrefix(col, string(side)+"_"); ok {
			return rest, side
		}
	}
	return col, ""
}
