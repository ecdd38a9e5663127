package testutil

import (
	"edgestats/pkg/contracts/domain"
)

// GameOption adjusts a fixture game.
type GameOption func(*domain.GameRow)

// NewGame returns a played game between home and away with every declared
// feature populated. Point features scale with the score so expected
// averages stay easy to compute by hand: every feature value of a side is
// its score, except time_of_possession which is 1800 seconds.
func NewGame(season, week int, home, away string, homeScore, awayScore float64, opts ...GameOption) domain.GameRow {
	g := domain.GameRow{
		Season: season,
		Week:   week,
		Home:   newSide(home, 1500, homeScore, awayScore),
		Away:   newSide(away, 1400, awayScore, homeScore),
		Vegas: domain.Vegas{
			SpreadLine:    domain.Float(3.5),
			TotalLine:     domain.Float(44.5),
			HomeMoneyline: domain.Float(-170),
			AwayMoneyline: domain.Float(150),
		},
		Outcome: domain.Outcome{
			HomeScore:             domain.Float(homeScore),
			AwayScore:             domain.Float(awayScore),
			AwaySpread:            domain.Float(homeScore - awayScore),
			AwayTeamWin:           domain.Bool(awayScore > homeScore),
			AwayTeamCoveredSpread: domain.Bool(homeScore-awayScore < 3.5),
			PointTotal:            domain.Float(homeScore + awayScore),
		},
	}
	for _, opt := range opts {
		opt(&g)
	}
	return g
}

// WithRatings sets both pre-game ratings. A nil rating marks an incomplete row.
func WithRatings(home, away *float64) GameOption {
	return func(g *domain.GameRow) {
		g.Home.Rating = home
		g.Away.Rating = away
	}
}

// Unplayed clears the outcome of a fixture game.
func Unplayed() GameOption {
	return func(g *domain.GameRow) {
		g.Outcome = domain.Outcome{}
	}
}

// WithFeature overrides a point feature produced by each side this game.
// The opponent's allowed value is updated to match.
func WithFeature(feature string, home, away float64) GameOption {
	return func(g *domain.GameRow) {
		g.Home.Offense[feature] = home
		g.Away.Defense[feature] = home
		g.Away.Offense[feature] = away
		g.Home.Defense[feature] = away
	}
}

// PointFeatureNames lists the point features populated by fixtures.
var PointFeatureNames = []string{
	"points", "q1_points", "q2_points", "q3_points", "q4_points", "q5_points",
	"carries", "rushing_yards", "rushing_tds", "completions", "attempts",
	"passing_yards", "passing_tds", "time_of_possession", "turnover",
	"field_goal_made",
}

func newSide(team string, rating, scored, allowed float64) domain.Side {
	s := domain.Side{
		Team:          team,
		Rating:        domain.Float(rating),
		OffensiveRank: domain.Float(10),
		DefensiveRank: domain.Float(20),
		Offense:       make(map[string]float64, len(PointFeatureNames)),
		Defense:       make(map[string]float64, len(PointFeatureNames)),
		Simple:        map[string]float64{"rest_days": 7, "win_pct": 0.5},
	}
	for _, f := range PointFeatureNames {
		s.Offense[f] = scored
		s.Defense[f] = allowed
	}
	s.Offense["time_of_possession"] = 1800
	s.Defense["time_of_possession"] = 1800
	return s
}

// NewPlayer returns a weekly projection row for a player.
func NewPlayer(season, week int, id, position, team string, projected float64, stats map[string]float64) domain.PlayerWeekRow {
	group := domain.GroupOffense
	switch position {
	case "D/ST":
		group = domain.GroupDefense
	case "K":
		group = domain.GroupSpecialTeams
	}
	if stats == nil {
		stats = map[string]float64{}
	}
	return domain.PlayerWeekRow{
		Season:          season,
		Week:            week,
		PlayerID:        id,
		Name:            "Player " + id,
		Position:        position,
		Team:            team,
		Group:           group,
		PercentOwned:    domain.Float(50),
		PercentStarted:  domain.Float(25),
		ProjectedPoints: domain.Float(projected),
		Stats:           stats,
	}
}
