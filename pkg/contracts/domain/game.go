package domain

import (
	"fmt"
)

// GameRow is one scheduled regular season game as published by the
// event feature store. Outcome fields are nil for games not yet played.
type GameRow struct {
	Season  int     `json:"season" validate:"required,min=1920"`
	Week    int     `json:"week" validate:"required,min=1,max=23"`
	Home    Side    `json:"home"`
	Away    Side    `json:"away"`
	Vegas   Vegas   `json:"vegas"`
	Outcome Outcome `json:"outcome"`
}

// GameID returns the deterministic key {season}_{week}_{away}_{home}.
func (g GameRow) GameID() string {
	return FormatGameID(g.Season, g.Week, g.Away.Team, g.Home.Team)
}

// FormatGameID builds a game key from its parts.
func FormatGameID(season, week int, awayTeam, homeTeam string) string {
	return fmt.Sprintf("%d_%d_%s_%s", season, week, awayTeam, homeTeam)
}

// Side holds one team's columns of a GameRow with the home_/away_ prefix removed.
type Side struct {
	Team          string             `json:"team" validate:"required"`
	Rating        *float64           `json:"elo_pre"`
	OffensiveRank *float64           `json:"offensive_rank,omitempty"`
	DefensiveRank *float64           `json:"defensive_rank,omitempty"`
	Offense       map[string]float64 `json:"offense,omitempty"` // point feature -> produced
	Defense       map[string]float64 `json:"defense,omitempty"` // point feature -> allowed
	Simple        map[string]float64 `json:"simple,omitempty"`
}

// Vegas carries the betting market columns. SpreadLine is quoted from the
// away team's perspective.
type Vegas struct {
	SpreadLine    *float64 `json:"spread_line,omitempty"`
	TotalLine     *float64 `json:"total_line,omitempty"`
	HomeMoneyline *float64 `json:"home_moneyline,omitempty"`
	AwayMoneyline *float64 `json:"away_moneyline,omitempty"`
}

// Outcome holds the authoritative away-perspective targets.
type Outcome struct {
	HomeScore             *float64 `json:"actual_home_score,omitempty"`
	AwayScore             *float64 `json:"actual_away_score,omitempty"`
	AwaySpread            *float64 `json:"actual_away_spread,omitempty"`
	AwayTeamWin           *bool    `json:"actual_away_team_win,omitempty"`
	AwayTeamCoveredSpread *bool    `json:"actual_away_team_covered_spread,omitempty"`
	PointTotal            *float64 `json:"actual_point_total,omitempty"`
}

// FoldInput is a GameRow with the home-perspective targets derived from the
// away-perspective ones. Fold only reshapes FoldInput values.
type FoldInput struct {
	GameRow
	GameID                      string
	AwaySpreadLine              *float64
	HomeSpreadLine              *float64
	ActualHomeSpread            *float64
	ActualAwayTeamWin           *bool
	ActualHomeTeamWin           *bool
	ActualHomeTeamCoveredSpread *bool
}

// TeamWeekRow is one side of a game seen from that team.
type TeamWeekRow struct {
	Team     string             `json:"team"`
	Opponent string             `json:"opponent"`
	Season   int                `json:"season"`
	Week     int                `json:"week"`
	IsHome   bool               `json:"is_home"`
	Offense  map[string]float64 `json:"offense"`
	Defense  map[string]float64 `json:"defense"`
	Simple   map[string]float64 `json:"simple,omitempty"`
}

// TeamWeekKey identifies a team's game in a week.
type TeamWeekKey struct {
	Team   string
	Season int
	Week   int
}

// Key returns the join key of the row.
func (r TeamWeekRow) Key() TeamWeekKey {
	return TeamWeekKey{Team: r.Team, Season: r.Season, Week: r.Week}
}

// ExpectedAverageRow carries the opponent-adjusted expectation for every
// point feature that has enough history. Missing keys mean undefined.
type ExpectedAverageRow struct {
	Team     string             `json:"team"`
	Opponent string             `json:"opponent"`
	Season   int                `json:"season"`
	Week     int                `json:"week"`
	IsHome   bool               `json:"is_home"`
	Expected map[string]float64 `json:"expected"`
	Simple   map[string]float64 `json:"simple,omitempty"`
}

// Key returns the join key of the row.
func (r ExpectedAverageRow) Key() TeamWeekKey {
	return TeamWeekKey{Team: r.Team, Season: r.Season, Week: r.Week}
}

// HomeAwayRow is the game-keyed output table row.
type HomeAwayRow struct {
	GameID                      string             `json:"game_id"`
	Season                      int                `json:"season"`
	Week                        int                `json:"week"`
	HomeTeam                    string             `json:"home_team"`
	AwayTeam                    string             `json:"away_team"`
	HomeRating                  int                `json:"home_rating"`
	AwayRating                  int                `json:"away_rating"`
	Vegas                       Vegas              `json:"vegas"`
	ActualHomePoints            *float64           `json:"actual_home_points"`
	ActualAwayPoints            *float64           `json:"actual_away_points"`
	ActualHomeSpread            *float64           `json:"actual_home_spread"`
	ActualAwaySpread            *float64           `json:"actual_away_spread"`
	ActualHomeTeamWin           *bool              `json:"actual_home_team_win"`
	ActualAwayTeamWin           *bool              `json:"actual_away_team_win"`
	ActualHomeTeamCoveredSpread *bool              `json:"actual_home_team_covered_spread"`
	ActualAwayTeamCoveredSpread *bool              `json:"actual_away_team_covered_spread"`
	ActualPointTotal            *float64           `json:"actual_point_total"`
	HomeOffensiveRank           *float64           `json:"home_offensive_rank"`
	HomeDefensiveRank           *float64           `json:"home_defensive_rank"`
	AwayOffensiveRank           *float64           `json:"away_offensive_rank"`
	AwayDefensiveRank           *float64           `json:"away_defensive_rank"`
	HomeExpected                map[string]float64 `json:"home_expected"`
	AwayExpected                map[string]float64 `json:"away_expected"`
	ExpectedSpread              *float64           `json:"expected_spread"`
	ExpectedTotal               *float64           `json:"expected_total"`
}

// FoldedGameRow is one team's view of a game with the home/away split removed.
type FoldedGameRow struct {
	GameID                  string             `json:"game_id"`
	Team                    string             `json:"team"`
	Opponent                string             `json:"opponent"`
	Season                  int                `json:"season"`
	Week                    int                `json:"week"`
	IsHome                  bool               `json:"is_home"`
	Rating                  int                `json:"rating"`
	OpponentRating          int                `json:"opponent_rating"`
	SpreadLine              *float64           `json:"spread_line"`
	TotalLine               *float64           `json:"total_line"`
	Moneyline               *float64           `json:"moneyline"`
	ActualPoints            *float64           `json:"actual_points"`
	OpponentActualPoints    *float64           `json:"opponent_actual_points"`
	ActualSpread            *float64           `json:"actual_spread"`
	ActualTeamWin           *bool              `json:"actual_team_win"`
	ActualTeamCoveredSpread *bool              `json:"actual_team_covered_spread"`
	ActualPointTotal        *float64           `json:"actual_point_total"`
	OffensiveRank           *float64           `json:"offensive_rank"`
	DefensiveRank           *float64           `json:"defensive_rank"`
	OpponentOffensiveRank   *float64           `json:"opponent_offensive_rank"`
	OpponentDefensiveRank   *float64           `json:"opponent_defensive_rank"`
	Expected                map[string]float64 `json:"expected"`
}

// Key returns the join key of the row.
func (r FoldedGameRow) Key() TeamWeekKey {
	return TeamWeekKey{Team: r.Team, Season: r.Season, Week: r.Week}
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }
