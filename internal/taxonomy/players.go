package taxonomy

import (
	"edgestats/pkg/contracts/domain"
)

// Player projection meta columns.
var (
	PlayerWeeklyMeta = []string{
		"season", "week", "player_id", "name", "position", "team",
		"percent_owned", "percent_started", "projected_points",
	}

	PlayerSeasonMeta = []string{
		"season", "player_id", "name", "position", "team",
		"percent_owned", "percent_started", "total_points",
		"projected_total_points", "avg_points", "projected_avg_points",
	}
)

// PositionOrder is the display order of positions inside a team.
var PositionOrder = []string{"QB", "RB", "WR", "TE", "K", "D/ST"}

var offensiveStats = []string{
	"projected_rushing_attempts", "projected_rushing_yards",
	"projected_rushing_touchdowns", "projected_rushing2_pt_conversions",
	"projected_rushing40_plus_yard_td", "projected_rushing50_plus_yard_td",
	"projected_rushing100_to199_yard_game", "projected_rushing200_plus_yard_game",
	"projected_rushing_yards_per_attempt", "projected_receiving_yards",
	"projected_receiving_touchdowns", "projected_receiving2_pt_conversions",
	"projected_receiving40_plus_yard_td", "projected_receiving50_plus_yard_td",
	"projected_receiving_receptions", "projected_receiving100_to199_yard_game",
	"projected_receiving200_plus_yard_game", "projected_receiving_targets",
	"projected_receiving_yards_per_reception", "projected_2_pt_conversions",
	"projected_fumbles", "projected_lost_fumbles", "projected_turnovers",
	"projected_passing_attempts", "projected_passing_completions",
	"projected_passing_yards", "projected_passing_touchdowns",
	"projected_passing_interceptions", "projected_passing_completion_percentage",
}

var defensiveStats = []string{
	"projected_defensive_solo_tackles", "projected_defensive_total_tackles",
	"projected_defensive_interceptions", "projected_defensive_fumbles",
	"projected_defensive_blocked_kicks", "projected_defensive_safeties",
	"projected_defensive_sacks", "projected_defensive_touchdowns",
	"projected_defensive_forced_fumbles", "projected_defensive_passes_defensed",
	"projected_defensive_points_allowed", "projected_defensive_yards_allowed",
	"projected_defensive_assisted_tackles",
}

var specialTeamsStats = []string{
	"projected_made_field_goals", "projected_attempted_field_goals",
	"projected_missed_field_goals", "projected_made_extra_points",
	"projected_attempted_extra_points", "projected_missed_extra_points",
	"projected_kickoff_return_touchdowns", "projected_kickoff_return_yards",
	"projected_punt_return_touchdowns", "projected_punt_return_yards",
	"projected_punts_returned", "projected_made_field_goals_from50_plus",
	"projected_attempted_field_goals_from50_plus",
	"projected_made_field_goals_from40_to49",
	"projected_attempted_field_goals_from40_to49",
	"projected_made_field_goals_from_under40",
	"projected_attempted_field_goals_from_under40",
}

// GroupSpec describes the positions and stat columns of a position group.
type GroupSpec struct {
	Group     domain.PositionGroup
	Positions []string
	Stats     []string
}

var groups = map[domain.PositionGroup]GroupSpec{
	domain.GroupOffense:      {Group: domain.GroupOffense, Positions: []string{"QB", "RB", "WR", "TE"}, Stats: offensiveStats},
	domain.GroupDefense:      {Group: domain.GroupDefense, Positions: []string{"D/ST"}, Stats: defensiveStats},
	domain.GroupSpecialTeams: {Group: domain.GroupSpecialTeams, Positions: []string{"K"}, Stats: specialTeamsStats},
}

// Group returns the declared spec of a position group.
func Group(g domain.PositionGroup) (GroupSpec, error) {
	spec, ok := groups[g]
	if !ok {
		return GroupSpec{}, &UndeclaredError{Name: string(g)}
	}
	return spec, nil
}

// Includes reports whether the group covers a position.
func (s GroupSpec) Includes(position string) bool {
	for _, p := range s.Positions {
		if p == position {
			return true
		}
	}
	return false
}

// PlayerColumns lists the raw projection columns a group fetch needs.
func PlayerColumns(g domain.PositionGroup) ([]string, error) {
	spec, err := Group(g)
	if err != nil {
		return nil, err
	}
	cols := make([]string, 0, len(PlayerWeeklyMeta)+4+len(spec.Stats))
	cols = append(cols, PlayerWeeklyMeta...)
	for _, c := range PlayerSeasonMeta {
		if !contains(cols, c) {
			cols = append(cols, c)
		}
	}
	return append(cols, spec.Stats...), nil
}

// GroupOfPosition returns the group a position belongs to.
func GroupOfPosition(position string) (domain.PositionGroup, bool) {
	for _, g := range domain.PositionGroups {
		if groups[g].Includes(position) {
			return g, true
		}
	}
	return "", false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// AllPlayerColumns is the union of every group's columns, in group order.
// A table with this header serves a fetch of any group.
func AllPlayerColumns() []string {
	var cols []string
	for _, g := range domain.PositionGroups {
		spec := groups[g]
		for _, c := range PlayerWeeklyMeta {
			if !contains(cols, c) {
				cols = append(cols, c)
			}
		}
		for _, c := range PlayerSeasonMeta {
			if !contains(cols, c) {
				cols = append(cols, c)
			}
		}
		for _, c := range spec.Stats {
			if !contains(cols, c) {
				cols = append(cols, c)
			}
		}
	}
	return cols
}
