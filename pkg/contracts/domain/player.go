package domain

import (
	"fmt"
	"strings"
)

// PositionGroup selects the statistical column set of a player row.
type PositionGroup string

const (
	GroupOffense      PositionGroup = "OFF"
	GroupDefense      PositionGroup = "DEF"
	GroupSpecialTeams PositionGroup = "ST"
)

// PositionGroups lists the groups in concatenation order.
var PositionGroups = []PositionGroup{GroupOffense, GroupDefense, GroupSpecialTeams}

// ParsePositionGroup parses OFF, DEF or ST (case insensitive).
func ParsePositionGroup(s string) (PositionGroup, error) {
	g := PositionGroup(strings.ToUpper(strings.TrimSpace(s)))
	switch g {
	case GroupOffense, GroupDefense, GroupSpecialTeams:
		return g, nil
	}
	return "", fmt.Errorf("group must be one of [OFF DEF ST], got %q", s)
}

// AggregationMode selects weekly rows or per-season sums.
type AggregationMode string

const (
	ModeWeekly AggregationMode = "weekly"
	ModeSeason AggregationMode = "season"
)

// PlayerWeekRow is one player's projection for a week.
type PlayerWeekRow struct {
	Season               int                `json:"season"`
	Week                 int                `json:"week"`
	PlayerID             string             `json:"player_id"`
	Name                 string             `json:"name"`
	Position             string             `json:"position"`
	Team                 string             `json:"team"`
	Group                PositionGroup      `json:"group"`
	PercentOwned         *float64           `json:"percent_owned"`
	PercentStarted       *float64           `json:"percent_started"`
	ProjectedPoints      *float64           `json:"projected_points"`
	TotalPoints          *float64           `json:"-"`
	ProjectedTotalPoints *float64           `json:"-"`
	AvgPoints            *float64           `json:"-"`
	ProjectedAvgPoints   *float64           `json:"-"`
	Stats                map[string]float64 `json:"stats"`
}

// PlayerSeasonRow is a player's season: first seen meta values and summed stats.
type PlayerSeasonRow struct {
	Season               int                `json:"season"`
	PlayerID             string             `json:"player_id"`
	Name                 string             `json:"name"`
	Position             string             `json:"position"`
	Team                 string             `json:"team"`
	Group                PositionGroup      `json:"group"`
	PercentOwned         *float64           `json:"percent_owned"`
	PercentStarted       *float64           `json:"percent_started"`
	TotalPoints          *float64           `json:"total_points"`
	ProjectedTotalPoints *float64           `json:"projected_total_points"`
	AvgPoints            *float64           `json:"avg_points"`
	ProjectedAvgPoints   *float64           `json:"projected_avg_points"`
	Weeks                int                `json:"weeks"`
	Stats                map[string]float64 `json:"stats"`
}

// PlayerFetchFailure records a season/group slice that could not be loaded.
type PlayerFetchFailure struct {
	Season int           `json:"season"`
	Group  PositionGroup `json:"group"`
	Reason string        `json:"reason"`
}
