package projections

import (
	"sort"
	"strings"

	"edgestats/internal/taxonomy"
	"edgestats/pkg/contracts/domain"
)

// Filter keeps weekly rows matching a predicate. The input is not modified.
func Filter(rows []domain.PlayerWeekRow, keep func(domain.PlayerWeekRow) bool) []domain.PlayerWeekRow {
	out := make([]domain.PlayerWeekRow, 0, len(rows))
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func FilterSeason(rows []domain.PlayerWeekRow, season int) []domain.PlayerWeekRow {
	return Filter(rows, func(r domain.PlayerWeekRow) bool { return r.Season == season })
}

func FilterWeek(rows []domain.PlayerWeekRow, week int) []domain.PlayerWeekRow {
	return Filter(rows, func(r domain.PlayerWeekRow) bool { return r.Week == week })
}

// FilterTeam matches on the normalized team abbreviation.
func FilterTeam(rows []domain.PlayerWeekRow, team string) []domain.PlayerWeekRow {
	team = taxonomy.NormalizeTeam(team)
	return Filter(rows, func(r domain.PlayerWeekRow) bool { return r.Team == team })
}

func FilterPosition(rows []domain.PlayerWeekRow, position string) []domain.PlayerWeekRow {
	position = strings.ToUpper(strings.TrimSpace(position))
	return Filter(rows, func(r domain.PlayerWeekRow) bool { return r.Position == position })
}

// Weeks returns the distinct weeks of a season in ascending order.
func Weeks(rows []domain.PlayerWeekRow, season int) []int {
	seen := make(map[int]bool)
	var weeks []int
	for _, r := range rows {
		if r.Season == season && !seen[r.Week] {
			seen[r.Week] = true
			weeks = append(weeks, r.Week)
		}
	}
	sort.Ints(weeks)
	return weeks
}
