package projections

import (
	"edgestats/internal/taxonomy"
	"edgestats/pkg/contracts/domain"
)

// StatColumns returns the union of stat columns carried by rows, in group
// order OFF, DEF, ST. Rows of different groups have disjoint stats, so
// each record is null outside its own group.
func StatColumns(groups ...domain.PositionGroup) []string {
	present := make(map[domain.PositionGroup]bool, len(groups))
	for _, g := range groups {
		present[g] = true
	}
	var cols []string
	for _, g := range domain.PositionGroups {
		if !present[g] {
			continue
		}
		spec, err := taxonomy.Group(g)
		if err != nil {
			continue
		}
		cols = append(cols, spec.Stats...)
	}
	return cols
}

// WeeklyGroups lists the position groups present in rows.
func WeeklyGroups(rows []domain.PlayerWeekRow) []domain.PositionGroup {
	return distinctGroups(len(rows), func(i int) domain.PositionGroup { return rows[i].Group })
}

// SeasonGroups lists the position groups present in rows.
func SeasonGroups(rows []domain.PlayerSeasonRow) []domain.PositionGroup {
	return distinctGroups(len(rows), func(i int) domain.PositionGroup { return rows[i].Group })
}

func distinctGroups(n int, at func(int) domain.PositionGroup) []domain.PositionGroup {
	seen := make(map[domain.PositionGroup]bool)
	var out []domain.PositionGroup
	for i := 0; i < n; i++ {
		if g := at(i); !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	return out
}

// WeeklyRecords renders the weekly player table.
func WeeklyRecords(rows []domain.PlayerWeekRow) []domain.Record {
	stats := StatColumns(WeeklyGroups(rows)...)
	out := make([]domain.Record, len(rows))
	for i, r := range rows {
		rec := domain.Record{
			{Name: "season", Value: r.Season},
			{Name: "week", Value: r.Week},
			{Name: "player_id", Value: r.PlayerID},
			{Name: "name", Value: r.Name},
			{Name: "position", Value: r.Position},
			{Name: "team", Value: r.Team},
			{Name: "percent_owned", Value: opt(r.PercentOwned)},
			{Name: "percent_started", Value: opt(r.PercentStarted)},
			{Name: "projected_points", Value: opt(r.ProjectedPoints)},
		}
		out[i] = appendStats(rec, stats, r.Stats)
	}
	return out
}

// SeasonRecords renders the season player table.
func SeasonRecords(rows []domain.PlayerSeasonRow) []domain.Record {
	stats := StatColumns(SeasonGroups(rows)...)
	out := make([]domain.Record, len(rows))
	for i, r := range rows {
		rec := domain.Record{
			{Name: "season", Value: r.Season},
			{Name: "player_id", Value: r.PlayerID},
			{Name: "name", Value: r.Name},
			{Name: "position", Value: r.Position},
			{Name: "team", Value: r.Team},
			{Name: "percent_owned", Value: opt(r.PercentOwned)},
			{Name: "percent_started", Value: opt(r.PercentStarted)},
			{Name: "total_points", Value: opt(r.TotalPoints)},
			{Name: "projected_total_points", Value: opt(r.ProjectedTotalPoints)},
			{Name: "avg_points", Value: opt(r.AvgPoints)},
			{Name: "projected_avg_points", Value: opt(r.ProjectedAvgPoints)},
			{Name: "weeks", Value: r.Weeks},
		}
		out[i] = appendStats(rec, stats, r.Stats)
	}
	return out
}

func appendStats(rec domain.Record, cols []string, stats map[string]float64) domain.Record {
	for _, c := range cols {
		var v interface{}
		if x, ok := stats[c]; ok {
			v = x
		}
		rec = append(rec, domain.Field{Name: c, Value: v})
	}
	return rec
}

func opt(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
