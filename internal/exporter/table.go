package exporter

import (
	"edgestats/internal/dataprocessing"
	"edgestats/internal/projections"
	"edgestats/pkg/contracts/domain"
)

// Sheet and file stem names of the exported tables.
const (
	TableGames   = "games"
	TableTeams   = "teams"
	TablePlayers = "players"
)

// Table is one exportable table.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]interface{}
}

// NewTable takes its columns from the first record. Records are expected to
// share a layout.
func NewTable(name string, records []domain.Record) Table {
	t := Table{Name: name, Rows: make([][]interface{}, 0, len(records))}
	if len(records) > 0 {
		t.Columns = records[0].Columns()
	}
	for _, rec := range records {
		t.Rows = append(t.Rows, rec.Values())
	}
	return t
}

// StringRows renders every cell with FormatValue.
func (t Table) StringRows() [][]string {
	out := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = FormatValue(v)
		}
		out[i] = cells
	}
	return out
}

// FeatureTables converts a pipeline result into the games, teams and
// players tables. mode selects weekly rows or season aggregates for players.
func FeatureTables(tables *domain.FeatureTables, mode domain.AggregationMode) []Table {
	games := make([]domain.Record, len(tables.HomeAway))
	for i, row := range tables.HomeAway {
		games[i] = dataprocessing.HomeAwayRecord(row)
	}
	teams := make([]domain.Record, len(tables.Folded))
	for i, row := range tables.Folded {
		teams[i] = dataprocessing.FoldedRecord(row)
	}

	var players []domain.Record
	if mode == domain.ModeSeason {
		players = projections.SeasonRecords(projections.AggregateSeason(tables.Players))
	} else {
		players = projections.WeeklyRecords(tables.Players)
	}

	return []Table{
		NewTable(TableGames, games),
		NewTable(TableTeams, teams),
		NewTable(TablePlayers, players),
	}
}
