package featurestore

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"edgestats/internal/errors"
	"edgestats/internal/taxonomy"
	"edgestats/pkg/contracts/domain"
)

// nullTokens are cell values read as missing.
var nullTokens = map[string]struct{}{
	"": {}, "NA": {}, "<NA>": {}, "nan": {}, "NaN": {}, "null": {}, "None": {},
}

type table struct {
	name  string
	index map[string]int
	rows  [][]string
}

// readTable reads a CSV table and checks its header against required.
func readTable(name string, r io.Reader, required []string) (*table, error) {
	records, err := gocsv.LazyCSVReader(r).ReadAll()
	if err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("read %s csv", name), err)
	}
	if len(records) == 0 {
		return nil, errors.NewSchemaError(fmt.Sprintf("%s table is empty", name),
			&taxonomy.SchemaError{Table: name, Missing: required})
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	if err := taxonomy.ValidateHeader(name, header, required); err != nil {
		return nil, errors.NewSchemaError(fmt.Sprintf("%s table does not match the declared columns", name), err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}
	return &table{name: name, index: index, rows: records[1:]}, nil
}

// cursor reads typed cells from one row and keeps the first error.
type cursor struct {
	t    *table
	row  []string
	line int
	err  error
}

func (c *cursor) raw(col string) (string, bool) {
	i, ok := c.t.index[col]
	if !ok {
		// Required columns are validated up front, so this is a taxonomy bug.
		panic(&taxonomy.UndeclaredError{Name: col})
	}
	if i >= len(c.row) {
		return "", false
	}
	v := strings.TrimSpace(c.row[i])
	if _, null := nullTokens[v]; null {
		return "", false
	}
	return v, true
}

func (c *cursor) fail(col, value string, cause error) {
	if c.err == nil {
		c.err = errors.NewParsingError(
			fmt.Sprintf("%s line %d: column %s: bad value %q", c.t.name, c.line, col, value), cause).
			WithContext("line", c.line).
			WithContext("column", col)
	}
}

func (c *cursor) str(col string) string {
	v, _ := c.raw(col)
	return v
}

func (c *cursor) float(col string) *float64 {
	v, ok := c.raw(col)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		c.fail(col, v, err)
		return nil
	}
	return &f
}

func (c *cursor) integer(col string) int {
	f := c.float(col)
	if f == nil {
		if c.err == nil {
			c.fail(col, "", fmt.Errorf("value required"))
		}
		return 0
	}
	return int(*f)
}

func (c *cursor) boolean(col string) *bool {
	v, ok := c.raw(col)
	if !ok {
		return nil
	}
	switch strings.ToLower(v) {
	case "1", "1.0", "true", "t", "yes":
		return domain.Bool(true)
	case "0", "0.0", "false", "f", "no":
		return domain.Bool(false)
	}
	c.fail(col, v, fmt.Errorf("not a boolean"))
	return nil
}

func (c *cursor) values(into map[string]float64, name, col string) {
	if v := c.float(col); v != nil {
		into[name] = *v
	}
}

func column(feature string, side taxonomy.Side) string {
	return taxonomy.MustLookup(feature).Column(side)
}

// DecodeGames reads an event feature store table.
func DecodeGames(r io.Reader) ([]domain.GameRow, error) {
	t, err := readTable(string(KindGames), r, taxonomy.GameColumns())
	if err != nil {
		return nil, err
	}

	games := make([]domain.GameRow, 0, len(t.rows))
	for i, row := range t.rows {
		c := &cursor{t: t, row: row, line: i + 2}
		g := domain.GameRow{
			Season: c.integer(column("season", "")),
			Week:   c.integer(column("week", "")),
			Home:   decodeSide(c, taxonomy.Home),
			Away:   decodeSide(c, taxonomy.Away),
			Vegas: domain.Vegas{
				SpreadLine:    c.float(column("spread_line", "")),
				TotalLine:     c.float(column("total_line", "")),
				HomeMoneyline: c.float(column("moneyline", taxonomy.Home)),
				AwayMoneyline: c.float(column("moneyline", taxonomy.Away)),
			},
			Outcome: domain.Outcome{
				HomeScore:             c.float(column("actual_home_score", "")),
				AwayScore:             c.float(column("actual_away_score", "")),
				AwaySpread:            c.float(column("actual_away_spread", "")),
				AwayTeamWin:           c.boolean(column("actual_away_team_win", "")),
				AwayTeamCoveredSpread: c.boolean(column("actual_away_team_covered_spread", "")),
				PointTotal:            c.float(column("actual_point_total", "")),
			},
		}
		if c.err != nil {
			return nil, c.err
		}
		games = append(games, g)
	}
	return games, nil
}

func decodeSide(c *cursor, side taxonomy.Side) domain.Side {
	s := domain.Side{
		Team:          c.str(column("team", side)),
		Rating:        c.float(column("elo_pre", side)),
		OffensiveRank: c.float(column("offensive_rank", side)),
		DefensiveRank: c.float(column("defensive_rank", side)),
		Offense:       make(map[string]float64, len(taxonomy.PointFeatures)),
		Defense:       make(map[string]float64, len(taxonomy.PointFeatures)),
		Simple:        make(map[string]float64, len(taxonomy.SimpleFeatures)),
	}
	for _, f := range taxonomy.PointFeatures {
		c.values(s.Offense, f.Name, f.OffenseColumn(side))
		c.values(s.Defense, f.Name, f.DefenseColumn(side))
	}
	for _, f := range taxonomy.SimpleFeatures {
		c.values(s.Simple, f.Name, f.Column(side))
	}
	return s
}

// DecodePlayers reads a weekly projection table and keeps the rows of one
// position group. Team abbreviations are normalized.
func DecodePlayers(r io.Reader, group domain.PositionGroup) ([]domain.PlayerWeekRow, error) {
	spec, err := taxonomy.Group(group)
	if err != nil {
		return nil, errors.NewConfigError("unknown position group", err)
	}
	required, _ := taxonomy.PlayerColumns(group)

	t, err := readTable(string(KindPlayers), r, required)
	if err != nil {
		return nil, err
	}

	players := make([]domain.PlayerWeekRow, 0, len(t.rows))
	for i, row := range t.rows {
		c := &cursor{t: t, row: row, line: i + 2}
		position := c.str("position")
		if !spec.Includes(position) {
			continue
		}

		p := domain.PlayerWeekRow{
			Season:               c.integer("season"),
			Week:                 c.integer("week"),
			PlayerID:             c.str("player_id"),
			Name:                 c.str("name"),
			Position:             position,
			Team:                 taxonomy.NormalizeTeam(c.str("team")),
			Group:                group,
			PercentOwned:         c.float("percent_owned"),
			PercentStarted:       c.float("percent_started"),
			ProjectedPoints:      c.float("projected_points"),
			TotalPoints:          c.float("total_points"),
			ProjectedTotalPoints: c.float("projected_total_points"),
			AvgPoints:            c.float("avg_points"),
			ProjectedAvgPoints:   c.float("projected_avg_points"),
			Stats:                make(map[string]float64, len(spec.Stats)),
		}
		for _, col := range spec.Stats {
			c.values(p.Stats, col, col)
		}
		if c.err != nil {
			return nil, c.err
		}
		players = append(players, p)
	}
	return players, nil
}

// EncodeGames writes games in the event feature store layout, the inverse
// of DecodeGames.
func EncodeGames(w io.Writer, games []domain.GameRow) error {
	out := gocsv.NewSafeCSVWriter(csv.NewWriter(w))
	header := taxonomy.GameColumns()
	if err := out.Write(header); err != nil {
		return errors.NewStorageError("write games header", err)
	}

	for _, g := range games {
		cells := gameCells(g)
		record := make([]string, len(header))
		for i, col := range header {
			record[i] = cells[col]
		}
		if err := out.Write(record); err != nil {
			return errors.NewStorageError("write games row", err)
		}
	}

	out.Flush()
	if err := out.Error(); err != nil {
		return errors.NewStorageError("flush games csv", err)
	}
	return nil
}

func gameCells(g domain.GameRow) map[string]string {
	cells := map[string]string{
		column("season", ""):                          strconv.Itoa(g.Season),
		column("week", ""):                            strconv.Itoa(g.Week),
		column("spread_line", ""):                     formatFloat(g.Vegas.SpreadLine),
		column("total_line", ""):                      formatFloat(g.Vegas.TotalLine),
		column("moneyline", taxonomy.Home):            formatFloat(g.Vegas.HomeMoneyline),
		column("moneyline", taxonomy.Away):            formatFloat(g.Vegas.AwayMoneyline),
		column("actual_home_score", ""):               formatFloat(g.Outcome.HomeScore),
		column("actual_away_score", ""):               formatFloat(g.Outcome.AwayScore),
		column("actual_away_spread", ""):              formatFloat(g.Outcome.AwaySpread),
		column("actual_away_team_win", ""):            formatBool(g.Outcome.AwayTeamWin),
		column("actual_away_team_covered_spread", ""): formatBool(g.Outcome.AwayTeamCoveredSpread),
		column("actual_point_total", ""):              formatFloat(g.Outcome.PointTotal),
	}
	for side, s := range map[taxonomy.Side]domain.Side{taxonomy.Home: g.Home, taxonomy.Away: g.Away} {
		cells[column("team", side)] = s.Team
		cells[column("elo_pre", side)] = formatFloat(s.Rating)
		cells[column("offensive_rank", side)] = formatFloat(s.OffensiveRank)
		cells[column("defensive_rank", side)] = formatFloat(s.DefensiveRank)
		for _, f := range taxonomy.PointFeatures {
			cells[f.OffenseColumn(side)] = formatValue(s.Offense, f.Name)
			cells[f.DefenseColumn(side)] = formatValue(s.Defense, f.Name)
		}
		for _, f := range taxonomy.SimpleFeatures {
			cells[f.Column(side)] = formatValue(s.Simple, f.Name)
		}
	}
	return cells
}

// EncodePlayers writes player rows of any groups as one projection table,
// the inverse of DecodePlayers.
func EncodePlayers(w io.Writer, players []domain.PlayerWeekRow) error {
	out := gocsv.NewSafeCSVWriter(csv.NewWriter(w))
	header := taxonomy.AllPlayerColumns()
	if err := out.Write(header); err != nil {
		return errors.NewStorageError("write players header", err)
	}

	for _, p := range players {
		cells := map[string]string{
			"season":                 strconv.Itoa(p.Season),
			"week":                   strconv.Itoa(p.Week),
			"player_id":              p.PlayerID,
			"name":                   p.Name,
			"position":               p.Position,
			"team":                   p.Team,
			"percent_owned":          formatFloat(p.PercentOwned),
			"percent_started":        formatFloat(p.PercentStarted),
			"projected_points":       formatFloat(p.ProjectedPoints),
			"total_points":           formatFloat(p.TotalPoints),
			"projected_total_points": formatFloat(p.ProjectedTotalPoints),
			"avg_points":             formatFloat(p.AvgPoints),
			"projected_avg_points":   formatFloat(p.ProjectedAvgPoints),
		}
		for col := range p.Stats {
			cells[col] = formatValue(p.Stats, col)
		}
		record := make([]string, len(header))
		for i, col := range header {
			record[i] = cells[col]
		}
		if err := out.Write(record); err != nil {
			return errors.NewStorageError("write players row", err)
		}
	}

	out.Flush()
	if err := out.Error(); err != nil {
		return errors.NewStorageError("flush players csv", err)
	}
	return nil
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatValue(m map[string]float64, key string) string {
	v, ok := m[key]
	if !ok {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatBool(v *bool) string {
	switch {
	case v == nil:
		return ""
	case *v:
		return "1"
	default:
		return "0"
	}
}
