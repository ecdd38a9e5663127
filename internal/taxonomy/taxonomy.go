package taxonomy

import (
	"fmt"
	"sort"
)

// Category classifies a feature store column.
type Category string

const (
	CategoryMeta    Category = "META"
	CategoryRating  Category = "RATING"
	CategoryVegas   Category = "VEGAS"
	CategoryTarget  Category = "TARGETS"
	CategoryRanking Category = "RANKING"
	CategoryPoint   Category = "POINT_FEATURES"
	CategorySimple  Category = "SIMPLE_FEATURES"
)

// Side selects the home_ or away_ column of a paired feature.
type Side string

const (
	Home Side = "home"
	Away Side = "away"
)

// Sides lists both sides, home first.
var Sides = []Side{Home, Away}

// Feature is one declared canonical feature.
//
// Paired features have a column per side. Point features additionally split
// into produced (_offense) and allowed (_defense) columns.
type Feature struct {
	Name     string   // canonical name, used as map key in rows
	Source   string   // name inside raw column names
	Category Category
	Paired   bool
}

// Column returns the raw column for an unsplit feature on a side, or the
// bare column for unpaired features.
func (f Feature) Column(side Side) string {
	if !f.Paired {
		return f.Source
	}
	return string(side) + "_" + f.Source
}

// OffenseColumn returns the produced column of a point feature.
func (f Feature) OffenseColumn(side Side) string {
	return f.Column(side) + "_offense"
}

// DefenseColumn returns the allowed column of a point feature.
func (f Feature) DefenseColumn(side Side) string {
	return f.Column(side) + "_defense"
}

// ExpectedColumn is the internal name of the expected average column.
func (f Feature) ExpectedColumn() string {
	return "exavg_" + f.Source
}

// Columns returns every raw column backing the feature.
func (f Feature) Columns() []string {
	switch {
	case !f.Paired:
		return []string{f.Source}
	case f.Category == CategoryPoint:
		return []string{
			f.OffenseColumn(Home), f.DefenseColumn(Home),
			f.OffenseColumn(Away), f.DefenseColumn(Away),
		}
	default:
		return []string{f.Column(Home), f.Column(Away)}
	}
}

func paired(name string, c Category) Feature {
	return Feature{Name: name, Source: name, Category: c, Paired: true}
}

func single(name string, c Category) Feature {
	return Feature{Name: name, Source: name, Category: c}
}

func point(name string) Feature {
	return Feature{Name: name, Source: "avg_" + name, Category: CategoryPoint, Paired: true}
}

// Declared feature sets.
var (
	Meta = []Feature{
		single("season", CategoryMeta),
		single("week", CategoryMeta),
		paired("team", CategoryMeta),
	}

	Ratings = []Feature{
		paired("elo_pre", CategoryRating),
	}

	Vegas = []Feature{
		single("spread_line", CategoryVegas),
		single("total_line", CategoryVegas),
		paired("moneyline", CategoryVegas),
	}

	Targets = []Feature{
		single("actual_home_score", CategoryTarget),
		single("actual_away_score", CategoryTarget),
		single("actual_away_spread", CategoryTarget),
		single("actual_away_team_win", CategoryTarget),
		single("actual_away_team_covered_spread", CategoryTarget),
		single("actual_point_total", CategoryTarget),
	}

	Rankings = []Feature{
		paired("offensive_rank", CategoryRanking),
		paired("defensive_rank", CategoryRanking),
	}

	PointFeatures = []Feature{
		point("points"),
		point("q1_points"),
		point("q2_points"),
		point("q3_points"),
		point("q4_points"),
		point("q5_points"),
		point("carries"),
		point("rushing_yards"),
		point("rushing_tds"),
		point("completions"),
		point("attempts"),
		point("passing_yards"),
		point("passing_tds"),
		point("time_of_possession"),
		point("turnover"),
		point("field_goal_made"),
	}

	SimpleFeatures = []Feature{
		paired("rest_days", CategorySimple),
		paired("win_pct", CategorySimple),
	}
)

// Canonical names used directly by the pipeline.
const (
	FeaturePoints           = "points"
	FeatureTimeOfPossession = "time_of_possession"
)

var registry = func() map[string]Feature {
	m := make(map[string]Feature)
	for _, set := range [][]Feature{Meta, Ratings, Vegas, Targets, Rankings, PointFeatures, SimpleFeatures} {
		for _, f := range set {
			if _, dup := m[f.Name]; dup {
				panic(fmt.Sprintf("taxonomy: feature %q declared twice", f.Name))
			}
			m[f.Name] = f
		}
	}
	return m
}()

// Lookup returns the declared feature with the given canonical name.
func Lookup(name string) (Feature, error) {
	f, ok := registry[name]
	if !ok {
		return Feature{}, &UndeclaredError{Name: name}
	}
	return f, nil
}

// MustLookup is Lookup that panics on undeclared names.
func MustLookup(name string) Feature {
	f, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return f
}

// InCategory returns the declared features of a category.
func InCategory(c Category) []Feature {
	var out []Feature
	for _, f := range registry {
		if f.Category == c {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// GameColumns lists every raw column the event feature store must carry.
func GameColumns() []string {
	var cols []string
	for _, set := range [][]Feature{Meta, Ratings, Vegas, Targets, Rankings, PointFeatures, SimpleFeatures} {
		for _, f := range set {
			cols = append(cols, f.Columns()...)
		}
	}
	return cols
}
