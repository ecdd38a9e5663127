package dataprocessing

import (
	"fmt"

	"edgestats/internal/taxonomy"
	"edgestats/pkg/contracts/domain"
)

// BlendMethod selects how a team's own average and its opponent's allowed
// average are combined.
type BlendMethod string

const (
	// BlendMean is OwnWeight*own + (1-OwnWeight)*opponent_allowed.
	BlendMean BlendMethod = "mean"
	// BlendLeagueAdjusted is own * opponent_allowed / league_allowed.
	BlendLeagueAdjusted BlendMethod = "league_adjusted"
)

// Blend configures the expected average combination.
type Blend struct {
	Method    BlendMethod `yaml:"method" validate:"omitempty,oneof=mean league_adjusted"`
	OwnWeight float64     `yaml:"own_weight" validate:"gte=0,lte=1"`
}

// DefaultBlend weighs own offense and opponent defense equally.
func DefaultBlend() Blend {
	return Blend{Method: BlendMean, OwnWeight: 0.5}
}

// Validate checks the blend parameters.
func (b Blend) Validate() error {
	switch b.Method {
	case BlendMean, BlendLeagueAdjusted:
	default:
		return fmt.Errorf("unknown blend method %q", b.Method)
	}
	if b.OwnWeight < 0 || b.OwnWeight > 1 {
		return fmt.Errorf("own weight %v outside [0, 1]", b.OwnWeight)
	}
	return nil
}

// Combine blends the three prior-week averages into one expectation.
func (b Blend) Combine(own, oppAllowed, leagueAllowed float64) float64 {
	if b.Method == BlendLeagueAdjusted {
		if leagueAllowed == 0 {
			return own
		}
		return own * oppAllowed / leagueAllowed
	}
	return b.OwnWeight*own + (1-b.OwnWeight)*oppAllowed
}

// ExpectedAverager builds opponent-adjusted expectations for every point
// feature. For a team T facing O in week w of season s:
//
//	own    = mean of T's produced values in s, weeks < w
//	opp    = mean of O's allowed values in s, weeks < w
//	league = mean of every team's allowed values in s, weeks < w
//
// A feature is undefined (absent) when own or opp has no history. Weeks
// at or after w never contribute, so later data cannot change a value.
type ExpectedAverager struct {
	blend    Blend
	features []string
}

// NewExpectedAverager creates an averager over all declared point features.
func NewExpectedAverager(blend Blend) *ExpectedAverager {
	features := make([]string, len(taxonomy.PointFeatures))
	for i, f := range taxonomy.PointFeatures {
		features[i] = f.Name
	}
	return &ExpectedAverager{blend: blend, features: features}
}

type seasonTeam struct {
	season int
	team   string
}

type seasonWeek struct {
	season int
	week   int
}

// Build returns one expected row per input row, in input order.
func (e *ExpectedAverager) Build(rows []domain.TeamWeekRow) []domain.ExpectedAverageRow {
	history := make(map[seasonTeam][]domain.TeamWeekRow)
	bySeason := make(map[int][]domain.TeamWeekRow)
	for _, r := range rows {
		k := seasonTeam{r.Season, r.Team}
		history[k] = append(history[k], r)
		bySeason[r.Season] = append(bySeason[r.Season], r)
	}

	leagueCache := make(map[seasonWeek]map[string]float64)
	league := func(season, week int) map[string]float64 {
		k := seasonWeek{season, week}
		if m, ok := leagueCache[k]; ok {
			return m
		}
		m := e.priorMeans(bySeason[season], week, func(r domain.TeamWeekRow) map[string]float64 { return r.Defense })
		leagueCache[k] = m
		return m
	}

	out := make([]domain.ExpectedAverageRow, 0, len(rows))
	for _, r := range rows {
		own := e.priorMeans(history[seasonTeam{r.Season, r.Team}], r.Week, offense)
		opp := e.priorMeans(history[seasonTeam{r.Season, r.Opponent}], r.Week, defense)

		var lg map[string]float64
		if e.blend.Method == BlendLeagueAdjusted {
			lg = league(r.Season, r.Week)
		}

		expected := make(map[string]float64, len(e.features))
		for _, f := range e.features {
			o, ok := own[f]
			if !ok {
				continue
			}
			a, ok := opp[f]
			if !ok {
				continue
			}
			expected[f] = e.blend.Combine(o, a, lg[f])
		}

		out = append(out, domain.ExpectedAverageRow{
			Team:     r.Team,
			Opponent: r.Opponent,
			Season:   r.Season,
			Week:     r.Week,
			IsHome:   r.IsHome,
			Expected: expected,
			Simple:   copyValues(r.Simple),
		})
	}
	return out
}

func offense(r domain.TeamWeekRow) map[string]float64 { return r.Offense }
func defense(r domain.TeamWeekRow) map[string]float64 { return r.Defense }

// priorMeans averages each feature over rows with week < before. Missing
// values are skipped, not counted as zero.
func (e *ExpectedAverager) priorMeans(rows []domain.TeamWeekRow, before int, pick func(domain.TeamWeekRow) map[string]float64) map[string]float64 {
	sums := make(map[string]float64, len(e.features))
	counts := make(map[string]int, len(e.features))
	for _, r := range rows {
		if r.Week >= before {
			continue
		}
		values := pick(r)
		for _, f := range e.features {
			if v, ok := values[f]; ok {
				sums[f] += v
				counts[f]++
			}
		}
	}

	means := make(map[string]float64, len(sums))
	for f, s := range sums {
		means[f] = s / float64(counts[f])
	}
	return means
}

// ExpectedIndex maps (team, season, week) onto the expected row. The first
// row wins when a key repeats.
func ExpectedIndex(rows []domain.ExpectedAverageRow) map[domain.TeamWeekKey]domain.ExpectedAverageRow {
	idx := make(map[domain.TeamWeekKey]domain.ExpectedAverageRow, len(rows))
	for _, r := range rows {
		if _, ok := idx[r.Key()]; !ok {
			idx[r.Key()] = r
		}
	}
	return idx
}
