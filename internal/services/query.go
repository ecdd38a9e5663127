package services

import (
	"context"
	"sort"

	apierrors "edgestats/internal/errors"
	"edgestats/internal/projections"
	"edgestats/internal/taxonomy"
	"edgestats/pkg/contracts/domain"
)

// TableQuery filters a table. Zero values match everything.
type TableQuery struct {
	Season   int    `validate:"omitempty,min=1920,max=2100"`
	Week     int    `validate:"omitempty,min=1,max=25"`
	Team     string `validate:"omitempty,min=2,max=4,alpha"`
	Position string `validate:"omitempty,oneof=QB RB WR TE K D/ST qb rb wr te k d/st"`
	Mode     string `validate:"omitempty,oneof=weekly season"`
}

// SeasonOptions lists the seasons and weeks available for browsing. The
// defaults point at the latest week of the latest season.
type SeasonOptions struct {
	Seasons       []int         `json:"seasons"`
	Weeks         map[int][]int `json:"weeks"`
	DefaultSeason int           `json:"default_season"`
	DefaultWeek   int           `json:"default_week"`
}

// PlayerView is the player table in one of the two modes.
type PlayerView struct {
	Mode   domain.AggregationMode   `json:"mode"`
	Weekly []domain.PlayerWeekRow   `json:"weekly,omitempty"`
	Season []domain.PlayerSeasonRow `json:"season,omitempty"`
}

// Records renders the view with public column names.
func (v PlayerView) Records() []domain.Record {
	if v.Mode == domain.ModeSeason {
		return projections.SeasonRecords(v.Season)
	}
	return projections.WeeklyRecords(v.Weekly)
}

// GameDetail is one game with the projected players of both teams.
type GameDetail struct {
	Game    domain.HomeAwayRow      `json:"game"`
	Players projections.EventPlayers `json:"players"`
}

// SeasonOptions reports the browsable season/week grid of the default window.
func (s *FeatureService) SeasonOptions(ctx context.Context) (SeasonOptions, error) {
	tables, err := s.LoadFeatureStore(ctx, nil)
	if err != nil {
		return SeasonOptions{}, err
	}

	weeks := make(map[int]map[int]struct{})
	for _, row := range tables.HomeAway {
		if weeks[row.Season] == nil {
			weeks[row.Season] = make(map[int]struct{})
		}
		weeks[row.Season][row.Week] = struct{}{}
	}

	opts := SeasonOptions{Weeks: make(map[int][]int, len(weeks))}
	for season, set := range weeks {
		list := make([]int, 0, len(set))
		for w := range set {
			list = append(list, w)
		}
		sort.Ints(list)
		opts.Weeks[season] = list
		opts.Seasons = append(opts.Seasons, season)
	}
	sort.Ints(opts.Seasons)

	if n := len(opts.Seasons); n > 0 {
		opts.DefaultSeason = opts.Seasons[n-1]
		w := opts.Weeks[opts.DefaultSeason]
		opts.DefaultWeek = w[len(w)-1]
	}
	return opts, nil
}

// Games returns the home/away rows matching q.
func (s *FeatureService) Games(ctx context.Context, q TableQuery) ([]domain.HomeAwayRow, error) {
	tables, err := s.LoadFeatureStore(ctx, nil)
	if err != nil {
		return nil, err
	}
	team := taxonomy.NormalizeTeam(q.Team)
	out := make([]domain.HomeAwayRow, 0)
	for _, row := range tables.HomeAway {
		if q.Season != 0 && row.Season != q.Season {
			continue
		}
		if q.Week != 0 && row.Week != q.Week {
			continue
		}
		if team != "" && row.HomeTeam != team && row.AwayTeam != team {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

// Teams returns the folded rows matching q.
func (s *FeatureService) Teams(ctx context.Context, q TableQuery) ([]domain.FoldedGameRow, error) {
	tables, err := s.LoadFeatureStore(ctx, nil)
	if err != nil {
		return nil, err
	}
	team := taxonomy.NormalizeTeam(q.Team)
	out := make([]domain.FoldedGameRow, 0)
	for _, row := range tables.Folded {
		if q.Season != 0 && row.Season != q.Season {
			continue
		}
		if q.Week != 0 && row.Week != q.Week {
			continue
		}
		if team != "" && row.Team != team {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

// Players returns the player table matching q. Season mode aggregates the
// filtered weekly rows; a week filter does not apply to it.
func (s *FeatureService) Players(ctx context.Context, q TableQuery) (PlayerView, error) {
	tables, err := s.LoadFeatureStore(ctx, nil)
	if err != nil {
		return PlayerView{}, err
	}

	rows := tables.Players
	if q.Season != 0 {
		rows = projections.FilterSeason(rows, q.Season)
	}
	if q.Team != "" {
		rows = projections.FilterTeam(rows, q.Team)
	}
	if q.Position != "" {
		rows = projections.FilterPosition(rows, q.Position)
	}

	if domain.AggregationMode(q.Mode) == domain.ModeSeason {
		return PlayerView{Mode: domain.ModeSeason, Season: projections.AggregateSeason(rows)}, nil
	}
	if q.Week != 0 {
		rows = projections.FilterWeek(rows, q.Week)
	}
	if rows == nil {
		rows = []domain.PlayerWeekRow{}
	}
	return PlayerView{Mode: domain.ModeWeekly, Weekly: rows}, nil
}

// Game returns one home/away row and both rosters ordered by position.
func (s *FeatureService) Game(ctx context.Context, gameID string) (GameDetail, error) {
	tables, err := s.LoadFeatureStore(ctx, nil)
	if err != nil {
		return GameDetail{}, err
	}
	game, ok := tables.Game(gameID)
	if !ok {
		return GameDetail{}, apierrors.NewAppError(apierrors.ErrTypeNotFound, "game "+gameID+" not found", ErrGameNotFound).
			WithContext("game_id", gameID)
	}
	return GameDetail{
		Game:    game,
		Players: projections.ForGame(tables.Players, game.Season, game.Week, game.HomeTeam, game.AwayTeam),
	}, nil
}
