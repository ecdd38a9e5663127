package main

import (
	"context"
	"log/slog"
	"sync"

	"edgestats/internal/featurestore"
	"edgestats/pkg/contracts/domain"
)

// mirrorProvider copies every fetched game and player table into a local
// directory so later runs can read it with feature_store.local_dir.
type mirrorProvider struct {
	featurestore.Provider
	mirror *featurestore.DirProvider
	logger *slog.Logger

	// Player groups share one file per season; the file is rewritten with
	// every group fetched so far.
	mu      sync.Mutex
	players map[int]map[domain.PositionGroup][]domain.PlayerWeekRow
}

func newMirrorProvider(p featurestore.Provider, mirror *featurestore.DirProvider, logger *slog.Logger) *mirrorProvider {
	return &mirrorProvider{
		Provider: p,
		mirror:   mirror,
		logger:   logger,
		players:  make(map[int]map[domain.PositionGroup][]domain.PlayerWeekRow),
	}
}

// FetchGameFeatures fetches from the wrapped provider. A failed mirror
// write is logged and does not fail the fetch.
func (m *mirrorProvider) FetchGameFeatures(ctx context.Context, season int) ([]domain.GameRow, error) {
	games, err := m.Provider.FetchGameFeatures(ctx, season)
	if err != nil {
		return nil, err
	}
	path, werr := m.mirror.WriteGames(season, games)
	if werr != nil {
		m.logger.WarnContext(ctx, "failed to mirror game table",
			slog.Int("season", season),
			slog.String("error", werr.Error()))
		return games, nil
	}
	m.logger.DebugContext(ctx, "mirrored game table",
		slog.Int("season", season),
		slog.String("path", path))
	return games, nil
}

// FetchPlayerProjections fetches one group and rewrites the season's player
// file with all groups seen so far. Mirror failures only log.
func (m *mirrorProvider) FetchPlayerProjections(ctx context.Context, season int, group domain.PositionGroup) ([]domain.PlayerWeekRow, error) {
	rows, err := m.Provider.FetchPlayerProjections(ctx, season, group)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	seen, ok := m.players[season]
	if !ok {
		seen = make(map[domain.PositionGroup][]domain.PlayerWeekRow)
		m.players[season] = seen
	}
	seen[group] = rows

	var all []domain.PlayerWeekRow
	for _, g := range domain.PositionGroups {
		all = append(all, seen[g]...)
	}
	path, werr := m.mirror.WritePlayers(season, all)
	if werr != nil {
		m.logger.WarnContext(ctx, "failed to mirror player table",
			slog.Int("season", season),
			slog.String("group", string(group)),
			slog.String("error", werr.Error()))
		return rows, nil
	}
	m.logger.DebugContext(ctx, "mirrored player table",
		slog.Int("season", season),
		slog.String("group", string(group)),
		slog.String("path", path))
	return rows, nil
}
