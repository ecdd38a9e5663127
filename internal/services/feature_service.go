package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"edgestats/internal/cache"
	"edgestats/internal/config"
	"edgestats/internal/dataprocessing"
	apierrors "edgestats/internal/errors"
	"edgestats/internal/featurestore"
	"edgestats/internal/infrastructure"
	"edgestats/internal/projections"
	"edgestats/pkg/contracts/domain"
)

var tracer = otel.Tracer("edgestats/services")

// FeatureServiceConfig wires the optional collaborators of a FeatureService.
type FeatureServiceConfig struct {
	Pipeline config.PipelineConfig
	Metrics  *infrastructure.PipelineMetrics
	Clock    cache.Clock
	// BuildTimeout bounds one table build regardless of which requests
	// are waiting on it. Zero leaves builds unbounded.
	BuildTimeout time.Duration
}

// FeatureService loads, builds and caches the feature tables.
type FeatureService struct {
	provider  featurestore.Provider
	processor *dataprocessing.Processor
	players   *projections.Builder
	cache     *cache.Cache[*domain.FeatureTables]
	metrics   *infrastructure.PipelineMetrics
	pipeline  config.PipelineConfig
	clock     cache.Clock
	logger    *slog.Logger
}

// NewFeatureService creates the pipeline service over provider.
func NewFeatureService(provider featurestore.Provider, cfg FeatureServiceConfig, logger *slog.Logger) (*FeatureService, error) {
	if provider == nil {
		return nil, apierrors.NewConfigError("feature store provider is required", nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = cache.SystemClock
	}
	if cfg.Pipeline.CacheTTL == 0 {
		cfg.Pipeline.CacheTTL = config.DefaultCacheTTL
	}
	if cfg.Pipeline.FirstSeason == 0 {
		cfg.Pipeline.FirstSeason = config.DefaultFirstSeason
	}

	blend := dataprocessing.Blend{
		Method:    dataprocessing.BlendMethod(cfg.Pipeline.BlendMethod),
		OwnWeight: cfg.Pipeline.BlendOwnWeight,
	}
	processor, err := dataprocessing.NewProcessor(logger, dataprocessing.ProcessorConfig{Blend: blend})
	if err != nil {
		return nil, apierrors.NewConfigError("invalid pipeline configuration", err)
	}

	logger = logger.With(slog.String("component", "feature_service"))
	logger.Info("feature service initialized",
		slog.Duration("cache_ttl", cfg.Pipeline.CacheTTL),
		slog.Int("cache_max_entries", cfg.Pipeline.CacheMaxEntries),
		slog.String("blend_method", string(blend.Method)))

	return &FeatureService{
		provider:  provider,
		processor: processor,
		players:   projections.NewBuilder(provider, logger),
		cache:     cache.New[*domain.FeatureTables](cfg.Pipeline.CacheTTL, cfg.Pipeline.CacheMaxEntries,
			cache.WithClock(cfg.Clock), cache.WithComputeTimeout(cfg.BuildTimeout)),
		metrics:   cfg.Metrics,
		pipeline:  cfg.Pipeline,
		clock:     cfg.Clock,
		logger:    logger,
	}, nil
}

// DefaultSeasons is the season window used when a caller names none.
func (s *FeatureService) DefaultSeasons() []int {
	return s.pipeline.SeasonsAt(s.clock.Now())
}

// LoadFeatureStore returns the home/away, folded and player tables for
// seasons. Results are cached per season list. A nil or empty list loads
// the default window.
func (s *FeatureService) LoadFeatureStore(ctx context.Context, seasons []int) (*domain.FeatureTables, error) {
	seasons = normalizeSeasons(seasons)
	if len(seasons) == 0 {
		seasons = s.DefaultSeasons()
	}
	if len(seasons) == 0 {
		return nil, apierrors.NewAppError(apierrors.ErrTypeValidation, "season window is empty", ErrNoSeasons)
	}

	key := cache.SeasonsKey(seasons)
	tables, hit, err := s.cache.Load(ctx, key, func(ctx context.Context) (*domain.FeatureTables, error) {
		return s.build(ctx, seasons)
	})
	s.metrics.RecordCacheLookup(ctx, hit)
	if err != nil {
		return nil, err
	}
	if hit {
		s.logger.DebugContext(ctx, "feature tables served from cache", slog.String("seasons", key))
	}
	return tables, nil
}

// Refresh drops every cached window that includes any of seasons, or
// everything when none given. It reports how many windows were dropped.
func (s *FeatureService) Refresh(ctx context.Context, seasons []int) int {
	seasons = normalizeSeasons(seasons)
	if len(seasons) == 0 {
		n := s.cache.Stats().Entries
		s.cache.Purge()
		s.logger.InfoContext(ctx, "feature cache purged", slog.Int("windows", n))
		return n
	}
	named := make(map[string]struct{}, len(seasons))
	for _, season := range seasons {
		named[strconv.Itoa(season)] = struct{}{}
	}
	n := s.cache.InvalidateFunc(func(key string) bool {
		for _, part := range strings.Split(key, ",") {
			if _, ok := named[part]; ok {
				return true
			}
		}
		return false
	})
	s.logger.InfoContext(ctx, "feature cache invalidated",
		slog.String("seasons", cache.SeasonsKey(seasons)),
		slog.Int("windows", n))
	return n
}

// CacheStats reports the table cache counters.
func (s *FeatureService) CacheStats() cache.Stats {
	return s.cache.Stats()
}

func (s *FeatureService) build(ctx context.Context, seasons []int) (_ *domain.FeatureTables, err error) {
	ctx, span := tracer.Start(ctx, "services.LoadFeatureStore")
	span.SetAttributes(attribute.IntSlice("seasons", seasons))
	start := time.Now()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "build failed")
		}
		span.End()
		s.metrics.RecordBuild(ctx, time.Since(start), err)
	}()

	games, err := s.fetchGames(ctx, seasons)
	if err != nil {
		return nil, err
	}

	built, err := s.processor.Build(ctx, games)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordDropped(ctx, built.Stats.DroppedGames)

	results := s.players.Fetch(ctx, seasons)
	for _, r := range results {
		s.metrics.RecordFetch(ctx, string(featurestore.KindPlayers), r.Season, r.Duration, r.Err)
	}
	collection := s.players.Concat(ctx, results)

	tables := &domain.FeatureTables{
		Seasons:        seasons,
		HomeAway:       built.HomeAway,
		Folded:         built.Folded,
		Players:        collection.Rows,
		PlayerFailures: collection.Failures,
		DroppedGames:   built.Stats.DroppedGames,
		BuiltAt:        s.clock.Now().UTC(),
	}
	s.metrics.RecordTableRows(ctx, "games", len(tables.HomeAway))
	s.metrics.RecordTableRows(ctx, "teams", len(tables.Folded))
	s.metrics.RecordTableRows(ctx, "players", len(tables.Players))

	s.logger.InfoContext(ctx, "feature store loaded",
		slog.Any("seasons", seasons),
		slog.Int("games", len(games)),
		slog.Int("home_away_rows", len(tables.HomeAway)),
		slog.Int("folded_rows", len(tables.Folded)),
		slog.Int("player_rows", len(tables.Players)),
		slog.Int("player_failures", len(tables.PlayerFailures)),
		slog.Duration("duration", time.Since(start)))

	return tables, nil
}

// fetchGames reads every season in order. The first failure aborts the load.
func (s *FeatureService) fetchGames(ctx context.Context, seasons []int) ([]domain.GameRow, error) {
	var games []domain.GameRow
	for _, season := range seasons {
		start := time.Now()
		rows, err := s.provider.FetchGameFeatures(ctx, season)
		s.metrics.RecordFetch(ctx, string(featurestore.KindGames), season, time.Since(start), err)
		if err != nil {
			s.logger.ErrorContext(ctx, "game feature fetch failed",
				slog.Int("season", season),
				slog.String("error", err.Error()))
			return nil, fmt.Errorf("load game features for season %d: %w", season, err)
		}
		s.logger.DebugContext(ctx, "fetched game features",
			slog.Int("season", season),
			slog.Int("rows", len(rows)))
		games = append(games, rows...)
	}
	return games, nil
}

// normalizeSeasons returns a sorted copy without duplicates.
func normalizeSeasons(seasons []int) []int {
	if len(seasons) == 0 {
		return nil
	}
	out := make([]int, len(seasons))
	copy(out, seasons)
	sort.Ints(out)
	uniq := out[:1]
	for _, s := range out[1:] {
		if s != uniq[len(uniq)-1] {
			uniq = append(uniq, s)
		}
	}
	return uniq
}
