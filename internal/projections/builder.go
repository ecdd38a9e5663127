package projections

import (
	"context"
	"log/slog"
	"time"

	"edgestats/internal/featurestore"
	"edgestats/pkg/contracts/domain"
)

// Result is the outcome of fetching one season/group slice. Exactly one of
// Rows or Err is meaningful.
type Result struct {
	Season   int
	Group    domain.PositionGroup
	Rows     []domain.PlayerWeekRow
	Err      error
	Duration time.Duration
}

// Failed reports whether the slice could not be loaded.
func (r Result) Failed() bool { return r.Err != nil }

// Collection is the concatenated weekly player table.
type Collection struct {
	Rows     []domain.PlayerWeekRow
	Failures []domain.PlayerFetchFailure
}

// Builder fetches player projections through a provider.
type Builder struct {
	provider featurestore.Provider
	logger   *slog.Logger
}

// NewBuilder creates a builder. A nil logger falls back to slog.Default.
func NewBuilder(provider featurestore.Provider, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		provider: provider,
		logger:   logger.With(slog.String("component", "projections")),
	}
}

// Fetch loads every group of every season, sequentially, in season order
// then OFF, DEF, ST.
func (b *Builder) Fetch(ctx context.Context, seasons []int) []Result {
	results := make([]Result, 0, len(seasons)*len(domain.PositionGroups))
	for _, season := range seasons {
		for _, group := range domain.PositionGroups {
			start := time.Now()
			rows, err := b.provider.FetchPlayerProjections(ctx, season, group)
			results = append(results, Result{
				Season:   season,
				Group:    group,
				Rows:     rows,
				Err:      err,
				Duration: time.Since(start),
			})
		}
	}
	return results
}

// Collect fetches and concatenates the weekly player table. Failed slices
// are logged and skipped; Collect itself never fails.
func (b *Builder) Collect(ctx context.Context, seasons []int) Collection {
	return b.Concat(ctx, b.Fetch(ctx, seasons))
}

// Concat joins fetched results in order, recording failed slices.
func (b *Builder) Concat(ctx context.Context, results []Result) Collection {
	var out Collection
	var elapsed time.Duration
	for _, r := range results {
		elapsed += r.Duration
		if r.Failed() {
			b.logger.WarnContext(ctx, "skipping player projections",
				slog.Int("season", r.Season),
				slog.String("group", string(r.Group)),
				slog.String("error", r.Err.Error()))
			out.Failures = append(out.Failures, domain.PlayerFetchFailure{
				Season: r.Season,
				Group:  r.Group,
				Reason: r.Err.Error(),
			})
			continue
		}
		out.Rows = append(out.Rows, r.Rows...)
	}

	b.logger.InfoContext(ctx, "collected player projections",
		slog.Int("rows", len(out.Rows)),
		slog.Int("failed_slices", len(out.Failures)),
		slog.Duration("duration", elapsed))
	return out
}
