package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"edgestats/pkg/contracts/domain"
)

var tracer = otel.Tracer("edgestats/dataprocessing")

// ProcessorConfig holds configuration options for the Processor.
type ProcessorConfig struct {
	Blend Blend
}

// Processor turns raw games into the home/away and folded tables.
type Processor struct {
	logger   *slog.Logger
	averager *ExpectedAverager
}

// GameTables is the output of one Build.
type GameTables struct {
	HomeAway []domain.HomeAwayRow
	Folded   []domain.FoldedGameRow
	Expected []domain.ExpectedAverageRow
	Stats    BuildStats
}

// BuildStats counts rows through each stage.
type BuildStats struct {
	InputGames   int
	DroppedGames int
	ShiftedRows  int
	HomeAwayRows int
	FoldedRows   int
	Duration     time.Duration
}

// NewProcessor creates a processor. A nil logger falls back to slog.Default.
func NewProcessor(logger *slog.Logger, cfg ProcessorConfig) (*Processor, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Blend.Method == "" {
		cfg.Blend = DefaultBlend()
	}
	if err := cfg.Blend.Validate(); err != nil {
		return nil, fmt.Errorf("invalid processor config: %w", err)
	}
	return &Processor{
		logger:   logger.With(slog.String("component", "processor")),
		averager: NewExpectedAverager(cfg.Blend),
	}, nil
}

// DropIncomplete removes games without both pre-game ratings. Such rows
// are incomplete history and are filtered, not imputed.
func DropIncomplete(games []domain.GameRow) ([]domain.GameRow, int) {
	kept := make([]domain.GameRow, 0, len(games))
	for _, g := range games {
		if g.Away.Rating == nil || g.Home.Rating == nil {
			continue
		}
		kept = append(kept, g)
	}
	return kept, len(games) - len(kept)
}

// Build runs drop, shift, expected average, assemble and fold over games.
func (p *Processor) Build(ctx context.Context, games []domain.GameRow) (*GameTables, error) {
	ctx, span := tracer.Start(ctx, "dataprocessing.Build")
	defer span.End()

	start := time.Now()
	stats := BuildStats{InputGames: len(games)}

	complete, dropped := DropIncomplete(games)
	stats.DroppedGames = dropped
	if dropped > 0 {
		p.logger.DebugContext(ctx, "dropped incomplete games",
			slog.Int("dropped", dropped),
			slog.Int("kept", len(complete)))
	}

	shifted := Shift(complete)
	stats.ShiftedRows = len(shifted)

	expected := p.averager.Build(shifted)

	prepared := PrepareFold(complete)
	homeAway, err := AssembleHomeAway(prepared, expected)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "assemble failed")
		p.logger.ErrorContext(ctx, "failed to assemble home/away table", slog.String("error", err.Error()))
		return nil, err
	}
	stats.HomeAwayRows = len(homeAway)

	folded := AssembleFolded(Fold(prepared), expected)
	stats.FoldedRows = len(folded)
	stats.Duration = time.Since(start)

	span.SetAttributes(
		attribute.Int("games.input", stats.InputGames),
		attribute.Int("games.dropped", stats.DroppedGames),
		attribute.Int("rows.folded", stats.FoldedRows),
	)

	p.logger.InfoContext(ctx, "built game tables",
		slog.Int("input_games", stats.InputGames),
		slog.Int("dropped_games", stats.DroppedGames),
		slog.Int("shifted_rows", stats.ShiftedRows),
		slog.Int("home_away_rows", stats.HomeAwayRows),
		slog.Int("folded_rows", stats.FoldedRows),
		slog.Duration("duration", stats.Duration))

	return &GameTables{
		HomeAway: homeAway,
		Folded:   folded,
		Expected: expected,
		Stats:    stats,
	}, nil
}
