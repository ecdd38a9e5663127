package http

import (
	"context"

	"edgestats/internal/cache"
	"edgestats/internal/services"
	"edgestats/pkg/contracts/domain"
)

// FeatureServiceInterface is the part of services.FeatureService the
// handlers use.
type FeatureServiceInterface interface {
	LoadFeatureStore(ctx context.Context, seasons []int) (*domain.FeatureTables, error)
	SeasonOptions(ctx context.Context) (services.SeasonOptions, error)
	Games(ctx context.Context, q services.TableQuery) ([]domain.HomeAwayRow, error)
	Teams(ctx context.Context, q services.TableQuery) ([]domain.FoldedGameRow, error)
	Players(ctx context.Context, q services.TableQuery) (services.PlayerView, error)
	Game(ctx context.Context, gameID string) (services.GameDetail, error)
	Refresh(ctx context.Context, seasons []int) int
	CacheStats() cache.Stats
}
