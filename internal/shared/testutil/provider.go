package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"edgestats/pkg/contracts/domain"
)

// MockProvider is a testify mock of a feature store provider.
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) FetchGameFeatures(ctx context.Context, season int) ([]domain.GameRow, error) {
	args := m.Called(ctx, season)
	rows, _ := args.Get(0).([]domain.GameRow)
	return rows, args.Error(1)
}

func (m *MockProvider) FetchPlayerProjections(ctx context.Context, season int, group domain.PositionGroup) ([]domain.PlayerWeekRow, error) {
	args := m.Called(ctx, season, group)
	rows, _ := args.Get(0).([]domain.PlayerWeekRow)
	return rows, args.Error(1)
}
