package dataprocessing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edgestats/internal/errors"
	"edgestats/internal/shared/testutil"
	"edgestats/pkg/contracts/domain"
)

func TestNewProcessor(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ProcessorConfig
		wantErr bool
	}{
		{"zero config uses default blend", ProcessorConfig{}, false},
		{"league adjusted", ProcessorConfig{Blend: Blend{Method: BlendLeagueAdjusted}}, false},
		{"unknown method", ProcessorConfig{Blend: Blend{Method: "median"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProcessor(nil, tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, p)
		})
	}
}

func TestDropIncomplete(t *testing.T) {
	games := []domain.GameRow{
		testutil.NewGame(2019, 1, "A", "B", 1, 0),
		testutil.NewGame(2019, 1, "C", "D", 1, 0, testutil.WithRatings(domain.Float(1500), nil)),
		testutil.NewGame(2019, 1, "E", "F", 1, 0, testutil.WithRatings(nil, domain.Float(1500))),
	}

	kept, dropped := DropIncomplete(games)

	assert.Equal(t, 2, dropped)
	require.Len(t, kept, 1)
	assert.Equal(t, "A", kept[0].Home.Team)
	assert.Len(t, games, 3)
}

func TestProcessor_Build(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	p, err := NewProcessor(logger, ProcessorConfig{})
	require.NoError(t, err)

	games := append(threeWeeks(),
		testutil.NewGame(2023, 3, "X", "Y", 7, 3, testutil.WithRatings(domain.Float(1500), nil)))

	tables, err := p.Build(context.Background(), games)
	require.NoError(t, err)

	assert.Len(t, tables.HomeAway, 4)
	assert.Len(t, tables.Folded, 8)
	assert.Len(t, tables.Expected, 8)
	assert.Equal(t, 5, tables.Stats.InputGames)
	assert.Equal(t, 1, tables.Stats.DroppedGames)
	assert.Equal(t, 8, tables.Stats.ShiftedRows)

	for _, r := range tables.Folded {
		assert.NotEqual(t, "X", r.Team)
	}

	rec, ok := logs.FindMessage("built game tables")
	require.True(t, ok)
	assert.Equal(t, "processor", rec.Attrs["component"])
	assert.Equal(t, int64(1), rec.Attrs["dropped_games"])
}

func TestProcessor_BuildDuplicateGame(t *testing.T) {
	p, err := NewProcessor(nil, ProcessorConfig{})
	require.NoError(t, err)

	games := []domain.GameRow{
		testutil.NewGame(2023, 1, "A", "B", 24, 20),
		testutil.NewGame(2023, 1, "A", "B", 24, 20),
	}

	_, err = p.Build(context.Background(), games)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeData))
}
