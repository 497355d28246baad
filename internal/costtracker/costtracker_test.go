package costtracker

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sortmarks/internal/config"
	"sortmarks/internal/models"
)

func TestCost(t *testing.T) {
	price := config.PricingInfo{InputPerToken: 0.001, OutputPerToken: 0.002}

	assert.InDelta(t, 0.5, Cost(price, 100, 200), 1e-9)
	assert.Zero(t, Cost(config.PricingInfo{}, 100, 200))
}

func TestMemoryCostTracker(t *testing.T) {
	ctx := context.Background()
	runID := uuid.New()
	tracker := New(runID)

	require.NoError(t, tracker.RecordUsage(ctx, models.UsageLog{Operation: models.OperationCategorization, Cost: 0.25}))
	require.NoError(t, tracker.RecordUsage(ctx, models.UsageLog{Operation: models.OperationCategorizationRetry, Cost: 0.5}))

	total, err := tracker.TotalCost(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, total, 1e-9)

	usage, err := tracker.Usage(ctx)
	require.NoError(t, err)
	require.Len(t, usage, 2)
	for _, u := range usage {
		assert.Equal(t, runID, u.RunID, "entries are stamped with the run ID")
	}
	assert.Equal(t, models.OperationCategorizationRetry, usage[1].Operation)
}

func TestNoopCostTracker(t *testing.T) {
	ctx := context.Background()
	tracker := NewNoop()

	require.NoError(t, tracker.RecordUsage(ctx, models.UsageLog{Cost: 1}))
	total, err := tracker.TotalCost(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)
}
