package costtracker

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"sortmarks/internal/config"
	"sortmarks/internal/models"
)

// CostTracker provides methods to record and report LM usage costs.
type CostTracker interface {
	RecordUsage(ctx context.Context, entry models.UsageLog) error
	TotalCost(ctx context.Context) (float64, error)
	Usage(ctx context.Context) ([]models.UsageLog, error)
}

// Cost prices a single call. Missing pricing yields zero.
func Cost(price config.PricingInfo, inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*price.InputPerToken + float64(outputTokens)*price.OutputPerToken
}

// New returns an in-memory tracker that stamps every entry with runID.
func New(runID uuid.UUID) CostTracker {
	return &memoryCostTracker{runID: runID}
}

type memoryCostTracker struct {
	mu      sync.Mutex
	runID   uuid.UUID
	entries []models.UsageLog
}

func (m *memoryCostTracker) RecordUsage(ctx context.Context, entry models.UsageLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry.RunID = m.runID
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memoryCostTracker) TotalCost(ctx context.Context) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total float64
	for _, e := range m.entries {
		total += e.Cost
	}
	return total, nil
}

func (m *memoryCostTracker) Usage(ctx context.Context) ([]models.UsageLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.UsageLog(nil), m.entries...), nil
}

// NewNoop returns a tracker that discards everything.
func NewNoop() CostTracker {
	return &noopCostTracker{}
}

type noopCostTracker struct{}

func (n *noopCostTracker) RecordUsage(ctx context.Context, entry models.UsageLog) error { return nil }
func (n *noopCostTracker) TotalCost(ctx context.Context) (float64, error)              { return 0, nil }
func (n *noopCostTracker) Usage(ctx context.Context) ([]models.UsageLog, error)        { return nil, nil }
