package db

import (
	"context"

	"github.com/jonathan/hr-insights/internal/types"
)

// Store persists requirement sets and analyses. Lookups of missing records
// return nil without an error.
type Store interface {
	ListRequirementSets(ctx context.Context) ([]types.RequirementSet, error)
	GetRequirementSet(ctx context.Context, id string) (*types.RequirementSet, error)
	SaveRequirementSet(ctx context.Context, set *types.RequirementSet) error
	DeleteRequirementSet(ctx context.Context, id string) (bool, error)
	SaveAnalysis(ctx context.Context, analysis *Analysis) error
	ListAnalyses(ctx context.Context, requirementSetID string, limit int) ([]Analysis, error)
	Ping(ctx context.Context) error
	Close()
}

var (
	_ Store = (*DB)(nil)
	_ Store = (*MemoryStore)(nil)
)
