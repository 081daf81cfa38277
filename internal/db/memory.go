package db

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jonathan/hr-insights/internal/types"
)

// MemoryStore is a Store kept in process memory. It is used when no database
// is configured; contents are lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sets     map[string]types.RequirementSet
	analyses map[string][]Analysis
	now      func() time.Time
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sets:     make(map[string]types.RequirementSet),
		analyses: make(map[string][]Analysis),
		now:      time.Now,
	}
}

// ListRequirementSets returns every requirement set ordered by id
func (m *MemoryStore) ListRequirementSets(_ context.Context) ([]types.RequirementSet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sets := make([]types.RequirementSet, 0, len(m.sets))
	for _, set := range m.sets {
		sets = append(sets, cloneSet(set))
	}
	sort.Slice(sets, func(i, j int) bool { return sets[i].ID < sets[j].ID })
	return sets, nil
}

// GetRequirementSet retrieves a requirement set by id
func (m *MemoryStore) GetRequirementSet(_ context.Context, id string) (*types.RequirementSet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	set, ok := m.sets[id]
	if !ok {
		return nil, nil
	}
	clone := cloneSet(set)
	return &clone, nil
}

// SaveRequirementSet inserts or replaces a requirement set and sets its UpdatedAt
func (m *MemoryStore) SaveRequirementSet(_ context.Context, set *types.RequirementSet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	set.UpdatedAt = m.now().UTC()
	m.sets[set.ID] = cloneSet(*set)
	return nil
}

// DeleteRequirementSet removes a requirement set and reports whether it existed
func (m *MemoryStore) DeleteRequirementSet(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sets[id]
	delete(m.sets, id)
	return ok, nil
}

// SaveAnalysis stores an analysis and sets its CreatedAt
func (m *MemoryStore) SaveAnalysis(_ context.Context, analysis *Analysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	analysis.CreatedAt = m.now().UTC()
	m.analyses[analysis.RequirementSetID] = append(m.analyses[analysis.RequirementSetID], *analysis)
	return nil
}

// ListAnalyses returns the newest analyses for a requirement set
func (m *MemoryStore) ListAnalyses(_ context.Context, requirementSetID string, limit int) ([]Analysis, error) {
	if limit <= 0 {
		limit = DefaultAnalysesLimit
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	stored := m.analyses[requirementSetID]
	out := make([]Analysis, 0, min(limit, len(stored)))
	for i := len(stored) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, stored[i])
	}
	return out, nil
}

// Ping always succeeds
func (m *MemoryStore) Ping(_ context.Context) error { return nil }

// Close is a no-op
func (m *MemoryStore) Close() {}

// cloneSet copies the slices and pointers of a set so callers cannot mutate stored state.
func cloneSet(set types.RequirementSet) types.RequirementSet {
	set.Skills = append([]types.RequiredSkill(nil), set.Skills...)
	set.Keywords = append([]string(nil), set.Keywords...)
	if set.Experience != nil {
		exp := *set.Experience
		set.Experience = &exp
	}
	if set.Education != nil {
		edu := *set.Education
		edu.PreferredFields = append([]string(nil), edu.PreferredFields...)
		set.Education = &edu
	}
	return set
}
