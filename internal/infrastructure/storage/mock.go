package storage

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// MockRepository is an in-memory implementation of Repository for testing.
// It stores all data in maps, making tests fast and isolated.
type MockRepository struct {
	mu          sync.Mutex
	runs        map[string]*Run
	allocations map[string][]Allocation

	// Hooks for test assertions
	StartRunCalled        bool
	CompleteRunCalled     bool
	FailRunCalled         bool
	SaveAllocationsCalled bool
	LastFailReason        string

	// Error injection for testing error paths
	StartRunErr        error
	CompleteRunErr     error
	SaveAllocationsErr error
	ListRunsErr        error
	GetRunErr          error
}

// Compile-time check that MockRepository implements Repository
var _ Repository = (*MockRepository)(nil)

// NewMockRepository creates a new mock repository for testing
func NewMockRepository() *MockRepository {
	return &MockRepository{
		runs:        make(map[string]*Run),
		allocations: make(map[string][]Allocation),
	}
}

// Close is a no-op
func (m *MockRepository) Close() error {
	return nil
}

// StartRun stores a copy of run with status running
func (m *MockRepository) StartRun(run *Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StartRunCalled = true
	if m.StartRunErr != nil {
		return m.StartRunErr
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	run.Status = StatusRunning
	stored := *run
	m.runs[run.ID] = &stored
	return nil
}

// CompleteRun stores the final figures of run
func (m *MockRepository) CompleteRun(run *Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CompleteRunCalled = true
	if m.CompleteRunErr != nil {
		return m.CompleteRunErr
	}
	if _, ok := m.runs[run.ID]; !ok {
		return fmt.Errorf("run %s not found", run.ID)
	}
	now := time.Now()
	run.CompletedAt = &now
	run.Status = StatusCompleted
	stored := *run
	m.runs[run.ID] = &stored
	return nil
}

// FailRun marks a run as failed
func (m *MockRepository) FailRun(runID string, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FailRunCalled = true
	m.LastFailReason = reason
	run, ok := m.runs[runID]
	if !ok {
		return fmt.Errorf("run %s not found", runID)
	}
	now := time.Now()
	run.CompletedAt = &now
	run.Status = StatusFailed
	run.Error = reason
	return nil
}

// GetRun retrieves a run by ID
func (m *MockRepository) GetRun(runID string) (*Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetRunErr != nil {
		return nil, m.GetRunErr
	}
	run, ok := m.runs[runID]
	if !ok {
		return nil, nil
	}
	copied := *run
	return &copied, nil
}

// ListRuns returns runs newest first
func (m *MockRepository) ListRuns(limit int) ([]Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ListRunsErr != nil {
		return nil, m.ListRunsErr
	}
	if limit <= 0 {
		limit = defaultListLimit
	}

	runs := make([]Run, 0, len(m.runs))
	for _, r := range m.runs {
		runs = append(runs, *r)
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].StartedAt.Equal(runs[j].StartedAt) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// SaveAllocations appends allocations to a run
func (m *MockRepository) SaveAllocations(runID string, allocations []Allocation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SaveAllocationsCalled = true
	if m.SaveAllocationsErr != nil {
		return m.SaveAllocationsErr
	}
	m.allocations[runID] = append(m.allocations[runID], allocations...)
	return nil
}

// GetAllocations returns a run's allocations, optionally for one group
func (m *MockRepository) GetAllocations(runID string, group string) ([]Allocation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Allocation
	for _, a := range m.allocations[runID] {
		if group == "" || a.Group == group {
			out = append(out, a)
		}
	}
	return out, nil
}
