package storage

// Repository defines the complete storage interface.
// This interface allows swapping implementations and makes testing with
// mocks straightforward.
type Repository interface {
	RunRepository
	AllocationRepository
	Close() error
}

// RunRepository tracks distribution runs
type RunRepository interface {
	// StartRun records the start of a run. run.ID must be set.
	StartRun(run *Run) error

	// CompleteRun stores the final figures of a successful run
	CompleteRun(run *Run) error

	// FailRun marks a run as failed with the given reason
	FailRun(runID string, reason string) error

	// GetRun retrieves a run by ID; it returns nil, nil when none exists
	GetRun(runID string) (*Run, error)

	// ListRuns returns the most recent runs first
	ListRuns(limit int) ([]Run, error)
}

// AllocationRepository stores the per-asset outcome of a run
type AllocationRepository interface {
	// SaveAllocations stores the assignment of every asset in a run
	SaveAllocations(runID string, allocations []Allocation) error

	// GetAllocations returns a run's allocations, optionally for one group
	GetAllocations(runID string, group string) ([]Allocation, error)
}
