package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Storage provides SQLite database access for the run ledger.
// It implements the Repository interface.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository
var _ Repository = (*Storage)(nil)

// NewStorage creates a new storage instance with SQLite database
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	// The pragma below is per connection
	db.SetMaxOpenConns(1)

	// Enable foreign key constraints (SQLite-specific)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Storage{db: db}

	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// StartRun records the start of a run
func (s *Storage) StartRun(run *Run) error {
	if run.ID == "" {
		return errors.New("run ID is required")
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	run.Status = StatusRunning

	_, err := s.db.Exec(`
		INSERT INTO runs (id, started_at, status, dry_run, output_dir)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, formatTime(run.StartedAt), run.Status, run.DryRun, run.OutputDir)
	return err
}

// CompleteRun records the completion of a run
func (s *Storage) CompleteRun(run *Run) error {
	now := time.Now()
	run.CompletedAt = &now
	run.Status = StatusCompleted

	totals, err := json.Marshal(run.GroupTotals)
	if err != nil {
		return err
	}

	result, err := s.db.Exec(`
		UPDATE runs
		SET completed_at = ?,
		    status = ?,
		    source_count = ?,
		    asset_count = ?,
		    skipped_count = ?,
		    total_value = ?,
		    target_value = ?,
		    variance_pct = ?,
		    iterations = ?,
		    swaps = ?,
		    converged = ?,
		    group_totals_json = ?
		WHERE id = ?
	`, formatTime(now), run.Status, run.SourceCount, run.AssetCount, run.SkippedCount,
		run.TotalValue, run.TargetValue, run.VariancePct, run.Iterations, run.Swaps,
		run.Converged, string(totals), run.ID)
	if err != nil {
		return err
	}
	return requireRow(result, run.ID)
}

// FailRun marks a run as failed
func (s *Storage) FailRun(runID string, reason string) error {
	result, err := s.db.Exec(`
		UPDATE runs SET completed_at = ?, status = ?, error_message = ? WHERE id = ?
	`, formatTime(time.Now()), StatusFailed, reason, runID)
	if err != nil {
		return err
	}
	return requireRow(result, runID)
}

const runColumns = `id, started_at, completed_at, status, dry_run, source_count, asset_count,
	skipped_count, total_value, target_value, variance_pct, iterations, swaps, converged,
	group_totals_json, output_dir, error_message`

// GetRun retrieves a run by ID
func (s *Storage) GetRun(runID string) (*Run, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns recent runs, newest first
func (s *Storage) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.db.Query(`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// SaveAllocations stores every asset assignment of a run in one transaction
func (s *Storage) SaveAllocations(runID string, allocations []Allocation) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
		INSERT INTO allocations
		(run_id, group_name, asset_type, serial, name, model, source, purchase_type,
		 condition_remark, market_price, current_value, depreciation_rate,
		 remark_category, allocation_remark)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, a := range allocations {
		if _, err := stmt.Exec(runID, a.Group, a.AssetType, a.Serial, a.Name, a.Model, a.Source,
			a.PurchaseType, a.ConditionRemark, a.MarketPrice, a.CurrentValue,
			a.DepreciationRate, a.RemarkCategory, a.AllocationRemark); err != nil {
			return fmt.Errorf("save allocation %s #%d: %w", a.AssetType, a.Serial, err)
		}
	}
	return tx.Commit()
}

// GetAllocations returns a run's allocations in storage order
func (s *Storage) GetAllocations(runID string, group string) ([]Allocation, error) {
	query := `
		SELECT run_id, group_name, asset_type, serial, name, model, source, purchase_type,
		       condition_remark, market_price, current_value, depreciation_rate,
		       remark_category, allocation_remark
		FROM allocations WHERE run_id = ?`
	args := []any{runID}
	if group != "" {
		query += ` AND group_name = ?`
		args = append(args, group)
	}
	query += ` ORDER BY id`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Allocation
	for rows.Next() {
		var a Allocation
		if err := rows.Scan(&a.RunID, &a.Group, &a.AssetType, &a.Serial, &a.Name, &a.Model,
			&a.Source, &a.PurchaseType, &a.ConditionRemark, &a.MarketPrice, &a.CurrentValue,
			&a.DepreciationRate, &a.RemarkCategory, &a.AllocationRemark); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var (
		run         Run
		startedAt   string
		completedAt sql.NullString
		totalsJSON  string
	)
	err := row.Scan(&run.ID, &startedAt, &completedAt, &run.Status, &run.DryRun,
		&run.SourceCount, &run.AssetCount, &run.SkippedCount, &run.TotalValue,
		&run.TargetValue, &run.VariancePct, &run.Iterations, &run.Swaps, &run.Converged,
		&totalsJSON, &run.OutputDir, &run.Error)
	if err != nil {
		return nil, err
	}

	if run.StartedAt, err = parseTime(startedAt); err != nil {
		return nil, err
	}
	if completedAt.Valid {
		t, err := parseTime(completedAt.String)
		if err != nil {
			return nil, err
		}
		run.CompletedAt = &t
	}
	if err := json.Unmarshal([]byte(totalsJSON), &run.GroupTotals); err != nil {
		return nil, fmt.Errorf("decode group totals for run %s: %w", run.ID, err)
	}
	return &run, nil
}

func requireRow(result sql.Result, runID string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("run %s not found", runID)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
