package state

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/leapstack-labs/unitscan/pkg/extract"
)

// SQLiteStore records analysis runs in SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore creates a new SQLite store instance.
func NewSQLiteStore() *SQLiteStore {
	return &SQLiteStore{}
}

// Open opens a connection to the SQLite database.
// Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", path)
	} else {
		dsn = ":memory:?_pragma=foreign_keys(1)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	return nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// generateID creates a new UUID.
func generateID() string {
	return uuid.New().String()
}

// CreateRun records the start of an analysis pass over root.
func (s *SQLiteStore) CreateRun(root string) (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	run := &Run{
		ID:        generateID(),
		Root:      root,
		StartedAt: time.Now().UTC(),
		Status:    RunStatusRunning,
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (id, root, started_at, status) VALUES (?, ?, ?, ?)`,
		run.ID, run.Root, run.StartedAt, run.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return run, nil
}

// SaveReport persists one unit report under a run: its operations, their
// parameters, and its transaction groups.
func (s *SQLiteStore) SaveReport(runID string, report *extract.UnitReport) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, op := range report.Operations {
		res, err := tx.Exec(`
			INSERT INTO operations
				(run_id, unit_name, class_name, method_name, sql_statement,
				 operation_type, table_name, dynamic, in_transaction,
				 transaction_id, source_line)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, op.UnitName, op.ContainingClass, op.MethodName,
			op.SQLStatement, op.Type.String(), op.TableName, op.Dynamic,
			op.InTransaction, op.TransactionID, op.SourceLine)
		if err != nil {
			return fmt.Errorf("failed to insert operation: %w", err)
		}
		opID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read operation id: %w", err)
		}
		for _, p := range op.Parameters {
			if _, err := tx.Exec(`
				INSERT INTO parameters (operation_id, name, source_type, inferred_type)
				VALUES (?, ?, ?, ?)`,
				opID, p.Name, p.SourceType, p.Type.String()); err != nil {
				return fmt.Errorf("failed to insert parameter: %w", err)
			}
		}
	}

	for _, g := range report.Groups {
		if _, err := tx.Exec(`
			INSERT INTO transaction_groups (run_id, group_id, unit_name, class_name, method_name, operation_count)
			VALUES (?, ?, ?, ?, ?, ?)`,
			runID, g.ID, report.UnitName, g.ContainingClass, g.MethodName, len(g.Operations)); err != nil {
			return fmt.Errorf("failed to insert transaction group: %w", err)
		}
	}

	return tx.Commit()
}

// CompleteRun marks a run finished with the given status and totals.
func (s *SQLiteStore) CompleteRun(runID, status string, units, operations int) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	now := time.Now().UTC()
	_, err := s.db.Exec(
		`UPDATE runs SET status = ?, units = ?, operations = ?, ended_at = ? WHERE id = ?`,
		status, units, operations, now, runID)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// ListRuns returns all runs, newest first.
func (s *SQLiteStore) ListRuns() ([]*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	rows, err := s.db.Query(`
		SELECT id, root, units, operations, started_at, ended_at, status
		FROM runs ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Root, &r.Units, &r.Operations,
			&r.StartedAt, &r.EndedAt, &r.Status); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, &r)
	}
	return runs, rows.Err()
}

// OperationsByRun returns the operations persisted for one run in insert
// order.
func (s *SQLiteStore) OperationsByRun(runID string) ([]*StoredOperation, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	rows, err := s.db.Query(`
		SELECT id, run_id, unit_name, class_name, method_name, sql_statement,
		       operation_type, table_name, dynamic, in_transaction,
		       transaction_id, source_line
		FROM operations WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query operations: %w", err)
	}
	defer rows.Close()

	var ops []*StoredOperation
	for rows.Next() {
		var op StoredOperation
		if err := rows.Scan(&op.ID, &op.RunID, &op.UnitName, &op.ClassName,
			&op.MethodName, &op.SQLStatement, &op.OperationType, &op.TableName,
			&op.Dynamic, &op.InTransaction, &op.TransactionID, &op.SourceLine); err != nil {
			return nil, fmt.Errorf("failed to scan operation: %w", err)
		}
		ops = append(ops, &op)
	}
	return ops, rows.Err()
}

// ParametersByOperation returns the parameters persisted for one operation.
func (s *SQLiteStore) ParametersByOperation(opID int64) ([]*StoredParameter, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	rows, err := s.db.Query(`
		SELECT operation_id, name, source_type, inferred_type
		FROM parameters WHERE operation_id = ? ORDER BY rowid`, opID)
	if err != nil {
		return nil, fmt.Errorf("failed to query parameters: %w", err)
	}
	defer rows.Close()

	var params []*StoredParameter
	for rows.Next() {
		var p StoredParameter
		if err := rows.Scan(&p.OperationID, &p.Name, &p.SourceType, &p.InferredType); err != nil {
			return nil, fmt.Errorf("failed to scan parameter: %w", err)
		}
		params = append(params, &p)
	}
	return params, rows.Err()
}
