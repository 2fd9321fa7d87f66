// Package state persists analysis runs with database migrations.
package state

import "time"

// Run is one recorded analysis pass over a source tree.
type Run struct {
	ID         string
	Root       string
	Units      int
	Operations int
	StartedAt  time.Time
	EndedAt    *time.Time
	Status     string
}

// Run statuses.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// StoredOperation is a persisted DatabaseOperation row.
type StoredOperation struct {
	ID            int64
	RunID         string
	UnitName      string
	ClassName     string
	MethodName    string
	SQLStatement  string
	OperationType string
	TableName     string
	Dynamic       bool
	InTransaction bool
	TransactionID string
	SourceLine    int
}

// StoredParameter is a persisted SqlParameter row.
type StoredParameter struct {
	OperationID  int64
	Name         string
	SourceType   string
	InferredType string
}
