// Package core defines the shared language of the unitscan system.
//
// This package contains:
//   - Domain entities (DatabaseOperation, SqlParameter, TransactionGroup)
//   - Classification enums (OperationType, ParamType, ComponentKind)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
