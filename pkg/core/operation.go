package core

// OperationType classifies a SQL statement by the action it performs.
type OperationType int

const (
	OpUnknown OperationType = iota
	OpSelect
	OpInsert
	OpUpdate
	OpDelete
	OpDDL
	OpStoredProc
)

// String returns the string representation of the operation type.
func (ot OperationType) String() string {
	switch ot {
	case OpSelect:
		return "SELECT"
	case OpInsert:
		return "INSERT"
	case OpUpdate:
		return "UPDATE"
	case OpDelete:
		return "DELETE"
	case OpDDL:
		return "DDL"
	case OpStoredProc:
		return "STORED_PROC"
	case OpUnknown:
		return "UNKNOWN"
	default:
		return "UNKNOWN"
	}
}

// ParamType is the semantic scalar kind inferred for a bound parameter.
type ParamType int

const (
	// ParamOpaque is the fallback when no typed accessor was observed.
	ParamOpaque ParamType = iota
	ParamInteger
	ParamText
	ParamBoolean
	ParamFloat
	ParamDecimal
	ParamDateTime
	ParamBinary
)

// String returns the string representation of the parameter type.
func (pt ParamType) String() string {
	switch pt {
	case ParamInteger:
		return "integer"
	case ParamText:
		return "text"
	case ParamBoolean:
		return "boolean"
	case ParamFloat:
		return "float"
	case ParamDecimal:
		return "decimal"
	case ParamDateTime:
		return "datetime"
	case ParamBinary:
		return "binary"
	case ParamOpaque:
		return "opaque"
	default:
		return "opaque"
	}
}

// SqlParameter is one named bind parameter of a discovered operation.
//
//nolint:revive // SqlParameter (not SQLParameter) matches the established domain vocabulary.
type SqlParameter struct {
	// Name preserves the casing of the identifier as found in source.
	Name string `json:"name"`
	// SourceType is the raw accessor convention observed, e.g. "AsInteger".
	// Empty when no typed accessor was found.
	SourceType string `json:"source_type,omitempty"`
	// Type is the inferred semantic scalar kind.
	Type ParamType `json:"type"`
}

// DatabaseOperation is one SQL operation recovered from a method body.
//
// For static operations SQLStatement holds the fully normalized text; for
// dynamic operations it holds either the best-effort parameterized
// reconstruction or the sentinel, depending on analyzer mode. SQLStatement
// remains mutable so a downstream field-access pass can rewrite SELECT *
// projections; every other field is fixed once extraction returns.
type DatabaseOperation struct {
	UnitName        string        `json:"unit_name"`
	ContainingClass string        `json:"class_name"`
	MethodName      string        `json:"method_name"`
	SQLStatement    string        `json:"sql"`
	Type            OperationType `json:"operation_type"`
	// TableName is upper-cased and set only when classification of a
	// static statement succeeds; dynamic operations may leave it empty.
	TableName  string         `json:"table_name,omitempty"`
	Dynamic    bool           `json:"dynamic"`
	Parameters []SqlParameter `json:"parameters,omitempty"`
	// InTransaction reports whether the owning method runs under explicit
	// transaction control. TransactionID is non-empty iff InTransaction.
	InTransaction bool   `json:"in_transaction"`
	TransactionID string `json:"transaction_id,omitempty"`
	// OriginalSource is the unmodified method body, kept for traceability.
	OriginalSource string `json:"-"`
	// SourceLine is the 1-based line in the original unit where the
	// statement originates.
	SourceLine int `json:"source_line"`
}

// TransactionGroup clusters the operations executed within one explicit
// transaction scope inside a single method invocation.
type TransactionGroup struct {
	ID              string              `json:"id"`
	MethodName      string              `json:"method_name"`
	ContainingClass string              `json:"class_name"`
	Operations      []DatabaseOperation `json:"operations"`
	OriginalSource  string              `json:"-"`
}

// ComponentKind tags a local variable with the database-component class it
// was declared or created as. Consumed only during extraction.
type ComponentKind int

const (
	ComponentUnknown ComponentKind = iota
	ComponentQuery
	ComponentConnection
	ComponentStoredProc
	ComponentTransaction
)

// String returns the string representation of the component kind.
func (ck ComponentKind) String() string {
	switch ck {
	case ComponentQuery:
		return "query"
	case ComponentConnection:
		return "connection"
	case ComponentStoredProc:
		return "storedproc"
	case ComponentTransaction:
		return "transaction"
	default:
		return "unknown"
	}
}
