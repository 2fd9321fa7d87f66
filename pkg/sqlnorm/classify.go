package sqlnorm

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/unitscan/pkg/core"
)

// Classify derives the operation kind from the first keyword of the
// trimmed statement. Unrecognized leading keywords yield OpUnknown rather
// than an error.
func Classify(sql string) core.OperationType {
	trimmed := strings.TrimSpace(sql)
	if trimmed == "" {
		return core.OpUnknown
	}
	first := trimmed
	if i := strings.IndexFunc(trimmed, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\r' || r == '\n' || r == '('
	}); i > 0 {
		first = trimmed[:i]
	}
	switch strings.ToUpper(first) {
	case "SELECT":
		return core.OpSelect
	case "INSERT":
		return core.OpInsert
	case "UPDATE":
		return core.OpUpdate
	case "DELETE":
		return core.OpDelete
	case "CREATE", "ALTER", "DROP", "RECREATE":
		return core.OpDDL
	case "EXEC", "EXECUTE", "CALL":
		return core.OpStoredProc
	default:
		return core.OpUnknown
	}
}

// identPattern matches a (possibly quoted or qualified) SQL identifier.
const identPattern = `("?[A-Za-z_][A-Za-z0-9_$]*"?(?:\."?[A-Za-z_][A-Za-z0-9_$]*"?)?)`

// tableClauseRes are tried in fixed order until one matches; the first
// capture is the table name. Order matters and mirrors the clause priority
// of the legacy analyzer: FROM, INTO, UPDATE (including UPDATE OR INSERT
// INTO), DELETE FROM, SET GENERATOR, TABLE (CREATE/ALTER TABLE), and the
// ON <name> ( form of CREATE INDEX.
var tableClauseRes = []*regexp.Regexp{
	regexp.MustCompile(`(?is)\bFROM\s+` + identPattern),
	regexp.MustCompile(`(?is)\bINTO\s+` + identPattern),
	regexp.MustCompile(`(?is)\bUPDATE\s+(?:OR\s+INSERT\s+INTO\s+)?` + identPattern),
	regexp.MustCompile(`(?is)\bDELETE\s+FROM\s+` + identPattern),
	regexp.MustCompile(`(?is)\bSET\s+GENERATOR\s+` + identPattern + `\s+TO\b`),
	regexp.MustCompile(`(?is)\bTABLE\s+` + identPattern),
	regexp.MustCompile(`(?is)\bON\s+` + identPattern + `\s*\(`),
}

// TableName resolves the target table of a statement, upper-cased, or ""
// when no clause pattern matches. Surrounding identifier quotes are
// stripped from the result.
func TableName(sql string) string {
	for _, re := range tableClauseRes {
		if m := re.FindStringSubmatch(sql); m != nil {
			name := strings.ReplaceAll(m[1], `"`, "")
			return strings.ToUpper(name)
		}
	}
	return ""
}
