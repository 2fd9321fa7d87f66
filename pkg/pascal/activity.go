package pascal

import (
	"regexp"
	"strings"
)

// Component-class tokens recognized across the common Delphi-era database
// access layers (BDE, ADO, IBX, dbExpress, FireDAC, Zeos, UniDAC).
var (
	queryComponentTypes = []string{
		"TQuery", "TADOQuery", "TIBQuery", "TSQLQuery", "TFDQuery",
		"TZQuery", "TUniQuery", "TIBSQL", "TADODataSet", "TFDCommand",
	}
	connectionComponentTypes = []string{
		"TDatabase", "TADOConnection", "TIBDatabase", "TSQLConnection",
		"TFDConnection", "TZConnection", "TUniConnection",
	}
	storedProcComponentTypes = []string{
		"TStoredProc", "TADOStoredProc", "TIBStoredProc", "TSQLStoredProc",
		"TFDStoredProc", "TZStoredProc",
	}
	transactionComponentTypes = []string{
		"TIBTransaction", "TFDTransaction", "TDBXTransaction", "TZTransaction",
	}
)

// transactionKeywords are the transaction-control call names that mark a
// method body as transactional.
var transactionKeywords = []string{
	"StartTransaction", "BeginTrans", "CommitTrans", "CommitRetaining",
	"Commit", "RollbackRetaining", "RollbackTrans", "Rollback",
	"InTransaction",
}

var (
	// sqlLiteralAssignRe matches a variable assignment whose right-hand
	// side opens with a SQL literal.
	sqlLiteralAssignRe = regexp.MustCompile(
		`(?i):=\s*'\s*(?:SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP|EXECUTE|MERGE|SET\s+GENERATOR)\b`)

	// execHelperRe matches direct execute helpers called with an inline
	// string literal (with or without a leading connection argument).
	execHelperRe = regexp.MustCompile(
		`(?i)\b(?:ExecSQL|ExecQuery|ExecuteDirect|ExecuteSQL|ExecuteStatement)\s*\(\s*(?:[A-Za-z_][A-Za-z0-9_.]*\s*,\s*)?'`)

	// queryValueHelperRe matches the query-value helper family.
	queryValueHelperRe = regexp.MustCompile(
		`(?i)\bQueryValueAs[A-Za-z]+\s*\(|\b(?:GetQueryValue|LookupValue|GetFieldValue)\s*\(`)
)

// HasDatabaseActivity is the cheap gate run before the extractor battery:
// it reports whether body plausibly touches a database. The signal set is
// deliberately over-inclusive; false positives only cost an extraction pass
// that finds nothing, while a false negative would silently drop real
// operations.
func HasDatabaseActivity(body string) bool {
	if strings.Contains(body, ".SQL.") {
		return true
	}
	for _, set := range [][]string{
		queryComponentTypes,
		connectionComponentTypes,
		storedProcComponentTypes,
		transactionComponentTypes,
	} {
		for _, tok := range set {
			if containsWordFold(body, tok) {
				return true
			}
		}
	}
	if HasTransactionControl(body) {
		return true
	}
	if sqlLiteralAssignRe.MatchString(body) {
		return true
	}
	if execHelperRe.MatchString(body) {
		return true
	}
	if queryValueHelperRe.MatchString(body) {
		return true
	}
	return false
}

// HasTransactionControl reports whether a transaction-control keyword occurs
// anywhere in the comment-stripped body.
func HasTransactionControl(body string) bool {
	for _, kw := range transactionKeywords {
		if containsWordFold(body, kw) {
			return true
		}
	}
	return false
}

// containsWordFold reports whether word occurs in s as a whole identifier,
// case-insensitively.
func containsWordFold(s, word string) bool {
	lower := strings.ToLower(s)
	target := strings.ToLower(word)
	from := 0
	for {
		idx := strings.Index(lower[from:], target)
		if idx < 0 {
			return false
		}
		start := from + idx
		end := start + len(target)
		if (start == 0 || !isIdentByte(lower[start-1])) &&
			(end == len(lower) || !isIdentByte(lower[end])) {
			return true
		}
		from = start + 1
	}
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
