package sqlnorm

import (
	"regexp"
	"strings"
)

// sqlKeywords is the fixed keyword list upper-cased by normalization.
// Word-bounded, case-insensitive matching.
var sqlKeywords = []string{
	"SELECT", "FROM", "WHERE", "INSERT", "INTO", "VALUES", "UPDATE", "SET",
	"DELETE", "CREATE", "ALTER", "DROP", "TABLE", "INDEX", "VIEW", "TRIGGER",
	"GENERATOR", "SEQUENCE", "EXECUTE", "EXEC", "CALL", "PROCEDURE",
	"JOIN", "INNER", "LEFT", "RIGHT", "FULL", "OUTER", "CROSS", "ON",
	"GROUP", "ORDER", "BY", "HAVING", "UNION", "ALL", "DISTINCT",
	"AND", "OR", "NOT", "NULL", "IS", "IN", "EXISTS", "BETWEEN", "LIKE",
	"CONTAINING", "STARTING", "WITH", "AS", "CASE", "WHEN", "THEN", "ELSE",
	"END", "CAST", "COALESCE", "COUNT", "SUM", "AVG", "MIN", "MAX",
	"FIRST", "SKIP", "ROWS", "TO", "ASC", "DESC", "RETURNING", "MERGE",
	"MATCHED", "USING", "PRIMARY", "FOREIGN", "KEY", "REFERENCES",
	"CONSTRAINT", "UNIQUE", "DEFAULT", "CHECK", "GRANT", "REVOKE",
}

// reservedWords are identifiers that keep (or regain) double quotes because
// they collide with SQL reserved words when used as column or table names.
var reservedWords = []string{
	"USER", "PASSWORD", "VALUE", "TYPE", "DATE", "TIME", "TIMESTAMP",
	"YEAR", "MONTH", "DAY", "HOUR", "MINUTE", "SECOND", "POSITION",
	"ROLE", "ACTION", "ACTIVE", "COMMENT", "LEVEL", "SIZE",
}

var (
	keywordRe  = regexp.MustCompile(`(?i)\b(` + strings.Join(sqlKeywords, "|") + `)\b`)
	reservedRe = regexp.MustCompile(`(?i)\b(` + strings.Join(reservedWords, "|") + `)\b`)

	reservedSet = func() map[string]struct{} {
		m := make(map[string]struct{}, len(reservedWords))
		for _, w := range reservedWords {
			m[w] = struct{}{}
		}
		return m
	}()
)

// IsReservedWord reports whether ident case-insensitively matches the
// reserved-word set.
func IsReservedWord(ident string) bool {
	_, ok := reservedSet[strings.ToUpper(ident)]
	return ok
}
