package shapes

import (
	"regexp"

	"github.com/leapstack-labs/unitscan/pkg/extract"
)

func init() {
	extract.Register(VarAssign)
}

// VarAssign covers plain variable assignments whose right-hand side opens
// with a SQL literal: SQLText := 'SELECT ...' [+ ...];. Only statements
// beginning with a DML/DDL keyword qualify, so ordinary string variables do
// not produce noise.
var VarAssign = extract.ShapeDef{
	ID:          "SH03",
	Name:        "var.assign",
	Description: "variable assignment of a SQL literal, with optional concatenation",
	Extract:     extractVarAssign,
}

var (
	// Receiver is a bare identifier: dotted targets belong to the
	// property-assignment shapes.
	varAssignRe = regexp.MustCompile(`(?im)^\s*[A-Za-z_][A-Za-z0-9_]*\s*:=\s*'`)

	sqlLeadingKeywordRe = regexp.MustCompile(
		`(?i)^\s*(?:SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP|RECREATE|EXECUTE|MERGE|GRANT|REVOKE|SET\s+GENERATOR)\b`)
)

func extractVarAssign(ctx extract.Context) []extract.Candidate {
	var out []extract.Candidate
	for _, loc := range varAssignRe.FindAllStringIndex(ctx.Body, -1) {
		exprStart := loc[1] - 1 // back onto the opening quote
		expr, _ := extract.ScanExpr(ctx.Body, exprStart)

		first := firstLiteral(expr)
		if !sqlLeadingKeywordRe.MatchString(first) {
			continue
		}
		if c, ok := candidateFromExpr(expr, loc[0]); ok {
			out = append(out, c)
		}
	}
	return out
}

// firstLiteral returns the unescaped content of the first quoted literal in
// an expression, or "" when there is none.
func firstLiteral(expr string) string {
	for i := 0; i < len(expr); i++ {
		if expr[i] != '\'' {
			continue
		}
		for j := i + 1; j < len(expr); j++ {
			if expr[j] != '\'' {
				continue
			}
			if j+1 < len(expr) && expr[j+1] == '\'' {
				j++
				continue
			}
			return extract.UnquoteLiteral(expr[i : j+1])
		}
		break
	}
	return ""
}
