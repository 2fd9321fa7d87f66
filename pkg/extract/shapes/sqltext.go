package shapes

import (
	"regexp"

	"github.com/leapstack-labs/unitscan/pkg/core"
	"github.com/leapstack-labs/unitscan/pkg/extract"
)

func init() {
	extract.Register(SQLTextAssign)
}

// SQLTextAssign covers the literal property assignment shape
// Query.SQL.Text := '...'; including concatenated right-hand sides, which
// are routed through the concatenation parser.
var SQLTextAssign = extract.ShapeDef{
	ID:          "SH01",
	Name:        "sql.text",
	Description: "SQL.Text property assignment, literal or concatenated",
	Extract:     extractSQLText,
}

var sqlTextRe = regexp.MustCompile(`(?i)\b([A-Za-z_][A-Za-z0-9_.]*)\.SQL\.Text\s*:=\s*`)

func extractSQLText(ctx extract.Context) []extract.Candidate {
	var out []extract.Candidate
	for _, m := range sqlTextRe.FindAllStringSubmatchIndex(ctx.Body, -1) {
		if !sqlCapableReceiver(ctx, ctx.Body[m[2]:m[3]]) {
			continue
		}
		expr, _ := extract.ScanExpr(ctx.Body, m[1])
		if c, ok := candidateFromExpr(expr, m[0]); ok {
			out = append(out, c)
		}
	}
	return out
}

// sqlCapableReceiver consults the query-variable map to reject receivers
// declared as a kind that has no SQL statement property. Undeclared
// receivers pass: the gate only disambiguates, it never narrows.
func sqlCapableReceiver(ctx extract.Context, receiver string) bool {
	switch ctx.KindOf(receiver) {
	case core.ComponentTransaction, core.ComponentConnection:
		return false
	}
	return true
}

// candidateFromExpr turns an assignment right-hand side into a candidate:
// a plain literal yields a static candidate, a concatenation yields a
// dynamic template, anything else (an opaque variable) yields nothing.
func candidateFromExpr(expr string, offset int) (extract.Candidate, bool) {
	if extract.HasTopLevelConcat(expr) {
		template, _ := extract.ParseConcat(expr)
		if template == "" {
			return extract.Candidate{}, false
		}
		return extract.Candidate{Text: template, Offset: offset, Dynamic: true}, true
	}
	if !extract.IsStringLiteral(expr) {
		return extract.Candidate{}, false
	}
	return extract.Candidate{Text: extract.UnquoteLiteral(expr), Offset: offset}, true
}
