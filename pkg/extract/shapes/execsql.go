package shapes

import (
	"regexp"

	"github.com/leapstack-labs/unitscan/pkg/extract"
)

func init() {
	extract.Register(ExecInline)
}

// ExecInline covers direct execute helpers carrying an inline SQL literal,
// with or without a leading connection argument:
//
//	Conn.ExecuteDirect('DELETE FROM LOG');
//	ExecuteSQL(Database, 'UPDATE T SET A = 1');
//
// Prepared executions without an inline literal (Query.ExecSQL;) are the
// business of the assignment shapes and contribute nothing here.
var ExecInline = extract.ShapeDef{
	ID:          "SH04",
	Name:        "exec.inline",
	Description: "execute helper call with an inline SQL literal",
	Extract:     extractExecInline,
}

var execCallRe = regexp.MustCompile(
	`(?i)\b(?:[A-Za-z_][A-Za-z0-9_.]*\.)?(?:ExecSQL|ExecQuery|ExecuteDirect|ExecuteSQL|ExecuteStatement)\s*\(`)

func extractExecInline(ctx extract.Context) []extract.Candidate {
	return literalArgCandidates(ctx.Body, execCallRe, 2)
}

// literalArgCandidates yields one candidate per call site whose first
// maxArgPos arguments include a string literal or concatenation expression.
func literalArgCandidates(body string, callRe *regexp.Regexp, maxArgPos int) []extract.Candidate {
	var out []extract.Candidate
	for _, loc := range callRe.FindAllStringIndex(body, -1) {
		args, _ := extract.ScanArgs(body, loc[1]-1)
		for i, arg := range extract.SplitArgs(args) {
			if i >= maxArgPos {
				break
			}
			if !extract.IsStringLiteral(arg) && !extract.HasTopLevelConcat(arg) {
				continue
			}
			if c, ok := candidateFromExpr(arg, loc[0]); ok {
				out = append(out, c)
			}
			break
		}
	}
	return out
}
