package shapes

import (
	"regexp"

	"github.com/leapstack-labs/unitscan/pkg/extract"
)

func init() {
	extract.Register(QueryValueHelper)
}

// QueryValueHelper covers the query-value helper family, which executes an
// inline statement and returns a single value:
//
//	Count := QueryValueAsInteger('SELECT COUNT(*) FROM PATIENT');
//	Name := GetQueryValue(Conn, 'SELECT NAME FROM T WHERE ID = ' + IntToStr(ID));
//
// The SQL literal may be the first or the second argument.
var QueryValueHelper = extract.ShapeDef{
	ID:          "SH05",
	Name:        "query.value",
	Description: "query-value and field-lookup helper call with an inline literal",
	Extract:     extractQueryValue,
}

var queryValueCallRe = regexp.MustCompile(
	`(?i)\b(?:[A-Za-z_][A-Za-z0-9_.]*\.)?(?:QueryValueAs[A-Za-z]+|GetQueryValue|QueryValue|LookupValue|GetFieldValue)\s*\(`)

func extractQueryValue(ctx extract.Context) []extract.Candidate {
	return literalArgCandidates(ctx.Body, queryValueCallRe, 2)
}
