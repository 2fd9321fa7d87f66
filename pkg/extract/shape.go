package extract

import (
	"strings"

	"github.com/leapstack-labs/unitscan/pkg/core"
)

// Context is the per-method input handed to every shape extractor.
type Context struct {
	// Body is the comment-stripped method body.
	Body string
	// Vars maps lower-cased local variable names to their
	// database-component kind, used to disambiguate receivers.
	Vars map[string]core.ComponentKind
}

// KindOf resolves the declared component kind of a receiver expression.
// Only the last segment of a dotted chain names the local variable
// (DM.Query1 resolves as query1). Receivers with no declaration report
// ComponentUnknown; shapes treat unknown as extractable so undeclared
// components are never dropped.
func (c Context) KindOf(receiver string) core.ComponentKind {
	name := receiver
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return c.Vars[strings.ToLower(name)]
}

// Candidate is one raw statement isolated by a shape extractor.
type Candidate struct {
	// Text is the literal statement for static candidates, or the
	// parameterized template produced by the concatenation parser for
	// dynamic ones.
	Text string
	// Offset is the byte offset of the originating construct within the
	// method body.
	Offset int
	// Dynamic marks statements assembled at runtime via concatenation.
	Dynamic bool
	// Shape is the ID of the extractor that produced the candidate.
	Shape string
}

// ShapeDef describes one registered shape extractor.
type ShapeDef struct {
	// ID is the unique identifier, e.g. "SH01".
	ID string
	// Name is the human-readable name, e.g. "sql.text".
	Name string
	// Description explains the syntactic shape covered.
	Description string
	// Extract yields zero or more candidates from one method body. It
	// must never fail; a body without the shape contributes nothing.
	Extract func(ctx Context) []Candidate
}
