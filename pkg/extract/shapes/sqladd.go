package shapes

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/unitscan/pkg/extract"
)

func init() {
	extract.Register(SQLAddSequence)
}

// SQLAddSequence covers additive statement building: runs of
// Query.SQL.Add('...') calls, partitioned into accumulation windows by
// Query.SQL.Clear calls. Within a window the literal arguments are joined
// in call order with newlines into one statement. An Add argument that is
// itself a concatenation is routed through the concatenation parser as its
// own dynamic candidate.
var SQLAddSequence = extract.ShapeDef{
	ID:          "SH02",
	Name:        "sql.add",
	Description: "SQL.Add call sequences windowed by SQL.Clear",
	Extract:     extractSQLAdd,
}

var sqlAddCallRe = regexp.MustCompile(`(?i)\b([A-Za-z_][A-Za-z0-9_.]*)\.SQL\.(Add|Append|Clear)\b\s*`)

type addEvent struct {
	clear   bool
	literal string
	dynamic *extract.Candidate
	offset  int
}

func extractSQLAdd(ctx extract.Context) []extract.Candidate {
	// Events are grouped per receiver so two components built in the same
	// method do not bleed into each other's windows.
	events := make(map[string][]addEvent)
	var order []string

	for _, m := range sqlAddCallRe.FindAllStringSubmatchIndex(ctx.Body, -1) {
		receiver := strings.ToLower(ctx.Body[m[2]:m[3]])
		call := strings.ToLower(ctx.Body[m[4]:m[5]])
		if !sqlCapableReceiver(ctx, receiver) {
			continue
		}
		if _, ok := events[receiver]; !ok {
			order = append(order, receiver)
		}

		if call == "clear" {
			events[receiver] = append(events[receiver], addEvent{clear: true, offset: m[0]})
			continue
		}

		args, _ := extract.ScanArgs(ctx.Body, m[1])
		arg := strings.TrimSpace(args)
		switch {
		case extract.HasTopLevelConcat(arg):
			if c, ok := candidateFromExpr(arg, m[0]); ok {
				events[receiver] = append(events[receiver], addEvent{dynamic: &c, offset: m[0]})
			}
		case extract.IsStringLiteral(arg):
			events[receiver] = append(events[receiver], addEvent{
				literal: extract.UnquoteLiteral(arg),
				offset:  m[0],
			})
		}
	}

	var out []extract.Candidate
	for _, receiver := range order {
		out = append(out, windowCandidates(events[receiver])...)
	}
	return out
}

// windowCandidates joins literal Add calls per accumulation window. Each
// Clear closes the running window and opens a new one; without any Clear
// the whole method is one window.
func windowCandidates(events []addEvent) []extract.Candidate {
	var out []extract.Candidate
	var window []string
	windowStart := -1

	flush := func() {
		if len(window) > 0 {
			out = append(out, extract.Candidate{
				Text:   strings.Join(window, "\n"),
				Offset: windowStart,
			})
		}
		window = nil
		windowStart = -1
	}

	for _, ev := range events {
		switch {
		case ev.clear:
			flush()
		case ev.dynamic != nil:
			out = append(out, *ev.dynamic)
		default:
			if windowStart < 0 {
				windowStart = ev.offset
			}
			window = append(window, ev.literal)
		}
	}
	flush()
	return out
}
