package pascal

import (
	"regexp"
	"strings"
)

// Method is one method implementation isolated from a scanned unit.
type Method struct {
	// Kind is the declaring keyword: procedure, function, constructor
	// or destructor.
	Kind      string
	ClassName string
	Name      string
	// HeaderLine is the 1-based line of the implementation header.
	HeaderLine int
	// BodyLine is the 1-based line of the opening begin.
	BodyLine int
	// EndLine is the 1-based line of the closing end;.
	EndLine int
	// Body is the text between the opening begin and its matching end;
	// (exclusive of both keywords), taken from the scanned text.
	Body string
	// BodyOffset is the byte offset of Body within the scanned text.
	BodyOffset int
}

// methodHeaderRe matches a method-implementation header line: a method-kind
// keyword, a qualified Class.Method name, an optional parameter list, an
// optional return-type annotation, and the terminating semicolon.
var methodHeaderRe = regexp.MustCompile(
	`(?im)^\s*(procedure|function|constructor|destructor)\s+` +
		`([A-Za-z_][A-Za-z0-9_]*)\.([A-Za-z_][A-Za-z0-9_]*)\s*` +
		`(?:\(([^)]*)\))?\s*(?::\s*[^;]+)?;`)

// blockWordRe finds the word-bounded begin/end keywords used for nested
// block depth counting.
var blockWordRe = regexp.MustCompile(`(?i)\b(begin|end)\b`)

// FindMethods locates every method implementation in comment-stripped unit
// text and isolates its body by nested begin/end; counting. Headers with no
// reachable begin before the next header (forward declarations) are skipped
// without error.
//
// Known limitation: the depth counter treats every bare "end;" as a block
// close, so case statements, try blocks and inline record/class bodies that
// close with "end;" can end a method body early. See pkg/extract docs.
func FindMethods(scanned string) []Method {
	headers := methodHeaderRe.FindAllStringSubmatchIndex(scanned, -1)
	methods := make([]Method, 0, len(headers))

	for hi, h := range headers {
		headerStart, headerEnd := h[0], h[1]
		kind := strings.ToLower(scanned[h[2]:h[3]])
		class := scanned[h[4]:h[5]]
		name := scanned[h[6]:h[7]]

		// A forward declaration has no begin before the next header.
		searchLimit := len(scanned)
		if hi+1 < len(headers) {
			searchLimit = headers[hi+1][0]
		}

		body, bodyOff, endOff, ok := isolateBody(scanned, headerEnd, searchLimit)
		if !ok {
			continue
		}

		methods = append(methods, Method{
			Kind:       kind,
			ClassName:  class,
			Name:       name,
			HeaderLine: LineAt(scanned, headerStart),
			BodyLine:   LineAt(scanned, bodyOff),
			EndLine:    LineAt(scanned, endOff),
			Body:       body,
			BodyOffset: bodyOff,
		})
	}

	return methods
}

// isolateBody scans forward from offset for the first standalone begin, then
// tracks nested depth: every begin increments, every end immediately followed
// (after optional whitespace) by ';' decrements. The body ends at the end;
// that returns depth to zero. The first begin must occur before limit.
func isolateBody(scanned string, offset, limit int) (body string, bodyOff, endOff int, ok bool) {
	words := blockWordRe.FindAllStringIndex(scanned[offset:], -1)

	depth := 0
	for _, w := range words {
		start, end := offset+w[0], offset+w[1]
		word := strings.ToLower(scanned[start:end])

		if depth == 0 {
			if word != "begin" || start >= limit {
				if word == "begin" {
					// begin belongs to the next header's region.
					return "", 0, 0, false
				}
				continue
			}
			depth = 1
			bodyOff = end
			continue
		}

		switch word {
		case "begin":
			depth++
		case "end":
			if !followedBySemicolon(scanned, end) {
				continue
			}
			depth--
			if depth == 0 {
				return scanned[bodyOff:start], bodyOff, start, true
			}
		}
	}
	return "", 0, 0, false
}

// followedBySemicolon reports whether the next non-whitespace byte after
// offset is a semicolon.
func followedBySemicolon(s string, offset int) bool {
	for i := offset; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\r', '\n':
			continue
		case ';':
			return true
		default:
			return false
		}
	}
	return false
}
