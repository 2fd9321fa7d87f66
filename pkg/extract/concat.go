package extract

import (
	"regexp"
	"strings"
)

// concatPartRe is the single alternation over the two part kinds of an
// additive string expression: a quoted literal with doubled-quote escaping,
// or a '+'-introduced bare expression.
var concatPartRe = regexp.MustCompile(`'(?:[^']|'')*'|\+\s*([^+']+)`)

// singleArgCallRe matches a function call; the argument list is reduced
// further only when it is a single argument.
var singleArgCallRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*\s*\(\s*(.*)\s*\)$`)

// ParseConcat turns a Pascal-style additive string expression into a
// parameterized SQL template. Literal parts are unescaped and appended
// verbatim; every non-literal part is reduced to a core bind-parameter name
// and inserted as a colon-prefixed placeholder. The returned names are in
// placeholder order.
func ParseConcat(expr string) (template string, params []string) {
	var out strings.Builder
	for _, m := range concatPartRe.FindAllStringSubmatch(expr, -1) {
		if strings.HasPrefix(m[0], "'") {
			out.WriteString(UnquoteLiteral(m[0]))
			continue
		}
		name := ReduceExpr(m[1])
		if name == "" {
			continue
		}
		params = append(params, name)
		out.WriteString(":")
		out.WriteString(name)
	}
	return out.String(), params
}

// ReduceExpr reduces a concatenated sub-expression to its core parameter
// name: a single-argument function call is replaced by its argument, a
// dotted member access by its trailing member; anything else is used as-is.
func ReduceExpr(expr string) string {
	expr = strings.TrimSpace(expr)

	// Peel conversion wrappers: IntToStr(X) -> X, QuotedStr(A.B) -> A.B.
	for {
		m := singleArgCallRe.FindStringSubmatch(expr)
		if m == nil {
			break
		}
		arg := strings.TrimSpace(m[1])
		if arg == "" || len(SplitArgs(arg)) != 1 {
			break
		}
		expr = arg
	}

	if dot := strings.LastIndexByte(expr, '.'); dot >= 0 && dot < len(expr)-1 {
		tail := expr[dot+1:]
		if isIdentifier(tail) {
			return tail
		}
	}
	return expr
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch == '_',
			ch >= 'a' && ch <= 'z',
			ch >= 'A' && ch <= 'Z':
		case ch >= '0' && ch <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
