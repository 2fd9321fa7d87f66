package extract

import "strings"

// UnquoteLiteral strips the surrounding single quotes from a Pascal string
// literal and collapses doubled-quote escapes. Input without surrounding
// quotes is returned unchanged.
func UnquoteLiteral(lit string) string {
	lit = strings.TrimSpace(lit)
	if len(lit) < 2 || lit[0] != '\'' || lit[len(lit)-1] != '\'' {
		return lit
	}
	return strings.ReplaceAll(lit[1:len(lit)-1], "''", "'")
}

// IsStringLiteral reports whether expr is a single quoted literal with no
// trailing expression.
func IsStringLiteral(expr string) bool {
	expr = strings.TrimSpace(expr)
	if len(expr) < 2 || expr[0] != '\'' {
		return false
	}
	i := 1
	for i < len(expr) {
		if expr[i] == '\'' {
			if i+1 < len(expr) && expr[i+1] == '\'' {
				i += 2
				continue
			}
			return i == len(expr)-1
		}
		i++
	}
	return false
}

// HasTopLevelConcat reports whether expr contains a '+' outside of string
// literals, i.e. whether the expression is dynamic concatenation.
func HasTopLevelConcat(expr string) bool {
	inString := false
	for i := 0; i < len(expr); i++ {
		ch := expr[i]
		if inString {
			if ch == '\'' {
				if i+1 < len(expr) && expr[i+1] == '\'' {
					i++
					continue
				}
				inString = false
			}
			continue
		}
		switch ch {
		case '\'':
			inString = true
		case '+':
			return true
		}
	}
	return false
}

// ScanExpr reads an expression from body starting at offset up to the first
// semicolon outside string literals. It returns the expression text and the
// offset just past it. A missing terminator yields the rest of the body.
func ScanExpr(body string, offset int) (expr string, end int) {
	inString := false
	i := offset
	for i < len(body) {
		ch := body[i]
		if inString {
			if ch == '\'' {
				if i+1 < len(body) && body[i+1] == '\'' {
					i += 2
					continue
				}
				inString = false
			}
			i++
			continue
		}
		switch ch {
		case '\'':
			inString = true
		case ';':
			return body[offset:i], i
		}
		i++
	}
	return body[offset:], i
}

// ScanArgs reads a balanced parenthesized argument list from body, where
// offset points at the opening parenthesis. It returns the text between the
// parentheses and the offset just past the closing one. String literals are
// honored; an unbalanced list yields the rest of the body.
func ScanArgs(body string, offset int) (args string, end int) {
	if offset >= len(body) || body[offset] != '(' {
		return "", offset
	}
	depth := 0
	inString := false
	i := offset
	for i < len(body) {
		ch := body[i]
		if inString {
			if ch == '\'' {
				if i+1 < len(body) && body[i+1] == '\'' {
					i += 2
					continue
				}
				inString = false
			}
			i++
			continue
		}
		switch ch {
		case '\'':
			inString = true
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return body[offset+1 : i], i + 1
			}
		}
		i++
	}
	return body[offset+1:], i
}

// SplitArgs splits an argument-list string on top-level commas, honoring
// string literals and nested parentheses.
func SplitArgs(args string) []string {
	var out []string
	depth := 0
	inString := false
	start := 0
	for i := 0; i < len(args); i++ {
		ch := args[i]
		if inString {
			if ch == '\'' {
				if i+1 < len(args) && args[i+1] == '\'' {
					i++
					continue
				}
				inString = false
			}
			continue
		}
		switch ch {
		case '\'':
			inString = true
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(args[start:i]))
				start = i + 1
			}
		}
	}
	if last := strings.TrimSpace(args[start:]); last != "" || len(out) > 0 {
		out = append(out, last)
	}
	return out
}
