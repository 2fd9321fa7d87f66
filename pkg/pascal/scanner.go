package pascal

import "strings"

// scanState tracks whether the scanner is inside a string literal.
type scanState int

const (
	stateNormal scanState = iota
	stateInString
)

// StripComments removes line comments (// to end of line), brace block
// comments ({ ... }) and parenthesis-star block comments ((* ... *)) from
// src. String-literal contents are passed through untouched, including
// doubled-quote escapes, and every newline is preserved so line numbers
// computed over the result match the original text.
//
// Block comments do not nest; each ends at its first closing delimiter.
// An unterminated comment swallows the rest of the input (newlines still
// preserved), an unterminated string copies the rest verbatim.
func StripComments(src string) string {
	var out strings.Builder
	out.Grow(len(src))

	state := stateNormal
	i := 0
	for i < len(src) {
		ch := src[i]

		if state == stateInString {
			out.WriteByte(ch)
			if ch == '\'' {
				if i+1 < len(src) && src[i+1] == '\'' {
					// Escaped quote, stay in the literal.
					out.WriteByte('\'')
					i += 2
					continue
				}
				state = stateNormal
			}
			i++
			continue
		}

		switch {
		case ch == '\'':
			state = stateInString
			out.WriteByte(ch)
			i++
		case ch == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case ch == '{':
			i++
			for i < len(src) && src[i] != '}' {
				if src[i] == '\n' {
					out.WriteByte('\n')
				}
				i++
			}
			if i < len(src) {
				i++ // closing brace
			}
		case ch == '(' && i+1 < len(src) && src[i+1] == '*':
			i += 2
			for i < len(src) {
				if src[i] == '\n' {
					out.WriteByte('\n')
				}
				if src[i] == '*' && i+1 < len(src) && src[i+1] == ')' {
					i += 2
					break
				}
				i++
			}
		default:
			out.WriteByte(ch)
			i++
		}
	}

	return out.String()
}

// LineAt returns the 1-based line number of byte offset in text.
func LineAt(text string, offset int) int {
	if offset > len(text) {
		offset = len(text)
	}
	return 1 + strings.Count(text[:offset], "\n")
}

// Lines returns the inclusive 1-based line range [start, end] of text as a
// single string. Out-of-range bounds are clamped; an empty range yields "".
func Lines(text string, start, end int) string {
	if start < 1 {
		start = 1
	}
	lines := strings.Split(text, "\n")
	if end > len(lines) {
		end = len(lines)
	}
	if start > end {
		return ""
	}
	return strings.Join(lines[start-1:end], "\n")
}
