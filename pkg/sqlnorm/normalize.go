package sqlnorm

import (
	"regexp"
	"strings"
)

var (
	quotedIdentRe = regexp.MustCompile(`"([A-Za-z_][A-Za-z0-9_]*)"`)
	paramRe       = regexp.MustCompile(`:([A-Za-z_][A-Za-z0-9_]*)`)
)

// Normalize canonicalizes recovered SQL text. The pipeline is fixed:
//
//  1. unquote double-quoted identifiers unless they match the reserved-word
//     set, which keeps its quoting;
//  2. upper-case every word-bounded keyword-list match;
//  3. rewrite every colon-prefixed parameter name to PascalCase.
//
// Single-quoted string literals pass through untouched; every rewrite
// applies only to the spans between them. Normalize is idempotent.
func Normalize(sql string) string {
	return mapOutsideLiterals(sql, normalizeSpan)
}

func normalizeSpan(span string) string {
	out := quotedIdentRe.ReplaceAllStringFunc(span, func(m string) string {
		ident := m[1 : len(m)-1]
		if IsReservedWord(ident) {
			return m
		}
		return ident
	})

	out = keywordRe.ReplaceAllStringFunc(out, strings.ToUpper)

	out = paramRe.ReplaceAllStringFunc(out, func(m string) string {
		return ":" + PascalCase(m[1:])
	})

	return out
}

// RequoteReserved reapplies double quotes to unquoted identifiers that
// collide with the reserved-word set. Applied as the last step of the
// full-unit extraction path so reserved identifiers stay quoted in the
// final text. Already-quoted occurrences and text inside single-quoted
// string literals are left alone.
func RequoteReserved(sql string) string {
	return mapOutsideLiterals(sql, requoteSpan)
}

func requoteSpan(span string) string {
	var out strings.Builder
	last := 0
	for _, loc := range reservedRe.FindAllStringIndex(span, -1) {
		start, end := loc[0], loc[1]
		if (start > 0 && span[start-1] == '"') || (end < len(span) && span[end] == '"') {
			continue
		}
		out.WriteString(span[last:start])
		out.WriteByte('"')
		out.WriteString(strings.ToUpper(span[start:end]))
		out.WriteByte('"')
		last = end
	}
	out.WriteString(span[last:])
	return out.String()
}

// mapOutsideLiterals applies fn to the spans of sql outside single-quoted
// string literals and copies the literals through verbatim. A doubled
// quote inside a literal is the escape form; an unterminated literal runs
// to the end of the text.
func mapOutsideLiterals(sql string, fn func(string) string) string {
	var out strings.Builder
	start := 0
	for i := 0; i < len(sql); {
		if sql[i] != '\'' {
			i++
			continue
		}
		out.WriteString(fn(sql[start:i]))
		j := i + 1
		for j < len(sql) {
			if sql[j] == '\'' {
				if j+1 < len(sql) && sql[j+1] == '\'' {
					j += 2
					continue
				}
				j++
				break
			}
			j++
		}
		out.WriteString(sql[i:j])
		i, start = j, j
	}
	out.WriteString(fn(sql[start:]))
	return out.String()
}

// PascalCase rewrites a parameter name to PascalCase: the name is split on
// underscores and camel-case boundaries, each part's first character is
// capitalized and the remainder lower-cased, and the parts concatenated.
// PATIENT_ID, patient_id and PatientID all become PatientId.
func PascalCase(name string) string {
	var out strings.Builder
	for _, part := range splitNameParts(name) {
		out.WriteString(strings.ToUpper(part[:1]))
		out.WriteString(strings.ToLower(part[1:]))
	}
	return out.String()
}

// splitNameParts splits an identifier on underscores, lower-to-upper
// transitions, and the tail of an upper-case run followed by a lower-case
// letter (PatientID -> Patient, ID).
func splitNameParts(name string) []string {
	var parts []string
	var cur strings.Builder

	flush := func() {
		if cur.Len() > 0 {
			parts = append(parts, cur.String())
			cur.Reset()
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		if r == '_' {
			flush()
			continue
		}
		if i > 0 && isUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && isLower(runes[i+1])
			if isLower(prev) || (isUpper(prev) && nextLower) {
				flush()
			}
		}
		cur.WriteRune(r)
	}
	flush()
	return parts
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
