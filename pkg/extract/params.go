package extract

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/unitscan/pkg/core"
	"github.com/leapstack-labs/unitscan/pkg/sqlnorm"
)

var (
	placeholderRe = regexp.MustCompile(`:([A-Za-z_][A-Za-z0-9_]*)`)

	// paramAccessorRe matches by-name accessor calls, with the optional
	// typed-access suffix that drives inference:
	// ParamByName('ID').AsInteger, Params.ParamByName('NAME').AsString.
	paramAccessorRe = regexp.MustCompile(
		`(?i)\bParamByName\s*\(\s*'([^']+)'\s*\)(?:\s*\.\s*(As[A-Za-z]+|Value)\b)?`)

	// paramIndexRe matches quoted keys into the indexed parameter
	// collection: Params['ID'], optionally with a typed suffix.
	paramIndexRe = regexp.MustCompile(
		`(?i)\bParams\s*\[\s*'([^']+)'\s*\](?:\s*\.\s*(As[A-Za-z]+|Value)\b)?`)
)

// BuildParameters collects the bound parameters of one operation: the union
// of colon placeholders in sql and by-name accessor usage anywhere in the
// method body. Names are unique case-insensitively (underscore-insensitive
// too, so a normalized :PatientId placeholder still matches
// ParamByName('PATIENT_ID')); the first spelling found is the one emitted.
// The first typed accessor observed for a name fixes its inferred type;
// absent any, the type defaults to opaque.
func BuildParameters(sql, body string) []core.SqlParameter {
	type hit struct {
		accessor string
		ptype    core.ParamType
	}
	typed := make(map[string]hit)
	collect := func(re *regexp.Regexp) {
		for _, m := range re.FindAllStringSubmatch(body, -1) {
			if m[2] == "" {
				continue
			}
			key := paramKey(m[1])
			if _, ok := typed[key]; !ok {
				typed[key] = hit{accessor: m[2], ptype: AccessorType(m[2])}
			}
		}
	}
	collect(paramAccessorRe)
	collect(paramIndexRe)

	var params []core.SqlParameter
	seen := make(map[string]struct{})
	add := func(name string) {
		key := paramKey(name)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		p := core.SqlParameter{Name: name, Type: core.ParamOpaque}
		if h, ok := typed[key]; ok {
			p.SourceType = h.accessor
			p.Type = h.ptype
		}
		params = append(params, p)
	}

	for _, m := range placeholderRe.FindAllStringSubmatch(sql, -1) {
		add(m[1])
	}
	for _, m := range paramAccessorRe.FindAllStringSubmatch(body, -1) {
		add(m[1])
	}
	for _, m := range paramIndexRe.FindAllStringSubmatch(body, -1) {
		add(m[1])
	}

	return params
}

// paramKey canonicalizes a parameter name for matching: PascalCase collapses
// underscore and camel-case variants, lower-casing removes the rest.
func paramKey(name string) string {
	return strings.ToLower(sqlnorm.PascalCase(name))
}

// AccessorType maps a typed-access convention to the inferred scalar kind.
// Unrecognized conventions are opaque.
func AccessorType(accessor string) core.ParamType {
	switch strings.ToLower(accessor) {
	case "asinteger", "aslargeint", "assmallint", "asshortint", "asword", "aslongword":
		return core.ParamInteger
	case "asstring", "aswidestring", "asansistring", "asmemo", "asfixedchar":
		return core.ParamText
	case "asboolean":
		return core.ParamBoolean
	case "asfloat", "assingle", "asextended":
		return core.ParamFloat
	case "ascurrency", "asbcd", "asfmtbcd":
		return core.ParamDecimal
	case "asdatetime", "asdate", "astime", "assqltimestamp", "astimestamp":
		return core.ParamDateTime
	case "asblob", "asbytes", "asstream":
		return core.ParamBinary
	default:
		return core.ParamOpaque
	}
}
