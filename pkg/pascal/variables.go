package pascal

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/unitscan/pkg/core"
)

var (
	// varDeclRe matches a var-section declaration: one or more names, a
	// colon, and a component class token.
	varDeclRe = regexp.MustCompile(
		`(?im)^\s*([A-Za-z_][A-Za-z0-9_]*(?:\s*,\s*[A-Za-z_][A-Za-z0-9_]*)*)\s*:\s*(T[A-Za-z0-9_]+)\s*;`)

	// varCreateRe matches an inline construction: X := TFDQuery.Create(...).
	varCreateRe = regexp.MustCompile(
		`(?i)\b([A-Za-z_][A-Za-z0-9_]*)\s*:=\s*(T[A-Za-z0-9_]+)\.Create\b`)
)

// ScanQueryVariables maps locally declared or created variable names to
// their database-component kind. Variables of non-database classes are not
// recorded. The map is ephemeral extraction state and is never persisted.
func ScanQueryVariables(scanned string) map[string]core.ComponentKind {
	vars := make(map[string]core.ComponentKind)

	for _, m := range varDeclRe.FindAllStringSubmatch(scanned, -1) {
		kind := ComponentKindOf(m[2])
		if kind == core.ComponentUnknown {
			continue
		}
		for _, name := range strings.Split(m[1], ",") {
			vars[strings.ToLower(strings.TrimSpace(name))] = kind
		}
	}

	// Created instances override declarations; the constructed class is
	// the authoritative one.
	for _, m := range varCreateRe.FindAllStringSubmatch(scanned, -1) {
		if kind := ComponentKindOf(m[2]); kind != core.ComponentUnknown {
			vars[strings.ToLower(m[1])] = kind
		}
	}

	return vars
}

// ComponentKindOf classifies a component class token.
func ComponentKindOf(typeName string) core.ComponentKind {
	for _, t := range queryComponentTypes {
		if strings.EqualFold(t, typeName) {
			return core.ComponentQuery
		}
	}
	for _, t := range connectionComponentTypes {
		if strings.EqualFold(t, typeName) {
			return core.ComponentConnection
		}
	}
	for _, t := range storedProcComponentTypes {
		if strings.EqualFold(t, typeName) {
			return core.ComponentStoredProc
		}
	}
	for _, t := range transactionComponentTypes {
		if strings.EqualFold(t, typeName) {
			return core.ComponentTransaction
		}
	}
	return core.ComponentUnknown
}
