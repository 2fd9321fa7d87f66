// Package extract recovers database operations from method bodies via a
// battery of independent shape extractors.
//
// Each syntactic shape (literal SQL.Text assignment, windowed SQL.Add
// sequences, variable assignments, inline execute helpers, query-value
// helpers) is an independently testable ShapeDef registered from
// pkg/extract/shapes; the analyzer dispatches every registered shape over a
// method body, unions the candidates and deduplicates identical statement
// text. Dynamic concatenation expressions are reduced to parameterized SQL
// templates rather than dropped.
//
// The engine never fails on malformed input: unrecognized constructs simply
// contribute no candidates.
package extract
