// Package pascal provides the lexical layer over legacy Pascal-dialect
// source units: comment stripping, method-body isolation, the database
// activity gate, and query-variable tracking.
//
// Nothing here is a full parser. The scanners are deliberately heuristic;
// they never fail on malformed input and newline positions are always
// preserved so downstream line attribution stays correct.
package pascal
