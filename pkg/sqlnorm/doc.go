// Package sqlnorm canonicalizes and classifies recovered SQL text:
// keyword casing, identifier quoting, bind-parameter naming, operation-kind
// classification and target-table resolution.
//
// Normalization is idempotent: applying it to already-normalized text yields
// the same text. All pattern tables are compiled once at process start and
// never mutated.
package sqlnorm
