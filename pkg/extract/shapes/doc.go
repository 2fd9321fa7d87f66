// Package shapes registers the built-in shape extractors with the
// pkg/extract registry. Import for side effect:
//
//	import _ "github.com/leapstack-labs/unitscan/pkg/extract/shapes"
//
// Each file covers one syntactic shape and registers it from init().
package shapes
