// Package relate converts a tabular dataset into a graph description: a
// deduplicated node table and a row-aligned edge table, driven by a
// declarative relationship descriptor and optional attribute rules.
//
// # Descriptors
//
// A descriptor names the two sides of the relationship and the edge
// direction:
//
//	"from -> to"       directed, one column per side
//	"a -- b"           undirected
//	"org+team -> user" composite left side: node ids join the two
//	                   column values with "__"
//
// # Attribute rules
//
// Attribute rules attach key/value attributes to nodes or edges:
//
//	"from: color=red, shape=box"
//
// The tag before the colon selects which nodes receive the attributes; for a
// composite side the tag is the joined spec (e.g. "org+team"). Edge rules
// ignore the tag and apply to every edge. Rules merge with an overlay: a
// later rule overrides an earlier value only where it supplies a non-empty
// value.
//
// # Pipeline
//
// [Convert] runs the full pipeline - parse descriptor, parse rules, resolve
// node identities, materialize edges, merge attributes - and returns a
// [Result] ready for serialization by
// [github.com/tabviz/tabviz/pkg/render/dot].
package relate
