package relate

import (
	"github.com/tabviz/tabviz/pkg/table"
)

// Well-known column names of the output tables. Attribute rules add further
// columns next to these.
const (
	// ColNodeID is the node table's identity column.
	ColNodeID = "node"
	// ColLabel is the node table's optional label column.
	ColLabel = "label"
	// ColEdgeFrom is the edge table's source endpoint column.
	ColEdgeFrom = "from"
	// ColEdgeTo is the edge table's target endpoint column.
	ColEdgeTo = "to"
)

// Options configures a conversion.
type Options struct {
	// Descriptor is the relationship descriptor string, e.g. "from -> to"
	// or "org+team -- user".
	Descriptor string

	// NodeRules holds attribute-rule strings applied to the node table,
	// filtered by origin tag.
	NodeRules []string

	// EdgeRules holds attribute-rule strings broadcast to every edge.
	EdgeRules []string

	// Labels controls whether the node table carries a label column.
	// Labels equal the node id except that embedded quotes are rendered
	// as "&#39;" instead of "_".
	Labels bool
}

// Result is the finished graph description: the deduplicated node table,
// the row-aligned edge table and the resolved directedness flag. These
// three values are the exact contract handed to the serializer in
// [github.com/tabviz/tabviz/pkg/render/dot].
type Result struct {
	Nodes    *table.Table
	Edges    *table.Table
	Directed bool
}

// Convert runs the conversion pipeline over the source table:
// parse descriptor, parse attribute rules, resolve node identities,
// materialize edges, merge attributes.
//
// All parse errors surface before any derivation begins; once derivation
// starts the table is assumed well-formed and the pipeline cannot fail.
// The returned tables are owned exclusively by the caller.
func Convert(src *table.Table, opts Options) (*Result, error) {
	d, err := ParseDescriptor(opts.Descriptor, src)
	if err != nil {
		return nil, err
	}
	nodeRules, err := ParseRules(opts.NodeRules)
	if err != nil {
		return nil, err
	}
	edgeRules, err := ParseRules(opts.EdgeRules)
	if err != nil {
		return nil, err
	}

	set := resolveNodes(src, d)

	cols := []string{ColNodeID}
	if opts.Labels {
		cols = append(cols, ColLabel)
	}
	nodes := table.MustNew(cols...)
	for i, id := range set.ids {
		row := table.Row{ColNodeID: id}
		if opts.Labels {
			row[ColLabel] = set.labels[i]
		}
		nodes.Append(row)
	}

	edges := materializeEdges(src, d)

	filterFor := func(tag string) nodeFilter {
		if d.Mode == ModeSimple {
			return membershipFilter(src, tag, set.ids)
		}
		return originFilter(set.origins, tag)
	}
	applyNodeRules(nodes, nodeRules, filterFor)
	applyEdgeRules(edges, edgeRules)

	return &Result{Nodes: nodes, Edges: edges, Directed: d.Directed}, nil
}
