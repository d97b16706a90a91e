// Package dot serializes a conversion result into the Graphviz DOT graph
// description language and renders it to SVG or PNG.
//
// The serializer consumes exactly the contract produced by
// [github.com/tabviz/tabviz/pkg/relate.Convert]: a node table, an edge table
// and a directedness flag. It performs no escaping beyond DOT quoting - quote
// sanitation already happened during identity resolution.
package dot

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/tabviz/tabviz/pkg/relate"
	"github.com/tabviz/tabviz/pkg/table"
)

// Options configures DOT serialization.
type Options struct {
	// Name is the graph name in the output document. Defaults to "G".
	Name string

	// Rankdir sets the layout direction attribute when non-empty
	// (e.g. "LR" for left-to-right).
	Rankdir string
}

// Marshal renders a conversion result as a DOT document.
//
// Directed results become a "digraph" with "->" edge statements, undirected
// ones a "graph" with "--". Node statements carry the label (when present)
// and every non-empty attribute cell; edge statements carry their non-empty
// attribute cells. Statement order follows table row order, so output is
// deterministic for a given result.
func Marshal(res *relate.Result, opts Options) string {
	name := opts.Name
	if name == "" {
		name = "G"
	}
	keyword, edgeOp := "graph", "--"
	if res.Directed {
		keyword, edgeOp = "digraph", "->"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s %s {\n", keyword, name)
	if opts.Rankdir != "" {
		fmt.Fprintf(&buf, "  rankdir=%s;\n", opts.Rankdir)
	}

	for i := 0; i < res.Nodes.Len(); i++ {
		id := res.Nodes.Value(i, relate.ColNodeID)
		attrs := rowAttrs(res.Nodes, i, relate.ColNodeID)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q;\n", id)
			continue
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
	}

	if res.Edges.Len() > 0 {
		buf.WriteString("\n")
	}
	for i := 0; i < res.Edges.Len(); i++ {
		from := res.Edges.Value(i, relate.ColEdgeFrom)
		to := res.Edges.Value(i, relate.ColEdgeTo)
		attrs := rowAttrs(res.Edges, i, relate.ColEdgeFrom, relate.ColEdgeTo)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q %s %q;\n", from, edgeOp, to)
			continue
		}
		fmt.Fprintf(&buf, "  %q %s %q [%s];\n", from, edgeOp, to, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// rowAttrs formats the attribute assignments of one table row, skipping the
// identity columns and empty cells. Column order is the table's column
// order: label first (if present), then attributes in rule order.
func rowAttrs(t *table.Table, row int, skip ...string) []string {
	skipSet := make(map[string]bool, len(skip))
	for _, s := range skip {
		skipSet[s] = true
	}

	var attrs []string
	for _, col := range t.Columns() {
		if skipSet[col] {
			continue
		}
		if v := t.Value(row, col); v != "" {
			attrs = append(attrs, fmt.Sprintf("%s=%q", col, v))
		}
	}
	return attrs
}
