package relate

import (
	"github.com/tabviz/tabviz/pkg/table"
)

// materializeEdges builds the edge table: exactly one record per source row,
// in row order, endpoints sanitized the same way node ids are. Edges are
// never deduplicated - duplicate endpoint pairs stay as distinct rows.
func materializeEdges(src *table.Table, d *Descriptor) *table.Table {
	edges := table.MustNew(ColEdgeFrom, ColEdgeTo)

	left := sideValues(src, d.Left)
	right := sideValues(src, d.Right)
	for i := 0; i < src.Len(); i++ {
		edges.Append(table.Row{
			ColEdgeFrom: sanitizeID(left[i]),
			ColEdgeTo:   sanitizeID(right[i]),
		})
	}
	return edges
}
