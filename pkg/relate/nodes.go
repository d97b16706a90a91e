package relate

import (
	"strings"

	"github.com/tabviz/tabviz/pkg/table"
)

// idSep joins the column values of a composite identity ("alice__ops").
const idSep = "__"

// sanitizeID rewrites raw single quotes to underscores. Identity strings
// never carry a raw quote into the serialized graph notation.
func sanitizeID(v string) string {
	return strings.ReplaceAll(v, "'", "_")
}

// escapeLabel renders an embedded quote as an HTML entity instead of the
// underscore substitution, so labels stay readable where ids cannot.
func escapeLabel(v string) string {
	return strings.ReplaceAll(v, "'", "&#39;")
}

// sideValues computes one raw identity per source row for a descriptor side:
// the column value for a single-column side, or the row's values joined with
// idSep in column order for a composite side. No sanitation is applied here -
// callers derive both the id and the label from the raw value.
func sideValues(src *table.Table, cols []string) []string {
	vals := make([]string, src.Len())
	if len(cols) == 1 {
		for i := range vals {
			vals[i] = src.Value(i, cols[0])
		}
		return vals
	}
	parts := make([]string, len(cols))
	for i := range vals {
		for j, c := range cols {
			parts[j] = src.Value(i, c)
		}
		vals[i] = strings.Join(parts, idSep)
	}
	return vals
}

// nodeSet accumulates unique node identities in first-seen order.
// Uniqueness is established by insertion order, never by sorting.
type nodeSet struct {
	ids     []string
	labels  []string // raw-value labels, aligned with ids
	origins []string // origin tags, aligned with ids ("" in simple mode)
	index   map[string]int
}

func newNodeSet() *nodeSet {
	return &nodeSet{index: make(map[string]int)}
}

// add records a raw identity under the given origin tag. Re-seen identities
// are ignored; the first occurrence fixes position, label and origin.
func (s *nodeSet) add(raw, origin string) {
	id := sanitizeID(raw)
	if _, seen := s.index[id]; seen {
		return
	}
	s.index[id] = len(s.ids)
	s.ids = append(s.ids, id)
	s.labels = append(s.labels, escapeLabel(raw))
	s.origins = append(s.origins, origin)
}

// resolveNodes derives the deduplicated node set for a parsed descriptor.
//
// Scan order is column-major: every row's left-side identity first, then
// every row's right-side identity. In composite modes each node records the
// origin tag of the side it was first seen under, for later attribute
// filtering. In simple mode no origin is tracked - a node rule whose tag
// names a column applies to that column's values wherever they appear.
func resolveNodes(src *table.Table, d *Descriptor) *nodeSet {
	leftOrigin, rightOrigin := "", ""
	if d.Mode != ModeSimple {
		leftOrigin, rightOrigin = d.LeftTag(), d.RightTag()
	}

	set := newNodeSet()
	for _, raw := range sideValues(src, d.Left) {
		set.add(raw, leftOrigin)
	}
	for _, raw := range sideValues(src, d.Right) {
		set.add(raw, rightOrigin)
	}
	return set
}
