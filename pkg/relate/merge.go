package relate

import (
	"github.com/tabviz/tabviz/pkg/table"
)

// overlay merges a candidate column onto an existing one: per row the
// candidate wins when it is non-empty, otherwise the existing value is kept.
// A later rule therefore overrides an earlier one only where it actually
// supplies a value, and never blanks out a previously set cell.
//
// overlay is pure and total: it never mutates its inputs and handles
// mismatched lengths by treating missing cells as empty.
func overlay(existing, candidate []string) []string {
	n := len(existing)
	if len(candidate) > n {
		n = len(candidate)
	}
	out := make([]string, n)
	for i := range out {
		var ex, cand string
		if i < len(existing) {
			ex = existing[i]
		}
		if i < len(candidate) {
			cand = candidate[i]
		}
		if cand != "" {
			out[i] = cand
		} else {
			out[i] = ex
		}
	}
	return out
}

// nodeFilter reports, per node-table row, whether a rule's target tag
// selects that node.
type nodeFilter func(row int) bool

// originFilter matches nodes by recorded origin tag (composite modes).
func originFilter(origins []string, tag string) nodeFilter {
	return func(row int) bool { return origins[row] == tag }
}

// membershipFilter matches nodes whose id occurs among the (sanitized)
// values of the tag column in the source table (simple mode, where no
// per-node origin is tracked). A tag naming no source column selects
// nothing, so the rule degrades to a no-op.
func membershipFilter(src *table.Table, tag string, ids []string) nodeFilter {
	member := make(map[string]bool)
	if vals, err := src.Column(tag); err == nil {
		for _, v := range vals {
			member[sanitizeID(v)] = true
		}
	}
	return func(row int) bool { return member[ids[row]] }
}

// applyNodeRules merges attribute rules onto the node table. For each rule
// pair, a per-row candidate vector receives the pair value on rows the
// rule's filter selects and the empty string elsewhere, then overlays onto
// the (possibly freshly created) attribute column.
func applyNodeRules(nodes *table.Table, rules []Rule, filterFor func(tag string) nodeFilter) {
	for _, rule := range rules {
		selected := filterFor(rule.TargetTag)
		for _, pair := range rule.Pairs {
			nodes.EnsureColumn(pair.Name)
			existing, _ := nodes.Column(pair.Name)

			candidate := make([]string, nodes.Len())
			for i := range candidate {
				if selected(i) {
					candidate[i] = pair.Value
				}
			}

			merged := overlay(existing, candidate)
			for i, v := range merged {
				_ = nodes.Set(i, pair.Name, v)
			}
		}
	}
}

// applyEdgeRules merges attribute rules onto the edge table. Edge candidates
// are broadcast: every row receives the pair value regardless of the rule's
// tag, since edges carry no origin. Multiple rules naming the same attribute
// still merge through the overlay, so the last non-empty value wins.
func applyEdgeRules(edges *table.Table, rules []Rule) {
	for _, rule := range rules {
		for _, pair := range rule.Pairs {
			edges.EnsureColumn(pair.Name)
			existing, _ := edges.Column(pair.Name)

			candidate := make([]string, edges.Len())
			for i := range candidate {
				candidate[i] = pair.Value
			}

			merged := overlay(existing, candidate)
			for i, v := range merged {
				_ = edges.Set(i, pair.Name, v)
			}
		}
	}
}
