package relate

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tabviz/tabviz/pkg/errors"
	"github.com/tabviz/tabviz/pkg/table"
)

// Edge operator tokens recognized in a relationship descriptor.
const (
	opDirected   = "->"
	opUndirected = "--"
)

// compositeSep joins the column names of a multi-column side in specs and
// origin tags ("org+team").
const compositeSep = "+"

// Mode identifies which sides of the relationship are composite. Selecting
// the mode once at parse time keeps the resolver free of per-row existence
// checks.
type Mode int

const (
	// ModeSimple: both sides are single columns.
	ModeSimple Mode = iota
	// ModeLeftComposite: only the left side joins multiple columns.
	ModeLeftComposite
	// ModeRightComposite: only the right side joins multiple columns.
	ModeRightComposite
	// ModeBothComposite: both sides join multiple columns.
	ModeBothComposite
)

// String returns a human-readable mode name for logging.
func (m Mode) String() string {
	switch m {
	case ModeSimple:
		return "simple"
	case ModeLeftComposite:
		return "left-composite"
	case ModeRightComposite:
		return "right-composite"
	case ModeBothComposite:
		return "both-composite"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Descriptor is the parsed form of a relationship descriptor string.
type Descriptor struct {
	Directed bool     // true iff the "->" operator was present
	Left     []string // ordered column names of the left side
	Right    []string // ordered column names of the right side
	Mode     Mode
}

// LeftTag returns the origin tag of the left side: the single column name,
// or the "+"-joined spec for a composite side.
func (d *Descriptor) LeftTag() string { return strings.Join(d.Left, compositeSep) }

// RightTag returns the origin tag of the right side.
func (d *Descriptor) RightTag() string { return strings.Join(d.Right, compositeSep) }

// ParseDescriptor parses a relationship descriptor string against the source
// table's column set.
//
// Exactly one operator token separates the sides: "->" for a directed edge,
// "--" for an undirected one. Each side is one column name or several joined
// with "+"; whitespace around names is insignificant.
//
// Errors carry structured codes: ErrCodeInvalidDescriptor when no operator is
// present or none of the referenced columns exist, ErrCodeMissingColumn when
// only some referenced columns are missing.
func ParseDescriptor(spec string, src *table.Table) (*Descriptor, error) {
	var (
		lhs, rhs string
		directed bool
	)
	switch {
	case strings.Contains(spec, opDirected):
		lhs, rhs, _ = strings.Cut(spec, opDirected)
		directed = true
	case strings.Contains(spec, opUndirected):
		lhs, rhs, _ = strings.Cut(spec, opUndirected)
	default:
		return nil, errors.New(errors.ErrCodeInvalidDescriptor,
			"no edge operator (%q or %q) in descriptor %q", opDirected, opUndirected, spec)
	}

	d := &Descriptor{
		Directed: directed,
		Left:     splitSide(lhs),
		Right:    splitSide(rhs),
	}
	if len(d.Left) == 0 || len(d.Right) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDescriptor,
			"descriptor %q has an empty side", spec)
	}

	if err := d.validateColumns(spec, src); err != nil {
		return nil, err
	}

	switch {
	case len(d.Left) > 1 && len(d.Right) > 1:
		d.Mode = ModeBothComposite
	case len(d.Left) > 1:
		d.Mode = ModeLeftComposite
	case len(d.Right) > 1:
		d.Mode = ModeRightComposite
	default:
		d.Mode = ModeSimple
	}
	return d, nil
}

// validateColumns checks the referenced columns against the table.
// A descriptor whose columns are all unknown is treated as not being a
// descriptor at all; a partially known one points at the missing columns.
func (d *Descriptor) validateColumns(spec string, src *table.Table) error {
	var missing []string
	total := 0
	for _, col := range slices.Concat(d.Left, d.Right) {
		total++
		if !src.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	if len(missing) == total {
		return errors.New(errors.ErrCodeInvalidDescriptor,
			"descriptor %q references no existing columns (table has %s)",
			spec, strings.Join(src.Columns(), ", "))
	}
	return errors.New(errors.ErrCodeMissingColumn,
		"descriptor %q references missing column(s): %s", spec, strings.Join(missing, ", "))
}

// splitSide splits one side spec on the concatenation marker, trimming
// whitespace and dropping empty segments.
func splitSide(s string) []string {
	var cols []string
	for _, part := range strings.Split(s, compositeSep) {
		if name := strings.TrimSpace(part); name != "" {
			cols = append(cols, name)
		}
	}
	return cols
}
