package dot

import (
	"strings"
	"testing"

	"github.com/tabviz/tabviz/pkg/relate"
	"github.com/tabviz/tabviz/pkg/table"
)

func convert(t *testing.T, opts relate.Options, rows ...[]string) *relate.Result {
	t.Helper()
	src := table.MustNew("A", "B")
	for _, vals := range rows {
		src.Append(table.Row{"A": vals[0], "B": vals[1]})
	}
	res, err := relate.Convert(src, opts)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestMarshalDirected(t *testing.T) {
	res := convert(t, relate.Options{Descriptor: "A -> B"},
		[]string{"a", "x"},
		[]string{"b", "y"},
	)

	out := Marshal(res, Options{})

	if !strings.HasPrefix(out, "digraph G {") {
		t.Errorf("missing digraph header:\n%s", out)
	}
	for _, want := range []string{`"a";`, `"b";`, `"x";`, `"y";`, `"a" -> "x";`, `"b" -> "y";`} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "--") {
		t.Errorf("directed output contains undirected operator:\n%s", out)
	}
}

func TestMarshalUndirected(t *testing.T) {
	res := convert(t, relate.Options{Descriptor: "A -- B"}, []string{"a", "x"})

	out := Marshal(res, Options{Name: "rel"})

	if !strings.HasPrefix(out, "graph rel {") {
		t.Errorf("missing graph header:\n%s", out)
	}
	if !strings.Contains(out, `"a" -- "x";`) {
		t.Errorf("missing undirected edge in:\n%s", out)
	}
}

func TestMarshalAttributes(t *testing.T) {
	res := convert(t, relate.Options{
		Descriptor: "A -> B",
		NodeRules:  []string{"A: color=red, shape=box"},
		EdgeRules:  []string{"A: weight=5"},
		Labels:     true,
	}, []string{"a", "x"})

	out := Marshal(res, Options{})

	if !strings.Contains(out, `"a" [label="a", color="red", shape="box"];`) {
		t.Errorf("node attributes wrong:\n%s", out)
	}
	// Nodes with no non-empty attributes beyond the label keep just that.
	if !strings.Contains(out, `"x" [label="x"];`) {
		t.Errorf("right-side node wrong:\n%s", out)
	}
	if !strings.Contains(out, `"a" -> "x" [weight="5"];`) {
		t.Errorf("edge attributes wrong:\n%s", out)
	}
}

func TestMarshalQuotedLabel(t *testing.T) {
	res := convert(t, relate.Options{Descriptor: "A -> B", Labels: true},
		[]string{"o'brien", "x"})

	out := Marshal(res, Options{})

	if strings.Contains(out, "o'brien") {
		t.Errorf("raw quote leaked into output:\n%s", out)
	}
	if !strings.Contains(out, `"o_brien" [label="o&#39;brien"]`) {
		t.Errorf("missing sanitized node with escaped label:\n%s", out)
	}
}

func TestMarshalRankdir(t *testing.T) {
	res := convert(t, relate.Options{Descriptor: "A -> B"}, []string{"a", "x"})

	out := Marshal(res, Options{Rankdir: "LR"})
	if !strings.Contains(out, "rankdir=LR;") {
		t.Errorf("missing rankdir in:\n%s", out)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	res := convert(t, relate.Options{
		Descriptor: "A -> B",
		NodeRules:  []string{"A: color=red"},
	}, []string{"a", "x"}, []string{"b", "y"})

	first := Marshal(res, Options{})
	for i := 0; i < 5; i++ {
		if got := Marshal(res, Options{}); got != first {
			t.Fatalf("output differs between runs:\n%s\nvs\n%s", first, got)
		}
	}
}
