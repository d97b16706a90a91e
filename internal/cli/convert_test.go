package cli

import (
	"path/filepath"
	"testing"

	"github.com/tabviz/tabviz/pkg/errors"
	"github.com/tabviz/tabviz/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{pipeline.FormatDOT}},
		{"svg", []string{"svg"}},
		{"svg,png", []string{"svg", "png"}},
		{" dot , json ", []string{"dot", "json"}},
	}

	for _, tt := range tests {
		got := parseFormats(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
				break
			}
		}
	}
}

func TestArtifactPath(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		output string
		format string
		multi  bool
		want   string
	}{
		{"DerivedFromInput", "data/cities.csv", "", "svg", false, filepath.Join("data", "cities.svg")},
		{"ExplicitSingle", "cities.csv", "out.svg", "svg", false, "out.svg"},
		{"ExplicitMulti", "cities.csv", "out", "png", true, "out.png"},
		{"DerivedMulti", "cities.json", "", "dot", true, "cities.dot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := artifactPath(tt.input, tt.output, tt.format, tt.multi); got != tt.want {
				t.Errorf("artifactPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadTableUnsupportedExtension(t *testing.T) {
	_, err := readTable("graph.xlsx")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestAnyCacheHit(t *testing.T) {
	if anyCacheHit(map[string]bool{"svg": false, "png": false}) {
		t.Error("no hits recorded, want false")
	}
	if !anyCacheHit(map[string]bool{"svg": true, "png": false}) {
		t.Error("svg hit recorded, want true")
	}
	if anyCacheHit(nil) {
		t.Error("nil map, want false")
	}
}
