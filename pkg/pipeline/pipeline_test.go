package pipeline

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/tabviz/tabviz/pkg/errors"
	"github.com/tabviz/tabviz/pkg/specfile"
	"github.com/tabviz/tabviz/pkg/table"
)

func sourceTable(t *testing.T) *table.Table {
	t.Helper()
	src := table.MustNew("from", "to")
	src.Append(table.Row{"from": "a", "to": "x"})
	src.Append(table.Row{"from": "b", "to": "y"})
	return src
}

func TestValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantErr  errors.Code
		wantFmts []string
	}{
		{
			name:     "DefaultsApplied",
			opts:     Options{Descriptor: "from -> to"},
			wantFmts: []string{FormatDOT},
		},
		{
			name:     "ExplicitFormats",
			opts:     Options{Descriptor: "from -> to", Formats: []string{FormatJSON, FormatDOT}},
			wantFmts: []string{FormatJSON, FormatDOT},
		},
		{
			name:    "NoDescriptor",
			opts:    Options{},
			wantErr: errors.ErrCodeInvalidInput,
		},
		{
			name:    "UnknownFormat",
			opts:    Options{Descriptor: "from -> to", Formats: []string{"bmp"}},
			wantErr: errors.ErrCodeInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if tt.wantErr != "" {
				if got := errors.GetCode(err); got != tt.wantErr {
					t.Fatalf("code = %s, want %s", got, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if strings.Join(tt.opts.Formats, ",") != strings.Join(tt.wantFmts, ",") {
				t.Errorf("formats = %v, want %v", tt.opts.Formats, tt.wantFmts)
			}
			if tt.opts.CacheTTL != DefaultCacheTTL {
				t.Errorf("ttl = %v, want %v", tt.opts.CacheTTL, DefaultCacheTTL)
			}
		})
	}
}

func TestExecuteDOTAndJSON(t *testing.T) {
	r := NewRunner(nil, nil)

	res, err := r.Execute(context.Background(), sourceTable(t), Options{
		Descriptor: "from -> to",
		NodeRules:  []string{"from: color=red"},
		Formats:    []string{FormatDOT, FormatJSON},
	})
	if err != nil {
		t.Fatal(err)
	}

	if res.RunID == "" {
		t.Error("run id missing")
	}
	if res.Stats.RowCount != 2 || res.Stats.NodeCount != 4 || res.Stats.EdgeCount != 2 {
		t.Errorf("stats = %+v", res.Stats)
	}

	dotOut := string(res.Artifacts[FormatDOT])
	if !strings.HasPrefix(dotOut, "digraph G {") {
		t.Errorf("dot artifact wrong:\n%s", dotOut)
	}
	if dotOut != res.DOT {
		t.Error("dot artifact must equal the serialized DOT")
	}

	var doc struct {
		Directed bool                `json:"directed"`
		Nodes    []map[string]string `json:"nodes"`
		Edges    []map[string]string `json:"edges"`
	}
	if err := json.Unmarshal(res.Artifacts[FormatJSON], &doc); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if !doc.Directed || len(doc.Nodes) != 4 || len(doc.Edges) != 2 {
		t.Errorf("json doc = %+v", doc)
	}
}

func TestExecutePropagatesConvertErrors(t *testing.T) {
	r := NewRunner(nil, nil)

	_, err := r.Execute(context.Background(), sourceTable(t), Options{
		Descriptor: "no operator here",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errors.ErrCodeInvalidDescriptor) {
		t.Errorf("error = %v, want INVALID_DESCRIPTOR", err)
	}
}

func TestFromSpec(t *testing.T) {
	spec := &specfile.Spec{
		Descriptor: "from -> to",
		NodeRules:  []string{"from: color=red"},
		Labels:     true,
		Name:       "payments",
		Rankdir:    "LR",
	}

	opts := FromSpec(spec)
	if opts.Descriptor != spec.Descriptor || !opts.Labels || opts.Name != "payments" || opts.Rankdir != "LR" {
		t.Errorf("opts = %+v", opts)
	}
}
