package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tabviz/tabviz/pkg/cache"
	"github.com/tabviz/tabviz/pkg/errors"
	"github.com/tabviz/tabviz/pkg/observability"
	"github.com/tabviz/tabviz/pkg/relate"
	"github.com/tabviz/tabviz/pkg/render/dot"
	"github.com/tabviz/tabviz/pkg/table"
)

// Runner executes conversions with artifact caching.
//
// The Runner is stateless except for the cache and logger - it stores no
// pipeline results. Multiple goroutines can safely share one Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching (NullCache);
// a nil logger falls back to log.Default().
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the convert → serialize → render pipeline over src.
func (r *Runner) Execute(ctx context.Context, src *table.Table, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
		CacheHits: make(map[string]bool),
	}
	result.Stats.RowCount = src.Len()

	// Stage 1: Convert
	convertStart := time.Now()
	observability.Pipeline().OnConvertStart(ctx, opts.Descriptor, src.Len())
	graph, err := relate.Convert(src, opts.convertOptions())
	result.Stats.ConvertTime = time.Since(convertStart)
	observability.Pipeline().OnConvertComplete(ctx, opts.Descriptor,
		nodeCount(graph), edgeCount(graph), result.Stats.ConvertTime, err)
	if err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}
	result.Graph = graph
	result.Stats.NodeCount = graph.Nodes.Len()
	result.Stats.EdgeCount = graph.Edges.Len()

	r.Logger.Info("converted table",
		"run", result.RunID,
		"rows", result.Stats.RowCount,
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.ConvertTime)

	// Stage 2: Serialize
	result.DOT = dot.Marshal(graph, dot.Options{Name: opts.Name, Rankdir: opts.Rankdir})

	// Stage 3: Render requested artifacts
	renderStart := time.Now()
	dotHash := cache.Hash([]byte(result.DOT))
	for _, format := range opts.Formats {
		data, hit, err := r.renderArtifact(ctx, result, dotHash, format, opts.CacheTTL)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		result.Artifacts[format] = data
		result.CacheHits[format] = hit
	}
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered artifacts",
		"run", result.RunID,
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// renderArtifact produces one output format, consulting the artifact cache
// for the Graphviz-backed formats. DOT and JSON are cheap serializations
// and bypass the cache.
func (r *Runner) renderArtifact(ctx context.Context, result *Result, dotHash, format string, ttl time.Duration) ([]byte, bool, error) {
	switch format {
	case FormatDOT:
		return []byte(result.DOT), false, nil
	case FormatJSON:
		data, err := marshalJSON(result.Graph)
		return data, false, err
	}

	key := cache.ArtifactKey(dotHash, format)
	if data, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, format)
	data, err := renderGraphviz(ctx, result.DOT, format)
	observability.Pipeline().OnRenderComplete(ctx, format, len(data), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("artifact cache write failed", "key", key, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return data, false, nil
}

func renderGraphviz(ctx context.Context, dotText, format string) ([]byte, error) {
	switch format {
	case FormatSVG:
		return dot.RenderSVG(ctx, dotText)
	case FormatPNG:
		return dot.RenderPNG(ctx, dotText)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
	}
}

// marshalJSON serializes the graph description as indented JSON.
func marshalJSON(g *relate.Result) ([]byte, error) {
	doc := struct {
		Directed bool                `json:"directed"`
		Nodes    []map[string]string `json:"nodes"`
		Edges    []map[string]string `json:"edges"`
	}{
		Directed: g.Directed,
		Nodes:    g.Nodes.Records(),
		Edges:    g.Edges.Records(),
	}
	return json.MarshalIndent(doc, "", "  ")
}

func nodeCount(g *relate.Result) int {
	if g == nil {
		return 0
	}
	return g.Nodes.Len()
}

func edgeCount(g *relate.Result) int {
	if g == nil {
		return 0
	}
	return g.Edges.Len()
}
