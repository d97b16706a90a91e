// Package pipeline wires the conversion stages together: convert the source
// table to a graph description, serialize it to DOT, and render the
// requested artifact formats with caching. Both the CLI and the HTTP API
// run conversions through the [Runner] to share caching and logging.
package pipeline

import (
	"slices"
	"time"

	"github.com/tabviz/tabviz/pkg/errors"
	"github.com/tabviz/tabviz/pkg/relate"
	"github.com/tabviz/tabviz/pkg/specfile"
)

// Output formats supported by the pipeline.
const (
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// DefaultCacheTTL is how long rendered artifacts stay cached.
const DefaultCacheTTL = 24 * time.Hour

// validFormats lists the accepted --format values.
var validFormats = []string{FormatDOT, FormatSVG, FormatPNG, FormatJSON}

// Options configures one pipeline execution.
type Options struct {
	// Descriptor, NodeRules, EdgeRules and Labels configure the
	// conversion engine (see [relate.Options]).
	Descriptor string
	NodeRules  []string
	EdgeRules  []string
	Labels     bool

	// Name and Rankdir configure DOT serialization.
	Name    string
	Rankdir string

	// Formats lists the artifacts to produce. Defaults to ["dot"].
	Formats []string

	// CacheTTL bounds artifact cache entries. Defaults to DefaultCacheTTL.
	CacheTTL time.Duration
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Descriptor == "" {
		return errors.New(errors.ErrCodeInvalidInput, "no relationship descriptor given")
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatDOT}
	}
	for _, f := range o.Formats {
		if !slices.Contains(validFormats, f) {
			return errors.New(errors.ErrCodeInvalidFormat,
				"unknown format %q (valid: dot, svg, png, json)", f)
		}
	}
	if o.CacheTTL == 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	return nil
}

// FromSpec builds pipeline options from a loaded spec file.
// Formats are not part of the spec file and keep their default.
func FromSpec(s *specfile.Spec) Options {
	return Options{
		Descriptor: s.Descriptor,
		NodeRules:  s.NodeRules,
		EdgeRules:  s.EdgeRules,
		Labels:     s.Labels,
		Name:       s.Name,
		Rankdir:    s.Rankdir,
	}
}

// convertOptions projects the engine's share of the options.
func (o *Options) convertOptions() relate.Options {
	return relate.Options{
		Descriptor: o.Descriptor,
		NodeRules:  o.NodeRules,
		EdgeRules:  o.EdgeRules,
		Labels:     o.Labels,
	}
}

// Stats captures timing and size information of one execution.
type Stats struct {
	ConvertTime time.Duration
	RenderTime  time.Duration
	RowCount    int
	NodeCount   int
	EdgeCount   int
}

// Result is the outcome of one pipeline execution.
type Result struct {
	// RunID uniquely identifies this execution (used in logs and the API).
	RunID string

	// Graph is the conversion result handed to the serializer.
	Graph *relate.Result

	// DOT is the serialized graph description.
	DOT string

	// Artifacts maps each requested format to its rendered bytes.
	// The "dot" artifact is the DOT text itself.
	Artifacts map[string][]byte

	// CacheHits records which formats were served from the cache.
	CacheHits map[string]bool

	Stats Stats
}
