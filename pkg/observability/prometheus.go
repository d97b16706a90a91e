package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusHooks implements PipelineHooks and CacheHooks on Prometheus
// collectors. Register it at startup and expose the registry via
// promhttp in the HTTP server.
type PrometheusHooks struct {
	conversions   *prometheus.CounterVec
	convertTime   prometheus.Histogram
	graphNodes    prometheus.Histogram
	graphEdges    prometheus.Histogram
	renders       *prometheus.CounterVec
	renderTime    *prometheus.HistogramVec
	cacheOps      *prometheus.CounterVec
	cacheSetBytes prometheus.Counter
}

// NewPrometheusHooks creates hooks registered on reg.
// A nil registry falls back to prometheus.DefaultRegisterer.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	h := &PrometheusHooks{
		conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tabviz_conversions_total",
			Help: "Table-to-graph conversions by outcome.",
		}, []string{"outcome"}),
		convertTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tabviz_convert_duration_seconds",
			Help:    "Conversion duration.",
			Buckets: prometheus.DefBuckets,
		}),
		graphNodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tabviz_graph_nodes",
			Help:    "Node count of produced graphs.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		graphEdges: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tabviz_graph_edges",
			Help:    "Edge count of produced graphs.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tabviz_renders_total",
			Help: "Artifact renders by format and outcome.",
		}, []string{"format", "outcome"}),
		renderTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tabviz_render_duration_seconds",
			Help:    "Render duration by format.",
			Buckets: prometheus.DefBuckets,
		}, []string{"format"}),
		cacheOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tabviz_cache_ops_total",
			Help: "Cache operations by key type and result.",
		}, []string{"key_type", "result"}),
		cacheSetBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tabviz_cache_set_bytes_total",
			Help: "Bytes written to the cache.",
		}),
	}
	reg.MustRegister(h.conversions, h.convertTime, h.graphNodes, h.graphEdges,
		h.renders, h.renderTime, h.cacheOps, h.cacheSetBytes)
	return h
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (h *PrometheusHooks) OnConvertStart(context.Context, string, int) {}

func (h *PrometheusHooks) OnConvertComplete(_ context.Context, _ string, nodeCount, edgeCount int, d time.Duration, err error) {
	h.conversions.WithLabelValues(outcome(err)).Inc()
	if err == nil {
		h.convertTime.Observe(d.Seconds())
		h.graphNodes.Observe(float64(nodeCount))
		h.graphEdges.Observe(float64(edgeCount))
	}
}

func (h *PrometheusHooks) OnRenderStart(context.Context, string) {}

func (h *PrometheusHooks) OnRenderComplete(_ context.Context, format string, _ int, d time.Duration, err error) {
	h.renders.WithLabelValues(format, outcome(err)).Inc()
	if err == nil {
		h.renderTime.WithLabelValues(format).Observe(d.Seconds())
	}
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.cacheOps.WithLabelValues(keyType, "set").Inc()
	h.cacheSetBytes.Add(float64(size))
}

// Ensure PrometheusHooks implements both hook interfaces.
var (
	_ PipelineHooks = (*PrometheusHooks)(nil)
	_ CacheHooks    = (*PrometheusHooks)(nil)
)
