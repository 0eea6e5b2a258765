package metrics

import (
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "docsite"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	manifestDuration *prom.HistogramVec
	manifestDocs     *prom.GaugeVec
	renderDuration   *prom.HistogramVec
	lookups          *prom.CounterVec
	httpDuration     *prom.HistogramVec
	httpRequests     *prom.CounterVec
	contentChanges   prom.Counter
}

// NewPrometheusRecorder constructs and registers the docs site metrics on reg.
// A nil registry gets a private one.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		manifestDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "manifest_build_duration_seconds",
			Help:      "Duration of manifest builds per document set",
			Buckets:   prom.DefBuckets,
		}, []string{"set"}),
		manifestDocs: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "manifest_documents",
			Help:      "Documents listed by the last manifest build per document set",
		}, []string{"set"}),
		renderDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Duration of markdown rendering per document set",
			Buckets:   prom.DefBuckets,
		}, []string{"set"}),
		lookups: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "document_lookups_total",
			Help:      "Document lookups by set and result",
		}, []string{"set", "result"}),
		httpDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by route",
			Buckets:   prom.DefBuckets,
		}, []string{"route"}),
		httpRequests: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"route", "status"}),
		contentChanges: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "content_changes_total",
			Help:      "Debounced content change events seen by the watcher",
		}),
	}
	reg.MustRegister(
		pr.manifestDuration, pr.manifestDocs, pr.renderDuration, pr.lookups,
		pr.httpDuration, pr.httpRequests, pr.contentChanges,
	)
	return pr
}

func (p *PrometheusRecorder) ObserveManifestBuild(set string, d time.Duration, documents int) {
	if p == nil {
		return
	}
	p.manifestDuration.WithLabelValues(set).Observe(d.Seconds())
	p.manifestDocs.WithLabelValues(set).Set(float64(documents))
}

func (p *PrometheusRecorder) ObserveRenderDuration(set string, d time.Duration) {
	if p == nil {
		return
	}
	p.renderDuration.WithLabelValues(set).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncLookupResult(set string, result LookupResult) {
	if p == nil {
		return
	}
	p.lookups.WithLabelValues(set, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveHTTPRequest(route string, status int, d time.Duration) {
	if p == nil {
		return
	}
	p.httpDuration.WithLabelValues(route).Observe(d.Seconds())
	p.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

func (p *PrometheusRecorder) IncContentChange() {
	if p == nil {
		return
	}
	p.contentChanges.Inc()
}
