package metrics

import (
	"net/http"
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "htmlindex"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	renderDuration prom.Histogram
	documentBytes  prom.Histogram
	requests       *prom.CounterVec
	reloads        *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		renderDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent assembling a document",
			Buckets:   []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .025},
		}),
		documentBytes: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "document_bytes",
			Help:      "Size of assembled documents",
			Buckets:   prom.ExponentialBuckets(256, 4, 8),
		}),
		requests: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Served requests by status code",
		}, []string{"code"}),
		reloads: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "reloads_total",
			Help:      "Manifest reloads by outcome",
		}, []string{"result"}),
	}
	reg.MustRegister(pr.renderDuration, pr.documentBytes, pr.requests, pr.reloads)
	return pr
}

func (p *PrometheusRecorder) ObserveRender(d time.Duration, size int) {
	if p == nil {
		return
	}
	p.renderDuration.Observe(d.Seconds())
	p.documentBytes.Observe(float64(size))
}

func (p *PrometheusRecorder) IncRequest(status int) {
	if p == nil {
		return
	}
	p.requests.WithLabelValues(strconv.Itoa(status)).Inc()
}

func (p *PrometheusRecorder) IncReload(result ReloadResult) {
	if p == nil {
		return
	}
	p.reloads.WithLabelValues(string(result)).Inc()
}

var _ Recorder = (*PrometheusRecorder)(nil)

// HTTPHandler serves the metrics of reg in the Prometheus exposition format.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
