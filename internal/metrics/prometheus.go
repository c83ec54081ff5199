package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const promNamespace = "liquidity_dashboard"

// Prometheus keeps the run's instrumentation on a private registry. The
// process is one-shot, so nothing serves a scrape endpoint; the registry is
// gathered once at the end of the run and logged as a summary.
type Prometheus struct {
	Metrics *Metrics

	registry *prometheus.Registry
}

func NewPrometheus() *Prometheus {
	registry := prometheus.NewRegistry()
	requestsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: promNamespace,
		Name:      "requests_total",
		Help:      "Total number of exchange API requests issued.",
	})
	requestFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: promNamespace,
		Name:      "request_failures_total",
		Help:      "Total number of exchange API requests that failed.",
	})
	requestSeconds := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: promNamespace,
		Name:      "request_seconds",
		Help:      "Exchange API request latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	})
	reportsWritten := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: promNamespace,
		Name:      "reports_written_total",
		Help:      "Total number of dashboard files written.",
	})
	renderSeconds := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: promNamespace,
		Name:      "render_seconds",
		Help:      "Report render and write duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	registry.MustRegister(requestsTotal, requestFailures, requestSeconds, reportsWritten, renderSeconds)

	return &Prometheus{
		Metrics: &Metrics{
			RequestsTotal:   requestsTotal,
			RequestFailures: requestFailures,
			RequestSeconds:  requestSeconds,
			ReportsWritten:  reportsWritten,
			RenderSeconds:   renderSeconds,
		},
		registry: registry,
	}
}

// Summary gathers the registry into a flat name -> value map. Histograms
// contribute their sample count and sum.
func (p *Prometheus) Summary() map[string]float64 {
	fams, err := p.registry.Gather()
	if err != nil {
		return nil
	}
	out := make(map[string]float64)
	for _, fam := range fams {
		for _, m := range fam.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				out[fam.GetName()] = m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				out[fam.GetName()+"_count"] = float64(h.GetSampleCount())
				out[fam.GetName()+"_sum"] = h.GetSampleSum()
			}
		}
	}
	return out
}
