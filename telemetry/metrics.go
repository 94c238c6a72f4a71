package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters/histograms the navigation scheduler and
// redirect applier's lazy-load path report against, registered once against
// a caller-supplied prometheus.Registerer.
type Metrics struct {
	navigationsTotal      *prometheus.CounterVec
	guardDuration         prometheus.Histogram
	resolverDuration      prometheus.Histogram
	routeConfigLoadsTotal prometheus.Counter
}

// NewMetrics registers every vangoroute metric against reg and returns the
// handle the scheduler reports through. Panics on duplicate registration,
// matching prometheus.MustRegister's own contract — callers sharing one
// Registerer across multiple Router instances should register once and
// pass the same *Metrics to each.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		navigationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vangoroute_navigations_total",
			Help: "Completed navigations by outcome (committed, cancelled, error).",
		}, []string{"outcome"}),
		guardDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "vangoroute_guard_duration_seconds",
			Help:    "Wall-clock time spent running canDeactivate/canActivate checks for one transition.",
			Buckets: prometheus.DefBuckets,
		}),
		resolverDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "vangoroute_resolver_duration_seconds",
			Help:    "Wall-clock time spent running resolvers for one transition.",
			Buckets: prometheus.DefBuckets,
		}),
		routeConfigLoadsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vangoroute_route_config_loads_total",
			Help: "Lazy route config loads performed by the Loader collaborator.",
		}),
	}
	reg.MustRegister(m.navigationsTotal, m.guardDuration, m.resolverDuration, m.routeConfigLoadsTotal)
	return m
}

// RecordNavigation increments the outcome counter for one completed
// transition. outcome is one of "committed", "cancelled", "error".
func (m *Metrics) RecordNavigation(outcome string) {
	if m == nil {
		return
	}
	m.navigationsTotal.WithLabelValues(outcome).Inc()
}

// RecordGuardDuration observes the time spent on the combined deactivate +
// activate check phases of one transition.
func (m *Metrics) RecordGuardDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.guardDuration.Observe(d.Seconds())
}

// RecordResolverDuration observes the time spent running resolvers for one
// transition.
func (m *Metrics) RecordResolverDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.resolverDuration.Observe(d.Seconds())
}

// RecordRouteConfigLoad increments the lazy-load counter once per Loader
// invocation (cache hits don't call the Loader, so they aren't counted).
func (m *Metrics) RecordRouteConfigLoad() {
	if m == nil {
		return
	}
	m.routeConfigLoadsTotal.Inc()
}
