package navigation

import (
	"context"

	"github.com/vango-dev/vangoroute/collab"
	"github.com/vango-dev/vangoroute/routeconfig"
)

// instrumentedLoader wraps a routeconfig.Loader so every lazy load emits
// RouteConfigLoadStart/End around it and contributes to the
// route_config_loads_total counter (SPEC_FULL.md "Supplemented features").
// redirects.Apply only ever sees this wrapper, never the bare Loader.
type instrumentedLoader struct {
	inner routeconfig.Loader
	s     *Scheduler
	t     *Transition
}

func (l instrumentedLoader) Load(ctx context.Context, parent collab.TokenResolver, route *routeconfig.Route) (routeconfig.LoadedRouterConfig, error) {
	path := route.Path
	l.s.emit(Event{Type: EventRouteConfigLoadStart, ID: l.t.ID, Url: path, CorrelationID: l.t.CorrelationID})
	cfg, err := l.inner.Load(ctx, parent, route)
	l.s.cfg.Metrics.RecordRouteConfigLoad()
	l.s.emit(Event{Type: EventRouteConfigLoadEnd, ID: l.t.ID, Url: path, CorrelationID: l.t.CorrelationID, Err: err})
	return cfg, err
}
