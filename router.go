package vangoroute

import (
	"context"

	"github.com/vango-dev/vangoroute/navigation"
	"github.com/vango-dev/vangoroute/routeconfig"
	"github.com/vango-dev/vangoroute/state"
	"github.com/vango-dev/vangoroute/telemetry"
	"github.com/vango-dev/vangoroute/urlbuilder"
)

// Router is the facade over the navigation scheduler (C8). It validates the
// route config once at construction, wires the optional domain-stack
// collaborators (tracing, metrics) into navigation.Config, and otherwise
// forwards straight to the underlying Scheduler.
type Router struct {
	sched *navigation.Scheduler
	cfg   Config
}

// New validates cfg.Routes and builds a Router. An invalid route config
// (a leading "/" in a path, a Matcher/Path conflict, conflicting
// children/loadChildren/redirectTo — see routeconfig.Validate) is a
// config-install-time error
// (spec.md §7 "Config validation error"), not a navigation error.
func New(cfg Config) (*Router, error) {
	if err := routeconfig.Validate(cfg.Routes); err != nil {
		return nil, err
	}

	var metrics *telemetry.Metrics
	if cfg.MetricsRegisterer != nil {
		metrics = telemetry.NewMetrics(cfg.MetricsRegisterer)
	}

	sched := navigation.NewScheduler(navigation.Config{
		Routes:            cfg.Routes,
		Location:          cfg.Location,
		Outlet:            cfg.Outlet,
		Loader:            cfg.Loader,
		Resolver:          cfg.Resolver,
		ReuseStrategy:     cfg.RouteReuseStrategy,
		UrlHandling:       cfg.URLHandlingStrategy,
		ComponentLookup:   cfg.ComponentLookup,
		EnableTracing:     cfg.EnableTracing,
		InitialNavigation: cfg.InitialNavigation,
		ErrorHandler:      cfg.ErrorHandler,
		Logger:            cfg.Logger,
		Tracer:            cfg.Tracer,
		Metrics:           metrics,
		Hooks:             cfg.Hooks,
		Sink:              cfg.Sink,
	})

	return &Router{sched: sched, cfg: cfg}, nil
}

// Close stops the scheduler's background goroutine once its queue drains.
func (r *Router) Close() { r.sched.Close() }

// Bootstrap performs (or skips, per InitialNavigationMode) the first
// navigation to startUrl, then arms Listen for subsequent popstate/
// hashchange events if Location is configured.
func (r *Router) Bootstrap(ctx context.Context, startUrl string) (bool, error) {
	ok, err := r.sched.Bootstrap(ctx, startUrl)
	if err != nil {
		return ok, err
	}
	r.sched.Listen()
	return ok, nil
}

// NavigateByUrl parses and schedules url as a new transition.
func (r *Router) NavigateByUrl(ctx context.Context, url string) (bool, error) {
	return r.sched.NavigateByUrl(ctx, url, navigation.SourceImperative, navigation.Extras{})
}

// NavigateByUrlWithExtras is NavigateByUrl with per-navigation extras
// (skipLocationChange, replaceUrl).
func (r *Router) NavigateByUrlWithExtras(ctx context.Context, url string, extras navigation.Extras) (bool, error) {
	return r.sched.NavigateByUrl(ctx, url, navigation.SourceImperative, extras)
}

// Navigate resolves commands against the current tree (or extras.RelativeTo)
// and schedules the result (spec.md §3 createUrlTree).
func (r *Router) Navigate(ctx context.Context, commands []urlbuilder.Command, extras navigation.Extras) (bool, error) {
	return r.sched.Navigate(ctx, commands, extras)
}

// CurrentState returns the RouterState of the last committed navigation, or
// nil before any navigation has committed.
func (r *Router) CurrentState() *state.RouterState { return r.sched.CurrentState() }

// CurrentUrl returns the serialized URL of the last committed navigation.
func (r *Router) CurrentUrl() string { return r.sched.CurrentUrl() }
