package vangoroute

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vangoroute/collab"
	"github.com/vango-dev/vangoroute/navigation"
	"github.com/vango-dev/vangoroute/preactivation"
	"github.com/vango-dev/vangoroute/routeconfig"
)

// InitialNavigationMode re-exports navigation's four-way initial-navigation
// option (spec.md §6 Configuration).
type InitialNavigationMode = navigation.InitialNavigationMode

const (
	InitialNavigationEnabled        = navigation.InitialNavigationEnabled
	InitialNavigationDisabled       = navigation.InitialNavigationDisabled
	InitialNavigationLegacyEnabled  = navigation.InitialNavigationLegacyEnabled
	InitialNavigationLegacyDisabled = navigation.InitialNavigationLegacyDisabled
)

// Route re-exports routeconfig.Route so callers build a route tree without
// importing routeconfig directly.
type Route = routeconfig.Route

// Config bundles every option Router needs (spec.md §6 Configuration). Only
// Routes is required; every collaborator defaults to the identity/no-op
// behavior spec.md names as each collaborator's default.
type Config struct {
	// Routes is the root route configuration, validated at New() via
	// routeconfig.Validate before anything else runs.
	Routes []*Route

	// Location pushes/replaces the browser (or equivalent) address bar and
	// notifies the scheduler of external navigation (back/forward, hash
	// change). Nil means Router never writes anywhere and Listen/Bootstrap
	// are no-ops beyond running the pipeline itself.
	Location collab.Location
	// Outlet mounts/unmounts components on successful activation.
	Outlet collab.Outlet
	// Loader resolves lazy loadChildren boundaries. Required if any Route
	// sets LoadChildren.
	Loader routeconfig.Loader
	// Resolver looks up guard/resolver tokens (spec.md §6 "Token resolver").
	Resolver collab.TokenResolver
	// ComponentLookup resolves the mounted component instance for a
	// canDeactivate check.
	ComponentLookup preactivation.ComponentLookup

	// RouteReuseStrategy decides which activated routes survive a
	// navigation unchanged. Default: reuse iff same route config, never
	// detach (collab.DefaultReuseStrategy).
	RouteReuseStrategy collab.ReuseStrategy
	// URLHandlingStrategy decides which part of an incoming URL this router
	// owns. Default: identity (collab.DefaultUrlHandlingStrategy).
	URLHandlingStrategy collab.UrlHandlingStrategy
	// PreloadingStrategy is accepted for API completeness with the Angular
	// Router surface this core mirrors; preloader heuristics are out of
	// scope (spec.md §1 Non-goals) and the core never calls it.
	PreloadingStrategy routeconfig.PreloadingStrategy

	// EnableTracing logs every lifecycle event other than NavigationCancel
	// and NavigationError at Debug in addition to emitting it on Sink; those
	// two are logged at Warn and Error whether or not it is set.
	EnableTracing bool
	// UseHash is informational: it tells a Location adapter capable of both
	// modes which one the application chose. The core never branches on it
	// directly since Location is already a concrete collaborator by the
	// time Router owns it.
	UseHash bool
	// InitialNavigation selects Bootstrap's startup behavior.
	InitialNavigation InitialNavigationMode
	// ErrorHandler receives every guard/resolver runtime error after it has
	// already been logged and emitted as NavigationError. Router still
	// returns the error to the Navigate/NavigateByUrl caller regardless
	// (spec.md §6 "errorHandler ... default rethrows").
	ErrorHandler func(ctx context.Context, err error)

	// Logger receives structured log lines. Nil defaults to slog.Default().
	Logger *slog.Logger
	// Tracer opens an otel span per transition/phase. Nil disables tracing.
	Tracer trace.Tracer
	// MetricsRegisterer registers the navigations_total/guard_duration_seconds/
	// resolver_duration_seconds/route_config_loads_total metrics. Nil
	// disables metrics entirely.
	MetricsRegisterer prometheus.Registerer

	Hooks navigation.Hooks
	Sink  navigation.EventSink
}
