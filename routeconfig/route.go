package routeconfig

import (
	"context"

	"github.com/vango-dev/vangoroute/collab"
	"github.com/vango-dev/vangoroute/urltree"
)

// PathMatch controls how much of the remaining URL segments a path-matched
// route must consume (spec.md §3).
type PathMatch string

const (
	// PathMatchPrefix is the default: match a leading run of segments,
	// leaving the rest for children to consume.
	PathMatchPrefix PathMatch = "prefix"
	// PathMatchFull requires the route to consume every remaining segment.
	PathMatchFull PathMatch = "full"
)

// RunGuardsAndResolvers controls when a reused route re-runs its guards and
// resolvers (spec.md §4.7 "runGuardsAndResolvers decision").
type RunGuardsAndResolvers string

const (
	RunParamsChange              RunGuardsAndResolvers = "paramsChange"
	RunParamsOrQueryParamsChange RunGuardsAndResolvers = "paramsOrQueryParamsChange"
	RunAlways                    RunGuardsAndResolvers = "always"
)

// TitleFunc is the function form of Route.Title: a title computed from the
// matched ActivatedRouteSnapshot rather than a fixed string (spec.md §9
// "title" supplement).
type TitleFunc func(snapshot collab.Snapshot) string

// Matcher is a custom matching function, an alternative to Route.Path for
// routes whose shape a plain literal/`:param` path can't express. It
// receives the remaining sibling segments and reports how many it consumes
// and with what bound parameters.
type Matcher func(segments []*urltree.UrlSegment) (MatchResult, bool)

// MatchResult is what a Matcher returns on a successful match.
type MatchResult struct {
	// Consumed is the prefix of segments this match accounts for.
	Consumed []*urltree.UrlSegment
	// PosParams are the positionally-bound parameters the matcher extracted.
	PosParams *urltree.ParamMap
}

// Loader loads a lazily-referenced child route config (spec.md §3
// "LoadedRouterConfig", §6 "Lazy loader collaborator").
type Loader interface {
	Load(ctx context.Context, parent collab.TokenResolver, route *Route) (LoadedRouterConfig, error)
}

// LoadedRouterConfig is the (child routes, scoped token resolver) pair
// produced by a Loader for a lazy loadChildren. Cached on the Route after
// its first successful load; retrieved thereafter (spec.md §3).
type LoadedRouterConfig struct {
	Routes   []*Route
	Resolver collab.TokenResolver
}

// PreloadingStrategy decides whether a lazy route should be fetched ahead of
// navigation reaching it. Preloader heuristics are explicitly out of scope
// (spec.md §1 Non-goals); this interface exists only so
// `vangoroute.Config.PreloadingStrategy` has somewhere to point a caller's
// own background fetcher without the core ever calling it itself.
type PreloadingStrategy interface {
	ShouldPreload(route *Route) bool
}

// NoPreloading never preloads; the zero value of PreloadingStrategy in
// practice.
type NoPreloading struct{}

func (NoPreloading) ShouldPreload(*Route) bool { return false }

// Route is one node of the static route configuration tree (spec.md §3
// "Route (config node)"). At most one of Children, LoadChildren, or
// RedirectTo is set per node; Component may accompany Children or
// LoadChildren but not RedirectTo. Validate enforces this and the rest of
// the invariants documented on each field below.
type Route struct {
	// Path is the literal/`:param` path segment pattern this node matches.
	// Must not have a leading "/". Mutually exclusive with Matcher.
	Path string
	// Matcher is a custom match function, exclusive with Path.
	Matcher Matcher
	// PathMatchMode defaults to PathMatchPrefix when empty.
	PathMatchMode PathMatch

	// Component is an opaque handle the core never inspects; it is what the
	// Outlet collaborator is asked to mount on successful activation.
	Component any
	// Children is an eagerly-available child route config.
	Children []*Route
	// LoadChildren marks this node as a lazy-load boundary; Loader resolves
	// it to an eager LoadedRouterConfig on demand.
	LoadChildren bool
	// RedirectTo is an absolute or relative redirect target expressed as a
	// navigation-command-like path string (spec.md §4.3 grammar).
	RedirectTo string

	// Outlet is the named outlet this route activates into. Defaults to
	// urltree.PrimaryOutlet when empty.
	Outlet string

	CanActivate      []collab.CanActivateFunc
	CanActivateChild []collab.CanActivateChildFunc
	CanDeactivate    []collab.CanDeactivateFunc
	CanLoad          []collab.CanLoadFunc
	CanMatch         []collab.CanMatchFunc

	// Resolve maps a data key to the resolver that produces it. The
	// reserved key "title" becomes a route-level page title the same way a
	// regular resolver's result would be published to Data (§9 supplement).
	Resolve map[string]collab.ResolveFunc

	// Data is static, route-level data merged into every matching
	// ActivatedRouteSnapshot's Data alongside anything Resolve produces.
	Data map[string]any

	RunGuardsAndResolvers RunGuardsAndResolvers

	// Title is a static page title (string) or a computed one (TitleFunc),
	// resolved like a regular resolver; ignored if Resolve["title"] is set.
	Title any

	// parent is a non-owning back-reference installed by Validate,
	// mirroring urltree.UrlSegmentGroup's parent wiring.
	parent *Route

	// loadedConfig is the memoized result of a LoadChildren load, consulted
	// before calling the Loader again.
	loadedConfig *LoadedRouterConfig
}

// routeRef adapts *Route to collab.RouteRef for canLoad/canMatch guard
// calls, which only need the path/outlet, not the full config node (keeping
// collab decoupled from routeconfig).
type routeRef struct{ r *Route }

func (ref routeRef) Path() string   { return ref.r.Path }
func (ref routeRef) Outlet() string { return ref.r.OutletName() }

// Ref returns this route as a collab.RouteRef.
func (r *Route) Ref() collab.RouteRef { return routeRef{r} }

// OutletName returns the configured outlet, defaulting to primary.
func (r *Route) OutletName() string {
	if r.Outlet == "" {
		return urltree.PrimaryOutlet
	}
	return r.Outlet
}

// PathMatchEffective returns the effective path-match mode, defaulting to prefix.
func (r *Route) PathMatchEffective() PathMatch {
	if r.PathMatchMode == "" {
		return PathMatchPrefix
	}
	return r.PathMatchMode
}

// Parent returns the installing parent route, or nil for a root node.
func (r *Route) Parent() *Route { return r.parent }

// HasComponent reports whether this node mounts a component.
func (r *Route) HasComponent() bool { return r.Component != nil }

// HasRedirect reports whether this node is a redirect.
func (r *Route) HasRedirect() bool { return r.RedirectTo != "" }

// HasChildren reports whether this node has eager children.
func (r *Route) HasChildren() bool { return len(r.Children) > 0 }

// IsComponentless reports whether this node mounts nothing of its own: no
// component, no eager children, no lazy children (spec.md §3 invariant on
// non-primary outlets).
func (r *Route) IsComponentless() bool {
	return !r.HasComponent() && !r.HasChildren() && !r.LoadChildren
}

// ResolveTitle evaluates Title against snapshot, returning ("", false) when
// Title is unset (nil or an empty string).
func (r *Route) ResolveTitle(snapshot collab.Snapshot) (string, bool) {
	switch t := r.Title.(type) {
	case string:
		if t == "" {
			return "", false
		}
		return t, true
	case TitleFunc:
		return t(snapshot), true
	default:
		return "", false
	}
}

// LoadedConfig returns the memoized lazy-load result, if any.
func (r *Route) LoadedConfig() (*LoadedRouterConfig, bool) {
	if r.loadedConfig == nil {
		return nil, false
	}
	return r.loadedConfig, true
}

// SetLoadedConfig memoizes a Loader's result on this node.
func (r *Route) SetLoadedConfig(cfg LoadedRouterConfig) {
	r.loadedConfig = &cfg
}

// RunGuardsAndResolversEffective defaults to RunParamsChange.
func (r *Route) RunGuardsAndResolversEffective() RunGuardsAndResolvers {
	if r.RunGuardsAndResolvers == "" {
		return RunParamsChange
	}
	return r.RunGuardsAndResolvers
}
