package recognizer

import (
	"github.com/vango-dev/vangoroute/collab"
	"github.com/vango-dev/vangoroute/routeconfig"
	"github.com/vango-dev/vangoroute/urltree"
)

// ActivatedRouteSnapshot is a frozen per-navigation record for one matched
// Route (spec.md §3 "ActivatedRouteSnapshot (ARS)").
type ActivatedRouteSnapshot struct {
	url         []*urltree.UrlSegment
	params      *urltree.ParamMap
	queryParams *urltree.QueryParamMap
	fragment    *string
	data        map[string]any
	resolved    map[string]any
	outlet      string
	component   any
	route       *routeconfig.Route

	// sourceGroup and lastPathIndex are the bookkeeping urlbuilder.RelativeTo
	// needs to resolve a relative navigation anchored on this node (spec.md
	// §3 "source segment group + path-index shift").
	sourceGroup   *urltree.UrlSegmentGroup
	lastPathIndex int

	parent   *ActivatedRouteSnapshot
	children []*ActivatedRouteSnapshot
}

// Params returns the merged positional + matrix parameters for this node.
func (a *ActivatedRouteSnapshot) Params() *urltree.ParamMap { return a.params }

// QueryParams returns the query parameters shared across the whole tree.
func (a *ActivatedRouteSnapshot) QueryParams() *urltree.QueryParamMap { return a.queryParams }

// Fragment returns the fragment shared across the whole tree.
func (a *ActivatedRouteSnapshot) Fragment() *string { return a.fragment }

// Data returns this node's merged static + resolved data.
func (a *ActivatedRouteSnapshot) Data() map[string]any { return a.data }

// Outlet returns the outlet name this node activates into.
func (a *ActivatedRouteSnapshot) Outlet() string { return a.outlet }

// UrlSegments returns the URL segments this node consumed.
func (a *ActivatedRouteSnapshot) UrlSegments() []*urltree.UrlSegment { return a.url }

// RouteConfigPath returns the matched Route's configured path pattern.
func (a *ActivatedRouteSnapshot) RouteConfigPath() string {
	if a.route == nil {
		return ""
	}
	return a.route.Path
}

// Component returns the opaque component handle the matched Route declared.
func (a *ActivatedRouteSnapshot) Component() any { return a.component }

// Route returns the config node this snapshot was built from.
func (a *ActivatedRouteSnapshot) Route() *routeconfig.Route { return a.route }

// Parent returns the enclosing ARS, or nil at the tree root.
func (a *ActivatedRouteSnapshot) Parent() *ActivatedRouteSnapshot { return a.parent }

// Children returns this node's children, primary outlet first then
// alphabetical (spec.md §4.5 "Ordering").
func (a *ActivatedRouteSnapshot) Children() []*ActivatedRouteSnapshot { return a.children }

// ResolvedData returns the per-key results preactivation's resolve step
// produced for this node, merged into Data() afterward.
func (a *ActivatedRouteSnapshot) ResolvedData() map[string]any { return a.resolved }

// SetResolvedData installs resolver results and folds them into Data,
// called by package preactivation once resolvers finish.
func (a *ActivatedRouteSnapshot) SetResolvedData(resolved map[string]any) {
	a.resolved = resolved
	for k, v := range resolved {
		a.data[k] = v
	}
}

// SourceSegmentGroup implements urlbuilder.RelativeTo.
func (a *ActivatedRouteSnapshot) SourceSegmentGroup() *urltree.UrlSegmentGroup { return a.sourceGroup }

// LastPathIndex implements urlbuilder.RelativeTo.
func (a *ActivatedRouteSnapshot) LastPathIndex() int { return a.lastPathIndex }

// RouterStateSnapshot is the immutable ARS tree produced by Recognize,
// representing the URL at one moment in time (spec.md §3
// "RouterStateSnapshot").
type RouterStateSnapshot struct {
	url  string
	root *ActivatedRouteSnapshot
}

// Url returns the serialized URL this snapshot was recognized from.
func (s *RouterStateSnapshot) Url() string { return s.url }

// Root implements collab.StateSnapshot.
func (s *RouterStateSnapshot) Root() collab.Snapshot { return s.root }

// RootSnapshot returns the concrete root ARS, for callers (state, the
// facade) that need the typed node rather than the collab interface.
func (s *RouterStateSnapshot) RootSnapshot() *ActivatedRouteSnapshot { return s.root }
