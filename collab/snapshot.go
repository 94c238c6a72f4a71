package collab

import "github.com/vango-dev/vangoroute/urltree"

// Snapshot is the read-only view of an activated route a guard or resolver
// receives. recognizer.ActivatedRouteSnapshot implements it; this package
// stays decoupled from recognizer so routeconfig (which stores guard/resolver
// fields on Route) never needs to import it.
type Snapshot interface {
	Params() *urltree.ParamMap
	QueryParams() *urltree.QueryParamMap
	Fragment() *string
	Data() map[string]any
	Outlet() string
	UrlSegments() []*urltree.UrlSegment
	RouteConfigPath() string
}

// StateSnapshot is the read-only view of an entire candidate router state,
// passed to guards alongside the specific Snapshot being checked.
type StateSnapshot interface {
	Url() string
	Root() Snapshot
}
