package preactivation

import (
	"github.com/vango-dev/vangoroute/recognizer"
	"github.com/vango-dev/vangoroute/routeconfig"
	"github.com/vango-dev/vangoroute/state"
)

// DeactivateCheck is one ActivatedRoute whose canDeactivate guards must run
// before a transition may proceed (spec.md §4.7 "canDeactivateChecks").
type DeactivateCheck struct {
	Route *state.ActivatedRoute
}

// ActivateCheck is one ActivatedRoute whose canActivate/canActivateChild
// guards and resolvers must run (spec.md §4.7 "canActivateChecks").
// Ancestors runs root-first, outermost to innermost, matching the order
// canActivateChild is expected to gate from the top of the tree down.
type ActivateCheck struct {
	Route     *state.ActivatedRoute
	Ancestors []*state.ActivatedRoute
}

// CollectChecks walks the future tree Build just produced and returns the
// two check sets spec.md §4.7 describes. deactivatedByBuild is Build's own
// second return value: the nodes that fell out of the tree outright
// (replaced or detached), which always need a canDeactivate check
// regardless of runGuardsAndResolvers.
func CollectChecks(root *state.ActivatedRoute, deactivatedByBuild []*state.ActivatedRoute) (deactivate []DeactivateCheck, activate []ActivateCheck) {
	for _, n := range deactivatedByBuild {
		deactivate = append(deactivate, DeactivateCheck{Route: n})
	}
	walkForChecks(root, nil, false, &deactivate, &activate)
	return deactivate, activate
}

func walkForChecks(node *state.ActivatedRoute, ancestors []*state.ActivatedRoute, ancestorRerun bool, deactivate *[]DeactivateCheck, activate *[]ActivateCheck) {
	if node == nil {
		return
	}

	rerun := ancestorRerun
	if node.Reused() {
		if shouldRerun(node, ancestorRerun) {
			rerun = true
			*deactivate = append(*deactivate, DeactivateCheck{Route: node})
			*activate = append(*activate, ActivateCheck{Route: node, Ancestors: ancestors})
		}
	} else {
		rerun = true
		*activate = append(*activate, ActivateCheck{Route: node, Ancestors: ancestors})
	}

	childAncestors := append(append([]*state.ActivatedRoute(nil), ancestors...), node)
	for _, c := range node.Children() {
		walkForChecks(c, childAncestors, rerun, deactivate, activate)
	}
}

// shouldRerun implements the runGuardsAndResolvers decision from spec.md
// §4.7. "parent chain equality required" for the paramsChange default is
// read as: once any ancestor reruns, every descendant reruns too, since the
// descendant's effective context (inherited params/data) may have shifted
// even if its own snapshot didn't change.
func shouldRerun(node *state.ActivatedRoute, ancestorRerun bool) bool {
	if ancestorRerun {
		return true
	}
	route := node.Snapshot().Route()
	if route == nil {
		return false
	}
	prev := node.PrevSnapshot()
	if prev == nil {
		return true
	}
	switch route.RunGuardsAndResolversEffective() {
	case routeconfig.RunAlways:
		return true
	case routeconfig.RunParamsOrQueryParamsChange:
		return paramsDiffer(node, prev) || queryDiffer(node, prev)
	default: // routeconfig.RunParamsChange
		return paramsDiffer(node, prev) || urlDiffer(node, prev)
	}
}

func paramsDiffer(node *state.ActivatedRoute, prev *recognizer.ActivatedRouteSnapshot) bool {
	return !node.Snapshot().Params().Equal(prev.Params())
}

func queryDiffer(node *state.ActivatedRoute, prev *recognizer.ActivatedRouteSnapshot) bool {
	a, b := node.Snapshot().QueryParams(), prev.QueryParams()
	if a == nil || b == nil {
		return a != b
	}
	return !a.Equal(b)
}

func urlDiffer(node *state.ActivatedRoute, prev *recognizer.ActivatedRouteSnapshot) bool {
	a, b := node.Snapshot().UrlSegments(), prev.UrlSegments()
	if len(a) != len(b) {
		return true
	}
	for i := range a {
		if a[i].Path != b[i].Path {
			return true
		}
	}
	return false
}
