package recognizer

import (
	"sort"

	"github.com/vango-dev/vangoroute/rerr"
	"github.com/vango-dev/vangoroute/routeconfig"
	"github.com/vango-dev/vangoroute/urltree"
)

// Recognize builds a RouterStateSnapshot from a redirect-expanded UrlTree and
// the root route config (spec.md §4.5). tree is expected to already have
// every redirectTo and loadChildren resolved by package redirects. mode
// controls the inheritance post-pass; the zero value behaves as
// InheritEmptyOnly.
func Recognize(tree *urltree.UrlTree, routes []*routeconfig.Route, mode InheritanceMode) (*RouterStateSnapshot, error) {
	if mode == "" {
		mode = InheritEmptyOnly
	}
	children, err := recognizeOutletGroup(urltree.PrimaryOutlet, tree.Root, routes, nil, tree.QueryParams, tree.Fragment)
	if err != nil {
		return nil, err
	}
	root, err := soleRoot(children)
	if err != nil {
		return nil, err
	}
	applyInheritance(root, mode)
	return &RouterStateSnapshot{url: urltree.Serialize(tree), root: root}, nil
}

// soleRoot unwraps the synthetic root level: recognizeOutletGroup always
// returns a slice (it may fan into several named-outlet children), but the
// tree's own root only ever has one meaningful entry point, the primary
// chain, with any secondary outlets nested as its own children.
func soleRoot(children []*ActivatedRouteSnapshot) (*ActivatedRouteSnapshot, error) {
	if len(children) == 0 {
		return &ActivatedRouteSnapshot{params: urltree.NewParamMap(), data: map[string]any{}}, nil
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return nil, rerr.New(rerr.ErrOutletConflict, "root segment group produced more than one top-level route")
}

// recognizeOutletGroup recognizes group, which is installed under outlet in
// its parent's Children map, against routes, producing zero or more sibling
// ARS nodes (spec.md §4.5 "Per segment group").
func recognizeOutletGroup(outlet string, group *urltree.UrlSegmentGroup, routes []*routeconfig.Route, parent *ActivatedRouteSnapshot, query *urltree.QueryParamMap, fragment *string) ([]*ActivatedRouteSnapshot, error) {
	if len(group.Segments) == 0 && group.HasChildren() {
		return recognizeChildren(group, routes, parent, query, fragment)
	}

	node, childRoutes, remaining, err := recognizeSegments(outlet, group.Segments, group.HasChildren(), routes, query, fragment)
	if err != nil {
		return nil, err
	}

	var kids []*ActivatedRouteSnapshot

	// The matched route's own remaining, unconsumed suffix continues
	// against its nested child config, as the node's primary outlet child.
	if len(remaining) > 0 || len(childRoutes) > 0 {
		remGroup := urltree.NewUrlSegmentGroup(remaining, nil)
		primaryKids, err := recognizeOutletGroup(urltree.PrimaryOutlet, remGroup, childRoutes, node, query, fragment)
		if err != nil {
			return nil, err
		}
		kids = append(kids, primaryKids...)
	}

	// Secondary outlets declared alongside this group's own segments (e.g.
	// "inbox/33(popup:compose)") are siblings of the matched route within
	// the SAME route list, not children of whatever it matched.
	if group.HasChildren() {
		siblingKids, err := recognizeChildren(urltree.NewUrlSegmentGroup(nil, group.Children), routes, node, query, fragment)
		if err != nil {
			return nil, err
		}
		kids = append(kids, siblingKids...)
	}

	if err := checkOutletUniqueness(kids); err != nil {
		return nil, err
	}
	node.children = sortChildren(kids)
	for _, c := range node.children {
		c.parent = node
	}
	return []*ActivatedRouteSnapshot{node}, nil
}

// recognizeChildren recurses over every named-outlet child of group,
// enforcing outlet uniqueness (spec.md §4.5 "Uniqueness").
func recognizeChildren(group *urltree.UrlSegmentGroup, routes []*routeconfig.Route, parent *ActivatedRouteSnapshot, query *urltree.QueryParamMap, fragment *string) ([]*ActivatedRouteSnapshot, error) {
	var out []*ActivatedRouteSnapshot
	for _, name := range group.SortedOutlets() {
		nodes, err := recognizeOutletGroup(name, group.Children[name], routes, parent, query, fragment)
		if err != nil {
			return nil, err
		}
		out = append(out, nodes...)
	}
	if err := checkOutletUniqueness(out); err != nil {
		return nil, err
	}
	return out, nil
}

func checkOutletUniqueness(nodes []*ActivatedRouteSnapshot) error {
	seen := map[string]bool{}
	for _, n := range nodes {
		if seen[n.outlet] {
			return rerr.New(rerr.ErrOutletConflict, "duplicate outlet %q in segment group", n.outlet)
		}
		seen[n.outlet] = true
	}
	return nil
}

// sortChildren orders nodes with the primary outlet first, all others
// alphabetically by outlet name (spec.md §4.5 "Ordering").
func sortChildren(nodes []*ActivatedRouteSnapshot) []*ActivatedRouteSnapshot {
	sorted := append([]*ActivatedRouteSnapshot(nil), nodes...)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i].outlet, sorted[j].outlet
		if a == urltree.PrimaryOutlet {
			return b != urltree.PrimaryOutlet
		}
		if b == urltree.PrimaryOutlet {
			return false
		}
		return a < b
	})
	return sorted
}

// recognizeSegments tries each non-redirect Route for outlet in config
// order, the first match winning, and builds the ARS for the matched
// prefix. It returns the matched node, the child route config to recurse
// into, and whatever segments it left unconsumed.
func recognizeSegments(outlet string, segments []*urltree.UrlSegment, groupHasChildren bool, routes []*routeconfig.Route, query *urltree.QueryParamMap, fragment *string) (*ActivatedRouteSnapshot, []*routeconfig.Route, []*urltree.UrlSegment, error) {
	for _, route := range routes {
		if route.OutletName() != outlet || route.HasRedirect() {
			continue
		}

		var m matchResult
		var ok bool
		if route.Path == "**" {
			m, ok = matchResult{consumed: segments, posParams: urltree.NewParamMap()}, true
		} else {
			m, ok = matchRoute(route, segments, groupHasChildren)
		}
		if !ok {
			continue
		}

		childRoutes := route.Children
		if cfg, loaded := route.LoadedConfig(); loaded {
			childRoutes = cfg.Routes
		}

		node := &ActivatedRouteSnapshot{
			url:           m.consumed,
			params:        mergedParams(m.posParams, m.consumed),
			queryParams:   query,
			fragment:      fragment,
			data:          mergeData(route.Data, nil),
			outlet:        outlet,
			component:     route.Component,
			route:         route,
			sourceGroup:   urltree.NewUrlSegmentGroup(segments, nil),
			lastPathIndex: len(m.consumed) - 1,
		}

		var remaining []*urltree.UrlSegment
		if route.Path != "**" {
			remaining = segments[len(m.consumed):]
		}
		return node, childRoutes, remaining, nil
	}
	return nil, nil, nil, rerr.New(rerr.ErrNoMatch, "Cannot match any routes")
}

func mergeData(routeData map[string]any, resolved map[string]any) map[string]any {
	out := make(map[string]any, len(routeData)+len(resolved))
	for k, v := range routeData {
		out[k] = v
	}
	for k, v := range resolved {
		out[k] = v
	}
	return out
}
