package redirects

import (
	"context"
	"errors"
	"strings"

	"github.com/vango-dev/vangoroute/collab"
	"github.com/vango-dev/vangoroute/rerr"
	"github.com/vango-dev/vangoroute/routeconfig"
	"github.com/vango-dev/vangoroute/urltree"
)

// Options bundles the collaborators Apply needs to resolve lazy-loaded
// config and guard tokens.
type Options struct {
	Resolver collab.TokenResolver
	Loader   routeconfig.Loader
}

// absoluteRedirectSignal unwinds the current expansion to re-enter matching
// from the root against a brand new tree, with further redirects disabled
// (spec.md §4.4 "AbsoluteRedirect (re-enters matching with the new tree;
// further redirects disabled to avoid loops)").
type absoluteRedirectSignal struct {
	tree *urltree.UrlTree
}

func (absoluteRedirectSignal) Error() string { return "redirects: absolute redirect" }

// Apply expands tree against routes, resolving every redirectTo and lazy
// loadChildren it encounters, and returns the fully expanded UrlTree.
func Apply(ctx context.Context, tree *urltree.UrlTree, routes []*routeconfig.Route, opts Options) (*urltree.UrlTree, error) {
	return apply(ctx, tree, routes, opts, true)
}

func apply(ctx context.Context, tree *urltree.UrlTree, routes []*routeconfig.Route, opts Options, redirectsAllowed bool) (*urltree.UrlTree, error) {
	newRoot, err := expandGroup(ctx, tree.Root, routes, urltree.PrimaryOutlet, opts, redirectsAllowed)
	if err != nil {
		var abs absoluteRedirectSignal
		if errors.As(err, &abs) {
			return apply(ctx, abs.tree, routes, opts, false)
		}
		return nil, err
	}
	return urltree.NewUrlTree(newRoot, tree.QueryParams, tree.Fragment), nil
}

// expandGroup implements spec.md §4.4 "Per segment group and outlet".
func expandGroup(ctx context.Context, group *urltree.UrlSegmentGroup, routes []*routeconfig.Route, outlet string, opts Options, redirectsAllowed bool) (*urltree.UrlSegmentGroup, error) {
	if len(group.Segments) == 0 && group.HasChildren() {
		newChildren := make(map[string]*urltree.UrlSegmentGroup, len(group.Children))
		for _, name := range group.SortedOutlets() {
			child, err := expandGroup(ctx, group.Children[name], routes, name, opts, redirectsAllowed)
			if err != nil {
				return nil, err
			}
			newChildren[name] = child
		}
		return urltree.NewUrlSegmentGroup(nil, newChildren), nil
	}

	matched, err := expandSegments(ctx, group.Segments, routes, outlet, opts, redirectsAllowed)
	if err != nil {
		return nil, err
	}
	if !group.HasChildren() {
		return matched, nil
	}

	// A secondary outlet declared alongside this group's own segments
	// (e.g. "inbox/33(popup:compose)") is a sibling of whatever route
	// matched the primary chain, looked up from the same routes list.
	siblings := make(map[string]*urltree.UrlSegmentGroup, len(group.Children))
	for name, child := range group.Children {
		expanded, err := expandGroup(ctx, child, routes, name, opts, redirectsAllowed)
		if err != nil {
			return nil, err
		}
		siblings[name] = expanded
	}
	return mergeGroupChildren(matched, siblings), nil
}

// mergeGroupChildren grafts siblings (secondary outlets expanded from this
// group's own paren suffix) into matched's children, alongside whatever
// matched's own further recognition already produced there.
func mergeGroupChildren(matched *urltree.UrlSegmentGroup, siblings map[string]*urltree.UrlSegmentGroup) *urltree.UrlSegmentGroup {
	if len(siblings) == 0 {
		return matched
	}
	children := make(map[string]*urltree.UrlSegmentGroup, len(matched.Children)+len(siblings))
	for name, child := range matched.Children {
		children[name] = child
	}
	for name, child := range siblings {
		children[name] = child
	}
	return urltree.NewUrlSegmentGroup(matched.Segments, children)
}

// expandSegments tries each candidate Route for outlet in config order; the
// first that matches wins (spec.md §4.4 "the first returning a non-NoMatch
// wins"). A route whose redirect target itself fails to recursively match
// is treated the same as an ordinary non-match, so later sibling routes
// still get a chance.
func expandSegments(ctx context.Context, segments []*urltree.UrlSegment, routes []*routeconfig.Route, outlet string, opts Options, redirectsAllowed bool) (*urltree.UrlSegmentGroup, error) {
	for _, route := range routes {
		if route.OutletName() != outlet {
			continue
		}
		result, matched, err := expandRoute(ctx, segments, route, routes, outlet, opts, redirectsAllowed)
		if err != nil {
			if errors.Is(err, rerr.ErrNoMatch) {
				continue
			}
			return nil, err
		}
		if matched {
			return result, nil
		}
	}
	return nil, rerr.New(rerr.ErrNoMatch, "Cannot match any routes")
}

func expandRoute(ctx context.Context, segments []*urltree.UrlSegment, route *routeconfig.Route, routes []*routeconfig.Route, outlet string, opts Options, redirectsAllowed bool) (*urltree.UrlSegmentGroup, bool, error) {
	if route.HasRedirect() {
		if !redirectsAllowed {
			return nil, false, nil
		}
		return expandRedirect(ctx, segments, route, routes, outlet, opts)
	}
	return expandMatch(ctx, segments, route, opts, redirectsAllowed)
}

// expandRedirect implements spec.md §4.4's redirectTo branch. A relative
// target recurses back into expandSegments against the same sibling routes,
// with redirects disabled for that recursion to avoid loops; a NoMatch
// surfacing from that recursion is reported to the caller as this route
// simply not matching, not a hard failure.
func expandRedirect(ctx context.Context, segments []*urltree.UrlSegment, route *routeconfig.Route, routes []*routeconfig.Route, outlet string, opts Options) (*urltree.UrlSegmentGroup, bool, error) {
	if route.Path == "**" {
		target, err := buildRedirectTarget(route.RedirectTo, segments, urltree.NewParamMap())
		if err != nil {
			return nil, false, err
		}
		if strings.HasPrefix(route.RedirectTo, "/") {
			return nil, false, absoluteRedirectSignal{tree: target}
		}
		// The wildcard consumed everything; there is no prefix worth
		// keeping, so the redirect target entirely replaces it.
		targetSegments := flattenPrimary(target)
		return recurseIntoFlatTarget(ctx, targetSegments, routes, outlet, opts)
	}

	match, ok := matchRoute(route, segments, false)
	if !ok {
		return nil, false, nil
	}

	target, err := buildRedirectTarget(route.RedirectTo, match.consumed, match.posParams)
	if err != nil {
		return nil, false, err
	}
	if strings.HasPrefix(route.RedirectTo, "/") {
		return nil, false, absoluteRedirectSignal{tree: target}
	}

	primary := target.Root.Primary()
	if primary != nil && primary.NumberOfChildren() > 0 {
		return nil, false, rerr.New(rerr.ErrValidation, "only an absolute redirectTo may target multiple outlets")
	}
	remaining := segments[len(match.consumed):]
	// The matched prefix is deliberately not re-prepended here: the target
	// is matched fresh against this route's siblings, the same way a
	// sibling route with that literal path would be.
	combined := make([]*urltree.UrlSegment, 0, len(primary.Segments)+len(remaining))
	combined = append(combined, flattenPrimary(target)...)
	combined = append(combined, remaining...)
	return recurseIntoFlatTarget(ctx, combined, routes, outlet, opts)
}

func flattenPrimary(tree *urltree.UrlTree) []*urltree.UrlSegment {
	if primary := tree.Root.Primary(); primary != nil {
		return primary.Segments
	}
	return nil
}

// recurseIntoFlatTarget re-enters matching on the linearized redirect
// target plus whatever the original segments left unconsumed (spec.md §4.4
// "recurse expansion on ... target + remaining"), with redirects disabled
// so a cycle of redirects can't loop forever.
func recurseIntoFlatTarget(ctx context.Context, combined []*urltree.UrlSegment, routes []*routeconfig.Route, outlet string, opts Options) (*urltree.UrlSegmentGroup, bool, error) {
	result, err := expandSegments(ctx, combined, routes, outlet, opts, false)
	if err != nil {
		return nil, false, err
	}
	return result, true, nil
}

// expandMatch implements spec.md §4.4's non-redirect matching branch.
func expandMatch(ctx context.Context, segments []*urltree.UrlSegment, route *routeconfig.Route, opts Options, redirectsAllowed bool) (*urltree.UrlSegmentGroup, bool, error) {
	if len(route.CanMatch) > 0 {
		allowed, err := runGateGuards(ctx, canMatchGates(route.CanMatch), route.Ref(), segments)
		if err != nil {
			return nil, false, err
		}
		if !allowed {
			return nil, false, nil
		}
	}

	if route.Path == "**" {
		consumed := append([]*urltree.UrlSegment(nil), segments...)
		childRoutes, err := resolveChildren(ctx, route, opts, consumed)
		if err != nil {
			return nil, false, err
		}
		return split(consumed, nil, childRoutes), true, nil
	}

	match, ok := matchRoute(route, segments, route.HasChildren())
	if !ok {
		return nil, false, nil
	}

	remaining := append([]*urltree.UrlSegment(nil), segments[len(match.consumed):]...)
	childRoutes, err := resolveChildren(ctx, route, opts, match.consumed)
	if err != nil {
		return nil, false, err
	}

	if len(remaining) == 0 && len(childRoutes) == 0 {
		return split(match.consumed, remaining, childRoutes), true, nil
	}

	splitGroup := split(match.consumed, remaining, childRoutes)
	expanded, err := expandGroup(ctx, &urltree.UrlSegmentGroup{Segments: remaining}, childRoutes, urltree.PrimaryOutlet, opts, redirectsAllowed)
	if err != nil {
		return nil, false, err
	}
	merged := mergeSplitWithExpandedRemainder(splitGroup, match.consumed, expanded)
	return merged, true, nil
}

// mergeSplitWithExpandedRemainder grafts the recursively-expanded remainder
// (matched against childRoutes) back under the consumed prefix that split
// already established, preserving any empty-path placeholder outlets split
// added alongside it.
func mergeSplitWithExpandedRemainder(splitGroup *urltree.UrlSegmentGroup, consumed []*urltree.UrlSegment, expanded *urltree.UrlSegmentGroup) *urltree.UrlSegmentGroup {
	children := make(map[string]*urltree.UrlSegmentGroup, len(splitGroup.Children)+len(expanded.Children))
	for name, child := range splitGroup.Children {
		children[name] = child
	}
	if len(expanded.Segments) > 0 || expanded.HasChildren() {
		if primary := expanded.Primary(); primary != nil || !expanded.HasChildren() {
			if expanded.HasChildren() {
				children[urltree.PrimaryOutlet] = primary
			} else {
				children[urltree.PrimaryOutlet] = expanded
			}
		}
		for name, child := range expanded.Children {
			if name == urltree.PrimaryOutlet {
				continue
			}
			children[name] = child
		}
	}
	return urltree.NewUrlSegmentGroup(consumed, children)
}

// resolveChildren returns route's eager Children, or triggers a canLoad-
// gated Loader fetch for a lazy loadChildren boundary, memoizing the result
// (spec.md §4.4 "Lazy load guard").
func resolveChildren(ctx context.Context, route *routeconfig.Route, opts Options, segments []*urltree.UrlSegment) ([]*routeconfig.Route, error) {
	if route.HasChildren() {
		return route.Children, nil
	}
	if !route.LoadChildren {
		return nil, nil
	}
	if cfg, ok := route.LoadedConfig(); ok {
		return cfg.Routes, nil
	}

	if len(route.CanLoad) > 0 {
		allowed, err := runGateGuards(ctx, canLoadGates(route.CanLoad), route.Ref(), segments)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, rerr.New(rerr.ErrNavigationCanceling, "canLoad guard returned false for %q", route.Path)
		}
	}
	if opts.Loader == nil {
		return nil, rerr.New(rerr.ErrValidation, "route %q declares loadChildren but no Loader was configured", route.Path)
	}
	cfg, err := opts.Loader.Load(ctx, opts.Resolver, route)
	if err != nil {
		return nil, err
	}
	route.SetLoadedConfig(cfg)
	return cfg.Routes, nil
}

// gateFunc is the common shape of CanLoadFunc and CanMatchFunc; both gate
// entry to the same route+segments pair before anything else runs.
type gateFunc func(ctx context.Context, route collab.RouteRef, segments []*urltree.UrlSegment) (collab.GuardResult, error)

func canLoadGates(fs []collab.CanLoadFunc) []gateFunc {
	out := make([]gateFunc, len(fs))
	for i, f := range fs {
		out[i] = gateFunc(f)
	}
	return out
}

func canMatchGates(fs []collab.CanMatchFunc) []gateFunc {
	out := make([]gateFunc, len(fs))
	for i, f := range fs {
		out[i] = gateFunc(f)
	}
	return out
}

// runGateGuards runs canLoad/canMatch guards in parallel, logical AND
// (spec.md §4.4 "run canLoad guards in parallel (logical AND)"). A UrlTree
// redirect result is treated as a denial at this stage — canLoad/canMatch
// don't reschedule a new navigation themselves, they just gate this one.
func runGateGuards(ctx context.Context, guards []gateFunc, route collab.RouteRef, segments []*urltree.UrlSegment) (bool, error) {
	type outcome struct {
		result collab.GuardResult
		err    error
	}
	results := make(chan outcome, len(guards))
	for _, g := range guards {
		g := g
		go func() {
			r, err := g(ctx, route, segments)
			results <- outcome{r, err}
		}()
	}
	for range guards {
		o := <-results
		if o.err != nil {
			return false, o.err
		}
		if !o.result.Allowed() {
			return false, nil
		}
	}
	return true, nil
}
