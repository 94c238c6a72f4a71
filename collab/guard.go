package collab

import (
	"context"

	"github.com/vango-dev/vangoroute/urltree"
)

// GuardResult is a guard or resolver's verdict: allow, deny, or redirect to a
// different UrlTree (spec.md §4.7 "Guard / resolver return interpretations").
// Go has no Promise/Observable union to model natively, so every guard and
// resolver in this module is a plain blocking function; a caller that needs
// async behavior runs it in a goroutine and feeds the result back through a
// channel or context deadline the way any other blocking Go call would be.
type GuardResult struct {
	allowed  bool
	redirect *urltree.UrlTree
}

// Allow permits the navigation to proceed.
func Allow() GuardResult { return GuardResult{allowed: true} }

// Deny blocks the navigation; the scheduler turns this into a
// NavigationCancel.
func Deny() GuardResult { return GuardResult{allowed: false} }

// RedirectTo cancels the current transition and schedules a new navigation
// to tree.
func RedirectTo(tree *urltree.UrlTree) GuardResult {
	return GuardResult{allowed: false, redirect: tree}
}

// Allowed reports whether the guard passed with no redirect.
func (r GuardResult) Allowed() bool { return r.allowed }

// Redirect returns the redirect target, or nil when there is none.
func (r GuardResult) Redirect() *urltree.UrlTree { return r.redirect }

// IsRedirect reports whether this result carries a redirect UrlTree.
func (r GuardResult) IsRedirect() bool { return r.redirect != nil }

// CanActivateFunc gates activation of the route the snapshot belongs to.
type CanActivateFunc func(ctx context.Context, snapshot Snapshot, state StateSnapshot) (GuardResult, error)

// CanActivateChildFunc gates activation of a route's children; invoked on
// every ancestor, outermost first, with the snapshot of the node actually
// being activated.
type CanActivateChildFunc func(ctx context.Context, snapshot Snapshot, state StateSnapshot) (GuardResult, error)

// CanDeactivateFunc gates leaving a currently-active route. component is the
// outlet's mounted component instance, opaque to the core.
type CanDeactivateFunc func(ctx context.Context, component any, snapshot Snapshot, currentState StateSnapshot, nextState StateSnapshot) (GuardResult, error)

// CanLoadFunc gates a lazy-loaded config's load, run before the module is
// fetched (spec.md §4.4 "Lazy load guard").
type CanLoadFunc func(ctx context.Context, route RouteRef, segments []*urltree.UrlSegment) (GuardResult, error)

// CanMatchFunc gates whether a route is even considered a match during
// recognition, letting two sibling routes with identical paths discriminate
// on something other than path shape (e.g. feature flag, auth state).
type CanMatchFunc func(ctx context.Context, route RouteRef, segments []*urltree.UrlSegment) (GuardResult, error)

// ResolveFunc produces one key's worth of resolved data ahead of activation.
type ResolveFunc func(ctx context.Context, snapshot Snapshot, state StateSnapshot) (any, error)

// RouteRef is the minimal view of a config node a canLoad/canMatch guard
// needs — just enough to log or branch on, without requiring collab to
// import routeconfig (which would cycle back to here).
type RouteRef interface {
	Path() string
	Outlet() string
}
