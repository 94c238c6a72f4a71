package state

import (
	"github.com/vango-dev/vangoroute/collab"
	"github.com/vango-dev/vangoroute/recognizer"
)

// RouterState is the tree of ActivatedRoute. One instance lives per Router,
// replaced structurally on every successful navigation (spec.md §3
// "RouterState").
type RouterState struct {
	url  string
	root *ActivatedRoute
}

// Url returns the serialized URL this state was built from.
func (s *RouterState) Url() string { return s.url }

// Root returns the root ActivatedRoute.
func (s *RouterState) Root() *ActivatedRoute { return s.root }

// Build constructs a RouterState from future, a freshly recognized snapshot,
// reusing nodes out of previous where strategy allows (spec.md §4.6
// "Build a new RouterState tree"). previous may be nil, for the very first
// navigation.
//
// Build mutates reused ActivatedRoute nodes in place (their identity is the
// point of reuse), so previous must not be inspected again once Build
// returns; every piece of information package preactivation needs about the
// prior state (previous snapshot, which nodes fell out of the tree) is
// captured in deactivated and in each reused node's PrevSnapshot before the
// mutation happens. Build never touches a stream.Subject — that is
// Advance's job, called later once guards and resolvers have passed, so a
// cancelled transition never has observably changed an ActivatedRoute a
// caller already holds.
func Build(future *recognizer.RouterStateSnapshot, previous *RouterState, strategy collab.ReuseStrategy) (st *RouterState, deactivated []*ActivatedRoute) {
	if strategy == nil {
		strategy = collab.DefaultReuseStrategy{}
	}
	var prevRoot *ActivatedRoute
	if previous != nil {
		prevRoot = previous.Root()
	}
	root := buildNode(future.RootSnapshot(), prevRoot, strategy, &deactivated)
	return &RouterState{url: future.Url(), root: root}, deactivated
}

// buildNode implements the three-way decision from spec.md §4.6: reuse the
// previous ActivatedRoute identity, reattach a strategy-stashed detached
// subtree, or create fresh.
func buildNode(future *recognizer.ActivatedRouteSnapshot, previous *ActivatedRoute, strategy collab.ReuseStrategy, deactivated *[]*ActivatedRoute) *ActivatedRoute {
	// previous.children is about to be overwritten in place when node turns
	// out to be previous itself (the plain-reuse case) — captured up front
	// so detachStaleChildren still sees the outgoing child set.
	var prevChildren []*ActivatedRoute
	if previous != nil {
		prevChildren = previous.children
	}

	var node *ActivatedRoute

	if previous != nil && strategy.ShouldReuseRoute(future, previous.snapshot) {
		node = previous
		node.prevSnapshot = node.snapshot
		node.snapshot = future
		node.reused = true
	} else if handle, ok := strategy.Retrieve(future); ok && strategy.ShouldAttach(future, handle) {
		if reattached, ok := handle.(*ActivatedRoute); ok {
			node = reattached
			node.prevSnapshot = node.snapshot
			node.snapshot = future
			node.reused = true
		}
	}

	// Whatever occupied this slot before is replaced outright unless node
	// ended up being that very object (the plain-reuse case above).
	if previous != nil && previous != node {
		*deactivated = append(*deactivated, collectSubtree(previous)...)
	}

	if node == nil {
		node = newActivatedRoute(future)
		node.reused = false
	}

	futureChildren := future.Children()
	node.children = make([]*ActivatedRoute, len(futureChildren))
	for i, fc := range futureChildren {
		prevChild := matchingChild(prevChildren, fc.Outlet())
		child := buildNode(fc, prevChild, strategy, deactivated)
		child.parent = node
		node.children[i] = child
	}

	if previous != nil && previous == node {
		detachStaleChildren(prevChildren, futureChildren, strategy, deactivated)
	}

	return node
}

// matchingChild finds the child activated for the given outlet among
// candidates, the pairing spec.md §4.6 calls "recurse on children (pairwise
// by outlet)".
func matchingChild(candidates []*ActivatedRoute, outlet string) *ActivatedRoute {
	for _, c := range candidates {
		if c.snapshot.Outlet() == outlet {
			return c
		}
	}
	return nil
}

// detachStaleChildren offers every one of prevChildren that didn't survive
// into the new child set (by outlet) to the reuse strategy for stashing, so
// a later navigation back can reattach it (spec.md §4.6 "stored detached
// subtree"), and always records it (and its whole subtree) as deactivated
// regardless of whether the strategy chooses to stash it.
func detachStaleChildren(prevChildren []*ActivatedRoute, futureChildren []*recognizer.ActivatedRouteSnapshot, strategy collab.ReuseStrategy, deactivated *[]*ActivatedRoute) {
	for _, pc := range prevChildren {
		if outletPresent(futureChildren, pc.snapshot.Outlet()) {
			continue
		}
		if strategy.ShouldDetach(pc.snapshot) {
			strategy.Store(pc.snapshot, pc)
		}
		*deactivated = append(*deactivated, collectSubtree(pc)...)
	}
}

func outletPresent(snaps []*recognizer.ActivatedRouteSnapshot, outlet string) bool {
	for _, s := range snaps {
		if s.Outlet() == outlet {
			return true
		}
	}
	return false
}

// collectSubtree flattens node and every descendant, depth-first, for
// building the canDeactivateChecks set (spec.md §4.7).
func collectSubtree(node *ActivatedRoute) []*ActivatedRoute {
	out := []*ActivatedRoute{node}
	for _, c := range node.children {
		out = append(out, collectSubtree(c)...)
	}
	return out
}
