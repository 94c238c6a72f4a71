package collab

import "github.com/vango-dev/vangoroute/urltree"

// ReuseStrategy decides whether an ActivatedRoute from the current
// RouterState can be reused for a future route, and whether a detached
// subtree should be stashed for possible later reattachment (spec.md §4.6).
// The default implementation reuses iff future.RouteConfigPath() ==
// current.RouteConfigPath() and never detaches.
type ReuseStrategy interface {
	ShouldReuseRoute(future, current Snapshot) bool
	ShouldDetach(route Snapshot) bool
	Store(route Snapshot, handle any)
	Retrieve(route Snapshot) (handle any, ok bool)
	ShouldAttach(route Snapshot, handle any) bool
}

// UrlHandlingStrategy decides which part of a UrlTree this router instance
// is responsible for, supporting the "multiple independent routers share one
// URL" scenario (spec.md §6). The default implementation is the identity:
// every URL belongs to this router and merging keeps the new tree as-is.
type UrlHandlingStrategy interface {
	ShouldProcessUrl(url *urltree.UrlTree) bool
	Extract(url *urltree.UrlTree) *urltree.UrlTree
	Merge(newUrlPart, rawUrl *urltree.UrlTree) *urltree.UrlTree
}

// DefaultReuseStrategy implements ReuseStrategy: reuse iff future and
// current have the same RouteConfigPath(), never detach. It compares path
// strings, not config nodes, so two distinct config nodes with the same path
// count as the same route.
type DefaultReuseStrategy struct{}

func (DefaultReuseStrategy) ShouldReuseRoute(future, current Snapshot) bool {
	return future.RouteConfigPath() == current.RouteConfigPath()
}

func (DefaultReuseStrategy) ShouldDetach(Snapshot) bool { return false }

func (DefaultReuseStrategy) Store(Snapshot, any) {}

func (DefaultReuseStrategy) Retrieve(Snapshot) (any, bool) { return nil, false }

func (DefaultReuseStrategy) ShouldAttach(Snapshot, any) bool { return false }

// DefaultUrlHandlingStrategy implements UrlHandlingStrategy as the identity:
// this router owns the whole URL.
type DefaultUrlHandlingStrategy struct{}

func (DefaultUrlHandlingStrategy) ShouldProcessUrl(*urltree.UrlTree) bool { return true }

func (DefaultUrlHandlingStrategy) Extract(url *urltree.UrlTree) *urltree.UrlTree { return url }

func (DefaultUrlHandlingStrategy) Merge(newUrlPart, _ *urltree.UrlTree) *urltree.UrlTree {
	return newUrlPart
}
