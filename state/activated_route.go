package state

import (
	"github.com/vango-dev/vangoroute/recognizer"
	"github.com/vango-dev/vangoroute/stream"
	"github.com/vango-dev/vangoroute/urltree"
)

// ActivatedRoute is the observable counterpart to an ActivatedRouteSnapshot:
// same shape, but url/params/queryParams/fragment/data are current-value
// streams the scheduler pushes into across reused navigations (spec.md §3
// "ActivatedRoute").
type ActivatedRoute struct {
	url         *stream.Subject[[]*urltree.UrlSegment]
	params      *stream.Subject[*urltree.ParamMap]
	queryParams *stream.Subject[*urltree.QueryParamMap]
	fragment    *stream.Subject[*string]
	data        *stream.Subject[map[string]any]

	// snapshot is the ARS this ActivatedRoute currently reflects, set by
	// Build as soon as a node is reused or created, ahead of Advance.
	snapshot *recognizer.ActivatedRouteSnapshot

	// prevSnapshot is snapshot's value just before the most recent Build
	// overwrote it, so preactivation's runGuardsAndResolvers diff (spec.md
	// §4.7) can compare future vs. previous without a separate copy of the
	// outgoing tree (which Build mutates in place for reused nodes).
	prevSnapshot *recognizer.ActivatedRouteSnapshot

	// reused reports whether the most recent Build kept this node's identity
	// (plain reuse or reattach) rather than creating it fresh.
	reused bool

	parent   *ActivatedRoute
	children []*ActivatedRoute
}

func newActivatedRoute(snap *recognizer.ActivatedRouteSnapshot) *ActivatedRoute {
	return &ActivatedRoute{
		url:         stream.New(snap.UrlSegments(), urlSegmentsEqual),
		params:      stream.New(snap.Params(), paramMapEqual),
		queryParams: stream.New(snap.QueryParams(), queryParamMapEqual),
		fragment:    stream.New(snap.Fragment(), fragmentEqual),
		data:        stream.New(snap.Data(), dataEqual),
		snapshot:    snap,
	}
}

// Snapshot returns the ARS this node currently reflects.
func (a *ActivatedRoute) Snapshot() *recognizer.ActivatedRouteSnapshot { return a.snapshot }

// PrevSnapshot returns the ARS this node reflected before the most recent
// Build, or nil for a freshly created node with no prior occupant.
func (a *ActivatedRoute) PrevSnapshot() *recognizer.ActivatedRouteSnapshot { return a.prevSnapshot }

// Reused reports whether the most recent Build kept this node's identity.
func (a *ActivatedRoute) Reused() bool { return a.reused }

// Parent returns the enclosing ActivatedRoute, or nil at the tree root.
func (a *ActivatedRoute) Parent() *ActivatedRoute { return a.parent }

// Children returns this node's current children, primary outlet first.
func (a *ActivatedRoute) Children() []*ActivatedRoute { return a.children }

// Url is the current-value stream of consumed URL segments.
func (a *ActivatedRoute) Url() *stream.Subject[[]*urltree.UrlSegment] { return a.url }

// Params is the current-value stream of merged positional+matrix params.
func (a *ActivatedRoute) Params() *stream.Subject[*urltree.ParamMap] { return a.params }

// QueryParams is the current-value stream of the shared query string.
func (a *ActivatedRoute) QueryParams() *stream.Subject[*urltree.QueryParamMap] {
	return a.queryParams
}

// Fragment is the current-value stream of the shared URL fragment.
func (a *ActivatedRoute) Fragment() *stream.Subject[*string] { return a.fragment }

// Data is the current-value stream of merged static + resolved data.
func (a *ActivatedRoute) Data() *stream.Subject[map[string]any] { return a.data }

func urlSegmentsEqual(a, b []*urltree.UrlSegment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Path != b[i].Path {
			return false
		}
	}
	return true
}

func paramMapEqual(a, b *urltree.ParamMap) bool {
	return shallowMapEqual(a.ToMap(), b.ToMap())
}

func queryParamMapEqual(a, b *urltree.QueryParamMap) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(b)
}

func fragmentEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func dataEqual(a, b map[string]any) bool {
	return shallowMapEqual(a, b)
}

func shallowMapEqual[V comparable](a, b map[string]V) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}
