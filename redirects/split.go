package redirects

import (
	"github.com/vango-dev/vangoroute/routeconfig"
	"github.com/vango-dev/vangoroute/urltree"
)

// split normalizes empty-path routes with named outlets so later matching is
// uniform (spec.md §4.4 "Split"): when children still have segments left to
// consume, every empty-path route in a non-primary outlet gets its own
// placeholder child group up front; when none are left, every empty-path
// route does, primary included. This avoids relying on each outlet happening
// to match on its own. The
// trivial case of a result with only a primary child is then collapsed back
// into its parent to avoid an unnecessary extra tree level.
func split(consumed []*urltree.UrlSegment, remaining []*urltree.UrlSegment, childRoutes []*routeconfig.Route) *urltree.UrlSegmentGroup {
	children := map[string]*urltree.UrlSegmentGroup{}
	if len(remaining) > 0 {
		for _, r := range childRoutes {
			if r.Path == "" && r.OutletName() != urltree.PrimaryOutlet {
				children[r.OutletName()] = urltree.NewUrlSegmentGroup(nil, nil)
			}
		}
	} else {
		for _, r := range childRoutes {
			if r.Path == "" {
				children[r.OutletName()] = urltree.NewUrlSegmentGroup(nil, nil)
			}
		}
	}

	g := urltree.NewUrlSegmentGroup(consumed, children)
	if g.NumberOfChildren() == 1 {
		if primary := g.Primary(); primary != nil {
			mergedSegments := append(append([]*urltree.UrlSegment(nil), consumed...), primary.Segments...)
			return urltree.NewUrlSegmentGroup(mergedSegments, primary.Children)
		}
	}
	return g
}
