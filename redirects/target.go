package redirects

import (
	"strings"

	"github.com/vango-dev/vangoroute/urltree"
)

// buildRedirectTarget parses redirectTo and substitutes `:name` path atoms
// from posParams, reusing the actual consumed UrlSegment (matrix params and
// all) wherever the target's literal matches the consumed one (spec.md §4.4
// "Apply redirectTo"). consumed is the prefix of segments the matched route
// actually accounted for.
func buildRedirectTarget(redirectTo string, consumed []*urltree.UrlSegment, posParams *urltree.ParamMap) (*urltree.UrlTree, error) {
	tree, err := urltree.Parse(redirectTo)
	if err != nil {
		return nil, err
	}
	primary := tree.Root.Primary()
	if primary == nil {
		return tree, nil
	}
	newSegments := make([]*urltree.UrlSegment, len(primary.Segments))
	for i, seg := range primary.Segments {
		if strings.HasPrefix(seg.Path, ":") {
			name := seg.Path[1:]
			newSegments[i] = urltree.NewUrlSegment(posParams.Get(name), seg.Parameters.Clone())
			continue
		}
		if i < len(consumed) && consumed[i].Path == seg.Path {
			newSegments[i] = consumed[i]
			continue
		}
		newSegments[i] = seg
	}
	newPrimary := urltree.NewUrlSegmentGroup(newSegments, primary.Children)
	newRoot := urltree.NewUrlSegmentGroup(nil, map[string]*urltree.UrlSegmentGroup{urltree.PrimaryOutlet: newPrimary})
	return urltree.NewUrlTree(newRoot, tree.QueryParams, tree.Fragment), nil
}
