package urlbuilder

import (
	"github.com/vango-dev/vangoroute/urltree"
)

// RelativeTo is the minimal view of an ActivatedRoute createUrlTree needs to
// resolve a relative command list: its source segment group and the index
// within that group's Segments where it stopped consuming (spec.md §3
// "_lastPathIndex"). recognizer.ActivatedRouteSnapshot implements this.
type RelativeTo interface {
	SourceSegmentGroup() *urltree.UrlSegmentGroup
	LastPathIndex() int
}

// Options configures query-param and fragment handling for CreateUrlTree
// (spec.md §4.3 "Query-params merging mode" / fragment mode).
type Options struct {
	QueryParams         *urltree.QueryParamMap
	QueryParamsHandling QueryParamsHandling
	Fragment            *string
	FragmentHandling    FragmentHandling
}

// CreateUrlTree applies commands relative to relativeTo (nil for an absolute
// navigation with no anchor) against currentTree, producing a new UrlTree.
func CreateUrlTree(commands []Command, relativeTo RelativeTo, currentTree *urltree.UrlTree, opts Options) (*urltree.UrlTree, error) {
	nav, err := computeNavigation(commands)
	if err != nil {
		return nil, err
	}

	// The primary path chain always lives one level below the UrlTree's
	// root (root.Segments is always empty — see urltree's parse/serialize
	// convention), so building operates on root.Primary(), not root
	// itself. Relative navigation is assumed to target this same primary
	// chain or its own nested outlet children; splicing an update into an
	// arbitrary deeper group elsewhere in the tree is not implemented.
	primary := currentTree.Root.Primary()
	startGroup, startIndex, err := startPosition(primary, relativeTo, nav)
	if err != nil {
		return nil, err
	}

	newPrimary, err := updateSegmentGroup(startGroup, startIndex, nav)
	if err != nil {
		return nil, err
	}

	rootChildren := make(map[string]*urltree.UrlSegmentGroup, len(currentTree.Root.Children))
	for name, child := range currentTree.Root.Children {
		rootChildren[name] = child
	}
	rootChildren[urltree.PrimaryOutlet] = newPrimary
	newRoot := urltree.NewUrlSegmentGroup(nil, rootChildren)

	query := mergeQueryParams(currentTree.QueryParams, opts.QueryParams, opts.QueryParamsHandling)
	fragment := chooseFragment(currentTree.Fragment, opts.Fragment, opts.FragmentHandling)

	return urltree.NewUrlTree(newRoot, query, fragment), nil
}

// startPosition implements spec.md §4.3 step 2. A relative command's leading
// ".." tokens walk back from relativeTo's own match. Only the very first ".."
// stays inside this route's own matched span (it just cancels the +1 that
// makes room for a fresh trailing segment); relativeTo's own last consumed
// segment is itself "this route's match-start", so every ".." after that one
// has already reached it and discards the whole been-matched prefix for that
// level in one step — hopping to the parent group and restarting from its
// own start — rather than peeling the prefix off one array slot at a time.
func startPosition(primary *urltree.UrlSegmentGroup, relativeTo RelativeTo, nav *navigation) (*urltree.UrlSegmentGroup, int, error) {
	if nav.isAbsolute || relativeTo == nil {
		return primary, 0, nil
	}

	group := relativeTo.SourceSegmentGroup()
	if group == nil {
		group = primary
	}
	lastPathIndex := relativeTo.LastPathIndex()
	firstIsParams := len(nav.segments) > 0 && nav.segments[0].path == "" && nav.segments[0].params != nil
	index := lastPathIndex
	if !firstIsParams {
		index++
	}

	dots := nav.numDoubleDots
	if dots > 0 && index > lastPathIndex {
		index = lastPathIndex
		if index < 0 {
			index = 0
		}
		dots--
	}
	for ; dots > 0; dots-- {
		parent := group.Parent()
		if parent == nil {
			return group, 0, nil
		}
		group = parent
		index = 0
	}
	return group, index, nil
}

// updateSegmentGroup implements spec.md §4.3 step 3-4: the command's path
// atoms replace the group's segments from startIndex onward (the prefix
// below startIndex is kept verbatim, preserving its matrix params), and a
// trailing Outlets command updates the resulting group's named children.
// The group's existing outlet children are kept only when the command list
// has no path atoms or matrix params.
func updateSegmentGroup(group *urltree.UrlSegmentGroup, startIndex int, nav *navigation) (*urltree.UrlSegmentGroup, error) {
	if group == nil {
		group = urltree.NewUrlSegmentGroup(nil, nil)
	}
	if startIndex > len(group.Segments) {
		startIndex = len(group.Segments)
	}
	if startIndex < 0 {
		startIndex = 0
	}

	newSegments := make([]*urltree.UrlSegment, 0, startIndex+len(nav.segments))
	for i := 0; i < startIndex; i++ {
		newSegments = append(newSegments, group.Segments[i])
	}
	for i, tok := range nav.segments {
		if i == 0 && tok.path == "" && tok.params != nil && startIndex < len(group.Segments) {
			// A leading bare matrix-params token applies to the current
			// segment, the one at startIndex, which stays in place.
			cur := group.Segments[startIndex]
			merged := cur.Parameters.Merge(urltree.ParamMapFrom(tok.params))
			newSegments = append(newSegments, urltree.NewUrlSegment(cur.Path, merged))
			continue
		}
		if tok.path == "" && tok.params != nil && len(newSegments) > 0 {
			// Past the group's end, a bare matrix-params token attaches to
			// the last kept segment rather than introducing a new empty-path one.
			last := newSegments[len(newSegments)-1]
			merged := last.Parameters.Merge(urltree.ParamMapFrom(tok.params))
			newSegments[len(newSegments)-1] = urltree.NewUrlSegment(last.Path, merged)
			continue
		}
		newSegments = append(newSegments, urltree.NewUrlSegment(tok.path, urltree.ParamMapFrom(tok.params)))
	}

	children := group.Children
	if len(nav.segments) > 0 {
		// A fresh path replaces the group's outlet children: they are a
		// property of the group, not of individual segments, so a nonempty
		// replacement clears them unless an Outlets command re-supplies some.
		children = map[string]*urltree.UrlSegmentGroup{}
	}

	if nav.hasOutlets {
		updated, err := applyOutlets(children, nav.outlets)
		if err != nil {
			return nil, err
		}
		children = updated
	}

	return urltree.NewUrlSegmentGroup(newSegments, children), nil
}

// applyOutlets implements spec.md §4.3 step 4: each outlet entry recurses
// CreateUrlTree's command-application against that outlet's current child
// (absolute within the same tree), or removes the outlet on a nil command
// list.
func applyOutlets(children map[string]*urltree.UrlSegmentGroup, outlets Outlets) (map[string]*urltree.UrlSegmentGroup, error) {
	out := make(map[string]*urltree.UrlSegmentGroup, len(children))
	for name, child := range children {
		out[name] = child
	}
	for name, cmds := range outlets {
		if cmds == nil {
			delete(out, name)
			continue
		}
		nav, err := computeNavigation(cmds)
		if err != nil {
			return nil, err
		}
		existing := out[name]
		updated, err := updateSegmentGroup(existing, 0, nav)
		if err != nil {
			return nil, err
		}
		out[name] = updated
	}
	return out, nil
}

func mergeQueryParams(current, provided *urltree.QueryParamMap, handling QueryParamsHandling) *urltree.QueryParamMap {
	switch handling {
	case QueryParamsPreserve:
		return current.Clone()
	case QueryParamsMerge:
		merged := current.Clone()
		if provided != nil {
			for _, k := range provided.Keys() {
				merged.Set(k, provided.Get(k))
				for _, v := range provided.GetAll(k)[1:] {
					merged.Add(k, v)
				}
			}
		}
		return merged
	default:
		if provided == nil {
			return urltree.NewQueryParamMap()
		}
		return provided.Clone()
	}
}

func chooseFragment(current *string, provided *string, handling FragmentHandling) *string {
	if handling == FragmentPreserve {
		return current
	}
	return provided
}
