package urltree

import "sort"

// UrlSegment is a path string plus an ordered map of matrix parameters.
// Immutable after construction (spec.md §3).
type UrlSegment struct {
	Path       string
	Parameters *ParamMap
}

// NewUrlSegment builds a UrlSegment. A nil params map is normalized to an
// empty ParamMap so callers never need a nil check.
func NewUrlSegment(path string, params *ParamMap) *UrlSegment {
	if params == nil {
		params = NewParamMap()
	}
	return &UrlSegment{Path: path, Parameters: params}
}

// Equal compares path and matrix parameters.
func (s *UrlSegment) Equal(other *UrlSegment) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.Path == other.Path && s.Parameters.Equal(other.Parameters)
}

// UrlSegmentGroup is an ordered sequence of UrlSegments plus a mapping from
// outlet name to child UrlSegmentGroup (spec.md §3). The parent pointer is a
// non-owning back-reference established only when a group is installed as
// a child (§9 design note: never serialized as an owning edge).
type UrlSegmentGroup struct {
	Segments []*UrlSegment
	Children map[string]*UrlSegmentGroup

	parent *UrlSegmentGroup
}

// NewUrlSegmentGroup builds a group and wires parent back-references into
// children. The children map is used as given, not copied.
func NewUrlSegmentGroup(segments []*UrlSegment, children map[string]*UrlSegmentGroup) *UrlSegmentGroup {
	g := &UrlSegmentGroup{Segments: segments, Children: children}
	if g.Children == nil {
		g.Children = make(map[string]*UrlSegmentGroup)
	}
	for _, child := range g.Children {
		child.parent = g
	}
	return g
}

// Parent returns the installing parent, or nil for a root/detached group.
func (g *UrlSegmentGroup) Parent() *UrlSegmentGroup { return g.parent }

// HasChildren reports whether the group has any named outlet children.
func (g *UrlSegmentGroup) HasChildren() bool { return len(g.Children) > 0 }

// NumberOfChildren returns the count of outlet children.
func (g *UrlSegmentGroup) NumberOfChildren() int { return len(g.Children) }

// Primary returns the primary outlet's child group, or nil.
func (g *UrlSegmentGroup) Primary() *UrlSegmentGroup { return g.Children[PrimaryOutlet] }

// SortedOutlets returns outlet names with the primary outlet first, all
// others alphabetically (spec.md §4.5 "Ordering").
func (g *UrlSegmentGroup) SortedOutlets() []string {
	names := make([]string, 0, len(g.Children))
	for name := range g.Children {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if names[i] == PrimaryOutlet {
			return names[j] != PrimaryOutlet
		}
		if names[j] == PrimaryOutlet {
			return false
		}
		return names[i] < names[j]
	})
	return names
}

// SetChild installs child under outlet, wiring its parent pointer. A nil
// child removes the outlet entirely (used by outlet-removal commands, §4.3).
func (g *UrlSegmentGroup) SetChild(outlet string, child *UrlSegmentGroup) {
	if g.Children == nil {
		g.Children = make(map[string]*UrlSegmentGroup)
	}
	if child == nil {
		delete(g.Children, outlet)
		return
	}
	child.parent = g
	g.Children[outlet] = child
}

// Clone returns a deep copy of the group, including descendants, with fresh
// parent pointers.
func (g *UrlSegmentGroup) Clone() *UrlSegmentGroup {
	if g == nil {
		return nil
	}
	segs := make([]*UrlSegment, len(g.Segments))
	for i, s := range g.Segments {
		segs[i] = NewUrlSegment(s.Path, s.Parameters.Clone())
	}
	children := make(map[string]*UrlSegmentGroup, len(g.Children))
	out := &UrlSegmentGroup{Segments: segs, Children: children}
	for name, child := range g.Children {
		c := child.Clone()
		c.parent = out
		children[name] = c
	}
	return out
}

// Equal performs a structural (value) comparison, ignoring parent pointers.
func (g *UrlSegmentGroup) Equal(other *UrlSegmentGroup) bool {
	if g == nil || other == nil {
		return g == other
	}
	if len(g.Segments) != len(other.Segments) {
		return false
	}
	for i := range g.Segments {
		if !g.Segments[i].Equal(other.Segments[i]) {
			return false
		}
	}
	if len(g.Children) != len(other.Children) {
		return false
	}
	for name, child := range g.Children {
		oc, ok := other.Children[name]
		if !ok || !child.Equal(oc) {
			return false
		}
	}
	return true
}

// UrlTree is the full parsed/serialized unit: root segment group, query
// params, and an optional fragment (spec.md §3).
type UrlTree struct {
	Root        *UrlSegmentGroup
	QueryParams *QueryParamMap
	Fragment    *string
}

// NewUrlTree builds a tree, normalizing nil inputs.
func NewUrlTree(root *UrlSegmentGroup, query *QueryParamMap, fragment *string) *UrlTree {
	if root == nil {
		root = NewUrlSegmentGroup(nil, nil)
	}
	if query == nil {
		query = NewQueryParamMap()
	}
	return &UrlTree{Root: root, QueryParams: query, Fragment: fragment}
}

// Clone returns a deep copy of the tree.
func (t *UrlTree) Clone() *UrlTree {
	var frag *string
	if t.Fragment != nil {
		f := *t.Fragment
		frag = &f
	}
	return NewUrlTree(t.Root.Clone(), t.QueryParams.Clone(), frag)
}
