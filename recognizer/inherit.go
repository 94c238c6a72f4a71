package recognizer

// InheritanceMode controls how far down a component-bearing route's params
// and resolved data propagate (spec.md §4.5 "Inheritance").
type InheritanceMode string

const (
	// InheritEmptyOnly (the default) only lets an empty-path node inherit
	// its nearest component-bearing ancestor's params and data — the
	// common case of a lazy-loaded module's wrapper route sharing its
	// parent's context.
	InheritEmptyOnly InheritanceMode = "emptyOnly"
	// InheritAlways makes every node inherit from its nearest non-empty,
	// component-bearing ancestor, regardless of its own path.
	InheritAlways InheritanceMode = "always"
)

// applyInheritance walks the ARS tree merging each qualifying node's
// nearest component-bearing ancestor's params and data downward (spec.md
// §4.5 "Inheritance (post-pass)").
func applyInheritance(node *ActivatedRouteSnapshot, mode InheritanceMode) {
	if node == nil {
		return
	}
	if mode == InheritAlways || isEmptyPathNode(node) {
		if anchor := nearestAnchor(node); anchor != nil {
			node.params = anchor.params.Merge(node.params)
			node.data = mergeData(anchor.data, node.data)
		}
	}
	for _, c := range node.children {
		applyInheritance(c, mode)
	}
}

func isEmptyPathNode(node *ActivatedRouteSnapshot) bool {
	return node.route == nil || node.route.Path == ""
}

func nearestAnchor(node *ActivatedRouteSnapshot) *ActivatedRouteSnapshot {
	for p := node.parent; p != nil; p = p.parent {
		if p.route != nil && p.route.Path != "" && p.component != nil {
			return p
		}
	}
	return nil
}
