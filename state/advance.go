package state

// Advance pushes each reused ActivatedRoute's streams to its current
// snapshot's values, and seeds a freshly created ActivatedRoute's initial
// data (spec.md §4.6 "Advance"). Streams guard their own shallow-equality,
// so Advance can push unconditionally and rely on Subject.Set to decide
// whether subscribers actually see a new value.
func Advance(node *ActivatedRoute) {
	if node == nil {
		return
	}
	snap := node.snapshot
	node.url.Set(snap.UrlSegments())
	node.params.Set(snap.Params())
	node.queryParams.Set(snap.QueryParams())
	node.fragment.Set(snap.Fragment())
	node.data.Set(snap.Data())
	for _, c := range node.children {
		Advance(c)
	}
}
