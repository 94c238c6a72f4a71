package navigation

import (
	"github.com/vango-dev/vangoroute/recognizer"
	"github.com/vango-dev/vangoroute/state"
	"github.com/vango-dev/vangoroute/urltree"
)

// Transition is the mutable record the pipeline builds up across phases 1-13
// of spec.md §4.8. Hooks receive it by pointer so they can read (never
// mutate) whatever the pipeline has produced so far.
type Transition struct {
	ID uint64
	// CorrelationID is a uuid paired with ID on every emitted event and log
	// line, for correlation with external systems that don't understand the
	// monotonic id's in-process cancellation semantics (§5 "the monotonic id
	// remains the cancellation key; the uuid is purely for external log
	// correlation").
	CorrelationID string
	Source        Source
	Extras        Extras

	RawTree   *urltree.UrlTree
	Routable  *urltree.UrlTree
	Redirected *urltree.UrlTree

	Snapshot *recognizer.RouterStateSnapshot
	Future   *state.RouterState

	// Deactivated lists the nodes Build reported as replaced or detached
	// outright, available to AfterPreactivation for inspection.
	Deactivated []*state.ActivatedRoute
}

// result is what a completed (or cancelled, or errored) transition resolves
// to, mirroring the boolean promise spec.md §4.8 step 13 describes.
type result struct {
	committed bool
	err       error
}
