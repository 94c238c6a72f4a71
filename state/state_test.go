package state

import (
	"testing"

	"github.com/vango-dev/vangoroute/collab"
	"github.com/vango-dev/vangoroute/recognizer"
	"github.com/vango-dev/vangoroute/routeconfig"
	"github.com/vango-dev/vangoroute/urltree"
)

func recognize(t *testing.T, u string, routes []*routeconfig.Route) *recognizer.RouterStateSnapshot {
	t.Helper()
	tree, err := urltree.Parse(u)
	if err != nil {
		t.Fatalf("Parse(%q): %v", u, err)
	}
	snap, err := recognizer.Recognize(tree, routes, "")
	if err != nil {
		t.Fatalf("Recognize(%q): %v", u, err)
	}
	return snap
}

func TestBuildFirstNavigationCreatesFreshTree(t *testing.T) {
	routes := []*routeconfig.Route{
		{Path: "team/:id", Component: "TeamComponent"},
	}
	snap := recognize(t, "/team/7", routes)
	st, deactivated := Build(snap, nil, nil)
	if st.Root() == nil {
		t.Fatal("expected a root ActivatedRoute")
	}
	if got := st.Root().Params().Get().Get("id"); got != "7" {
		t.Fatalf("params[id] = %q, want 7", got)
	}
	if len(deactivated) != 0 {
		t.Fatalf("expected nothing deactivated on the very first navigation, got %d", len(deactivated))
	}
	if st.Root().Reused() {
		t.Fatal("a node with no previous occupant should not report itself as reused")
	}
}

func TestBuildReusesSameRouteConfigNode(t *testing.T) {
	routes := []*routeconfig.Route{
		{Path: "team/:id", Component: "TeamComponent"},
	}
	first, _ := Build(recognize(t, "/team/7", routes), nil, nil)
	root1 := first.Root()

	second, deactivated := Build(recognize(t, "/team/9", routes), first, nil)
	root2 := second.Root()

	if root1 != root2 {
		t.Fatal("expected the ActivatedRoute identity to be reused across a same-route-config navigation")
	}
	if !root2.Reused() {
		t.Fatal("expected Reused() to report true for a retained node")
	}
	if got := root2.Snapshot().Params().Get("id"); got != "9" {
		t.Fatalf("snapshot params[id] = %q, want 9", got)
	}
	if got := root2.PrevSnapshot().Params().Get("id"); got != "7" {
		t.Fatalf("prevSnapshot params[id] = %q, want 7", got)
	}
	if len(deactivated) != 0 {
		t.Fatalf("expected nothing deactivated when the same route config is reused, got %d", len(deactivated))
	}
}

func TestBuildCreatesFreshNodeForDifferentRouteConfig(t *testing.T) {
	routes := []*routeconfig.Route{
		{Path: "team/:id", Component: "TeamComponent"},
		{Path: "settings", Component: "SettingsComponent"},
	}
	first, _ := Build(recognize(t, "/team/7", routes), nil, nil)
	second, deactivated := Build(recognize(t, "/settings", routes), first, nil)
	if first.Root() == second.Root() {
		t.Fatal("expected a fresh ActivatedRoute for a different matched route config")
	}
	if second.Root().Reused() {
		t.Fatal("a freshly created node should not report itself as reused")
	}
	if len(deactivated) != 1 || deactivated[0] != first.Root() {
		t.Fatalf("expected the old team node to be reported deactivated, got %v", deactivated)
	}
}

func TestAdvancePushesNewParamsIntoReusedStream(t *testing.T) {
	routes := []*routeconfig.Route{
		{Path: "team/:id", Component: "TeamComponent"},
	}
	first, _ := Build(recognize(t, "/team/7", routes), nil, nil)
	Advance(first.Root())
	if got := first.Root().Params().Get().Get("id"); got != "7" {
		t.Fatalf("params[id] = %q, want 7", got)
	}

	second, _ := Build(recognize(t, "/team/9", routes), first, nil)
	Advance(second.Root())
	if got := second.Root().Params().Get().Get("id"); got != "9" {
		t.Fatalf("after Advance, params[id] = %q, want 9", got)
	}
}

func TestAdvanceDoesNotNotifySubscribersWhenValueUnchanged(t *testing.T) {
	routes := []*routeconfig.Route{
		{Path: "inbox", Component: "InboxComponent"},
	}
	first, _ := Build(recognize(t, "/inbox", routes), nil, nil)
	Advance(first.Root())

	notified := 0
	unsub := first.Root().Data().Subscribe(func(map[string]any) { notified++ })
	defer unsub()

	second, _ := Build(recognize(t, "/inbox", routes), first, nil)
	Advance(second.Root())

	if notified != 0 {
		t.Fatalf("expected no notification for an unchanged data value, got %d", notified)
	}
}

type stashingReuseStrategy struct {
	collab.DefaultReuseStrategy
	stash map[string]any
}

func newStashingReuseStrategy() *stashingReuseStrategy {
	return &stashingReuseStrategy{stash: map[string]any{}}
}

func (s *stashingReuseStrategy) ShouldDetach(route collab.Snapshot) bool {
	return route.Outlet() == "popup"
}

func (s *stashingReuseStrategy) Store(route collab.Snapshot, handle any) {
	s.stash[route.RouteConfigPath()] = handle
}

func (s *stashingReuseStrategy) Retrieve(route collab.Snapshot) (any, bool) {
	h, ok := s.stash[route.RouteConfigPath()]
	return h, ok
}

func (s *stashingReuseStrategy) ShouldAttach(route collab.Snapshot, handle any) bool {
	return handle != nil
}

func TestBuildReattachesDetachedSubtreeViaCustomStrategy(t *testing.T) {
	routes := []*routeconfig.Route{
		{Path: "team/:id", Component: "TeamComponent"},
		{Path: "settings", Outlet: "popup", Component: "SettingsComponent"},
	}
	strategy := newStashingReuseStrategy()

	withPopup, _ := Build(recognize(t, "/team/7(popup:settings)", routes), nil, strategy)
	if len(withPopup.Root().Children()) != 1 {
		t.Fatalf("expected the popup outlet to attach as a child of team, got %d children", len(withPopup.Root().Children()))
	}
	popupNode := withPopup.Root().Children()[0]

	popupClosed, deactivated := Build(recognize(t, "/team/9", routes), withPopup, strategy)
	if len(popupClosed.Root().Children()) != 0 {
		t.Fatalf("expected the popup child to be gone once its URL segment disappears, got %d children", len(popupClosed.Root().Children()))
	}
	if len(strategy.stash) != 1 {
		t.Fatalf("expected the popup subtree to be stashed on detach, got %d entries", len(strategy.stash))
	}
	if len(deactivated) != 1 || deactivated[0] != popupNode {
		t.Fatalf("expected canDeactivateChecks to still include the stashed popup node, got %v", deactivated)
	}

	popupReopened, _ := Build(recognize(t, "/team/11(popup:settings)", routes), popupClosed, strategy)
	if len(popupReopened.Root().Children()) != 1 || popupReopened.Root().Children()[0] != popupNode {
		t.Fatal("expected the original popup ActivatedRoute to be reattached from the strategy's stash")
	}
	if !popupReopened.Root().Children()[0].Reused() {
		t.Fatal("expected a reattached node to report Reused() true")
	}
}
