package recognizer

import (
	"errors"
	"testing"

	"github.com/vango-dev/vangoroute/rerr"
	"github.com/vango-dev/vangoroute/routeconfig"
	"github.com/vango-dev/vangoroute/urltree"
)

func mustParse(t *testing.T, u string) *urltree.UrlTree {
	t.Helper()
	tree, err := urltree.Parse(u)
	if err != nil {
		t.Fatalf("Parse(%q): %v", u, err)
	}
	return tree
}

func TestRecognizeSimplePath(t *testing.T) {
	routes := []*routeconfig.Route{
		{Path: "inbox", Component: "InboxComponent"},
	}
	snap, err := Recognize(mustParse(t, "/inbox"), routes, "")
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	root := snap.RootSnapshot()
	if root.Component() != "InboxComponent" {
		t.Fatalf("component = %v, want InboxComponent", root.Component())
	}
	if len(root.UrlSegments()) != 1 || root.UrlSegments()[0].Path != "inbox" {
		t.Fatalf("unexpected consumed url: %v", root.UrlSegments())
	}
}

func TestRecognizeBindsPositionalParamsAndMatrixParams(t *testing.T) {
	routes := []*routeconfig.Route{
		{Path: "user/:id", Component: "UserComponent"},
	}
	snap, err := Recognize(mustParse(t, "/user/42;role=admin"), routes, "")
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	root := snap.RootSnapshot()
	if got := root.Params().Get("id"); got != "42" {
		t.Fatalf("params[id] = %q, want 42", got)
	}
	if got := root.Params().Get("role"); got != "admin" {
		t.Fatalf("params[role] = %q, want admin", got)
	}
}

func TestRecognizeNestedChildren(t *testing.T) {
	routes := []*routeconfig.Route{
		{
			Path: "team/:id",
			Children: []*routeconfig.Route{
				{Path: "user/:uid", Component: "UserComponent"},
			},
		},
	}
	snap, err := Recognize(mustParse(t, "/team/33/user/22"), routes, "")
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	root := snap.RootSnapshot()
	if len(root.Children()) != 1 {
		t.Fatalf("expected 1 child, got %d", len(root.Children()))
	}
	child := root.Children()[0]
	if child.Component() != "UserComponent" {
		t.Fatalf("child component = %v", child.Component())
	}
	if got := child.Params().Get("uid"); got != "22" {
		t.Fatalf("child params[uid] = %q, want 22", got)
	}
}

func TestRecognizeSkipsRedirectRoutes(t *testing.T) {
	routes := []*routeconfig.Route{
		{Path: "inbox", RedirectTo: "/other"},
		{Path: "inbox", Component: "InboxComponent"},
	}
	snap, err := Recognize(mustParse(t, "/inbox"), routes, "")
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	if snap.RootSnapshot().Component() != "InboxComponent" {
		t.Fatalf("expected the non-redirect sibling to win")
	}
}

func TestRecognizeWildcardConsumesEverything(t *testing.T) {
	routes := []*routeconfig.Route{
		{Path: "**", Component: "NotFoundComponent"},
	}
	snap, err := Recognize(mustParse(t, "/a/b/c"), routes, "")
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	root := snap.RootSnapshot()
	if len(root.UrlSegments()) != 3 {
		t.Fatalf("expected wildcard to consume all 3 segments, got %d", len(root.UrlSegments()))
	}
	if root.Params().Len() != 0 {
		t.Fatalf("expected no params from a wildcard match, got %v", root.Params().ToMap())
	}
}

func TestRecognizeNoMatchReturnsErrNoMatch(t *testing.T) {
	routes := []*routeconfig.Route{
		{Path: "known", Component: "KnownComponent"},
	}
	_, err := Recognize(mustParse(t, "/unknown"), routes, "")
	if !errors.Is(err, rerr.ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestRecognizeSecondaryOutletBecomesSiblingChild(t *testing.T) {
	routes := []*routeconfig.Route{
		{Path: "inbox", Component: "InboxComponent"},
		{Path: "compose", Outlet: "popup", Component: "ComposeComponent"},
	}
	snap, err := Recognize(mustParse(t, "/inbox(popup:compose)"), routes, "")
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	root := snap.RootSnapshot()
	if len(root.Children()) != 1 {
		t.Fatalf("expected 1 child (popup outlet), got %d", len(root.Children()))
	}
	popup := root.Children()[0]
	if popup.Outlet() != "popup" || popup.Component() != "ComposeComponent" {
		t.Fatalf("unexpected popup child: outlet=%q component=%v", popup.Outlet(), popup.Component())
	}
}

// TestRecognizeDuplicateOutletIsError exercises the case where an explicit
// "(primary:...)" group in the URL collides with the primary outlet's own
// empty-path child: both end up producing a node for the "primary" outlet
// at the same level, which checkOutletUniqueness must reject.
func TestRecognizeDuplicateOutletIsError(t *testing.T) {
	routes := []*routeconfig.Route{
		{
			Path:      "inbox",
			Component: "InboxComponent",
			Children: []*routeconfig.Route{
				{Path: "", Component: "InboxOverview"},
			},
		},
		{Path: "compose", Component: "ComposeComponent"},
	}
	_, err := Recognize(mustParse(t, "/inbox(primary:compose)"), routes, "")
	if !errors.Is(err, rerr.ErrOutletConflict) {
		t.Fatalf("expected ErrOutletConflict, got %v", err)
	}
}

func TestApplyInheritanceEmptyOnlySharesParentParamsWithEmptyPathChild(t *testing.T) {
	routes := []*routeconfig.Route{
		{
			Path:      "team/:id",
			Component: "TeamShell",
			Children: []*routeconfig.Route{
				{Path: "", Component: "TeamOverview"},
			},
		},
	}
	snap, err := Recognize(mustParse(t, "/team/7"), routes, InheritEmptyOnly)
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	root := snap.RootSnapshot()
	if len(root.Children()) != 1 {
		t.Fatalf("expected 1 child, got %d", len(root.Children()))
	}
	overview := root.Children()[0]
	if got := overview.Params().Get("id"); got != "7" {
		t.Fatalf("expected empty-path child to inherit params[id]=7, got %q", got)
	}
}

func TestApplyInheritanceAlwaysSharesWithNonEmptyPathChild(t *testing.T) {
	routes := []*routeconfig.Route{
		{
			Path:      "team/:id",
			Component: "TeamShell",
			Data:      map[string]any{"section": "team"},
			Children: []*routeconfig.Route{
				{Path: "settings", Component: "TeamSettings"},
			},
		},
	}
	snap, err := Recognize(mustParse(t, "/team/7/settings"), routes, InheritAlways)
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	settings := snap.RootSnapshot().Children()[0]
	if got := settings.Params().Get("id"); got != "7" {
		t.Fatalf("expected always mode to inherit params[id]=7 into non-empty-path child, got %q", got)
	}
	if got := settings.Data()["section"]; got != "team" {
		t.Fatalf("expected always mode to inherit data[section]=team, got %v", got)
	}
}
