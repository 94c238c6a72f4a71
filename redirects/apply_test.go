package redirects

import (
	"context"
	"errors"
	"testing"

	"github.com/vango-dev/vangoroute/collab"
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

func segmentPaths(g *urltree.UrlSegmentGroup) []string {
	if g == nil {
		return nil
	}
	out := make([]string, len(g.Segments))
	for i, s := range g.Segments {
		out[i] = s.Path
	}
	return out
}

func TestApplyPlainMatchNoRedirect(t *testing.T) {
	routes := []*routeconfig.Route{
		{Path: "inbox", Component: "InboxComponent"},
	}
	tree := mustParse(t, "/inbox")
	got, err := Apply(context.Background(), tree, routes, Options{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	primary := got.Root.Primary()
	if got := segmentPaths(primary); len(got) != 1 || got[0] != "inbox" {
		t.Fatalf("unexpected primary segments: %v", got)
	}
}

func TestApplyAbsoluteRedirect(t *testing.T) {
	routes := []*routeconfig.Route{
		{Path: "old", RedirectTo: "/new"},
		{Path: "new", Component: "NewComponent"},
	}
	tree := mustParse(t, "/old")
	got, err := Apply(context.Background(), tree, routes, Options{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	primary := got.Root.Primary()
	if got := segmentPaths(primary); len(got) != 1 || got[0] != "new" {
		t.Fatalf("expected redirected segment %q, got %v", "new", got)
	}
}

func TestApplyRelativeRedirectRecursesAgainstSiblings(t *testing.T) {
	routes := []*routeconfig.Route{
		{Path: "old/:id", RedirectTo: "detail/:id"},
		{Path: "detail/:id", Component: "DetailComponent"},
	}
	tree := mustParse(t, "/old/33")
	got, err := Apply(context.Background(), tree, routes, Options{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	primary := got.Root.Primary()
	if got := segmentPaths(primary); len(got) != 2 || got[0] != "detail" || got[1] != "33" {
		t.Fatalf("unexpected segments after relative redirect: %v", got)
	}
}

func TestApplyWildcardRedirect(t *testing.T) {
	routes := []*routeconfig.Route{
		{Path: "**", RedirectTo: "/not-found"},
		{Path: "not-found", Component: "NotFoundComponent"},
	}
	tree := mustParse(t, "/anything/goes/here")
	got, err := Apply(context.Background(), tree, routes, Options{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	primary := got.Root.Primary()
	if got := segmentPaths(primary); len(got) != 1 || got[0] != "not-found" {
		t.Fatalf("unexpected segments after wildcard redirect: %v", got)
	}
}

func TestApplyRedirectFallsThroughToSiblingOnNoMatch(t *testing.T) {
	routes := []*routeconfig.Route{
		{Path: "old", RedirectTo: "missing/route"},
		{Path: "old", Component: "OldComponent"},
	}
	tree := mustParse(t, "/old")
	got, err := Apply(context.Background(), tree, routes, Options{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	primary := got.Root.Primary()
	if got := segmentPaths(primary); len(got) != 1 || got[0] != "old" {
		t.Fatalf("expected the second sibling route to win, got %v", got)
	}
}

func TestApplyPreservesSecondaryOutletAlongsidePrimaryMatch(t *testing.T) {
	routes := []*routeconfig.Route{
		{Path: "inbox", Component: "InboxComponent"},
		{Path: "compose", Outlet: "popup", Component: "ComposeComponent"},
	}
	tree := mustParse(t, "/inbox(popup:compose)")
	got, err := Apply(context.Background(), tree, routes, Options{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	primary := got.Root.Primary()
	if got := segmentPaths(primary); len(got) != 1 || got[0] != "inbox" {
		t.Fatalf("unexpected primary segments: %v", got)
	}
	popup := primary.Children["popup"]
	if popup == nil {
		t.Fatal("expected the popup outlet to survive redirect expansion")
	}
	if got := segmentPaths(popup); len(got) != 1 || got[0] != "compose" {
		t.Fatalf("unexpected popup segments: %v", got)
	}
}

func TestApplyNoMatchReturnsErrNoMatch(t *testing.T) {
	routes := []*routeconfig.Route{
		{Path: "known", Component: "KnownComponent"},
	}
	tree := mustParse(t, "/unknown")
	_, err := Apply(context.Background(), tree, routes, Options{})
	if !errors.Is(err, rerr.ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestApplyLazyLoadMemoizesAcrossCalls(t *testing.T) {
	loadCount := 0
	loader := fakeLoader{fn: func() (routeconfig.LoadedRouterConfig, error) {
		loadCount++
		return routeconfig.LoadedRouterConfig{
			Routes: []*routeconfig.Route{{Path: "", Component: "ChildComponent"}},
		}, nil
	}}
	route := &routeconfig.Route{Path: "lazy", LoadChildren: true}
	routes := []*routeconfig.Route{route}

	tree := mustParse(t, "/lazy")
	if _, err := Apply(context.Background(), tree, routes, Options{Loader: loader}); err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	if _, err := Apply(context.Background(), tree, routes, Options{Loader: loader}); err != nil {
		t.Fatalf("second Apply: %v", err)
	}
	if loadCount != 1 {
		t.Fatalf("expected exactly one Loader.Load call, got %d", loadCount)
	}
}

func TestApplyCanLoadDenialCancelsNavigation(t *testing.T) {
	route := &routeconfig.Route{
		Path:         "admin",
		LoadChildren: true,
		CanLoad: []collab.CanLoadFunc{
			func(ctx context.Context, r collab.RouteRef, segs []*urltree.UrlSegment) (collab.GuardResult, error) {
				return collab.Deny(), nil
			},
		},
	}
	routes := []*routeconfig.Route{route}
	tree := mustParse(t, "/admin")
	_, err := Apply(context.Background(), tree, routes, Options{Loader: fakeLoader{fn: func() (routeconfig.LoadedRouterConfig, error) {
		t.Fatal("Loader.Load should not run after canLoad denies")
		return routeconfig.LoadedRouterConfig{}, nil
	}}})
	if !errors.Is(err, rerr.ErrNavigationCanceling) {
		t.Fatalf("expected ErrNavigationCanceling, got %v", err)
	}
}

func TestApplyCanMatchDenialTriesNextRoute(t *testing.T) {
	routes := []*routeconfig.Route{
		{
			Path: "reports",
			CanMatch: []collab.CanMatchFunc{
				func(ctx context.Context, r collab.RouteRef, segs []*urltree.UrlSegment) (collab.GuardResult, error) {
					return collab.Deny(), nil
				},
			},
			Component: "PremiumReports",
		},
		{Path: "reports", Component: "BasicReports"},
	}
	tree := mustParse(t, "/reports")
	got, err := Apply(context.Background(), tree, routes, Options{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	primary := got.Root.Primary()
	if got := segmentPaths(primary); len(got) != 1 || got[0] != "reports" {
		t.Fatalf("unexpected segments: %v", got)
	}
}

func TestMatchRouteDefaultMatcherBindsPositionalParams(t *testing.T) {
	route := &routeconfig.Route{Path: "user/:id"}
	tree := mustParse(t, "/user/42")
	segs := tree.Root.Primary().Segments
	m, ok := matchRoute(route, segs, false)
	if !ok {
		t.Fatal("expected match")
	}
	if got := m.posParams.Get("id"); got != "42" {
		t.Fatalf("posParams[id] = %q, want 42", got)
	}
	if len(m.consumed) != 2 {
		t.Fatalf("expected 2 consumed segments, got %d", len(m.consumed))
	}
}

func TestMatchRoutePathMatchFullRejectsLeftoverSegments(t *testing.T) {
	route := &routeconfig.Route{Path: "user", PathMatchMode: routeconfig.PathMatchFull}
	tree := mustParse(t, "/user/42")
	segs := tree.Root.Primary().Segments
	if _, ok := matchRoute(route, segs, false); ok {
		t.Fatal("expected no match under pathMatch:full with leftover segments")
	}
}

func TestSplitCollapsesSoleResultingPrimaryChild(t *testing.T) {
	tree := mustParse(t, "/inbox")
	consumed := tree.Root.Primary().Segments
	g := split(consumed, nil, []*routeconfig.Route{{Path: "", Component: struct{}{}}})
	if g.HasChildren() {
		t.Fatalf("expected collapsed group with no children, got %d", g.NumberOfChildren())
	}
	if got := segmentPaths(g); len(got) != 1 || got[0] != "inbox" {
		t.Fatalf("unexpected segments: %v", got)
	}
}

func TestBuildRedirectTargetSubstitutesPositionalParams(t *testing.T) {
	route := &routeconfig.Route{Path: "old/:id"}
	tree := mustParse(t, "/old/7")
	segs := tree.Root.Primary().Segments
	m, ok := matchRoute(route, segs, false)
	if !ok {
		t.Fatal("expected match")
	}
	target, err := buildRedirectTarget("detail/:id", m.consumed, m.posParams)
	if err != nil {
		t.Fatalf("buildRedirectTarget: %v", err)
	}
	primary := target.Root.Primary()
	if got := segmentPaths(primary); len(got) != 2 || got[0] != "detail" || got[1] != "7" {
		t.Fatalf("unexpected target segments: %v", got)
	}
}

type fakeLoader struct {
	fn func() (routeconfig.LoadedRouterConfig, error)
}

func (f fakeLoader) Load(ctx context.Context, parent collab.TokenResolver, route *routeconfig.Route) (routeconfig.LoadedRouterConfig, error) {
	return f.fn()
}
