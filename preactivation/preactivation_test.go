package preactivation

import (
	"context"
	"testing"

	"github.com/vango-dev/vangoroute/collab"
	"github.com/vango-dev/vangoroute/recognizer"
	"github.com/vango-dev/vangoroute/routeconfig"
	"github.com/vango-dev/vangoroute/state"
	"github.com/vango-dev/vangoroute/urltree"
)

func build(t *testing.T, u string, routes []*routeconfig.Route, previous *state.RouterState) (*state.RouterState, []*state.ActivatedRoute, *recognizer.RouterStateSnapshot) {
	t.Helper()
	tree, err := urltree.Parse(u)
	if err != nil {
		t.Fatalf("Parse(%q): %v", u, err)
	}
	snap, err := recognizer.Recognize(tree, routes, "")
	if err != nil {
		t.Fatalf("Recognize(%q): %v", u, err)
	}
	st, deactivated := state.Build(snap, previous, nil)
	return st, deactivated, snap
}

func TestCollectChecksNewNavigationActivatesEveryNode(t *testing.T) {
	routes := []*routeconfig.Route{
		{
			Path:      "team/:id",
			Component: "TeamComponent",
			Children: []*routeconfig.Route{
				{Path: "settings", Component: "SettingsComponent"},
			},
		},
	}
	st, deactivated, _ := build(t, "/team/7/settings", routes, nil)
	deactivateChecks, activateChecks := CollectChecks(st.Root(), deactivated)

	if len(deactivateChecks) != 0 {
		t.Fatalf("expected no deactivate checks on first navigation, got %d", len(deactivateChecks))
	}
	if len(activateChecks) != 2 {
		t.Fatalf("expected 2 activate checks, got %d", len(activateChecks))
	}
	if len(activateChecks[0].Ancestors) != 0 {
		t.Fatalf("expected the root check to have no ancestors, got %d", len(activateChecks[0].Ancestors))
	}
	if len(activateChecks[1].Ancestors) != 1 || activateChecks[1].Ancestors[0] != st.Root() {
		t.Fatalf("expected the settings check to have the root as its sole ancestor")
	}
}

func TestCollectChecksReusedNodeWithUnchangedParamsSkipsRecheck(t *testing.T) {
	routes := []*routeconfig.Route{
		{Path: "team/:id", Component: "TeamComponent"},
	}
	first, _, _ := build(t, "/team/7", routes, nil)
	second, deactivated, _ := build(t, "/team/7", routes, first)

	deactivateChecks, activateChecks := CollectChecks(second.Root(), deactivated)
	if len(deactivateChecks) != 0 || len(activateChecks) != 0 {
		t.Fatalf("expected no checks when params are unchanged, got deactivate=%d activate=%d", len(deactivateChecks), len(activateChecks))
	}
}

func TestCollectChecksReusedNodeWithChangedParamsReruns(t *testing.T) {
	routes := []*routeconfig.Route{
		{Path: "team/:id", Component: "TeamComponent"},
	}
	first, _, _ := build(t, "/team/7", routes, nil)
	second, deactivated, _ := build(t, "/team/9", routes, first)

	deactivateChecks, activateChecks := CollectChecks(second.Root(), deactivated)
	if len(deactivateChecks) != 1 || len(activateChecks) != 1 {
		t.Fatalf("expected a rerun check on both sides for changed params, got deactivate=%d activate=%d", len(deactivateChecks), len(activateChecks))
	}
}

func TestCollectChecksRunAlwaysChildRerunsUnderUnchangedParent(t *testing.T) {
	routes := []*routeconfig.Route{
		{
			Path:      "team/:id",
			Component: "TeamComponent",
			Children: []*routeconfig.Route{
				{Path: "settings", Component: "SettingsComponent", RunGuardsAndResolvers: routeconfig.RunAlways},
			},
		},
	}
	first, _, _ := build(t, "/team/7/settings", routes, nil)
	second, deactivated, _ := build(t, "/team/7/settings", routes, first)

	_, activateChecks := CollectChecks(second.Root(), deactivated)
	if len(activateChecks) != 1 {
		t.Fatalf("expected only the always-rerun settings node to recheck, got %d", len(activateChecks))
	}
	if activateChecks[0].Route.Snapshot().RouteConfigPath() != "settings" {
		t.Fatalf("expected the settings node to be the one rechecked, got %q", activateChecks[0].Route.Snapshot().RouteConfigPath())
	}
}

func allow(context.Context, collab.Snapshot, collab.StateSnapshot) (collab.GuardResult, error) {
	return collab.Allow(), nil
}

func deny(context.Context, collab.Snapshot, collab.StateSnapshot) (collab.GuardResult, error) {
	return collab.Deny(), nil
}

func TestRunActivateChecksShortCircuitsOnDenial(t *testing.T) {
	var ranSettings bool
	routes := []*routeconfig.Route{
		{
			Path:        "team/:id",
			Component:   "TeamComponent",
			CanActivate: []collab.CanActivateFunc{deny},
			Children: []*routeconfig.Route{
				{Path: "settings", Component: "SettingsComponent", CanActivate: []collab.CanActivateFunc{
					func(ctx context.Context, s collab.Snapshot, st collab.StateSnapshot) (collab.GuardResult, error) {
						ranSettings = true
						return collab.Allow(), nil
					},
				}},
			},
		},
	}
	st, deactivated, snap := build(t, "/team/7/settings", routes, nil)
	_, activateChecks := CollectChecks(st.Root(), deactivated)

	res, err := RunActivateChecks(context.Background(), activateChecks, snap, nil)
	if err != nil {
		t.Fatalf("RunActivateChecks: %v", err)
	}
	if res.Allowed() {
		t.Fatal("expected the team route's denial to fail the whole navigation")
	}
	if ranSettings {
		t.Fatal("expected short-circuit before the settings child's canActivate ran")
	}
}

func TestRunResolversPopulatesDataAndReservedTitle(t *testing.T) {
	routes := []*routeconfig.Route{
		{
			Path:      "team/:id",
			Component: "TeamComponent",
			Title:     "Team overview",
			Resolve: map[string]collab.ResolveFunc{
				"team": func(ctx context.Context, s collab.Snapshot, st collab.StateSnapshot) (any, error) {
					return "loaded-team", nil
				},
			},
		},
	}
	routeSt, deactivated, snap := build(t, "/team/7", routes, nil)
	_, activateChecks := CollectChecks(routeSt.Root(), deactivated)

	if err := RunResolvers(context.Background(), activateChecks, snap); err != nil {
		t.Fatalf("RunResolvers: %v", err)
	}

	data := routeSt.Root().Snapshot().Data()
	if data["team"] != "loaded-team" {
		t.Fatalf("data[team] = %v, want loaded-team", data["team"])
	}
	if data["title"] != "Team overview" {
		t.Fatalf("data[title] = %v, want %q", data["title"], "Team overview")
	}
}
