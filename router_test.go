package vangoroute_test

import (
	"context"
	"testing"

	vangoroute "github.com/vango-dev/vangoroute"
	"github.com/vango-dev/vangoroute/collab"
)

type fakeLocation struct {
	pushed []string
}

func (f *fakeLocation) Push(url string) { f.pushed = append(f.pushed, url) }
func (f *fakeLocation) Replace(string)  {}
func (f *fakeLocation) OnPopState(func(string)) func() { return func() {} }

type fakeOutlet struct {
	activated []string
}

func (f *fakeOutlet) Activate(name string, component any, snapshot collab.Snapshot) {
	f.activated = append(f.activated, name)
}
func (f *fakeOutlet) Deactivate(name string) {}

func TestNewRejectsInvalidRouteConfig(t *testing.T) {
	_, err := vangoroute.New(vangoroute.Config{
		Routes: []*vangoroute.Route{
			{Path: "team/:id", Component: "team", Children: []*vangoroute.Route{{Path: "x"}}, LoadChildren: true},
		},
	})
	if err == nil {
		t.Fatal("expected a validation error for a route with both Children and LoadChildren set")
	}
}

func TestRouterNavigatesAndActivatesOutlet(t *testing.T) {
	loc := &fakeLocation{}
	outlet := &fakeOutlet{}

	r, err := vangoroute.New(vangoroute.Config{
		Routes: []*vangoroute.Route{
			{Path: "team/:id", Component: "team-page"},
		},
		Location: loc,
		Outlet:   outlet,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer r.Close()

	ok, err := r.NavigateByUrl(context.Background(), "/team/7")
	if err != nil {
		t.Fatalf("NavigateByUrl: %v", err)
	}
	if !ok {
		t.Fatal("expected navigation to commit")
	}
	if r.CurrentUrl() != "/team/7" {
		t.Fatalf("CurrentUrl = %q, want /team/7", r.CurrentUrl())
	}
	if len(outlet.activated) != 1 || outlet.activated[0] != "primary" {
		t.Fatalf("outlet.activated = %v, want [primary]", outlet.activated)
	}
}
