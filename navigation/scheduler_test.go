package navigation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/vango-dev/vangoroute/collab"
	"github.com/vango-dev/vangoroute/routeconfig"
	"github.com/vango-dev/vangoroute/urltree"
)

type fakeLocation struct {
	mu       sync.Mutex
	pushed   []string
	replaced []string
}

func (f *fakeLocation) Push(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushed = append(f.pushed, url)
}

func (f *fakeLocation) Replace(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replaced = append(f.replaced, url)
}

func (f *fakeLocation) OnPopState(func(string)) (unsubscribe func()) { return func() {} }

type fakeOutlet struct {
	mu        sync.Mutex
	activated []string
	deactivated []string
}

func (f *fakeOutlet) Activate(name string, component any, snapshot collab.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.activated = append(f.activated, name)
}

func (f *fakeOutlet) Deactivate(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deactivated = append(f.deactivated, name)
}

func TestSchedulerCommitsAndWritesLocation(t *testing.T) {
	routes := []*routeconfig.Route{
		{Path: "team/:id", Component: "TeamComponent"},
	}
	loc := &fakeLocation{}
	outlet := &fakeOutlet{}
	s := NewScheduler(Config{Routes: routes, Location: loc, Outlet: outlet})
	defer s.Close()

	ok, err := s.NavigateByUrl(context.Background(), "/team/7", SourceImperative, Extras{})
	if err != nil {
		t.Fatalf("NavigateByUrl: %v", err)
	}
	if !ok {
		t.Fatal("expected the navigation to commit")
	}
	if s.CurrentUrl() != "/team/7" {
		t.Fatalf("CurrentUrl() = %q, want /team/7", s.CurrentUrl())
	}
	if len(loc.pushed) != 1 || loc.pushed[0] != "/team/7" {
		t.Fatalf("expected a single push of /team/7, got %v", loc.pushed)
	}
	if len(outlet.activated) != 1 || outlet.activated[0] != "primary" {
		t.Fatalf("expected the primary outlet to activate, got %v", outlet.activated)
	}
}

func TestSchedulerCanActivateDenialCancelsWithoutCommitting(t *testing.T) {
	routes := []*routeconfig.Route{
		{
			Path:      "team/:id",
			Component: "TeamComponent",
			CanActivate: []collab.CanActivateFunc{
				func(context.Context, collab.Snapshot, collab.StateSnapshot) (collab.GuardResult, error) {
					return collab.Deny(), nil
				},
			},
		},
	}
	var events []EventType
	var mu sync.Mutex
	sink := func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, ev.Type)
	}
	outlet := &fakeOutlet{}
	s := NewScheduler(Config{Routes: routes, Outlet: outlet, Sink: sink})
	defer s.Close()

	ok, err := s.NavigateByUrl(context.Background(), "/team/7", SourceImperative, Extras{})
	if err != nil {
		t.Fatalf("NavigateByUrl: %v", err)
	}
	if ok {
		t.Fatal("expected the navigation to be cancelled")
	}
	if s.CurrentUrl() != "/" {
		t.Fatalf("expected CurrentUrl to remain /, got %q", s.CurrentUrl())
	}
	if len(outlet.activated) != 0 {
		t.Fatalf("expected no outlet activation on a cancelled navigation, got %v", outlet.activated)
	}

	mu.Lock()
	defer mu.Unlock()
	var sawCancel bool
	for _, e := range events {
		if e == EventNavigationCancel {
			sawCancel = true
		}
		if e == EventNavigationEnd {
			t.Fatal("expected no NavigationEnd on a cancelled navigation")
		}
	}
	if !sawCancel {
		t.Fatalf("expected a NavigationCancel event, got %v", events)
	}
}

func TestSchedulerGuardRedirectSchedulesNewNavigation(t *testing.T) {
	routes := []*routeconfig.Route{
		{
			Path:      "old/:id",
			Component: "OldComponent",
			CanActivate: []collab.CanActivateFunc{
				func(ctx context.Context, s collab.Snapshot, st collab.StateSnapshot) (collab.GuardResult, error) {
					target, err := urltree.Parse("/new/" + s.Params().Get("id"))
					if err != nil {
						return collab.GuardResult{}, err
					}
					return collab.RedirectTo(target), nil
				},
			},
		},
		{Path: "new/:id", Component: "NewComponent"},
	}
	s := NewScheduler(Config{Routes: routes})
	defer s.Close()

	ok, err := s.NavigateByUrl(context.Background(), "/old/7", SourceImperative, Extras{})
	if err != nil {
		t.Fatalf("NavigateByUrl: %v", err)
	}
	if ok {
		t.Fatal("expected the redirecting navigation itself to be cancelled")
	}

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if s.CurrentUrl() == "/new/7" {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("expected the rescheduled navigation to land on /new/7, got %q", s.CurrentUrl())
}

func TestSchedulerDeduplicatesCollidingInFlightRequests(t *testing.T) {
	routes := []*routeconfig.Route{
		{Path: "team/:id", Component: "TeamComponent"},
	}
	s := NewScheduler(Config{Routes: routes})
	defer s.Close()

	var wg sync.WaitGroup
	results := make([]bool, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ok, err := s.NavigateByUrl(context.Background(), "/team/7", SourceImperative, Extras{})
			if err != nil {
				t.Errorf("NavigateByUrl: %v", err)
			}
			results[i] = ok
		}(i)
	}
	wg.Wait()
	for i, ok := range results {
		if !ok {
			t.Fatalf("expected every coalesced caller to observe a commit, results[%d]=%v", i, ok)
		}
	}
}
