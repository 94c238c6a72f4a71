package preactivation

import (
	"context"
	"sync"

	"github.com/vango-dev/vangoroute/collab"
	"github.com/vango-dev/vangoroute/state"
)

// EventPhase names the lifecycle events emitted while running activate
// checks (spec.md §4.7 step 2: "emit ChildActivationStart/ActivationStart
// events").
type EventPhase string

const (
	PhaseChildActivationStart EventPhase = "ChildActivationStart"
	PhaseActivationStart      EventPhase = "ActivationStart"
)

// ComponentLookup resolves the mounted component instance for a
// canDeactivate check (spec.md §4.7 "component is the outlet's mounted
// component instance, opaque to the core"). The navigation package supplies
// this from whatever outlet collaborator it is wired to; nil is passed
// through untouched if lookup is nil or returns nil.
type ComponentLookup func(route *state.ActivatedRoute) any

// EventSink receives preactivation's lifecycle events. nil is a valid,
// silent sink.
type EventSink func(phase EventPhase, route *state.ActivatedRoute)

// RunDeactivateChecks runs every check's canDeactivate guards, all checks
// in parallel, short-circuiting the overall result on the first denial or
// redirect found once every goroutine has finished (spec.md §4.7 step 1:
// "All canDeactivate (parallel within, but the overall check
// short-circuits)").
func RunDeactivateChecks(ctx context.Context, checks []DeactivateCheck, current, next collab.StateSnapshot, lookup ComponentLookup) (collab.GuardResult, error) {
	type outcome struct {
		index  int
		result collab.GuardResult
		err    error
	}

	outcomes := make([]outcome, 0, len(checks))
	var mu sync.Mutex
	var wg sync.WaitGroup

	slot := 0
	for _, check := range checks {
		route := check.Route
		cfg := route.Snapshot().Route()
		if cfg == nil {
			continue
		}
		guards := cfg.CanDeactivate
		if len(guards) == 0 {
			continue
		}
		var component any
		if lookup != nil {
			component = lookup(route)
		}
		for _, guard := range guards {
			wg.Add(1)
			go func(index int, guard collab.CanDeactivateFunc) {
				defer wg.Done()
				res, err := guard(ctx, component, route.Snapshot(), current, next)
				mu.Lock()
				outcomes = append(outcomes, outcome{index: index, result: res, err: err})
				mu.Unlock()
			}(slot, guard)
			slot++
		}
	}
	wg.Wait()

	// Deterministic: the first guard (by check order, then guard order) with
	// a denial/redirect/error wins, even though every guard ran concurrently.
	best := -1
	for j, o := range outcomes {
		if (o.err != nil || !o.result.Allowed()) && (best == -1 || o.index < outcomes[best].index) {
			best = j
		}
	}
	if best >= 0 {
		if o := outcomes[best]; o.err != nil {
			return collab.GuardResult{}, o.err
		}
		return outcomes[best].result, nil
	}
	return collab.Allow(), nil
}

// RunActivateChecks runs canActivateChild (ancestors, outermost first) then
// canActivate for each activation in depth-first, parent-before-child order
// (spec.md §4.7 step 2), short-circuiting the whole sequence on the first
// denial, redirect, or error.
func RunActivateChecks(ctx context.Context, checks []ActivateCheck, future collab.StateSnapshot, sink EventSink) (collab.GuardResult, error) {
	for _, check := range checks {
		if sink != nil {
			sink(PhaseChildActivationStart, check.Route)
			sink(PhaseActivationStart, check.Route)
		}

		for _, ancestor := range check.Ancestors {
			route := ancestor.Snapshot().Route()
			if route == nil {
				continue
			}
			for _, guard := range route.CanActivateChild {
				res, err := guard(ctx, check.Route.Snapshot(), future)
				if err != nil {
					return collab.GuardResult{}, err
				}
				if !res.Allowed() {
					return res, nil
				}
			}
		}

		route := check.Route.Snapshot().Route()
		if route == nil {
			continue
		}
		for _, guard := range route.CanActivate {
			res, err := guard(ctx, check.Route.Snapshot(), future)
			if err != nil {
				return collab.GuardResult{}, err
			}
			if !res.Allowed() {
				return res, nil
			}
		}
	}
	return collab.Allow(), nil
}

// RunResolvers runs every activation's resolve map, key-by-key in parallel
// within a node, and assigns the results to that node's ARS (spec.md §4.7
// step 3). A static Route.Title is published as data["title"] when no
// "title" resolver is configured, the §9 supplement to Resolve's reserved
// key.
func RunResolvers(ctx context.Context, checks []ActivateCheck, future collab.StateSnapshot) error {
	for _, check := range checks {
		route := check.Route.Snapshot().Route()
		if route == nil {
			continue
		}

		results := make(map[string]any, len(route.Resolve))
		var mu sync.Mutex
		var wg sync.WaitGroup
		errs := make(chan error, len(route.Resolve))

		for key, resolve := range route.Resolve {
			wg.Add(1)
			go func(key string, resolve collab.ResolveFunc) {
				defer wg.Done()
				v, err := resolve(ctx, check.Route.Snapshot(), future)
				if err != nil {
					errs <- err
					return
				}
				mu.Lock()
				results[key] = v
				mu.Unlock()
			}(key, resolve)
		}
		wg.Wait()
		close(errs)
		if err := <-errs; err != nil {
			return err
		}

		if _, hasTitleResolver := route.Resolve["title"]; !hasTitleResolver {
			if title, ok := route.ResolveTitle(check.Route.Snapshot()); ok {
				results["title"] = title
			}
		}

		check.Route.Snapshot().SetResolvedData(results)
	}
	return nil
}
