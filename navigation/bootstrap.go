package navigation

import "context"

// Bootstrap runs the configured InitialNavigation mode against startUrl
// (spec.md §4.8 "Initial navigation"). InitialNavigationDisabled/
// InitialNavigationLegacyDisabled only arm the popstate/hashchange
// subscription via Listen; callers that want the very first navigation must
// invoke NavigateByUrl themselves.
//
// InitialNavigationLegacyEnabled blocks until afterPreactivation has run (by
// construction: process() already runs every phase synchronously), so it
// behaves identically to InitialNavigationEnabled in this implementation —
// the distinction spec.md draws only matters for runtimes where navigation
// is otherwise fire-and-forget from the bootstrap flow's point of view.
func (s *Scheduler) Bootstrap(ctx context.Context, startUrl string) (bool, error) {
	switch s.cfg.InitialNavigation {
	case InitialNavigationDisabled, InitialNavigationLegacyDisabled:
		return false, nil
	default:
		return s.NavigateByUrl(ctx, startUrl, SourcePopState, Extras{})
	}
}

// Listen wires Location's popstate/hashchange notifications into the
// scheduler, classifying every incoming URL change as SourcePopState so
// duplicate replays collapse per the dedup key (spec.md §4.8 "Scheduling").
func (s *Scheduler) Listen() (unsubscribe func()) {
	if s.cfg.Location == nil {
		return func() {}
	}
	return s.cfg.Location.OnPopState(func(url string) {
		_, _ = s.NavigateByUrl(context.Background(), url, SourcePopState, Extras{})
	})
}
