package navigation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vango-dev/vangoroute/collab"
	"github.com/vango-dev/vangoroute/preactivation"
	"github.com/vango-dev/vangoroute/recognizer"
	"github.com/vango-dev/vangoroute/redirects"
	"github.com/vango-dev/vangoroute/rerr"
	"github.com/vango-dev/vangoroute/state"
	"github.com/vango-dev/vangoroute/telemetry"
	"github.com/vango-dev/vangoroute/urlbuilder"
	"github.com/vango-dev/vangoroute/urltree"
)

// request is one queued transition: either an already-parsed UrlTree
// (NavigateByUrl) or a pending raw tree built from commands (Navigate).
// Requests colliding on key are coalesced onto the same waiter set (spec.md
// §4.8 "deduplicated by (source, raw URL)").
type request struct {
	key     string
	source  Source
	tree    *urltree.UrlTree
	extras  Extras
	ctx     context.Context
	waiters []chan result
}

// Scheduler is the serialized navigation queue of spec.md §4.8: one
// transition in flight at a time, run through the redirect/recognize/
// diff/preactivate/activate pipeline in strict phase order.
type Scheduler struct {
	cfg Config

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []*request
	pending map[string]*request
	closed  bool

	nextID       uint64
	currentTree  *urltree.UrlTree
	currentState *state.RouterState
	currentSnap  *recognizer.RouterStateSnapshot
}

// NewScheduler builds a Scheduler and starts its processing goroutine. The
// current tree starts at the root URL ("/") with no RouterState until the
// first navigation commits.
func NewScheduler(cfg Config) *Scheduler {
	root, _ := urltree.Parse("/")
	s := &Scheduler{
		cfg:         cfg,
		pending:     make(map[string]*request),
		currentTree: root,
	}
	s.cond = sync.NewCond(&s.mu)
	go s.loop()
	return s
}

// Close stops the processing goroutine once the queue drains. Queued
// requests still run; Close does not cancel them.
func (s *Scheduler) Close() {
	s.mu.Lock()
	s.closed = true
	s.cond.Broadcast()
	s.mu.Unlock()
}

// CurrentState returns the RouterState of the last committed navigation, or
// nil before any navigation has ever committed.
func (s *Scheduler) CurrentState() *state.RouterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentState
}

// CurrentUrl returns the serialized URL of the last committed navigation.
func (s *Scheduler) CurrentUrl() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return urltree.Serialize(s.currentTree)
}

// NavigateByUrl parses url and schedules it as a transition, blocking until
// it commits, cancels, or errors.
func (s *Scheduler) NavigateByUrl(ctx context.Context, url string, source Source, extras Extras) (bool, error) {
	tree, err := urltree.Parse(url)
	if err != nil {
		return false, rerr.Wrap(rerr.ErrParse, err, "NavigateByUrl(%q)", url)
	}
	return s.schedule(ctx, tree, source, extras)
}

// Navigate resolves commands relative to extras.RelativeTo (nil for an
// absolute navigation) against the current tree and schedules the result
// with source imperative.
func (s *Scheduler) Navigate(ctx context.Context, commands []urlbuilder.Command, extras Extras) (bool, error) {
	s.mu.Lock()
	cur := s.currentTree
	s.mu.Unlock()

	tree, err := urlbuilder.CreateUrlTree(commands, extras.RelativeTo, cur, urlbuilder.Options{
		QueryParams:         extras.QueryParams,
		QueryParamsHandling: extras.QueryParamsHandling,
		Fragment:            extras.Fragment,
		FragmentHandling:    extras.FragmentHandling,
	})
	if err != nil {
		return false, err
	}
	return s.schedule(ctx, tree, SourceImperative, extras)
}

func (s *Scheduler) schedule(ctx context.Context, tree *urltree.UrlTree, source Source, extras Extras) (bool, error) {
	req := &request{
		key:    string(source) + "|" + urltree.Serialize(tree),
		source: source,
		tree:   tree,
		extras: extras,
		ctx:    ctx,
	}
	ch := make(chan result, 1)

	s.mu.Lock()
	if existing, ok := s.pending[req.key]; ok {
		existing.waiters = append(existing.waiters, ch)
	} else {
		req.waiters = []chan result{ch}
		s.pending[req.key] = req
		s.queue = append(s.queue, req)
		s.cond.Signal()
	}
	s.mu.Unlock()

	res := <-ch
	return res.committed, res.err
}

func (s *Scheduler) loop() {
	for {
		s.mu.Lock()
		for len(s.queue) == 0 && !s.closed {
			s.cond.Wait()
		}
		if len(s.queue) == 0 {
			s.mu.Unlock()
			return
		}
		req := s.queue[0]
		s.queue = s.queue[1:]
		delete(s.pending, req.key)
		s.mu.Unlock()

		res := s.process(req)
		for _, w := range req.waiters {
			w <- res
			close(w)
		}
	}
}

func (s *Scheduler) emit(ev Event) {
	if s.cfg.Sink != nil {
		s.cfg.Sink(ev)
	}
	logger := s.cfg.logger()
	switch ev.Type {
	case EventNavigationCancel:
		logger.Warn("navigation cancelled", "id", ev.ID, "url", ev.Url, "reason", ev.Reason, "correlation_id", ev.CorrelationID)
	case EventNavigationError:
		logger.Error("navigation failed", "id", ev.ID, "url", ev.Url, "err", ev.Err, "correlation_id", ev.CorrelationID)
	default:
		if s.cfg.EnableTracing {
			logger.Debug("navigation event", "type", ev.Type, "id", ev.ID, "url", ev.Url, "correlation_id", ev.CorrelationID)
		}
	}
}

// process runs the full phases 1-13 pipeline for one request (spec.md
// §4.8). Every early return on cancellation/error happens before phase 11,
// so the committed current state/tree are never touched until the
// transition is known to succeed.
func (s *Scheduler) process(req *request) (res result) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.mu.Unlock()

	ctx := req.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	t := &Transition{ID: id, CorrelationID: uuid.NewString(), Source: req.source, Extras: req.extras, RawTree: req.tree}
	rawURL := urltree.Serialize(req.tree)

	ctx, span := telemetry.StartNavigation(ctx, s.cfg.Tracer, id, rawURL, t.CorrelationID)
	defer func() { telemetry.EndWithError(span, res.err) }()

	s.emit(Event{Type: EventNavigationStart, ID: id, CorrelationID: t.CorrelationID, Url: rawURL})

	handling := s.cfg.urlHandling()
	if !handling.ShouldProcessUrl(req.tree) {
		return s.cancel(ctx, t, "url not owned by this router's handling strategy")
	}
	t.Routable = handling.Extract(req.tree)

	redirectsCtx, redirectsSpan := telemetry.StartPhase(ctx, s.cfg.Tracer, "redirects")
	loader := s.cfg.Loader
	if loader != nil {
		loader = instrumentedLoader{inner: loader, s: s, t: t}
	}
	redirected, err := redirects.Apply(redirectsCtx, t.Routable, s.cfg.Routes, redirects.Options{
		Resolver: s.cfg.Resolver,
		Loader:   loader,
	})
	telemetry.EndWithError(redirectsSpan, err)
	if err != nil {
		if rerr.IsCanceling(err) {
			return s.cancel(ctx, t, err.Error())
		}
		return s.fail(ctx, t, err)
	}
	t.Redirected = redirected

	_, recognizeSpan := telemetry.StartPhase(ctx, s.cfg.Tracer, "recognize")
	snap, err := recognizer.Recognize(redirected, s.cfg.Routes, "")
	telemetry.EndWithError(recognizeSpan, err)
	if err != nil {
		return s.fail(ctx, t, err)
	}
	t.Snapshot = snap
	s.emit(Event{Type: EventRoutesRecognized, ID: id, CorrelationID: t.CorrelationID, Url: snap.Url()})

	if hook := s.cfg.Hooks.BeforePreactivation; hook != nil {
		if err := hook(t); err != nil {
			return s.fail(ctx, t, err)
		}
	}

	s.mu.Lock()
	previous := s.currentState
	var previousSnap collab.StateSnapshot
	if s.currentSnap != nil {
		previousSnap = s.currentSnap
	}
	s.mu.Unlock()

	future, deactivated := state.Build(snap, previous, s.cfg.reuseStrategy())
	t.Future = future
	t.Deactivated = deactivated

	deactivateChecks, activateChecks := preactivation.CollectChecks(future.Root(), deactivated)
	s.emit(Event{Type: EventGuardsCheckStart, ID: id, CorrelationID: t.CorrelationID, Url: snap.Url()})
	guardsCtx, guardsSpan := telemetry.StartPhase(ctx, s.cfg.Tracer, "guards")
	guardStart := time.Now()

	deactivateRes, err := preactivation.RunDeactivateChecks(guardsCtx, deactivateChecks, previousSnap, snap, s.cfg.ComponentLookup)
	if err != nil {
		s.cfg.Metrics.RecordGuardDuration(time.Since(guardStart))
		telemetry.EndWithError(guardsSpan, err)
		return s.fail(ctx, t, err)
	}
	if !deactivateRes.Allowed() {
		s.cfg.Metrics.RecordGuardDuration(time.Since(guardStart))
		guardsSpan.End()
		if deactivateRes.IsRedirect() {
			return s.redirectAndCancel(ctx, t, deactivateRes.Redirect())
		}
		return s.cancel(ctx, t, "canDeactivate denied")
	}

	activateRes, err := preactivation.RunActivateChecks(guardsCtx, activateChecks, snap, s.eventSinkAdapter(id, t.CorrelationID, snap.Url()))
	s.cfg.Metrics.RecordGuardDuration(time.Since(guardStart))
	if err != nil {
		telemetry.EndWithError(guardsSpan, err)
		return s.fail(ctx, t, err)
	}
	if !activateRes.Allowed() {
		guardsSpan.End()
		if activateRes.IsRedirect() {
			return s.redirectAndCancel(ctx, t, activateRes.Redirect())
		}
		return s.cancel(ctx, t, "canActivate denied")
	}
	guardsSpan.End()
	s.emit(Event{Type: EventGuardsCheckEnd, ID: id, CorrelationID: t.CorrelationID, Url: snap.Url()})

	s.emit(Event{Type: EventResolveStart, ID: id, CorrelationID: t.CorrelationID, Url: snap.Url()})
	resolversCtx, resolversSpan := telemetry.StartPhase(ctx, s.cfg.Tracer, "resolvers")
	resolveStart := time.Now()
	err = preactivation.RunResolvers(resolversCtx, activateChecks, snap)
	s.cfg.Metrics.RecordResolverDuration(time.Since(resolveStart))
	telemetry.EndWithError(resolversSpan, err)
	if err != nil {
		return s.fail(ctx, t, err)
	}
	s.emit(Event{Type: EventResolveEnd, ID: id, CorrelationID: t.CorrelationID, Url: snap.Url()})

	if hook := s.cfg.Hooks.AfterPreactivation; hook != nil {
		if err := hook(t); err != nil {
			return s.fail(ctx, t, err)
		}
	}

	s.activate(future, deactivated)

	merged := handling.Merge(redirected, req.tree)
	if !req.extras.SkipLocationChange && s.cfg.Location != nil {
		s.writeLocation(merged, req.extras.ReplaceUrl)
	}

	s.mu.Lock()
	s.currentTree = merged
	s.currentState = future
	s.currentSnap = snap
	s.mu.Unlock()

	s.cfg.Metrics.RecordNavigation("committed")
	s.emit(Event{Type: EventNavigationEnd, ID: id, CorrelationID: t.CorrelationID, Url: urltree.Serialize(merged)})
	return result{committed: true}
}

// activate implements phase 11: parent-before-child mount for every newly
// activated node, stream-advance for every reused node, and child-before-
// parent teardown for every node Build reported deactivated.
func (s *Scheduler) activate(future *state.RouterState, deactivated []*state.ActivatedRoute) {
	var walk func(node *state.ActivatedRoute)
	walk = func(node *state.ActivatedRoute) {
		if node == nil {
			return
		}
		if node.Reused() {
			state.Advance(node)
		} else if s.cfg.Outlet != nil {
			snap := node.Snapshot()
			s.cfg.Outlet.Activate(snap.Outlet(), snap.Component(), snap)
		}
		for _, c := range node.Children() {
			walk(c)
		}
	}
	walk(future.Root())

	if s.cfg.Outlet == nil {
		return
	}
	for i := len(deactivated) - 1; i >= 0; i-- {
		snap := deactivated[i].Snapshot()
		s.cfg.Outlet.Deactivate(snap.Outlet())
	}
}

func (s *Scheduler) writeLocation(tree *urltree.UrlTree, forceReplace bool) {
	serialized := urltree.Serialize(tree)
	if forceReplace || serialized == urltree.Serialize(s.currentTreeLocked()) {
		s.cfg.Location.Replace(serialized)
		return
	}
	s.cfg.Location.Push(serialized)
}

func (s *Scheduler) currentTreeLocked() *urltree.UrlTree {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentTree
}

// redirectAndCancel implements phase 8: cancel this transition and schedule
// a fresh imperative navigation to the guard-provided tree, without blocking
// the caller of the cancelled transition on the new one.
func (s *Scheduler) redirectAndCancel(ctx context.Context, t *Transition, target *urltree.UrlTree) result {
	res := s.cancel(ctx, t, "redirected by guard")
	go func() {
		_, _ = s.schedule(context.Background(), target, SourceImperative, Extras{})
	}()
	return res
}

func (s *Scheduler) cancel(ctx context.Context, t *Transition, reason string) result {
	s.restoreLocation()
	s.cfg.Metrics.RecordNavigation("cancelled")
	s.emit(Event{Type: EventNavigationCancel, ID: t.ID, CorrelationID: t.CorrelationID, Url: urltree.Serialize(t.RawTree), Reason: reason})
	return result{committed: false}
}

func (s *Scheduler) fail(ctx context.Context, t *Transition, err error) result {
	s.restoreLocation()
	s.cfg.Metrics.RecordNavigation("error")
	s.emit(Event{Type: EventNavigationError, ID: t.ID, CorrelationID: t.CorrelationID, Url: urltree.Serialize(t.RawTree), Err: err})
	if s.cfg.ErrorHandler != nil {
		s.cfg.ErrorHandler(ctx, err)
	}
	return result{committed: false, err: err}
}

// restoreLocation rewrites the address bar back to the last committed URL,
// undoing whatever a popstate/hashchange event already did to it before the
// cancelled/errored transition ran (spec.md §7 "location is rewritten to
// the serialized current URL via replaceState").
func (s *Scheduler) restoreLocation() {
	if s.cfg.Location == nil {
		return
	}
	s.cfg.Location.Replace(s.CurrentUrl())
}

func (s *Scheduler) eventSinkAdapter(id uint64, correlationID, url string) preactivation.EventSink {
	return func(phase preactivation.EventPhase, route *state.ActivatedRoute) {
		var t EventType
		switch phase {
		case preactivation.PhaseChildActivationStart:
			t = EventChildActivationStart
		case preactivation.PhaseActivationStart:
			t = EventActivationStart
		default:
			return
		}
		s.emit(Event{Type: t, ID: id, CorrelationID: correlationID, Url: url})
	}
}
