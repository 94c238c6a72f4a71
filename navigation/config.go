package navigation

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vangoroute/collab"
	"github.com/vango-dev/vangoroute/preactivation"
	"github.com/vango-dev/vangoroute/routeconfig"
	"github.com/vango-dev/vangoroute/telemetry"
	"github.com/vango-dev/vangoroute/urlbuilder"
	"github.com/vango-dev/vangoroute/urltree"
)

// InitialNavigationMode selects how the scheduler behaves on startup
// (spec.md §4.8 "Initial navigation").
type InitialNavigationMode string

const (
	// InitialNavigationEnabled performs the first navigation immediately.
	InitialNavigationEnabled InitialNavigationMode = "enabled"
	// InitialNavigationDisabled only subscribes to location changes; no
	// navigation is performed until one is requested explicitly.
	InitialNavigationDisabled InitialNavigationMode = "disabled"
	// InitialNavigationLegacyEnabled performs an initial navigation but
	// blocks the caller on afterPreactivation completing, surfacing async
	// guard errors synchronously to whatever called Bootstrap.
	InitialNavigationLegacyEnabled InitialNavigationMode = "legacy_enabled"
	// InitialNavigationLegacyDisabled is an alias Disabled carries for
	// compatibility with the four-way option spec.md §6 documents.
	InitialNavigationLegacyDisabled InitialNavigationMode = "legacy_disabled"
)

// Source identifies what triggered a navigation (spec.md §4.8 "deduplicated
// by (source, raw URL)").
type Source string

const (
	SourceImperative Source = "imperative"
	SourcePopState   Source = "popstate"
	SourceHashChange Source = "hashchange"
)

// Hooks are the two preactivation-adjacent extension points spec.md §4.8
// names: beforePreactivation (used for initial-navigation gating) and
// afterPreactivation (used to block bootstrap in legacy_enabled mode). Both
// may return an error to cancel the transition as a NavigationError.
type Hooks struct {
	BeforePreactivation func(t *Transition) error
	AfterPreactivation  func(t *Transition) error
}

// Config bundles every collaborator and option the Scheduler needs (spec.md
// §6 "Configuration").
type Config struct {
	Routes []*routeconfig.Route

	Location      collab.Location
	Outlet        collab.Outlet
	Loader        routeconfig.Loader
	Resolver      collab.TokenResolver
	ReuseStrategy collab.ReuseStrategy
	UrlHandling   collab.UrlHandlingStrategy
	// ComponentLookup resolves the mounted component for a canDeactivate
	// check; forwarded to preactivation.RunDeactivateChecks unchanged.
	ComponentLookup preactivation.ComponentLookup

	EnableTracing     bool
	InitialNavigation InitialNavigationMode
	// ErrorHandler receives a guard/resolver runtime error after it has
	// already been logged and emitted as NavigationError. It is a side-effect
	// hook only (telemetry, alerting); the scheduler still returns err to the
	// Navigate/NavigateByUrl caller regardless (spec.md §6 "errorHandler ...
	// default rethrows" — in Go, the explicit error return already is the
	// rethrow, so there is nothing left for a nil handler to additionally do).
	ErrorHandler func(ctx context.Context, err error)

	// Logger receives a Debug line per event when EnableTracing is set, plus
	// unconditional Warn on cancel and Error on failure. Nil defaults to
	// slog.Default().
	Logger *slog.Logger
	// Tracer opens one otel span per transition and one child span per
	// pipeline phase. Nil disables tracing (every span becomes a no-op).
	Tracer trace.Tracer
	// Metrics records navigation/guard/resolver counters and histograms.
	// Nil disables metrics.
	Metrics *telemetry.Metrics

	Hooks Hooks
	Sink  EventSink
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c Config) reuseStrategy() collab.ReuseStrategy {
	if c.ReuseStrategy != nil {
		return c.ReuseStrategy
	}
	return collab.DefaultReuseStrategy{}
}

func (c Config) urlHandling() collab.UrlHandlingStrategy {
	if c.UrlHandling != nil {
		return c.UrlHandling
	}
	return collab.DefaultUrlHandlingStrategy{}
}

// Extras are the per-navigation options spec.md §6 lists alongside the
// command list / target URL: RelativeTo/QueryParams/QueryParamsHandling/
// Fragment/FragmentHandling only apply to Scheduler.Navigate (command-based
// navigation); SkipLocationChange and ReplaceUrl apply to both entry points.
type Extras struct {
	RelativeTo          urlbuilder.RelativeTo
	QueryParams         *urltree.QueryParamMap
	QueryParamsHandling urlbuilder.QueryParamsHandling
	Fragment            *string
	FragmentHandling    urlbuilder.FragmentHandling

	// SkipLocationChange runs the full pipeline without writing to Location.
	SkipLocationChange bool
	// ReplaceUrl forces replaceState even when the path differs from current.
	ReplaceUrl bool
}
