package vangoroute

import "github.com/vango-dev/vangoroute/navigation"

// Event and EventType re-export navigation's lifecycle event types so a
// caller wiring Config.Sink doesn't need a second import.
type Event = navigation.Event
type EventType = navigation.EventType

const (
	EventNavigationStart      = navigation.EventNavigationStart
	EventRoutesRecognized     = navigation.EventRoutesRecognized
	EventGuardsCheckStart     = navigation.EventGuardsCheckStart
	EventGuardsCheckEnd       = navigation.EventGuardsCheckEnd
	EventChildActivationStart = navigation.EventChildActivationStart
	EventActivationStart      = navigation.EventActivationStart
	EventResolveStart         = navigation.EventResolveStart
	EventResolveEnd           = navigation.EventResolveEnd
	EventNavigationEnd        = navigation.EventNavigationEnd
	EventNavigationCancel     = navigation.EventNavigationCancel
	EventNavigationError      = navigation.EventNavigationError
	EventRouteConfigLoadStart = navigation.EventRouteConfigLoadStart
	EventRouteConfigLoadEnd   = navigation.EventRouteConfigLoadEnd
)
