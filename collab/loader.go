package collab

// TokenResolver is the dependency-lookup collaborator used to resolve guard
// and resolver tokens (spec.md §6 "Token resolver"). If the resolved instance
// exposes the named guard/resolver method it is called on that instance;
// otherwise the instance itself is treated as the function guard/resolver.
//
// The Loader and LoadedRouterConfig contracts live in package routeconfig
// rather than here, since they're expressed directly in terms of
// routeconfig.Route and importing that back into collab would cycle.
type TokenResolver interface {
	Get(token any) (any, bool)
}
