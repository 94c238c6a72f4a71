// Package loader implements the routeconfig.Loader collaborator (spec.md §6
// "Lazy loader collaborator") against AWS S3: a route with LoadChildren set
// carries an "s3://bucket/key.json" reference in its Data map under the
// loadChildrenRefKey, and Load fetches and decodes that object into a
// LoadedRouterConfig, memoized on the Route by the caller exactly like any
// other Loader per spec.md §3/§4.4 (loaded-once, awaited-on-reentry).
package loader
