// Package recognizer turns a redirect-expanded UrlTree and a route config
// into a RouterStateSnapshot: an immutable tree of ActivatedRouteSnapshot
// nodes, one per matched Route, with merged params/data and the
// bookkeeping package state needs to resolve relative navigations later
// (spec.md §4.5).
package recognizer
