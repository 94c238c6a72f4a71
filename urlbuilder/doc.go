// Package urlbuilder implements createUrlTree: translating a navigation
// command list (path atoms, matrix-params objects, an outlets object) into a
// new urltree.UrlTree relative to an existing ActivatedRoute position
// (spec.md §4.3).
package urlbuilder
