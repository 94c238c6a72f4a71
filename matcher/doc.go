// Package matcher provides alternate implementations of the
// routeconfig.Matcher function contract (spec.md §4.4 "the matcher (default
// or user-supplied)"), built on a real regex-based path-matching engine
// instead of the package-default split-on-"/" matcher.
package matcher
