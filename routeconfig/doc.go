// Package routeconfig defines the static route configuration tree: the Route
// node, its discriminated union of match outcomes (component, children,
// loadChildren, redirectTo), and the validator that walks a config once at
// install time and reports every structural inconsistency it finds in that
// one pass.
package routeconfig
