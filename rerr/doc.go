// Package rerr provides the structured error kinds used across the router.
//
// Errors are organized into categories:
//   - parse: malformed URL strings (fails a parse call, not a navigation)
//   - validation: route config table invariant violations, checked at install time
//   - match: no route config entry matches a segment group
//   - outlet: two sibling activated routes claim the same outlet name
//   - canceling: a guard or canLoad check rejected the navigation
//
// Each error carries a Kind for errors.Is matching plus a human message
// naming the offending path, segment group, or outlet.
package rerr
