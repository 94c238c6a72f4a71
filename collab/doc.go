// Package collab defines the external collaborator contracts the router core
// depends on but does not implement: the guard/resolver function shapes, the
// read-only route-snapshot view they receive, the location adapter, the lazy
// loader, the token resolver, and the reuse/URL-handling strategies (spec.md
// §6 "External collaborators"). Everything here is an interface or a plain
// function type — the core only ever consumes these, never constructs them.
package collab
