// Package navigation drives the serialized transition pipeline described in
// spec.md §4.8: one navigation at a time, redirect-applied, recognized,
// diffed against the previous RouterState, preactivated, and finally handed
// to the outlet/location collaborators to commit. It owns no UI of its own —
// mounting, tearing down, and writing the address bar are collab.Outlet and
// collab.Location's job.
package navigation
