// Package state builds and diffs RouterState, the tree of ActivatedRoute
// that a navigation commits (spec.md §4.6). It turns a freshly recognized
// RouterStateSnapshot plus the previous RouterState into a new tree that
// reuses, reattaches, or recreates each node per the configured
// collab.ReuseStrategy, then advances the reused nodes' value-streams.
package state
