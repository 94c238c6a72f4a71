package urlbuilder

import "fmt"

// Command is one element of a navigation command list. Concrete values are
// string (a path atom, "." or ".." or a literal/absolute segment), int (a
// numeric path atom, e.g. a record id), MatrixParams (applies to the
// preceding atom or the current segment), or Outlets (must be last).
type Command = any

// MatrixParams attaches matrix parameters to the atom immediately preceding
// it in the command list, or to the current segment if it opens the list.
type MatrixParams map[string]string

// Outlets maps outlet name to a nested command list for that outlet, or nil
// to remove the outlet entirely. Per spec.md §4.3, an Outlets command must
// be the last element of a command list.
type Outlets map[string][]Command

// commandToPathAtom renders a string/int command to its literal path text.
func commandToPathAtom(c Command) (string, bool) {
	switch v := c.(type) {
	case string:
		return v, true
	case int:
		return fmt.Sprintf("%d", v), true
	case int64:
		return fmt.Sprintf("%d", v), true
	default:
		return "", false
	}
}

// QueryParamsHandling selects how new query params combine with the current
// ones (spec.md §4.3 "Query-params merging mode").
type QueryParamsHandling string

const (
	// QueryParamsReplace discards current query params (the default).
	QueryParamsReplace QueryParamsHandling = ""
	QueryParamsMerge    QueryParamsHandling = "merge"
	QueryParamsPreserve QueryParamsHandling = "preserve"
)

// FragmentHandling selects how the new fragment is chosen.
type FragmentHandling string

const (
	FragmentReplace    FragmentHandling = ""
	FragmentPreserve   FragmentHandling = "preserveFragment"
)
