package urlbuilder

import (
	"fmt"
	"strings"
)

// navToken is one position in the flattened, ".."/"."-resolved command
// sequence: a path atom plus any matrix params attached to it.
type navToken struct {
	path   string
	params MatrixParams
}

// navigation is the normalized form of a raw command list (spec.md §4.3
// "computeNavigation"): classified absolute/relative, leading ".." counted
// and stripped, "." dropped, matrix-params objects folded onto the
// preceding atom, and any trailing Outlets command split out.
type navigation struct {
	isAbsolute    bool
	numDoubleDots int
	segments      []navToken
	outlets       Outlets
	hasOutlets    bool
}

// computeNavigation implements spec.md §4.3 step 1. Each string command is
// split on "/" before classification, since a single command like "../22"
// or "../../team/44" packs both relative dots and literal path atoms.
func computeNavigation(commands []Command) (*navigation, error) {
	type rawItem struct {
		isParams bool
		path     string
		params   MatrixParams
	}
	var items []rawItem

	for i, c := range commands {
		switch v := c.(type) {
		case Outlets:
			if i != len(commands)-1 {
				return nil, fmt.Errorf("urlbuilder: an outlets command must be the last element of the command list")
			}
		case MatrixParams:
			items = append(items, rawItem{isParams: true, params: v})
		default:
			atom, ok := commandToPathAtom(c)
			if !ok {
				return nil, fmt.Errorf("urlbuilder: unsupported navigation command %#v", c)
			}
			for _, tok := range strings.Split(atom, "/") {
				items = append(items, rawItem{path: tok})
			}
		}
	}

	nav := &navigation{}
	if last, ok := commands[len(commands)-1].(Outlets); ok {
		nav.hasOutlets = true
		nav.outlets = last
	}

	idx := 0
	if idx < len(items) && !items[idx].isParams && items[idx].path == "" {
		nav.isAbsolute = true
		idx++
	}
	for idx < len(items) && !items[idx].isParams && items[idx].path == ".." {
		nav.numDoubleDots++
		idx++
	}
	if nav.isAbsolute && idx < len(items) && items[idx].isParams {
		return nil, fmt.Errorf("urlbuilder: matrix params may not be the first token of an absolute command")
	}

	for idx < len(items) {
		it := items[idx]
		idx++
		if it.isParams {
			if len(nav.segments) == 0 {
				nav.segments = append(nav.segments, navToken{params: it.params})
				continue
			}
			last := &nav.segments[len(nav.segments)-1]
			if last.params == nil {
				last.params = it.params
			} else {
				for k, v := range it.params {
					last.params[k] = v
				}
			}
			continue
		}
		if it.path == "." || it.path == "" {
			continue
		}
		nav.segments = append(nav.segments, navToken{path: it.path})
	}
	return nav, nil
}
