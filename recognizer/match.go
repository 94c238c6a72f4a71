package recognizer

import (
	"strings"

	"github.com/vango-dev/vangoroute/routeconfig"
	"github.com/vango-dev/vangoroute/urltree"
)

// matchResult is the outcome of matching one Route against a segment list.
// Mirrors package redirects' own matchResult; kept separate so recognizer
// never needs to import redirects (C4 and C5 are independent consumers of
// the same config, not a pipeline of one into the other's internals).
type matchResult struct {
	consumed  []*urltree.UrlSegment
	posParams *urltree.ParamMap
}

func matchRoute(route *routeconfig.Route, segments []*urltree.UrlSegment, groupHasChildren bool) (matchResult, bool) {
	if route.Matcher != nil {
		r, ok := route.Matcher(segments)
		if !ok {
			return matchResult{}, false
		}
		return matchResult{consumed: r.Consumed, posParams: r.PosParams}, true
	}
	return defaultMatch(route.Path, segments, route.PathMatchEffective(), groupHasChildren)
}

func defaultMatch(path string, segments []*urltree.UrlSegment, mode routeconfig.PathMatch, groupHasChildren bool) (matchResult, bool) {
	if path == "" {
		if len(segments) == 0 || mode != routeconfig.PathMatchFull {
			return matchResult{posParams: urltree.NewParamMap()}, true
		}
		return matchResult{}, false
	}

	parts := strings.Split(path, "/")
	if len(parts) > len(segments) {
		return matchResult{}, false
	}

	posParams := urltree.NewParamMap()
	for i, part := range parts {
		seg := segments[i]
		if strings.HasPrefix(part, ":") {
			posParams.Set(part[1:], seg.Path)
			continue
		}
		if part != seg.Path {
			return matchResult{}, false
		}
	}

	consumed := append([]*urltree.UrlSegment(nil), segments[:len(parts)]...)
	if mode == routeconfig.PathMatchFull && (len(consumed) != len(segments) || groupHasChildren) {
		return matchResult{}, false
	}
	return matchResult{consumed: consumed, posParams: posParams}, true
}

// mergedParams overlays posParams with the matrix parameters of the last
// consumed segment, the merge spec.md §4.5 describes for every ARS.
func mergedParams(posParams *urltree.ParamMap, consumed []*urltree.UrlSegment) *urltree.ParamMap {
	if len(consumed) == 0 {
		return posParams.Clone()
	}
	return posParams.Merge(consumed[len(consumed)-1].Parameters)
}
