package redirects

import (
	"strings"

	"github.com/vango-dev/vangoroute/routeconfig"
	"github.com/vango-dev/vangoroute/urltree"
)

// matchResult is the outcome of matching one Route against a segment list.
type matchResult struct {
	consumed  []*urltree.UrlSegment
	posParams *urltree.ParamMap
}

// matchRoute runs route's custom Matcher if set, else the default
// literal/`:param` matcher, and applies the pathMatch:'full' rule (spec.md
// §4.4 "Default matcher").
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

	if len(consumed) > 0 {
		posParams = posParams.Merge(consumed[len(consumed)-1].Parameters)
	}
	return matchResult{consumed: consumed, posParams: posParams}, true
}
