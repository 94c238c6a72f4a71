package matcher

import (
	"strings"

	ptre "github.com/soongo/path-to-regexp"

	"github.com/vango-dev/vangoroute/routeconfig"
	"github.com/vango-dev/vangoroute/urltree"
)

// PathToRegexpMatcher compiles a path-to-regexp pattern once and exposes a
// routeconfig.Matcher closure over it, so a Route can opt into a real
// regex-based matching engine (param constraints, repeat modifiers,
// wildcards) instead of the package-default literal/":param" splitter.
//
// end controls prefix vs. full matching exactly like routeconfig.PathMatch:
// end == false lets the pattern consume a leading run of segments and leave
// the remainder for child routes (routeconfig.PathMatchPrefix); end == true
// requires the pattern to consume every remaining segment
// (routeconfig.PathMatchFull).
type PathToRegexpMatcher struct {
	match ptre.MatchFunc
}

// NewPathToRegexpMatcher compiles pattern (path-to-regexp syntax, e.g.
// "team/:id(\\d+)") against end's matching mode.
func NewPathToRegexpMatcher(pattern string, end bool) (*PathToRegexpMatcher, error) {
	fn, err := ptre.Match(pattern, &ptre.Options{End: &end})
	if err != nil {
		return nil, err
	}
	return &PathToRegexpMatcher{match: fn}, nil
}

// Matcher adapts m to routeconfig's Matcher function type.
func (m *PathToRegexpMatcher) Matcher() routeconfig.Matcher {
	return func(segments []*urltree.UrlSegment) (routeconfig.MatchResult, bool) {
		joined := joinSegmentPaths(segments)
		ok, result := m.match(joined)
		if !ok || result == nil {
			return routeconfig.MatchResult{}, false
		}

		consumedCount := countConsumedSegments(result.Path)
		if consumedCount > len(segments) {
			consumedCount = len(segments)
		}
		consumed := append([]*urltree.UrlSegment(nil), segments[:consumedCount]...)

		posParams := urltree.NewParamMap()
		for key, value := range result.Params {
			if s, ok := value.(string); ok {
				posParams.Set(key, s)
			}
		}
		return routeconfig.MatchResult{Consumed: consumed, PosParams: posParams}, true
	}
}

func joinSegmentPaths(segments []*urltree.UrlSegment) string {
	parts := make([]string, len(segments))
	for i, s := range segments {
		parts[i] = s.Path
	}
	return strings.Join(parts, "/")
}

// countConsumedSegments turns the matched substring path-to-regexp reports
// back into a segment count, trimming the leading/trailing "/" its Match
// result may include.
func countConsumedSegments(matchedPath string) int {
	trimmed := strings.Trim(matchedPath, "/")
	if trimmed == "" {
		return 0
	}
	return len(strings.Split(trimmed, "/"))
}
