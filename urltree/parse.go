package urltree

import (
	"strings"

	"github.com/vango-dev/vangoroute/rerr"
)

// Parse parses a URL string per the grammar in doc.go. Failures return a
// *rerr.Error of kind rerr.ErrParse naming the remaining unparsed input for
// diagnostics (spec.md §4.1 "Parser/serializer contract").
func Parse(url string) (*UrlTree, error) {
	p := &parser{remaining: url, original: url}
	root, err := p.parseRootSegment()
	if err != nil {
		return nil, err
	}
	query, err := p.parseQueryParams()
	if err != nil {
		return nil, err
	}
	fragment := p.parseFragment()
	if p.remaining != "" {
		return nil, p.errorf("unexpected trailing input")
	}
	return NewUrlTree(root, query, fragment), nil
}

type parser struct {
	remaining string
	original  string
}

func (p *parser) errorf(format string, args ...any) error {
	return rerr.New(rerr.ErrParse, format+" (remaining: %q, url: %q)", append(args, p.remaining, p.original)...)
}

func (p *parser) peekStartsWith(s string) bool {
	return strings.HasPrefix(p.remaining, s)
}

func (p *parser) consumeOptional(s string) bool {
	if p.peekStartsWith(s) {
		p.remaining = p.remaining[len(s):]
		return true
	}
	return false
}

func (p *parser) capture(s string) error {
	if !p.peekStartsWith(s) {
		return p.errorf("expected %q", s)
	}
	p.remaining = p.remaining[len(s):]
	return nil
}

// matchSegmentToken matches the grammar's pathToken / matrix key-value
// token: [^/()?;=#]+
func matchSegmentToken(s string) string {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '/', '(', ')', '?', ';', '=', '#':
			return s[:i]
		}
	}
	return s
}

// matchQueryKeyToken matches [^=?&#]+
func matchQueryKeyToken(s string) string {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '=', '?', '&', '#':
			return s[:i]
		}
	}
	return s
}

// matchQueryValueToken matches [^?&#]+
func matchQueryValueToken(s string) string {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '?', '&', '#':
			return s[:i]
		}
	}
	return s
}

func (p *parser) parseRootSegment() (*UrlSegmentGroup, error) {
	p.consumeOptional("/")
	if p.remaining == "" || p.peekStartsWith("?") || p.peekStartsWith("#") {
		return NewUrlSegmentGroup(nil, nil), nil
	}
	children, err := p.parseChildren()
	if err != nil {
		return nil, err
	}
	return NewUrlSegmentGroup(nil, children), nil
}

func (p *parser) parseChildren() (map[string]*UrlSegmentGroup, error) {
	if p.remaining == "" {
		return nil, nil
	}
	p.consumeOptional("/")

	var segments []*UrlSegment
	if !p.peekStartsWith("(") {
		seg, err := p.parseSegment()
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)
		for p.peekStartsWith("/") && !p.peekStartsWith("//") && !p.peekStartsWith("/(") {
			p.capture("/")
			seg, err := p.parseSegment()
			if err != nil {
				return nil, err
			}
			segments = append(segments, seg)
		}
	}

	if len(segments) > 0 {
		// A parenthesized outlet group immediately following the primary
		// chain is that chain's own children, whether or not it is
		// preceded by a "/" — the wire format accepts both
		// "/inbox/33(popup:compose)" and "/inbox/33/(popup:compose)".
		if p.peekStartsWith("/(") {
			p.capture("/")
		}
		children := map[string]*UrlSegmentGroup{}
		if p.peekStartsWith("(") {
			parsed, err := p.parseParens(true)
			if err != nil {
				return nil, err
			}
			children = parsed
		}
		return map[string]*UrlSegmentGroup{PrimaryOutlet: NewUrlSegmentGroup(segments, children)}, nil
	}

	if p.peekStartsWith("(") {
		return p.parseParens(false)
	}
	return map[string]*UrlSegmentGroup{}, nil
}

func (p *parser) parseSegment() (*UrlSegment, error) {
	if p.remaining == "" {
		return nil, p.errorf("empty segment")
	}
	path := matchSegmentToken(p.remaining)
	if path == "" {
		if p.peekStartsWith(";") {
			return nil, p.errorf("empty path cannot have parameters")
		}
		return nil, p.errorf("empty segment")
	}
	p.capture(path)
	params, err := p.parseMatrixParams()
	if err != nil {
		return nil, err
	}
	return NewUrlSegment(Decode(path), params), nil
}

func (p *parser) parseMatrixParams() (*ParamMap, error) {
	params := NewParamMap()
	for p.consumeOptional(";") {
		if err := p.parseMatrixParam(params); err != nil {
			return nil, err
		}
	}
	return params, nil
}

func (p *parser) parseMatrixParam(params *ParamMap) error {
	key := matchSegmentToken(p.remaining)
	if key == "" {
		return nil
	}
	p.capture(key)
	value := ""
	if p.consumeOptional("=") {
		v := matchSegmentToken(p.remaining)
		if v != "" {
			value = v
			p.capture(v)
		}
	}
	params.Set(Decode(key), Decode(value))
	return nil
}

// parseParens parses an "(group)" block. allowPrimary controls whether an
// unnamed outletBlock defaults to the primary outlet: only true for a group
// attached after a primary segment chain, with or without a preceding "/"
// (spec.md §4.1 grammar
// comment "name defaults to primary only at top-level of parens").
func (p *parser) parseParens(allowPrimary bool) (map[string]*UrlSegmentGroup, error) {
	if err := p.capture("("); err != nil {
		return nil, err
	}
	segments := map[string]*UrlSegmentGroup{}

	for !p.consumeOptional(")") {
		if p.remaining == "" {
			return nil, p.errorf("unterminated outlet group")
		}
		path := matchSegmentToken(p.remaining)
		var next byte
		if len(path) < len(p.remaining) {
			next = p.remaining[len(path)]
		}
		if next != '/' && next != ')' && next != ';' {
			return nil, p.errorf("expected segment to be followed by '/', ')', or ';'")
		}

		outletName := ""
		if idx := strings.IndexByte(path, ':'); idx >= 0 {
			outletName = path[:idx]
			p.capture(outletName)
			p.capture(":")
		} else if allowPrimary {
			outletName = PrimaryOutlet
		} else {
			return nil, p.errorf("outlet name required inside a bare outlet group")
		}

		children, err := p.parseChildren()
		if err != nil {
			return nil, err
		}
		if len(children) == 1 {
			if primary, ok := children[PrimaryOutlet]; ok {
				segments[outletName] = primary
			} else {
				segments[outletName] = NewUrlSegmentGroup(nil, children)
			}
		} else {
			segments[outletName] = NewUrlSegmentGroup(nil, children)
		}
		p.consumeOptional("//")
	}
	return segments, nil
}

func (p *parser) parseQueryParams() (*QueryParamMap, error) {
	q := NewQueryParamMap()
	if !p.consumeOptional("?") {
		return q, nil
	}
	for {
		if err := p.parseQueryParam(q); err != nil {
			return nil, err
		}
		if !p.consumeOptional("&") {
			break
		}
	}
	return q, nil
}

func (p *parser) parseQueryParam(q *QueryParamMap) error {
	key := matchQueryKeyToken(p.remaining)
	if key == "" {
		return nil
	}
	p.capture(key)
	value := ""
	if p.consumeOptional("=") {
		v := matchQueryValueToken(p.remaining)
		if v != "" {
			value = v
			p.capture(v)
		}
	}
	q.Add(DecodeQuery(key), DecodeQuery(value))
	return nil
}

func (p *parser) parseFragment() *string {
	if !p.consumeOptional("#") {
		return nil
	}
	f := Decode(p.remaining)
	p.remaining = ""
	return &f
}
