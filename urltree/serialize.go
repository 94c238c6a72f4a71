package urltree

import "strings"

// Serialize renders a UrlTree back to its wire-format string (spec.md
// §4.1 "Serialization"). parse(serialize(t)) is structurally equal to t
// modulo the documented normalization (empty query dropped, null fragment
// omitted, arrays preserved).
func Serialize(t *UrlTree) string {
	var b strings.Builder
	b.WriteString(serializeGroup(t.Root, true))
	b.WriteString(serializeQuery(t.QueryParams))
	if t.Fragment != nil {
		b.WriteByte('#')
		b.WriteString(EncodeFragment(*t.Fragment))
	}
	out := b.String()
	if out == "" {
		return "/"
	}
	if !strings.HasPrefix(out, "/") && !strings.HasPrefix(out, "(") && !strings.HasPrefix(out, "?") && !strings.HasPrefix(out, "#") {
		out = "/" + out
	}
	return out
}

func serializeSegments(segments []*UrlSegment) string {
	parts := make([]string, len(segments))
	for i, s := range segments {
		parts[i] = serializeSegment(s)
	}
	return strings.Join(parts, "/")
}

func serializeSegment(s *UrlSegment) string {
	var b strings.Builder
	b.WriteString(EncodeSegment(s.Path))
	for _, k := range s.Parameters.Keys() {
		b.WriteByte(';')
		b.WriteString(EncodeSegment(k))
		b.WriteByte('=')
		b.WriteString(EncodeSegment(s.Parameters.Get(k)))
	}
	return b.String()
}

// serializeGroup implements the two rules from spec.md §4.1:
//
//	no children:          path;k=v;... joined by /
//	children, root:       primary child inline + (name:child//name:child) for non-primary outlets
//	children, not root:   segments + /(name:child//name:child) for ALL outlets
func serializeGroup(g *UrlSegmentGroup, isRoot bool) string {
	if !g.HasChildren() {
		return serializeSegments(g.Segments)
	}

	if isRoot {
		var result string
		if primary := g.Primary(); primary != nil {
			result = serializeGroup(primary, false)
		}
		var others []string
		for _, name := range g.SortedOutlets() {
			if name == PrimaryOutlet {
				continue
			}
			others = append(others, name+":"+serializeGroup(g.Children[name], false))
		}
		if len(others) == 0 {
			return result
		}
		return result + "(" + strings.Join(others, "//") + ")"
	}

	segStr := serializeSegments(g.Segments)
	names := g.SortedOutlets()
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ":" + serializeGroup(g.Children[name], false)
	}
	return segStr + "/(" + strings.Join(parts, "//") + ")"
}

func serializeQuery(q *QueryParamMap) string {
	if q == nil || q.Len() == 0 {
		return ""
	}
	var parts []string
	for _, k := range q.Keys() {
		for _, v := range q.GetAll(k) {
			parts = append(parts, EncodeQuery(k)+"="+EncodeQuery(v))
		}
	}
	return "?" + strings.Join(parts, "&")
}
