package urltree

import "testing"

func TestParseSimplePath(t *testing.T) {
	tree, err := Parse("/inbox/33")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	primary := tree.Root.Primary()
	if primary == nil {
		t.Fatalf("expected a primary child")
	}
	if len(primary.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(primary.Segments))
	}
	if primary.Segments[0].Path != "inbox" || primary.Segments[1].Path != "33" {
		t.Fatalf("unexpected segments: %+v", primary.Segments)
	}
}

func TestParsePrimaryAndSecondaryOutletRoundTrip(t *testing.T) {
	tree, err := Parse("/inbox/33(popup:compose)?debug=true#frag")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	primary := tree.Root.Primary()
	if primary == nil {
		t.Fatalf("expected primary child at root")
	}
	if len(primary.Segments) != 2 || primary.Segments[0].Path != "inbox" || primary.Segments[1].Path != "33" {
		t.Fatalf("unexpected primary segments: %+v", primary.Segments)
	}

	popup := primary.Children["popup"]
	if popup == nil {
		t.Fatalf("expected popup outlet child of the primary group")
	}
	if len(popup.Segments) != 1 || popup.Segments[0].Path != "compose" {
		t.Fatalf("unexpected popup segments: %+v", popup.Segments)
	}

	if got := tree.QueryParams.Get("debug"); got != "true" {
		t.Fatalf("expected debug=true, got %q", got)
	}
	if tree.Fragment == nil || *tree.Fragment != "frag" {
		t.Fatalf("expected fragment frag, got %v", tree.Fragment)
	}

	again, err := Parse(Serialize(tree))
	if err != nil {
		t.Fatalf("re-parse of serialized tree: %v", err)
	}
	if !tree.Root.Equal(again.Root) {
		t.Fatalf("round trip mismatch:\n  got  %s\n  want %s", Serialize(again), Serialize(tree))
	}
}

func TestParseSlashBeforeSecondaryOutletParens(t *testing.T) {
	a, err := Parse("/inbox/33(popup:compose)")
	if err != nil {
		t.Fatalf("Parse (no slash): %v", err)
	}
	b, err := Parse("/inbox/33/(popup:compose)")
	if err != nil {
		t.Fatalf("Parse (slash): %v", err)
	}
	if !a.Root.Equal(b.Root) {
		t.Fatalf("expected both forms to parse identically:\n  a=%s\n  b=%s", Serialize(a), Serialize(b))
	}
}

func TestParseMatrixParams(t *testing.T) {
	tree, err := Parse("/team;id=33;color=red")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	primary := tree.Root.Primary()
	seg := primary.Segments[0]
	if seg.Path != "team" {
		t.Fatalf("expected path team, got %q", seg.Path)
	}
	if seg.Parameters.Get("id") != "33" || seg.Parameters.Get("color") != "red" {
		t.Fatalf("unexpected matrix params: %v", seg.Parameters.ToMap())
	}
	if got := seg.Parameters.Keys(); len(got) != 2 || got[0] != "id" || got[1] != "color" {
		t.Fatalf("expected insertion-ordered keys [id color], got %v", got)
	}
}

func TestParseEmptyPathWithMatrixParamsIsError(t *testing.T) {
	_, err := Parse("/;id=33")
	if err == nil {
		t.Fatalf("expected a parse error for an empty path segment with matrix params")
	}
}

func TestParseEmptyURLIsRoot(t *testing.T) {
	tree, err := Parse("/")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tree.Root.HasChildren() {
		t.Fatalf("expected no children for the root path, got %+v", tree.Root.Children)
	}
	if Serialize(tree) != "/" {
		t.Fatalf("expected serialization of root to be \"/\", got %q", Serialize(tree))
	}
}

func TestParseRepeatedQueryParams(t *testing.T) {
	tree, err := Parse("/search?tag=go&tag=router")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	all := tree.QueryParams.GetAll("tag")
	if len(all) != 2 || all[0] != "go" || all[1] != "router" {
		t.Fatalf("expected [go router], got %v", all)
	}
}

func TestEncodeSegmentRestoresLiteralsAndEscapesParens(t *testing.T) {
	cases := map[string]string{
		"a@b":   "a@b",
		"a:b":   "a:b",
		"a,b":   "a,b",
		"a(b)":  "a%28b%29",
		"a&b":   "a&b",
		"a b":   "a%20b",
		"a;b":   "a%3Bb",
	}
	for in, want := range cases {
		if got := EncodeSegment(in); got != want {
			t.Errorf("EncodeSegment(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDecodeIsLenientOnInvalidEscapes(t *testing.T) {
	if got := Decode("100%"); got != "100%" {
		t.Fatalf("expected trailing %% to pass through unchanged, got %q", got)
	}
	if got := Decode("%zz"); got != "%zz" {
		t.Fatalf("expected invalid hex escape to pass through unchanged, got %q", got)
	}
}

func TestSortedOutletsPrimaryFirst(t *testing.T) {
	g := NewUrlSegmentGroup(nil, map[string]*UrlSegmentGroup{
		"zeta":        NewUrlSegmentGroup(nil, nil),
		PrimaryOutlet: NewUrlSegmentGroup(nil, nil),
		"alpha":       NewUrlSegmentGroup(nil, nil),
	})
	got := g.SortedOutlets()
	want := []string{PrimaryOutlet, "alpha", "zeta"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestParamMapMergeOverwritesOnCollision(t *testing.T) {
	a := NewParamMap()
	a.Set("id", "1")
	a.Set("color", "red")
	b := NewParamMap()
	b.Set("id", "2")
	merged := a.Merge(b)
	if merged.Get("id") != "2" || merged.Get("color") != "red" {
		t.Fatalf("unexpected merge result: %v", merged.ToMap())
	}
	if got := merged.Keys(); len(got) != 2 || got[0] != "id" || got[1] != "color" {
		t.Fatalf("expected merge to preserve receiver's key order, got %v", got)
	}
}
