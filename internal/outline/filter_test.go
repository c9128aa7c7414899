package outline

import "testing"

func TestFilterNodes_AncestorsVisibleNotMatched(t *testing.T) {
	nodes := sample()
	res := FilterNodes(nodes, "AVOCADO")
	if !res.Matched["A2a"] || len(res.Matched) != 1 {
		t.Fatalf("unexpected matched set %v", res.Matched)
	}
	for _, id := range []string{"A", "A2", "A2a"} {
		if !res.Visible[id] {
			t.Fatalf("expected %s visible", id)
		}
	}
	for _, id := range []string{"A1", "B", "C"} {
		if res.Visible[id] {
			t.Fatalf("expected %s hidden", id)
		}
	}
}

func TestFilterNodes_MatchesContent(t *testing.T) {
	nodes := sample()
	nodes = UpdateNode(nodes, "B", func(n *Node) { n.Content = "some Hidden treasure" })
	res := FilterNodes(nodes, "hidden")
	if !res.Matched["B"] || !res.Visible["B"] || len(res.Visible) != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestFilterNodes_NoMatches(t *testing.T) {
	res := FilterNodes(sample(), "zebra")
	if len(res.Visible) != 0 || len(res.Matched) != 0 {
		t.Fatalf("expected empty result, got %+v", res)
	}
}

func TestIsBlankQuery(t *testing.T) {
	if !IsBlankQuery("  \t") || IsBlankQuery(" a ") {
		t.Fatalf("unexpected blank detection")
	}
}

func TestNormalizeSearchTarget(t *testing.T) {
	cases := map[string]string{
		"  hello  ":     "hello",
		"HELLO":         "hello",
		`\- item`:       "- item",
		"  \\- item  ": "- item",
		"Normal Text":   "normal text",
	}
	for in, want := range cases {
		if got := NormalizeSearchTarget(in); got != want {
			t.Fatalf("NormalizeSearchTarget(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFindNodeByContent(t *testing.T) {
	nodes := leveled(nd("1", "Root Node", nd("2", "Child Node")))
	nodes = UpdateNode(nodes, "1", func(n *Node) { n.Content = "Some content" })
	nodes = UpdateNode(nodes, "2", func(n *Node) { n.Content = "- item list" })

	cases := map[string]string{
		"Root":         "1",
		"Some content": "1",
		"Child":        "2",
		`\- item`:      "2",
	}
	for q, want := range cases {
		n, ok := FindNodeByContent(nodes, q)
		if !ok || n.ID != want {
			t.Fatalf("FindNodeByContent(%q) = %v, want %s", q, n, want)
		}
	}
	if _, ok := FindNodeByContent(nodes, "   "); ok {
		t.Fatalf("expected blank target to find nothing")
	}
	if _, ok := FindNodeByContent(nodes, "missing"); ok {
		t.Fatalf("expected no match")
	}
}
