package ast

import "testing"

func TestEqual_StructuralAcrossCopies(t *testing.T) {
	a := Template{
		Name:    Nodes{Text{Content: "Foo"}},
		PosArgs: []PosArg{{Value: Nodes{Text{Content: "bar"}}}},
	}
	b := Clone(a)

	if !Equal(a, b) {
		t.Fatalf("expected clone to be structurally equal")
	}

	c := Template{
		Name:    Nodes{Text{Content: "Foo"}},
		PosArgs: []PosArg{{Value: Nodes{Text{Content: "baz"}}}},
	}
	if Equal(a, c) {
		t.Fatalf("expected differing posarg value to break equality")
	}
}

func TestClone_IsIndependent(t *testing.T) {
	orig := Nodes{Bold{Children: Nodes{Text{Content: "x"}}}}
	copyNodes := CloneNodes(orig)

	bold := copyNodes[0].(Bold)
	bold.Children[0] = Text{Content: "mutated"}
	copyNodes[0] = bold

	if orig[0].(Bold).Children[0].(Text).Content != "x" {
		t.Fatalf("mutating the clone must not affect the original")
	}
}

func TestTrimText_DropsEmptiedBoundaryNodes(t *testing.T) {
	nodes := Nodes{Text{Content: "  hi  "}, Newline{}, Text{Content: "   "}}
	trimmed := TrimText(nodes, StripBoth)

	if len(trimmed) != 2 {
		t.Fatalf("expected trailing empty text node dropped, got %d nodes", len(trimmed))
	}
	if trimmed[0].(Text).Content != "hi  " {
		t.Errorf("expected only the left edge trimmed on the first node, got %q", trimmed[0].(Text).Content)
	}
}

func TestWalk_FindsOnlyincludeAtAnyDepth(t *testing.T) {
	tree := Nodes{
		Bold{Children: Nodes{
			Onlyinclude{Children: Nodes{Text{Content: "kept"}}},
		}},
		Text{Content: "top"},
	}

	found := Walk(func(n Node) bool { return n.Kind() == KindOnlyinclude }, tree)
	if len(found) != 1 {
		t.Fatalf("expected exactly one onlyinclude node, got %d", len(found))
	}
}
