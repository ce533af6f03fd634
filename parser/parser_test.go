package parser

import (
	"testing"

	"github.com/gowiki/wikiparse/ast"
)

func mustParse(t *testing.T, src string) ast.Nodes {
	t.Helper()
	nodes, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, err)
	}
	return nodes
}

func TestParse_NestedQuoteFormatting(t *testing.T) {
	got := mustParse(t, "''italic'''''bold'''")
	want := ast.Nodes{
		ast.Italic{Children: ast.Nodes{ast.Text{Content: "italic"}}},
		ast.Bold{Children: ast.Nodes{ast.Text{Content: "bold"}}},
	}
	if !ast.EqualNodes(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestParse_Heading(t *testing.T) {
	got := mustParse(t, "== Title ==")
	want := ast.Nodes{ast.Heading{Title: ast.Nodes{ast.Text{Content: "Title"}}, Level: 2}}
	if !ast.EqualNodes(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestParse_ConsecutiveHeadingsConsumeTheirNewline(t *testing.T) {
	got := mustParse(t, "= H1 =\n== H2 ==")
	want := ast.Nodes{
		ast.Heading{Title: ast.Nodes{ast.Text{Content: "H1"}}, Level: 1},
		ast.Heading{Title: ast.Nodes{ast.Text{Content: "H2"}}, Level: 2},
	}
	if !ast.EqualNodes(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestParse_HeadingMismatchedCloseFallsBackToText(t *testing.T) {
	got := mustParse(t, "== Title =")
	if len(got) == 0 {
		t.Fatalf("expected fallback text nodes, got none")
	}
	if _, ok := got[0].(ast.Heading); ok {
		t.Fatalf("mismatched heading close must not parse as a heading")
	}
}

func TestParsePage_RedirectSignal(t *testing.T) {
	p := New("#REDIRECT [[Target Page]]\nbody", "")
	_, _, err := p.ParsePage()
	rs, ok := err.(*RedirectSignal)
	if !ok {
		t.Fatalf("expected *RedirectSignal, got %#v", err)
	}
	if rs.Target != "Target Page" {
		t.Fatalf("expected target %q, got %q", "Target Page", rs.Target)
	}
}

func TestParse_TemplateWithPosAndNamedArgs(t *testing.T) {
	got := mustParse(t, "{{Foo|bar|baz=quux}}")
	want := ast.Nodes{
		ast.Template{
			Name:      ast.Nodes{ast.Text{Content: "Foo"}},
			PosArgs:   []ast.PosArg{{Value: ast.Nodes{ast.Text{Content: "bar"}}}},
			NamedArgs: []ast.NamedArg{{Name: ast.Nodes{ast.Text{Content: "baz"}}, Value: ast.Nodes{ast.Text{Content: "quux"}}}},
		},
	}
	if !ast.EqualNodes(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestParse_VariableWithDefault(t *testing.T) {
	got := mustParse(t, "{{{name|fallback}}}")
	want := ast.Nodes{
		ast.Variable{
			Name:    ast.Nodes{ast.Text{Content: "name"}},
			Default: ast.Nodes{ast.Text{Content: "fallback"}},
		},
	}
	if !ast.EqualNodes(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestParse_IfEqPreservesUntrimmedArgs(t *testing.T) {
	got := mustParse(t, "{{#ifeq: val| val |t|f}}")
	ifeq, ok := got[0].(ast.IfEq)
	if !ok {
		t.Fatalf("expected IfEq, got %#v", got[0])
	}
	lhs := ifeq.LHS[0].(ast.Text).Content
	if lhs != " val" {
		t.Fatalf("expected untrimmed lhs %q, got %q", " val", lhs)
	}
}

func TestParse_NestedList(t *testing.T) {
	got := mustParse(t, "* a\n** b\n* c")
	want := ast.Nodes{
		ast.List{Ordered: false, Items: []ast.ListItem{
			{Depth: 1, Children: ast.Nodes{ast.Text{Content: "a"}}},
			{Depth: 2, Children: ast.Nodes{ast.Text{Content: "b"}}},
			{Depth: 1, Children: ast.Nodes{ast.Text{Content: "c"}}},
		}},
	}
	if !ast.EqualNodes(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestParse_DefrefRanges(t *testing.T) {
	got := mustParse(t, "[1-3, 4a, 4]")
	want := ast.Nodes{ast.Defref{IDs: []string{"1", "2", "3", "4", "4a"}}}
	if !ast.EqualNodes(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestParse_DefrefSkipSignalDropsSilently(t *testing.T) {
	got := mustParse(t, "a[?]b")
	want := ast.Nodes{ast.Text{Content: "ab"}}
	if !ast.EqualNodes(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestParse_NowikiIsRaw(t *testing.T) {
	got := mustParse(t, "<nowiki>{{not a template}}</nowiki>")
	want := ast.Nodes{ast.Nowiki{Content: "{{not a template}}"}}
	if !ast.EqualNodes(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestParse_ItalicShortcutConsumesCloseTagSymmetrically(t *testing.T) {
	got := mustParse(t, "<i>slanted</i> after")
	italic, ok := got[0].(ast.Italic)
	if !ok {
		t.Fatalf("expected Italic, got %#v", got[0])
	}
	if italic.Children[0].(ast.Text).Content != "slanted" {
		t.Fatalf("unexpected italic content %#v", italic.Children)
	}
	rest := got[1].(ast.Text).Content
	if rest != " after" {
		t.Fatalf("expected close tag fully consumed, trailing text got %q", rest)
	}
}

func TestParse_GenericHTMLMissingCloseKeepsEmptyChildren(t *testing.T) {
	got := mustParse(t, "<div>unterminated")
	div, ok := got[0].(ast.HTML)
	if !ok {
		t.Fatalf("expected HTML, got %#v", got[0])
	}
	if div.Children != nil {
		t.Fatalf("expected no children when close tag is missing, got %#v", div.Children)
	}
	if len(got) < 2 {
		t.Fatalf("expected remaining content reparsed as text, got %#v", got)
	}
}

func TestParse_LinkWithoutLabelClonesURL(t *testing.T) {
	got := mustParse(t, "[[Page Name]]")
	link, ok := got[0].(ast.Link)
	if !ok {
		t.Fatalf("expected Link, got %#v", got[0])
	}
	if !ast.EqualNodes(link.Label, link.URL) {
		t.Fatalf("expected label to equal url, got label=%#v url=%#v", link.Label, link.URL)
	}
}

func TestParse_HTMLAttributeValueCanContainTemplate(t *testing.T) {
	got := mustParse(t, `<div class="{{Foo}}">x</div>`)
	div, ok := got[0].(ast.HTML)
	if !ok {
		t.Fatalf("expected HTML, got %#v", got[0])
	}
	if len(div.Attrs) != 1 {
		t.Fatalf("expected one attribute, got %d", len(div.Attrs))
	}
	if _, ok := div.Attrs[0].Value[0].(ast.Template); !ok {
		t.Fatalf("expected attribute value to contain a parsed template, got %#v", div.Attrs[0].Value)
	}
}
