package render

import (
	"testing"

	"github.com/gowiki/wikiparse/ast"
	"github.com/gowiki/wikiparse/parser"
)

func TestHTML_NestedQuoteFormatting(t *testing.T) {
	nodes, err := parser.Parse("''italic'''''bold'''")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	got, err := Nodes(HTML{}, nodes)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	want := "<i>italic</i><b>bold</b>"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestHTML_NowikiRendersRaw(t *testing.T) {
	nodes, err := parser.Parse("<nowiki>{{not a template}}</nowiki>")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	got, err := Nodes(HTML{}, nodes)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if got != "{{not a template}}" {
		t.Fatalf("got %q, want raw nowiki content", got)
	}
}

func TestHTML_TextIdempotence(t *testing.T) {
	s := "plain text with no markup at all"
	nodes, err := parser.Parse(s)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	got, err := Nodes(HTML{}, nodes)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if got != s {
		t.Fatalf("got %q, want %q", got, s)
	}
}

func TestHTML_LinkWithLabel(t *testing.T) {
	nodes := ast.Nodes{ast.Link{
		URL:   ast.Nodes{ast.Text{Content: "Home"}},
		Label: ast.Nodes{ast.Text{Content: "go home"}},
	}}
	got, err := Nodes(HTML{}, nodes)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	want := `<a href="Home">go home</a>`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestHTML_AttributeEscaping(t *testing.T) {
	got := EscapeAttr(`she said "hi" \ it's fine`)
	want := `she said \"hi\" \\ it\'s fine`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestHTML_UnknownNodeNotImplemented(t *testing.T) {
	_, err := HTML{}.RenderNode(ast.Template{Name: ast.Nodes{ast.Text{Content: "X"}}})
	var nie *NotImplementedError
	if err == nil {
		t.Fatalf("expected NotImplementedError")
	}
	if ok := asNotImplemented(err, &nie); !ok {
		t.Fatalf("expected *NotImplementedError, got %#v", err)
	}
}

func asNotImplemented(err error, target **NotImplementedError) bool {
	if nie, ok := err.(*NotImplementedError); ok {
		*target = nie
		return true
	}
	return false
}

func TestIdentifier_CollapsesFormatting(t *testing.T) {
	nodes := ast.Nodes{ast.Bold{Children: ast.Nodes{ast.Text{Content: "Foo"}, ast.Italic{Children: ast.Nodes{ast.Text{Content: "Bar"}}}}}}
	got, err := Nodes(Identifier{}, nodes)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if got != "FooBar" {
		t.Fatalf("got %q, want %q", got, "FooBar")
	}
}
