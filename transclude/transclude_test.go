package transclude

import (
	"context"
	"testing"

	"github.com/gowiki/wikiparse/ast"
)

type fakeFetcher struct {
	templates map[string]ast.Nodes
	pages     map[string]bool
}

func (f *fakeFetcher) FetchTemplate(ctx context.Context, name string) (ast.Nodes, error) {
	if body, ok := f.templates[name]; ok {
		return body, nil
	}
	return nil, &NotImplementedError{Module: name}
}

func (f *fakeFetcher) PageExists(ctx context.Context, name string) (bool, error) {
	return f.pages[name], nil
}

func TestTransclude_SimpleTemplate(t *testing.T) {
	f := &fakeFetcher{templates: map[string]ast.Nodes{"foo": {ast.Text{Content: "foo"}}}}
	tc := New(f)
	got, err := tc.Transclude(context.Background(), ast.Nodes{ast.Template{Name: ast.Nodes{ast.Text{Content: "foo"}}}}, nil)
	if err != nil {
		t.Fatalf("transclude failed: %v", err)
	}
	want := ast.Nodes{ast.Text{Content: "foo"}}
	if !ast.EqualNodes(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestTransclude_IfEqTrimsBeforeComparing(t *testing.T) {
	f := &fakeFetcher{}
	tc := New(f)
	node := ast.IfEq{
		LHS:   ast.Nodes{ast.Text{Content: " val"}},
		RHS:   ast.Nodes{ast.Text{Content: "val "}},
		True:  ast.Nodes{ast.Text{Content: "t"}},
		False: ast.Nodes{ast.Text{Content: "f"}},
	}
	got, err := tc.Transclude(context.Background(), ast.Nodes{node}, nil)
	if err != nil {
		t.Fatalf("transclude failed: %v", err)
	}
	want := ast.Nodes{ast.Text{Content: "t"}}
	if !ast.EqualNodes(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestTransclude_SwitchWithDefaultFallback(t *testing.T) {
	f := &fakeFetcher{}
	tc := New(f)
	sw := ast.Switch{
		Value: ast.Nodes{ast.Text{Content: "zzz"}},
		Branches: []ast.LinkBranch{
			{Ref: ast.Nodes{ast.Text{Content: "foo"}}, Body: ast.Nodes{ast.Text{Content: "bar"}}},
			{Ref: ast.Nodes{ast.Text{Content: "bar"}}, Body: ast.Nodes{ast.Text{Content: "quux"}}},
			{Ref: ast.Nodes{ast.Text{Content: "baz"}}, Body: ast.Nodes{ast.Text{Content: "quux"}}},
			{Ref: ast.Nodes{ast.Text{Content: "#default"}}, Body: ast.Nodes{ast.Text{Content: "quux"}}},
		},
	}
	got, err := tc.Transclude(context.Background(), ast.Nodes{sw}, nil)
	if err != nil {
		t.Fatalf("transclude failed: %v", err)
	}
	want := ast.Nodes{ast.Text{Content: "quux"}}
	if !ast.EqualNodes(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestTransclude_DepthExceeded(t *testing.T) {
	f := &fakeFetcher{templates: map[string]ast.Nodes{
		"loop": {ast.Template{Name: ast.Nodes{ast.Text{Content: "loop"}}}},
	}}
	tc := New(f, WithMaxDepth(3))
	_, err := tc.Transclude(context.Background(), ast.Nodes{ast.Template{Name: ast.Nodes{ast.Text{Content: "loop"}}}}, nil)
	if err == nil {
		t.Fatalf("expected depth-exceeded error")
	}
	if _, ok := err.(*DepthExceededError); !ok {
		t.Fatalf("expected *DepthExceededError, got %#v", err)
	}
}

func TestTransclude_InvokeWithoutInvokerIsNotImplemented(t *testing.T) {
	f := &fakeFetcher{}
	tc := New(f)
	_, err := tc.Transclude(context.Background(), ast.Nodes{ast.Invoke{
		Module:   ast.Nodes{ast.Text{Content: "Mod"}},
		Function: ast.Nodes{ast.Text{Content: "fn"}},
	}}, nil)
	if _, ok := err.(*NotImplementedError); !ok {
		t.Fatalf("expected *NotImplementedError, got %#v", err)
	}
}

func TestTransclude_VariableDefaultWhenUnbound(t *testing.T) {
	f := &fakeFetcher{}
	tc := New(f)
	v := ast.Variable{Name: ast.Nodes{ast.Text{Content: "missing"}}, Default: ast.Nodes{ast.Text{Content: "fallback"}}}
	got, err := tc.Transclude(context.Background(), ast.Nodes{v}, nil)
	if err != nil {
		t.Fatalf("transclude failed: %v", err)
	}
	want := ast.Nodes{ast.Text{Content: "fallback"}}
	if !ast.EqualNodes(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}
