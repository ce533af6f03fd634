// Package transclude implements the transclusion engine: per-node-tag
// tree rewriting that expands template, variable, if, ifeq, ifexist,
// switch, and invoke nodes against a Variables map, re-entering the
// parser on freshly fetched template sources as needed.
package transclude

import (
	"context"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/gowiki/wikiparse/ast"
	"github.com/gowiki/wikiparse/inclusion"
	"github.com/gowiki/wikiparse/render"
)

const defaultMaxDepth = 40

// Variables maps an identifier to the node list bound to it — template
// positional/named arguments.
type Variables map[string]ast.Nodes

// Fetcher is the external collaborator that resolves template bodies
// and checks page existence. Invoke is a separate, optional
// collaborator (see WithInvoker) since Lua execution is out of this
// engine's scope.
type Fetcher interface {
	FetchTemplate(ctx context.Context, name string) (ast.Nodes, error)
	PageExists(ctx context.Context, name string) (bool, error)
}

// Invoker executes a `#invoke:module|function` call against already
// HTML-rendered args-as-text-keys. When no Invoker is configured,
// #invoke fails with NotImplementedError rather than silently no-oping.
type Invoker interface {
	Invoke(ctx context.Context, module, function string, vars Variables) (string, error)
}

// Option configures a Transcluder via the functional-options pattern.
type Option func(*Transcluder)

func WithMaxDepth(n int) Option {
	return func(t *Transcluder) { t.maxDepth = n }
}

func WithInvoker(inv Invoker) Option {
	return func(t *Transcluder) { t.invoker = inv }
}

// Transcluder expands a tree against a Fetcher. It is safe for
// concurrent use by multiple goroutines sharing the same cache, which
// is the point: sibling template fetches within one Transclude call are
// dispatched concurrently via errgroup and stitched back in source
// order.
type Transcluder struct {
	fetcher  Fetcher
	invoker  Invoker
	maxDepth int
	cache    *pageCache
}

func New(fetcher Fetcher, opts ...Option) *Transcluder {
	t := &Transcluder{fetcher: fetcher, maxDepth: defaultMaxDepth, cache: newPageCache()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Transclude expands nodes against vars (nil means "no bindings").
func (t *Transcluder) Transclude(ctx context.Context, nodes ast.Nodes, vars Variables) (ast.Nodes, error) {
	if vars == nil {
		vars = Variables{}
	}
	return t.transcludeNodes(ctx, nodes, vars, 0)
}

// transcludeNodes expands every node in the list, splicing each node's
// result into the position it occupied. Independent siblings are
// expanded concurrently (errgroup) since a template fetch is this
// engine's only suspension point; results are stitched back in the
// original source order regardless of completion order.
func (t *Transcluder) transcludeNodes(ctx context.Context, nodes ast.Nodes, vars Variables, depth int) (ast.Nodes, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	results := make([]ast.Nodes, len(nodes))
	g, gctx := errgroup.WithContext(ctx)
	for i, n := range nodes {
		i, n := i, n
		g.Go(func() error {
			out, err := t.transcludeNode(gctx, n, vars, depth)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var out ast.Nodes
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

// transcludeNode dispatches a single node. The seven magic-word kinds
// splice a node list in place of themselves; everything else is
// rebuilt with its own children transcluded, so a template/variable
// buried arbitrarily deep (inside a heading title, a list item, an
// HTML attribute value) is still found and expanded.
func (t *Transcluder) transcludeNode(ctx context.Context, n ast.Node, vars Variables, depth int) (ast.Nodes, error) {
	switch x := n.(type) {
	case ast.Template:
		return t.transcludeTemplate(ctx, x, vars, depth)
	case ast.Variable:
		return t.transcludeVariable(ctx, x, vars, depth)
	case ast.If:
		return t.transcludeIf(ctx, x, vars, depth)
	case ast.IfEq:
		return t.transcludeIfEq(ctx, x, vars, depth)
	case ast.IfExist:
		return t.transcludeIfExist(ctx, x, vars, depth)
	case ast.Switch:
		return t.transcludeSwitch(ctx, x, vars, depth)
	case ast.Invoke:
		return t.transcludeInvoke(ctx, x, vars)
	default:
		rebuilt, err := t.rebuildChildren(ctx, n, vars, depth)
		if err != nil {
			return nil, err
		}
		return ast.Nodes{rebuilt}, nil
	}
}

// rebuildChildren recurses into the structural (non-magic-word)
// variants' own children. Leaf variants (Text, Newline, Linebreak,
// Indent, Nowiki, Comment, Defref, TOC, NoTOC) pass through unchanged.
func (t *Transcluder) rebuildChildren(ctx context.Context, n ast.Node, vars Variables, depth int) (ast.Node, error) {
	switch x := n.(type) {
	case ast.Heading:
		title, err := t.transcludeNodes(ctx, x.Title, vars, depth)
		if err != nil {
			return nil, err
		}
		return ast.Heading{Title: title, Level: x.Level}, nil
	case ast.Bold:
		children, err := t.transcludeNodes(ctx, x.Children, vars, depth)
		if err != nil {
			return nil, err
		}
		return ast.Bold{Children: children}, nil
	case ast.Italic:
		children, err := t.transcludeNodes(ctx, x.Children, vars, depth)
		if err != nil {
			return nil, err
		}
		return ast.Italic{Children: children}, nil
	case ast.Underline:
		children, err := t.transcludeNodes(ctx, x.Children, vars, depth)
		if err != nil {
			return nil, err
		}
		return ast.Underline{Children: children}, nil
	case ast.ListItem:
		children, err := t.transcludeNodes(ctx, x.Children, vars, depth)
		if err != nil {
			return nil, err
		}
		return ast.ListItem{Depth: x.Depth, Children: children}, nil
	case ast.List:
		items := make([]ast.ListItem, len(x.Items))
		for i, it := range x.Items {
			children, err := t.transcludeNodes(ctx, it.Children, vars, depth)
			if err != nil {
				return nil, err
			}
			items[i] = ast.ListItem{Depth: it.Depth, Children: children}
		}
		return ast.List{Ordered: x.Ordered, Items: items}, nil
	case ast.Link:
		label, err := t.transcludeNodes(ctx, x.Label, vars, depth)
		if err != nil {
			return nil, err
		}
		url, err := t.transcludeNodes(ctx, x.URL, vars, depth)
		if err != nil {
			return nil, err
		}
		return ast.Link{Label: label, URL: url}, nil
	case ast.Noinclude:
		children, err := t.transcludeNodes(ctx, x.Children, vars, depth)
		if err != nil {
			return nil, err
		}
		return ast.Noinclude{Children: children}, nil
	case ast.Onlyinclude:
		children, err := t.transcludeNodes(ctx, x.Children, vars, depth)
		if err != nil {
			return nil, err
		}
		return ast.Onlyinclude{Children: children}, nil
	case ast.Includeonly:
		children, err := t.transcludeNodes(ctx, x.Children, vars, depth)
		if err != nil {
			return nil, err
		}
		return ast.Includeonly{Children: children}, nil
	case ast.HTML:
		attrs := make([]ast.HTMLAttrib, len(x.Attrs))
		for i, a := range x.Attrs {
			name, err := t.transcludeNodes(ctx, a.Name, vars, depth)
			if err != nil {
				return nil, err
			}
			val, err := t.transcludeNodes(ctx, a.Value, vars, depth)
			if err != nil {
				return nil, err
			}
			attrs[i] = ast.HTMLAttrib{Name: name, Value: val}
		}
		children, err := t.transcludeNodes(ctx, x.Children, vars, depth)
		if err != nil {
			return nil, err
		}
		return ast.HTML{Tag: x.Tag, Attrs: attrs, Children: children}, nil
	default:
		return n, nil
	}
}

func (t *Transcluder) transcludeTemplate(ctx context.Context, tpl ast.Template, vars Variables, depth int) (ast.Nodes, error) {
	if depth >= t.maxDepth {
		return nil, &DepthExceededError{Depth: depth, Max: t.maxDepth}
	}
	name, err := render.Nodes(render.Identifier{}, tpl.Name)
	if err != nil {
		return nil, err
	}
	body, err := t.cache.fetch(name, func() (ast.Nodes, error) {
		return t.fetcher.FetchTemplate(ctx, name)
	})
	if err != nil {
		return nil, err
	}

	newVars, err := argsToVars(tpl.PosArgs, tpl.NamedArgs)
	if err != nil {
		return nil, err
	}
	expanded, err := t.transcludeNodes(ctx, body, newVars, depth+1)
	if err != nil {
		return nil, err
	}
	return inclusion.Filter(expanded), nil
}

// argsToVars builds a Variables map from template/invoke arguments:
// positional args get keys "1", "2", ...; named args get keys equal to
// the HTML rendering of their name (not the identifier renderer — name
// values may themselves be dynamic). Later named entries win on key
// collision.
func argsToVars(pos []ast.PosArg, named []ast.NamedArg) (Variables, error) {
	vars := make(Variables, len(pos)+len(named))
	for i, a := range pos {
		vars[strconv.Itoa(i+1)] = a.Value
	}
	for _, a := range named {
		key, err := render.Nodes(render.HTML{}, a.Name)
		if err != nil {
			return nil, err
		}
		vars[key] = a.Value
	}
	return vars, nil
}

// transcludeVariable looks up {{{name|default}}}. The bound/default
// value is itself recursively transcluded (against the same vars and
// depth) rather than spliced raw, so that a template nested inside an
// argument value is still expanded by the time transclusion returns —
// required for the "no magic-word node survives one pass" fixpoint
// property to hold when an argument's own content isn't already fully
// expanded.
func (t *Transcluder) transcludeVariable(ctx context.Context, v ast.Variable, vars Variables, depth int) (ast.Nodes, error) {
	key, err := render.Nodes(render.HTML{}, v.Name)
	if err != nil {
		return nil, err
	}
	if bound, ok := vars[key]; ok {
		return t.transcludeNodes(ctx, bound, vars, depth)
	}
	if v.Default != nil {
		return t.transcludeNodes(ctx, v.Default, vars, depth)
	}
	return nil, nil
}

func (t *Transcluder) transcludeIf(ctx context.Context, x ast.If, vars Variables, depth int) (ast.Nodes, error) {
	cond, err := t.transcludeNodes(ctx, x.Cond, vars, depth)
	if err != nil {
		return nil, err
	}
	rendered, err := render.Nodes(render.HTML{}, cond)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(rendered) != "" {
		return t.transcludeNodes(ctx, x.True, vars, depth)
	}
	return t.transcludeNodes(ctx, x.False, vars, depth)
}

func (t *Transcluder) transcludeIfEq(ctx context.Context, x ast.IfEq, vars Variables, depth int) (ast.Nodes, error) {
	lhsNodes, err := t.transcludeNodes(ctx, x.LHS, vars, depth)
	if err != nil {
		return nil, err
	}
	rhsNodes, err := t.transcludeNodes(ctx, x.RHS, vars, depth)
	if err != nil {
		return nil, err
	}
	lhs, err := render.Nodes(render.HTML{}, lhsNodes)
	if err != nil {
		return nil, err
	}
	rhs, err := render.Nodes(render.HTML{}, rhsNodes)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(lhs) == strings.TrimSpace(rhs) {
		return t.transcludeNodes(ctx, x.True, vars, depth)
	}
	return t.transcludeNodes(ctx, x.False, vars, depth)
}

func (t *Transcluder) transcludeIfExist(ctx context.Context, x ast.IfExist, vars Variables, depth int) (ast.Nodes, error) {
	fileNodes, err := t.transcludeNodes(ctx, x.File, vars, depth)
	if err != nil {
		return nil, err
	}
	file, err := render.Nodes(render.HTML{}, fileNodes)
	if err != nil {
		return nil, err
	}
	exists, err := t.fetcher.PageExists(ctx, strings.TrimSpace(file))
	if err != nil {
		return nil, err
	}
	if exists {
		return t.transcludeNodes(ctx, x.True, vars, depth)
	}
	return t.transcludeNodes(ctx, x.False, vars, depth)
}

func (t *Transcluder) transcludeSwitch(ctx context.Context, x ast.Switch, vars Variables, depth int) (ast.Nodes, error) {
	valueNodes, err := t.transcludeNodes(ctx, x.Value, vars, depth)
	if err != nil {
		return nil, err
	}
	value, err := render.Nodes(render.HTML{}, valueNodes)
	if err != nil {
		return nil, err
	}
	value = strings.TrimSpace(value)

	branchesByRef := make(map[string]ast.Nodes, len(x.Branches))
	for _, br := range x.Branches {
		refNodes, err := t.transcludeNodes(ctx, br.Ref, vars, depth)
		if err != nil {
			return nil, err
		}
		ref, err := render.Nodes(render.HTML{}, refNodes)
		if err != nil {
			return nil, err
		}
		branchesByRef[strings.TrimSpace(ref)] = br.Body
	}

	if body, ok := branchesByRef[value]; ok {
		return t.transcludeNodes(ctx, body, vars, depth)
	}
	if body, ok := branchesByRef["#default"]; ok {
		return t.transcludeNodes(ctx, body, vars, depth)
	}
	return nil, nil
}

func (t *Transcluder) transcludeInvoke(ctx context.Context, x ast.Invoke, vars Variables) (ast.Nodes, error) {
	module, err := render.Nodes(render.Identifier{}, x.Module)
	if err != nil {
		return nil, err
	}
	function, err := render.Nodes(render.Identifier{}, x.Function)
	if err != nil {
		return nil, err
	}
	if t.invoker == nil {
		return nil, &NotImplementedError{Module: module, Function: function}
	}
	callVars, err := argsToVars(x.PosArgs, x.NamedArgs)
	if err != nil {
		return nil, err
	}
	result, err := t.invoker.Invoke(ctx, module, function, callVars)
	if err != nil {
		return nil, err
	}
	return ast.Nodes{ast.Text{Content: result}}, nil
}
