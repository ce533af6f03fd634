// Package inclusion implements the pure, idempotent tree filter that
// decides what survives transclusion: onlyinclude promotion when
// present anywhere, noinclude stripping otherwise, includeonly always
// retained (excluding it is a different concern, applied when a
// template's own page is viewed directly rather than transcluded).
package inclusion

import "github.com/gowiki/wikiparse/ast"

// Filter applies the inclusion filter to nodes: if any onlyinclude
// node is found, the result is the concatenation of their bodies, in
// document order, discarding everything else. Otherwise every noinclude
// node (and its children) is removed at every depth, and includeonly
// nodes are kept.
//
// The onlyinclude search uses ast.Walk, which descends only into the
// child lists ast.Children returns (headings, formatting, lists,
// include containers and HTML element bodies). An onlyinclude inside a
// link, a template, #invoke or parser-function argument, a variable
// default or an HTML attribute value is not found.
func Filter(nodes ast.Nodes) ast.Nodes {
	if onlyincludes := ast.Walk(func(n ast.Node) bool { return n.Kind() == ast.KindOnlyinclude }, nodes); len(onlyincludes) > 0 {
		var out ast.Nodes
		for _, n := range onlyincludes {
			out = append(out, n.(ast.Onlyinclude).Children...)
		}
		// Strip any noinclude nested inside the promoted bodies too, so
		// a second pass (which would no longer see an onlyinclude
		// wrapper) yields the same tree as the first — idempotence.
		return stripNoinclude(out)
	}
	return stripNoinclude(nodes)
}

func stripNoinclude(nodes ast.Nodes) ast.Nodes {
	var out ast.Nodes
	for _, n := range nodes {
		if n.Kind() == ast.KindNoinclude {
			continue
		}
		out = append(out, stripNoincludeChild(n))
	}
	return out
}

// stripNoincludeChild recurses into a single node's children, rebuilding
// it with noinclude descendants removed. Every variant that holds child
// nodes is rebuilt explicitly, including the composite variants
// (Template, Invoke, If, IfEq, IfExist, Switch, HTML) whose named
// sub-slots can themselves contain noinclude nodes (e.g. inside a
// template argument); leaf variants are returned unchanged.
func stripNoincludeChild(n ast.Node) ast.Node {
	switch x := n.(type) {
	case ast.Heading:
		return ast.Heading{Title: stripNoinclude(x.Title), Level: x.Level}
	case ast.Bold:
		return ast.Bold{Children: stripNoinclude(x.Children)}
	case ast.Italic:
		return ast.Italic{Children: stripNoinclude(x.Children)}
	case ast.Underline:
		return ast.Underline{Children: stripNoinclude(x.Children)}
	case ast.ListItem:
		return ast.ListItem{Depth: x.Depth, Children: stripNoinclude(x.Children)}
	case ast.List:
		items := make([]ast.ListItem, len(x.Items))
		for i, it := range x.Items {
			items[i] = ast.ListItem{Depth: it.Depth, Children: stripNoinclude(it.Children)}
		}
		return ast.List{Ordered: x.Ordered, Items: items}
	case ast.Link:
		return ast.Link{Label: stripNoinclude(x.Label), URL: stripNoinclude(x.URL)}
	case ast.Template:
		return ast.Template{Name: stripNoinclude(x.Name), PosArgs: stripPosArgs(x.PosArgs), NamedArgs: stripNamedArgs(x.NamedArgs)}
	case ast.Invoke:
		return ast.Invoke{Module: stripNoinclude(x.Module), Function: stripNoinclude(x.Function), PosArgs: stripPosArgs(x.PosArgs), NamedArgs: stripNamedArgs(x.NamedArgs)}
	case ast.Variable:
		return ast.Variable{Name: stripNoinclude(x.Name), Default: stripNoinclude(x.Default)}
	case ast.If:
		return ast.If{Cond: stripNoinclude(x.Cond), True: stripNoinclude(x.True), False: stripNoinclude(x.False)}
	case ast.IfEq:
		return ast.IfEq{LHS: stripNoinclude(x.LHS), RHS: stripNoinclude(x.RHS), True: stripNoinclude(x.True), False: stripNoinclude(x.False)}
	case ast.IfExist:
		return ast.IfExist{File: stripNoinclude(x.File), True: stripNoinclude(x.True), False: stripNoinclude(x.False)}
	case ast.Switch:
		branches := make([]ast.LinkBranch, len(x.Branches))
		for i, br := range x.Branches {
			branches[i] = ast.LinkBranch{Ref: stripNoinclude(br.Ref), Body: stripNoinclude(br.Body)}
		}
		return ast.Switch{Value: stripNoinclude(x.Value), Branches: branches}
	case ast.Onlyinclude:
		return ast.Onlyinclude{Children: stripNoinclude(x.Children)}
	case ast.Includeonly:
		return ast.Includeonly{Children: stripNoinclude(x.Children)}
	case ast.HTML:
		attrs := make([]ast.HTMLAttrib, len(x.Attrs))
		for i, a := range x.Attrs {
			attrs[i] = ast.HTMLAttrib{Name: stripNoinclude(a.Name), Value: stripNoinclude(a.Value)}
		}
		return ast.HTML{Tag: x.Tag, Attrs: attrs, Children: stripNoinclude(x.Children)}
	default:
		return n
	}
}

func stripPosArgs(args []ast.PosArg) []ast.PosArg {
	if args == nil {
		return nil
	}
	out := make([]ast.PosArg, len(args))
	for i, a := range args {
		out[i] = ast.PosArg{Value: stripNoinclude(a.Value)}
	}
	return out
}

func stripNamedArgs(args []ast.NamedArg) []ast.NamedArg {
	if args == nil {
		return nil
	}
	out := make([]ast.NamedArg, len(args))
	for i, a := range args {
		out[i] = ast.NamedArg{Name: stripNoinclude(a.Name), Value: stripNoinclude(a.Value)}
	}
	return out
}
