package ast

// Clone deep-copies a node and all its descendant lists. There are no
// opaque payloads in this variant set, so "copies nodes and lists but
// leaves opaque payloads by reference" degenerates to a full deep copy.
func Clone(n Node) Node {
	switch x := n.(type) {
	case Text, Newline, Linebreak, TOC, NoTOC, Nowiki, Comment, Indent:
		return x // value types with no nested Nodes
	case Heading:
		return Heading{Title: CloneNodes(x.Title), Level: x.Level}
	case Bold:
		return Bold{Children: CloneNodes(x.Children)}
	case Italic:
		return Italic{Children: CloneNodes(x.Children)}
	case Underline:
		return Underline{Children: CloneNodes(x.Children)}
	case List:
		items := make([]ListItem, len(x.Items))
		for i, it := range x.Items {
			items[i] = ListItem{Depth: it.Depth, Children: CloneNodes(it.Children)}
		}
		return List{Ordered: x.Ordered, Items: items}
	case ListItem:
		return ListItem{Depth: x.Depth, Children: CloneNodes(x.Children)}
	case Link:
		return Link{Label: CloneNodes(x.Label), URL: CloneNodes(x.URL)}
	case Template:
		return Template{
			Name:      CloneNodes(x.Name),
			PosArgs:   clonePosArgs(x.PosArgs),
			NamedArgs: cloneNamedArgs(x.NamedArgs),
		}
	case Invoke:
		return Invoke{
			Module:    CloneNodes(x.Module),
			Function:  CloneNodes(x.Function),
			PosArgs:   clonePosArgs(x.PosArgs),
			NamedArgs: cloneNamedArgs(x.NamedArgs),
		}
	case PosArg:
		return PosArg{Value: CloneNodes(x.Value)}
	case NamedArg:
		return NamedArg{Name: CloneNodes(x.Name), Value: CloneNodes(x.Value)}
	case Variable:
		return Variable{Name: CloneNodes(x.Name), Default: CloneNodes(x.Default)}
	case If:
		return If{Cond: CloneNodes(x.Cond), True: CloneNodes(x.True), False: CloneNodes(x.False)}
	case IfEq:
		return IfEq{LHS: CloneNodes(x.LHS), RHS: CloneNodes(x.RHS), True: CloneNodes(x.True), False: CloneNodes(x.False)}
	case IfExist:
		return IfExist{File: CloneNodes(x.File), True: CloneNodes(x.True), False: CloneNodes(x.False)}
	case Switch:
		branches := make([]LinkBranch, len(x.Branches))
		for i, br := range x.Branches {
			branches[i] = LinkBranch{Ref: CloneNodes(br.Ref), Body: CloneNodes(br.Body)}
		}
		return Switch{Value: CloneNodes(x.Value), Branches: branches}
	case LinkBranch:
		return LinkBranch{Ref: CloneNodes(x.Ref), Body: CloneNodes(x.Body)}
	case Noinclude:
		return Noinclude{Children: CloneNodes(x.Children)}
	case Onlyinclude:
		return Onlyinclude{Children: CloneNodes(x.Children)}
	case Includeonly:
		return Includeonly{Children: CloneNodes(x.Children)}
	case HTML:
		attrs := make([]HTMLAttrib, len(x.Attrs))
		for i, a := range x.Attrs {
			attrs[i] = HTMLAttrib{Name: CloneNodes(a.Name), Value: CloneNodes(a.Value)}
		}
		return HTML{Tag: x.Tag, Attrs: attrs, Children: CloneNodes(x.Children)}
	case HTMLAttrib:
		return HTMLAttrib{Name: CloneNodes(x.Name), Value: CloneNodes(x.Value)}
	case Defref:
		ids := make([]string, len(x.IDs))
		copy(ids, x.IDs)
		return Defref{IDs: ids}
	default:
		return n
	}
}

func clonePosArgs(in []PosArg) []PosArg {
	if in == nil {
		return nil
	}
	out := make([]PosArg, len(in))
	for i, a := range in {
		out[i] = PosArg{Value: CloneNodes(a.Value)}
	}
	return out
}

func cloneNamedArgs(in []NamedArg) []NamedArg {
	if in == nil {
		return nil
	}
	out := make([]NamedArg, len(in))
	for i, a := range in {
		out[i] = NamedArg{Name: CloneNodes(a.Name), Value: CloneNodes(a.Value)}
	}
	return out
}

// CloneNodes deep-copies a node list.
func CloneNodes(ns Nodes) Nodes {
	if ns == nil {
		return nil
	}
	out := make(Nodes, len(ns))
	for i, n := range ns {
		out[i] = Clone(n)
	}
	return out
}

// Walk calls pred on every node in the tree (pre-order) for which it
// returns true are collected and returned; recursion continues into
// every node's children regardless of whether pred matched, mirroring
// original_source's find_nodes tree walker.
func Walk(pred func(Node) bool, ns Nodes) []Node {
	var found []Node
	var visit func(Nodes)
	visit = func(list Nodes) {
		for _, n := range list {
			if pred(n) {
				found = append(found, n)
			}
			visit(Children(n))
		}
	}
	visit(ns)
	return found
}

// Children returns the direct child node list of n, or nil for leaf
// variants and variants whose "children" are structured into named
// sub-slots rather than a single Nodes list (Template, Invoke, Switch,
// HTML attributes) — callers that need those slots address them
// directly via the node's own fields.
func Children(n Node) Nodes {
	switch x := n.(type) {
	case Heading:
		return x.Title
	case Bold:
		return x.Children
	case Italic:
		return x.Children
	case Underline:
		return x.Children
	case ListItem:
		return x.Children
	case Noinclude:
		return x.Children
	case Onlyinclude:
		return x.Children
	case Includeonly:
		return x.Children
	case HTML:
		return x.Children
	case List:
		var all Nodes
		for _, it := range x.Items {
			all = append(all, it.Children...)
		}
		return all
	default:
		return nil
	}
}
