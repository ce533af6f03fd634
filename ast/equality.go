package ast

// Equal reports whether two nodes have the same tag and deeply equal
// children. Opaque payloads (none exist in this closed variant set) would
// be compared by reference; every variant here is plain data so equality
// is always structural.
func Equal(a, b Node) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case Text:
		return x.Content == b.(Text).Content
	case Newline, Linebreak, TOC, NoTOC:
		return true
	case Heading:
		y := b.(Heading)
		return x.Level == y.Level && EqualNodes(x.Title, y.Title)
	case Bold:
		return EqualNodes(x.Children, b.(Bold).Children)
	case Italic:
		return EqualNodes(x.Children, b.(Italic).Children)
	case Underline:
		return EqualNodes(x.Children, b.(Underline).Children)
	case Indent:
		return x.Count == b.(Indent).Count
	case List:
		y := b.(List)
		if x.Ordered != y.Ordered || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if x.Items[i].Depth != y.Items[i].Depth || !EqualNodes(x.Items[i].Children, y.Items[i].Children) {
				return false
			}
		}
		return true
	case ListItem:
		y := b.(ListItem)
		return x.Depth == y.Depth && EqualNodes(x.Children, y.Children)
	case Link:
		y := b.(Link)
		return EqualNodes(x.Label, y.Label) && EqualNodes(x.URL, y.URL)
	case Template:
		y := b.(Template)
		return EqualNodes(x.Name, y.Name) && equalPosArgs(x.PosArgs, y.PosArgs) && equalNamedArgs(x.NamedArgs, y.NamedArgs)
	case Invoke:
		y := b.(Invoke)
		return EqualNodes(x.Module, y.Module) && EqualNodes(x.Function, y.Function) &&
			equalPosArgs(x.PosArgs, y.PosArgs) && equalNamedArgs(x.NamedArgs, y.NamedArgs)
	case PosArg:
		return EqualNodes(x.Value, b.(PosArg).Value)
	case NamedArg:
		y := b.(NamedArg)
		return EqualNodes(x.Name, y.Name) && EqualNodes(x.Value, y.Value)
	case Variable:
		y := b.(Variable)
		return EqualNodes(x.Name, y.Name) && EqualNodes(x.Default, y.Default)
	case If:
		y := b.(If)
		return EqualNodes(x.Cond, y.Cond) && EqualNodes(x.True, y.True) && EqualNodes(x.False, y.False)
	case IfEq:
		y := b.(IfEq)
		return EqualNodes(x.LHS, y.LHS) && EqualNodes(x.RHS, y.RHS) && EqualNodes(x.True, y.True) && EqualNodes(x.False, y.False)
	case IfExist:
		y := b.(IfExist)
		return EqualNodes(x.File, y.File) && EqualNodes(x.True, y.True) && EqualNodes(x.False, y.False)
	case Switch:
		y := b.(Switch)
		if !EqualNodes(x.Value, y.Value) || len(x.Branches) != len(y.Branches) {
			return false
		}
		for i := range x.Branches {
			if !EqualNodes(x.Branches[i].Ref, y.Branches[i].Ref) || !EqualNodes(x.Branches[i].Body, y.Branches[i].Body) {
				return false
			}
		}
		return true
	case LinkBranch:
		y := b.(LinkBranch)
		return EqualNodes(x.Ref, y.Ref) && EqualNodes(x.Body, y.Body)
	case Nowiki:
		return x.Content == b.(Nowiki).Content
	case Noinclude:
		return EqualNodes(x.Children, b.(Noinclude).Children)
	case Onlyinclude:
		return EqualNodes(x.Children, b.(Onlyinclude).Children)
	case Includeonly:
		return EqualNodes(x.Children, b.(Includeonly).Children)
	case Comment:
		return x.Content == b.(Comment).Content
	case HTML:
		y := b.(HTML)
		if x.Tag != y.Tag || len(x.Attrs) != len(y.Attrs) || !EqualNodes(x.Children, y.Children) {
			return false
		}
		for i := range x.Attrs {
			if !EqualNodes(x.Attrs[i].Name, y.Attrs[i].Name) || !EqualNodes(x.Attrs[i].Value, y.Attrs[i].Value) {
				return false
			}
		}
		return true
	case HTMLAttrib:
		y := b.(HTMLAttrib)
		return EqualNodes(x.Name, y.Name) && EqualNodes(x.Value, y.Value)
	case Defref:
		y := b.(Defref)
		if len(x.IDs) != len(y.IDs) {
			return false
		}
		for i := range x.IDs {
			if x.IDs[i] != y.IDs[i] {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func equalPosArgs(a, b []PosArg) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EqualNodes(a[i].Value, b[i].Value) {
			return false
		}
	}
	return true
}

func equalNamedArgs(a, b []NamedArg) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EqualNodes(a[i].Name, b[i].Name) || !EqualNodes(a[i].Value, b[i].Value) {
			return false
		}
	}
	return true
}

// EqualNodes compares two node lists in order. A nil list equals an
// empty list — both represent "no content"/"absent", e.g. a variable
// with no default.
func EqualNodes(a, b Nodes) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
