package render

import "github.com/gowiki/wikiparse/ast"

// Identifier collapses formatting and renders text verbatim, ignoring
// structure — used to turn a template-name (or module/function) subtree
// into the flat string used as a lookup key.
type Identifier struct{}

func (Identifier) RenderNode(n ast.Node) (string, error) {
	switch x := n.(type) {
	case ast.Text:
		return x.Content, nil
	case ast.Bold:
		return Nodes(Identifier{}, x.Children)
	case ast.Italic:
		return Nodes(Identifier{}, x.Children)
	case ast.Underline:
		return Nodes(Identifier{}, x.Children)
	case ast.Noinclude:
		return Nodes(Identifier{}, x.Children)
	case ast.Onlyinclude:
		return Nodes(Identifier{}, x.Children)
	case ast.Includeonly:
		return Nodes(Identifier{}, x.Children)
	case ast.Nowiki:
		return x.Content, nil
	case ast.Newline:
		return "\n", nil
	case ast.Linebreak:
		return "", nil
	default:
		// Decorative/structural nodes collapse to their children's
		// identifier rendering where children exist; otherwise they
		// contribute nothing to the lookup key.
		if children := ast.Children(n); children != nil {
			return Nodes(Identifier{}, children)
		}
		return "", nil
	}
}
