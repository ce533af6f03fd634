// Package render implements the node-dispatch renderer framework: a
// polymorphic visitor keyed on node tag, with two concrete renderers
// (identifier, HTML).
package render

import (
	"strings"

	"github.com/gowiki/wikiparse/ast"
)

// Renderer renders a single node to its string form. Implementations
// recurse into children themselves (there is no shared dispatch loop
// beyond Nodes, which just joins individual RenderNode calls).
type Renderer interface {
	RenderNode(n ast.Node) (string, error)
}

// Nodes renders a node list by concatenating each node's rendering,
// joined with the empty string.
func Nodes(r Renderer, nodes ast.Nodes) (string, error) {
	var sb strings.Builder
	for _, n := range nodes {
		s, err := r.RenderNode(n)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	return sb.String(), nil
}

// NotImplementedError is raised by a renderer for a node kind it has no
// dispatch entry for.
type NotImplementedError struct {
	Renderer string
	Kind     ast.Kind
}

func (e *NotImplementedError) Error() string {
	return e.Renderer + " renderer: not implemented for node kind " + e.Kind.String()
}
