package ast

import "strings"

// Strip controls which end(s) of a leading/trailing Text node
// parse_text trims once a production completes.
type Strip int

const (
	StripNone Strip = iota
	StripLeft
	StripRight
	StripBoth
)

// TrimText applies strip to a node list's first/last Text nodes and
// drops any Text node that becomes empty, preserving the "no Text node
// has empty string content" invariant. Non-Text boundary nodes are left
// alone: only a leading/trailing node that is actually a Text node gets
// trimmed, matching parse_text's "flushing to a text node" boundary.
func TrimText(nodes Nodes, strip Strip) Nodes {
	if len(nodes) == 0 || strip == StripNone {
		return nodes
	}
	out := make(Nodes, len(nodes))
	copy(out, nodes)

	if strip == StripLeft || strip == StripBoth {
		if t, ok := out[0].(Text); ok {
			out[0] = Text{Content: strings.TrimLeft(t.Content, " \t\r\n")}
		}
	}
	if strip == StripRight || strip == StripBoth {
		last := len(out) - 1
		if t, ok := out[last].(Text); ok {
			out[last] = Text{Content: strings.TrimRight(t.Content, " \t\r\n")}
		}
	}

	var filtered Nodes
	for _, n := range out {
		if t, ok := n.(Text); ok && t.Content == "" {
			continue
		}
		filtered = append(filtered, n)
	}
	return filtered
}
