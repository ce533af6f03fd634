package render

import (
	"fmt"
	"strings"

	"github.com/gowiki/wikiparse/ast"
)

// HTML renders the AST to standard HTML. Meta tags (noinclude,
// includeonly, onlyinclude) render their children only — the inclusion
// filter is what actually decides whether they belong in the tree being
// rendered; by the time a tree reaches HTML it is assumed already
// filtered, and these are a transparent fallback. nowiki's content is
// emitted completely raw, with no escaping: it is, by definition, the
// literal text the author wrote.
type HTML struct{}

func (h HTML) RenderNode(n ast.Node) (string, error) {
	switch x := n.(type) {
	case ast.Text:
		return x.Content, nil
	case ast.Newline:
		return "\n", nil
	case ast.Linebreak:
		return "<br>", nil
	case ast.Heading:
		body, err := Nodes(h, x.Title)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("<h%d>%s</h%d>", x.Level, body, x.Level), nil
	case ast.Bold:
		body, err := Nodes(h, x.Children)
		if err != nil {
			return "", err
		}
		return "<b>" + body + "</b>", nil
	case ast.Italic:
		body, err := Nodes(h, x.Children)
		if err != nil {
			return "", err
		}
		return "<i>" + body + "</i>", nil
	case ast.Underline:
		body, err := Nodes(h, x.Children)
		if err != nil {
			return "", err
		}
		return "<u>" + body + "</u>", nil
	case ast.Indent:
		return strings.Repeat(":", x.Count), nil
	case ast.List:
		return h.renderList(x)
	case ast.Link:
		url, err := Nodes(h, x.URL)
		if err != nil {
			return "", err
		}
		label, err := Nodes(h, x.Label)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(`<a href="%s">%s</a>`, EscapeAttr(url), label), nil
	case ast.Nowiki:
		return x.Content, nil
	case ast.Comment:
		return "", nil
	case ast.Noinclude:
		return Nodes(h, x.Children)
	case ast.Onlyinclude:
		return Nodes(h, x.Children)
	case ast.Includeonly:
		return Nodes(h, x.Children)
	case ast.HTML:
		return h.renderGenericHTML(x)
	case ast.TOC, ast.NoTOC:
		return "", nil
	default:
		return "", &NotImplementedError{Renderer: "html", Kind: n.Kind()}
	}
}

func (h HTML) renderList(l ast.List) (string, error) {
	tag := "ul"
	if l.Ordered {
		tag = "ol"
	}
	var sb strings.Builder
	sb.WriteString("<" + tag + ">")
	for _, item := range l.Items {
		body, err := Nodes(h, item.Children)
		if err != nil {
			return "", err
		}
		sb.WriteString(fmt.Sprintf(`<li data-depth="%d">%s</li>`, item.Depth, body))
	}
	sb.WriteString("</" + tag + ">")
	return sb.String(), nil
}

func (h HTML) renderGenericHTML(x ast.HTML) (string, error) {
	var sb strings.Builder
	sb.WriteString("<" + x.Tag)
	for _, attr := range x.Attrs {
		name, err := Nodes(h, attr.Name)
		if err != nil {
			return "", err
		}
		if attr.Value == nil {
			sb.WriteString(" " + name)
			continue
		}
		val, err := Nodes(h, attr.Value)
		if err != nil {
			return "", err
		}
		sb.WriteString(fmt.Sprintf(` %s="%s"`, name, EscapeAttr(val)))
	}
	sb.WriteString(">")
	children, err := Nodes(h, x.Children)
	if err != nil {
		return "", err
	}
	sb.WriteString(children)
	sb.WriteString("</" + x.Tag + ">")
	return sb.String(), nil
}

// EscapeAttr escapes an attribute value by backslash-prefixing '"', '\''
// and '\\'. Deliberately not html.EscapeString, which escapes a
// different character set for a different purpose (entity escaping,
// not the backslash scheme this renderer's output grammar expects
// downstream).
func EscapeAttr(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"', '\'', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}
