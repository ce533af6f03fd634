package parser

import (
	"strings"

	"github.com/gowiki/wikiparse/ast"
	"github.com/gowiki/wikiparse/reader"
)

// parseHTMLConstruct handles raw HTML starting at a '<': comments,
// <nowiki>, the include-control containers, the <b>/<i>/<u> formatting
// shortcuts, <br>, and generic passthrough tags.
func (p *Parser) parseHTMLConstruct() (ast.Node, error) {
	if ok, _ := p.r.PeekStr("<!--", true, true); ok {
		return p.parseHTMLComment()
	}

	tag, attrs, selfClosing, err := p.parseOpenTag()
	if err != nil {
		return nil, err
	}

	switch tag {
	case "nowiki":
		return p.parseNowikiBody(selfClosing)
	case "noinclude":
		return p.parseStrictContainer(selfClosing, "noinclude", func(ch ast.Nodes) ast.Node { return ast.Noinclude{Children: ch} })
	case "onlyinclude":
		return p.parseStrictContainer(selfClosing, "onlyinclude", func(ch ast.Nodes) ast.Node { return ast.Onlyinclude{Children: ch} })
	case "includeonly":
		return p.parseStrictContainer(selfClosing, "includeonly", func(ch ast.Nodes) ast.Node { return ast.Includeonly{Children: ch} })
	case "b":
		return p.parseStrictContainer(selfClosing, "b", func(ch ast.Nodes) ast.Node { return ast.Bold{Children: ch} })
	case "i":
		return p.parseStrictContainer(selfClosing, "i", func(ch ast.Nodes) ast.Node { return ast.Italic{Children: ch} })
	case "u":
		return p.parseStrictContainer(selfClosing, "u", func(ch ast.Nodes) ast.Node { return ast.Underline{Children: ch} })
	case "br":
		return ast.Linebreak{}, nil
	default:
		var children ast.Nodes
		if !selfClosing {
			children, err = p.parseHTMLChildren(tag)
			if err != nil {
				return nil, err
			}
		}
		return ast.HTML{Tag: tag, Attrs: attrs, Children: children}, nil
	}
}

// parseStrictContainer is shared by the include-control tags and the
// <b>/<i>/<u> shortcuts. All three require their matching close tag; a
// missing close fails the whole construct (the '<' falls back to
// literal text), unlike the generic-HTML case below which tolerates it.
func (p *Parser) parseStrictContainer(selfClosing bool, name string, build func(ast.Nodes) ast.Node) (ast.Node, error) {
	if selfClosing {
		return build(nil), nil
	}
	children, err := p.parseText(func(r *reader.Reader) bool { return p.peekCloseTagLoose(name) }, true, ast.StripNone)
	if err != nil {
		return nil, err
	}
	if !p.consumeCloseTagLoose(name) {
		return nil, p.fail("missing closing tag for <" + name + ">")
	}
	return build(children), nil
}

// parseHTMLChildren is the generic-tag case: if no matching close tag
// is found before EOF, the children are discarded and the cursor is
// rewound to just after the open tag, so the tag is kept with no
// children and whatever follows is reparsed normally.
func (p *Parser) parseHTMLChildren(tag string) (ast.Nodes, error) {
	afterOpen := p.r.Snapshot()
	children, err := p.parseText(func(r *reader.Reader) bool { return p.peekCloseTagLoose(tag) }, false, ast.StripNone)
	if err != nil {
		return nil, err
	}
	if !p.consumeCloseTagLoose(tag) {
		p.r.Restore(afterOpen)
		return nil, nil
	}
	return children, nil
}

func (p *Parser) parseNowikiBody(selfClosing bool) (ast.Node, error) {
	if selfClosing {
		return ast.Nowiki{Content: ""}, nil
	}
	var sb strings.Builder
	for {
		if p.peekCloseTagLoose("nowiki") {
			p.consumeCloseTagLoose("nowiki")
			return ast.Nowiki{Content: sb.String()}, nil
		}
		if p.r.AtEOF() {
			return nil, &reader.EOFError{Pos: p.r.Pos()}
		}
		b, _ := p.r.Next()
		sb.WriteByte(b)
	}
}

func (p *Parser) parseHTMLComment() (ast.Node, error) {
	if ok, _ := p.r.Consume("<!--", true, false); !ok {
		return nil, p.fail("not a comment")
	}
	var sb strings.Builder
	for {
		if ok, _ := p.r.PeekStr("-->", true, true); ok {
			p.r.Skip(3)
			return ast.Comment{Content: strings.TrimRight(sb.String(), " -")}, nil
		}
		if p.r.AtEOF() {
			return nil, &reader.EOFError{Pos: p.r.Pos()}
		}
		b, _ := p.r.Next()
		sb.WriteByte(b)
	}
}

// parseOpenTag reads `<tagname attr attr="value" ...>` or its
// self-closing form, whitespace-tolerant around the name, slash and
// brackets, case-sensitive in the name itself.
func (p *Parser) parseOpenTag() (string, []ast.HTMLAttrib, bool, error) {
	if ok, _ := p.r.Consume("<", true, false); !ok {
		return "", nil, false, p.fail("expected '<'")
	}
	p.skipHSpace()
	prefix := ""
	if ok, _ := p.r.Consume(":", true, true); ok {
		prefix = ":"
	}
	name := p.readTagName()
	if name == "" {
		return "", nil, false, p.fail("invalid tag name")
	}
	tag := prefix + name

	var attrs []ast.HTMLAttrib
	for {
		p.skipHSpace()
		if ok, _ := p.r.PeekStr("/>", true, true); ok {
			break
		}
		if ok, _ := p.r.PeekStr(">", true, true); ok {
			break
		}
		if p.r.AtEOF() {
			return "", nil, false, p.fail("unterminated tag")
		}
		attr, err := p.parseHTMLAttr()
		if err != nil {
			return "", nil, false, err
		}
		attrs = append(attrs, attr)
	}

	p.skipHSpace()
	selfClosing := false
	if ok, _ := p.r.Consume("/>", true, true); ok {
		selfClosing = true
	} else if ok, _ := p.r.Consume(">", true, false); !ok {
		return "", nil, false, p.fail("unterminated tag")
	}
	return tag, attrs, selfClosing, nil
}

func (p *Parser) readTagName() string {
	var sb strings.Builder
	first := true
	for {
		b := p.r.PeekByte()
		if first {
			if !isAlpha(b) {
				break
			}
		} else if !(isAlphaNum(b) || b == ':' || b == '_' || b == '-') {
			break
		}
		sb.WriteByte(b)
		p.r.Skip(1)
		first = false
	}
	return sb.String()
}

func (p *Parser) readAttrName() string {
	var sb strings.Builder
	for {
		b := p.r.PeekByte()
		if !(isAlphaNum(b) || b == '-' || b == '_' || b == ':') {
			break
		}
		sb.WriteByte(b)
		p.r.Skip(1)
	}
	return sb.String()
}

// parseHTMLAttr handles `name` and `name="value"`. The value is parsed
// with the ordinary text production so it can contain nested `{{...}}`
// braces.
func (p *Parser) parseHTMLAttr() (ast.HTMLAttrib, error) {
	name := p.readAttrName()
	if name == "" {
		return ast.HTMLAttrib{}, p.fail("expected attribute name")
	}
	p.skipHSpace()
	if ok, _ := p.r.Consume("=", true, true); ok {
		p.skipHSpace()
		if ok, _ := p.r.Consume("\"", true, false); !ok {
			return ast.HTMLAttrib{}, p.fail("expected quoted attribute value")
		}
		val, err := p.parseText(byteTerm('"'), true, ast.StripNone)
		if err != nil {
			return ast.HTMLAttrib{}, err
		}
		if ok, _ := p.r.Consume("\"", true, false); !ok {
			return ast.HTMLAttrib{}, p.fail("unterminated attribute value")
		}
		return ast.HTMLAttrib{Name: ast.Nodes{ast.Text{Content: name}}, Value: val}, nil
	}
	return ast.HTMLAttrib{Name: ast.Nodes{ast.Text{Content: name}}, Value: nil}, nil
}
