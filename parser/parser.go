// Package parser implements the WikiText recursive-descent grammar: a
// non-LL(k) mix of line-start anchored constructs, ambiguous two- and
// three-character openers, and raw HTML, parsed directly against a
// reader.Reader with explicit speculation at every ambiguous point.
//
// Scanning and parsing are fused into one set of recursive parseXxx
// methods rather than split into separate lexer/parser passes, since
// whether "{{" opens a template or is just text can depend on what
// follows arbitrarily far ahead.
package parser

import (
	"strings"

	"github.com/gowiki/wikiparse/ast"
	"github.com/gowiki/wikiparse/reader"
)

// Directives is the leading block of a page: TOC markers and whatever
// else parse_directives recognizes, collected before any body node.
type Directives struct {
	Nodes ast.Nodes
}

// Parser holds the mutable cursor for one parse. It is never shared
// across goroutines; callers constructing page trees concurrently must
// construct one Parser per source.
type Parser struct {
	r    *reader.Reader
	file string
}

// New creates a Parser over source. file is used only for diagnostics
// (ParseError.File).
func New(source, file string) *Parser {
	return &Parser{r: reader.New(source), file: file}
}

// Parse parses source to completion and returns the body nodes. It
// does not look for directives; use ParsePage for that.
func Parse(source string) (ast.Nodes, error) {
	return New(source, "").Parse()
}

// Parse is the instance form of the package-level Parse function.
func (p *Parser) Parse() (ast.Nodes, error) {
	return p.parseText(eofTerm, false, ast.StripNone)
}

// ParsePage implements `parse_page(source, file) → (directives, nodes)`:
// it first runs parse_directives, then parse_text terminated by end of
// input. If a directive signals a redirect, parsing stops immediately
// and the RedirectSignal propagates to the caller (it is not wrapped in
// an error return — it is returned as err exactly like a ParseError
// would be, and callers distinguish it with errors.As).
func ParsePage(source, file string) (Directives, ast.Nodes, error) {
	return New(source, file).ParsePage()
}

func (p *Parser) ParsePage() (Directives, ast.Nodes, error) {
	dirs, err := p.parseDirectives()
	if err != nil {
		// RedirectSignal is the only error parseDirectives can return
		// that isn't swallowed internally; propagate it untouched.
		return Directives{}, nil, err
	}
	body, err := p.parseText(eofTerm, false, ast.StripNone)
	if err != nil {
		return Directives{}, nil, err
	}
	return Directives{Nodes: dirs}, body, nil
}

// parseDirectives loops reading parseDirective until one fails;
// failure restores the cursor (handled by Speculate) and ends the loop
// normally. A RedirectSignal is not a failure in this sense — it
// propagates straight out, since §7 says it "bypasses ordinary error
// handling by design."
func (p *Parser) parseDirectives() (ast.Nodes, error) {
	var out ast.Nodes
	for {
		var node ast.Node
		err := p.r.Speculate(func() error {
			n, e := p.parseDirective()
			if e != nil {
				return e
			}
			node = n
			return nil
		})
		if err != nil {
			if _, isRedirect := err.(*RedirectSignal); isRedirect {
				return nil, err
			}
			// ParseError (or EOF): no more directives.
			return out, nil
		}
		if node != nil {
			out = append(out, node)
		}
	}
}

// parseDirective recognizes one leading-block directive: __TOC__,
// __NOTOC__, or a #REDIRECT/#WEITERLEITUNG line.
func (p *Parser) parseDirective() (ast.Node, error) {
	if ok, _ := p.r.Consume("__toc__", false, true); ok {
		return ast.TOC{}, nil
	}
	if ok, _ := p.r.Consume("__notoc__", false, true); ok {
		return ast.NoTOC{}, nil
	}
	if ok, _ := p.r.PeekStr("#", true, true); ok {
		return p.parseRedirectLine()
	}
	return nil, p.fail("not a directive")
}

func (p *Parser) parseRedirectLine() (ast.Node, error) {
	if _, err := p.r.Next(); err != nil { // consume '#'
		return nil, err
	}
	rest := p.r.ConsumeUntil(func(b byte) bool { return b == '\n' })
	trimmed := strings.TrimSpace(rest)
	lower := strings.ToLower(trimmed)
	var afterKeyword string
	switch {
	case strings.HasPrefix(lower, "redirect"):
		afterKeyword = strings.TrimSpace(trimmed[len("redirect"):])
	case strings.HasPrefix(lower, "weiterleitung"):
		afterKeyword = strings.TrimSpace(trimmed[len("weiterleitung"):])
	default:
		return nil, p.fail("not a redirect directive")
	}
	target, ok := extractLinkTarget(afterKeyword)
	if !ok {
		return nil, p.fail("redirect directive missing [[target]]")
	}
	return nil, &RedirectSignal{Target: target}
}

func extractLinkTarget(s string) (string, bool) {
	if !strings.HasPrefix(s, "[[") {
		return "", false
	}
	end := strings.Index(s, "]]")
	if end < 0 {
		return "", false
	}
	inner := s[2:end]
	if i := strings.IndexByte(inner, '|'); i >= 0 {
		inner = inner[:i]
	}
	return strings.TrimSpace(inner), true
}

// parseText is the central text production. It reads characters into a
// running text buffer, flushing to a Text node each time a structural
// construct is recognized, in the fixed check order: line-start
// anchors, two-character lookahead, one-character lookahead, else
// append to the running buffer.
func (p *Parser) parseText(term Terminator, eofFails bool, strip ast.Strip) (ast.Nodes, error) {
	var nodes ast.Nodes
	var buf strings.Builder

	flush := func() {
		if buf.Len() > 0 {
			nodes = append(nodes, ast.Text{Content: buf.String()})
			buf.Reset()
		}
	}

	for {
		if p.r.AtEOF() {
			if eofFails {
				return nil, &reader.EOFError{Pos: p.r.Pos()}
			}
			flush()
			return ast.TrimText(nodes, strip), nil
		}
		if term != nil && term(p.r) {
			flush()
			return ast.TrimText(nodes, strip), nil
		}

		pos := p.r.Pos()
		if pos.IsLineStart {
			switch p.r.PeekByte() {
			case '=':
				if n, ok := p.tryParse(p.parseHeading); ok {
					flush()
					nodes = append(nodes, n)
					continue
				}
			case ':':
				if n, ok := p.tryParse(p.parseIndentLine); ok {
					flush()
					nodes = append(nodes, n)
					continue
				}
			case '*':
				if n, ok := p.tryParse(p.parseList); ok {
					flush()
					nodes = append(nodes, n)
					continue
				}
			}
		}

		if ok, _ := p.r.PeekStr("''", true, true); ok {
			if n, ok := p.tryParse(p.parseFormatting); ok {
				flush()
				nodes = append(nodes, n)
				continue
			}
		}
		if ok, _ := p.r.PeekStr("[[", true, true); ok {
			if n, ok := p.tryParse(p.parseLink); ok {
				flush()
				nodes = append(nodes, n)
				continue
			}
		}
		if ok, _ := p.r.PeekStr("{{", true, true); ok {
			if n, ok := p.tryParse(p.parseBraces); ok {
				flush()
				nodes = append(nodes, n)
				continue
			}
		}

		switch p.r.PeekByte() {
		case '<':
			if n, ok := p.tryParse(p.parseHTMLConstruct); ok {
				flush()
				nodes = append(nodes, n)
				continue
			}
		case '[':
			n, err := p.tryParseDefref()
			if err == nil {
				flush()
				nodes = append(nodes, n)
				continue
			}
			if _, skipped := err.(*SkipSignal); skipped {
				// [?] is dropped silently: the opening '[' and its
				// contents are already consumed by the attempt; nothing
				// is appended.
				continue
			}
			// ParseError: '[' falls through to literal text below.
		case '\n':
			flush()
			nodes = append(nodes, ast.Newline{})
			p.r.Skip(1)
			continue
		}

		b, err := p.r.Next()
		if err != nil {
			return nil, err
		}
		buf.WriteByte(b)
	}
}

// tryParse runs f as a speculative attempt: on success it returns the
// node and true; on ParseError or EOFError it restores the cursor and
// returns false so the caller can fall back to treating the opener as
// literal text.
func (p *Parser) tryParse(f func() (ast.Node, error)) (ast.Node, bool) {
	var node ast.Node
	err := p.r.Speculate(func() error {
		n, e := f()
		if e != nil {
			return e
		}
		node = n
		return nil
	})
	if err != nil {
		return nil, false
	}
	return node, true
}
