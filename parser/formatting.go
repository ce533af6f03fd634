package parser

import (
	"github.com/gowiki/wikiparse/ast"
	"github.com/gowiki/wikiparse/reader"
)

// parseFormatting handles '' / ''' / ''''' runs. WikiText's quote-based
// formatting is inherently a single stateful scan
// rather than a clean recursive grammar: a run of apostrophes can close
// one format and open another in the same breath (`''a'''''b'''` closes
// the italic opened by the leading `''` and opens a bold with the
// remaining three quotes). This is modeled here by having the *closing*
// terminator accept any run of at least the opening length and consume
// only that many — leftover quotes fall back through to the outer
// parse_text loop, which reinterprets them as a fresh opener.
//
// Runs that are neither 2, 3 nor 5 quotes long aren't openers at all;
// parseFormatting fails, the outer loop emits one literal apostrophe,
// and the (now one shorter) run is retried on the next pass until it
// lands on a length this function accepts.
func (p *Parser) parseFormatting() (ast.Node, error) {
	n := countRun(p.r, '\'')
	switch n {
	case 2:
		p.r.Skip(2)
		children, err := p.parseText(quoteRunAtLeast(2), true, ast.StripNone)
		if err != nil {
			return nil, err
		}
		if !p.consumeQuotes(2) {
			return nil, p.fail("unterminated italic")
		}
		return ast.Italic{Children: children}, nil
	case 3:
		p.r.Skip(3)
		children, err := p.parseText(quoteRunAtLeast(3), true, ast.StripNone)
		if err != nil {
			return nil, err
		}
		if !p.consumeQuotes(3) {
			return nil, p.fail("unterminated bold")
		}
		return ast.Bold{Children: children}, nil
	case 5:
		p.r.Skip(5)
		children, err := p.parseText(quoteRunAtLeast(5), true, ast.StripNone)
		if err != nil {
			return nil, err
		}
		if !p.consumeQuotes(5) {
			return nil, p.fail("unterminated bold+italic")
		}
		return ast.Bold{Children: ast.Nodes{ast.Italic{Children: children}}}, nil
	default:
		return nil, p.fail("apostrophe run is not a formatting opener")
	}
}

// quoteRunAtLeast matches (without consuming) a run of at least n
// apostrophes at the cursor.
func quoteRunAtLeast(n int) Terminator {
	return func(r *reader.Reader) bool { return countRun(r, '\'') >= n }
}

// consumeQuotes consumes exactly n apostrophes, leaving any beyond that
// in place for the next production to reinterpret.
func (p *Parser) consumeQuotes(n int) bool {
	if countRun(p.r, '\'') < n {
		return false
	}
	p.r.Skip(n)
	return true
}
