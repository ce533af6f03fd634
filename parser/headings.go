package parser

import "github.com/gowiki/wikiparse/ast"

// parseHeading handles `== title ==` at line start, level 1-6 (the run
// of leading '=' characters). A run longer than 6, or a title whose
// close count doesn't match the open count, fails the whole construct.
// The outer loop then emits one literal '='; that clears the line-start
// flag, so the rest of the line is parsed as ordinary text and no
// shorter heading is tried.
func (p *Parser) parseHeading() (ast.Node, error) {
	n := countRun(p.r, '=')
	if n < 1 || n > 6 {
		return nil, p.fail("heading marker too long")
	}
	p.r.Skip(n)

	title, err := p.parseText(anyOf(byteTerm('='), byteTerm('\n')), true, ast.StripBoth)
	if err != nil {
		return nil, err
	}

	closeLen := countRun(p.r, '=')
	if closeLen != n {
		return nil, p.fail("heading close marker does not match open marker")
	}
	p.r.Skip(n)
	if err := p.consumeTrailingSpace(); err != nil {
		return nil, err
	}

	return ast.Heading{Title: title, Level: n}, nil
}
