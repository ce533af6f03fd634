package parser

import "github.com/gowiki/wikiparse/ast"

// parseIndentLine handles a line-start run of ':' characters. The
// indent marker carries only its depth; whatever follows on the line is
// ordinary text handled by the enclosing parse_text loop, not by this
// production.
func (p *Parser) parseIndentLine() (ast.Node, error) {
	n := countRun(p.r, ':')
	if n == 0 {
		return nil, p.fail("not an indent line")
	}
	p.r.Skip(n)
	return ast.Indent{Count: n}, nil
}

// parseList consumes one or more consecutive `*`-prefixed lines into a
// single list node. Blank lines between items are tolerated (a list
// continues across them); a non-blank, non-'*' line or a line with a
// different structural anchor ends the list, and the cursor is rewound
// to just after the previous item so that line is re-parsed normally.
func (p *Parser) parseList() (ast.Node, error) {
	var items []ast.ListItem

	for {
		depth := countRun(p.r, '*')
		if depth == 0 {
			break
		}
		p.r.Skip(depth)

		body, err := p.parseText(byteTerm('\n'), false, ast.StripBoth)
		if err != nil {
			return nil, err
		}
		items = append(items, ast.ListItem{Depth: depth, Children: body})

		afterItem := p.r.Snapshot()
		if ok, _ := p.r.Consume("\n", true, true); !ok {
			break // EOF right at the end of the item
		}

		for {
			lineStart := p.r.Snapshot()
			line := p.r.ConsumeUntil(func(b byte) bool { return b == '\n' })
			if isAllWhitespace(line) {
				if ok, _ := p.r.Consume("\n", true, true); ok {
					continue // blank line: keep scanning for the next '*'
				}
				p.r.Restore(lineStart)
				break
			}
			p.r.Restore(lineStart)
			break
		}

		if countRun(p.r, '*') == 0 {
			p.r.Restore(afterItem)
			break
		}
	}

	if len(items) == 0 {
		return nil, p.fail("not a list")
	}
	return ast.List{Ordered: false, Items: items}, nil
}
