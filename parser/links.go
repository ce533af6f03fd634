package parser

import "github.com/gowiki/wikiparse/ast"

// parseLink handles `[[url|label]]` and `[[url]]`. When no '|' is
// present the label equals the url (cloned, so later mutation of one
// side — e.g. transclusion splicing into the label — never aliases the
// other).
func (p *Parser) parseLink() (ast.Node, error) {
	if ok, _ := p.r.Consume("[[", true, false); !ok {
		return nil, p.fail("not a link")
	}

	url, err := p.parseText(anyOf(byteTerm('|'), literalTerm("]]")), true, ast.StripNone)
	if err != nil {
		return nil, err
	}

	var label ast.Nodes
	if ok, _ := p.r.Consume("|", true, true); ok {
		label, err = p.parseText(literalTerm("]]"), true, ast.StripNone)
		if err != nil {
			return nil, err
		}
	} else {
		label = ast.CloneNodes(url)
	}

	if ok, _ := p.r.Consume("]]", true, false); !ok {
		return nil, p.fail("unterminated link")
	}
	return ast.Link{Label: label, URL: url}, nil
}
