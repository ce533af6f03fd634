package parser

import "github.com/gowiki/wikiparse/ast"

// parseBraces is the `{{` dispatcher: try a variable (`{{{`), then a
// parser function (`{{#keyword:`), and only then fall back to a
// template. Each earlier attempt is fully speculative so failure
// leaves the `{{` untouched for the next one.
func (p *Parser) parseBraces() (ast.Node, error) {
	if n, ok := p.tryParse(p.parseVariable); ok {
		return n, nil
	}
	if n, ok := p.tryParse(p.parseParserFunction); ok {
		return n, nil
	}
	return p.parseTemplate()
}

// parseVariable handles `{{{name}}}` and `{{{name|default}}}`. Because
// the name and default are themselves parsed with parseText, a name
// segment that happens to contain its own `{{{...}}}` composes for
// free — no special-casing needed.
func (p *Parser) parseVariable() (ast.Node, error) {
	if ok, _ := p.r.Consume("{{{", true, false); !ok {
		return nil, p.fail("not a variable")
	}
	name, err := p.parseText(anyOf(byteTerm('|'), literalTerm("}}}")), true, ast.StripBoth)
	if err != nil {
		return nil, err
	}
	var def ast.Nodes
	if ok, _ := p.r.Consume("|", true, true); ok {
		def, err = p.parseText(literalTerm("}}}"), true, ast.StripNone)
		if err != nil {
			return nil, err
		}
	}
	if ok, _ := p.r.Consume("}}}", true, false); !ok {
		return nil, p.fail("unterminated variable")
	}
	return ast.Variable{Name: name, Default: def}, nil
}

// parseTemplate handles `{{Name|pos|name=val}}`.
func (p *Parser) parseTemplate() (ast.Node, error) {
	if ok, _ := p.r.Consume("{{", true, false); !ok {
		return nil, p.fail("not a template")
	}
	name, err := p.parseText(anyOf(byteTerm('|'), literalTerm("}}")), true, ast.StripBoth)
	if err != nil {
		return nil, err
	}
	pos, named, err := p.parseArgList()
	if err != nil {
		return nil, err
	}
	return ast.Template{Name: name, PosArgs: pos, NamedArgs: named}, nil
}

// parseArgList parses the `|arg` tail shared by templates and
// `{{#invoke:...}}`, closing on `}}`. Each argument is first tried as
// `name=value` (name terminated by one of `=`, `|`, `}}`); if no `=`
// turns up before the terminator it falls back to a positional value.
// Both sides of `=` and every positional value are trimmed.
func (p *Parser) parseArgList() ([]ast.PosArg, []ast.NamedArg, error) {
	var pos []ast.PosArg
	var named []ast.NamedArg

	for {
		if ok, _ := p.r.Consume("|", true, true); !ok {
			break
		}

		var nameNodes ast.Nodes
		isNamed := false
		speculateErr := p.r.Speculate(func() error {
			n, e := p.parseText(anyOf(byteTerm('='), byteTerm('|'), literalTerm("}}")), true, ast.StripBoth)
			if e != nil {
				return e
			}
			if ok, _ := p.r.Consume("=", true, true); !ok {
				return p.fail("no '=' found")
			}
			nameNodes = n
			isNamed = true
			return nil
		})

		if speculateErr == nil && isNamed {
			val, err := p.parseText(anyOf(byteTerm('|'), literalTerm("}}")), true, ast.StripBoth)
			if err != nil {
				return nil, nil, err
			}
			named = append(named, ast.NamedArg{Name: nameNodes, Value: val})
			continue
		}

		val, err := p.parseText(anyOf(byteTerm('|'), literalTerm("}}")), true, ast.StripBoth)
		if err != nil {
			return nil, nil, err
		}
		pos = append(pos, ast.PosArg{Value: val})
	}

	if ok, _ := p.r.Consume("}}", true, false); !ok {
		return nil, nil, p.fail("expected '}}'")
	}
	return pos, named, nil
}
