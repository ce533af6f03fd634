package parser

import (
	"strings"

	"github.com/gowiki/wikiparse/ast"
)

// parseParserFunction handles `{{#keyword: args...}}`.
func (p *Parser) parseParserFunction() (ast.Node, error) {
	if ok, _ := p.r.Consume("{{", true, false); !ok {
		return nil, p.fail("not braces")
	}
	p.skipHSpace()
	if ok, _ := p.r.Consume("#", true, true); !ok {
		return nil, p.fail("not a parser function")
	}
	kw := strings.ToLower(p.readIdent())
	if ok, _ := p.r.Consume(":", true, false); !ok {
		return nil, p.fail("expected ':' after parser function keyword")
	}

	switch kw {
	case "if":
		return p.parseIfFn()
	case "ifeq":
		return p.parseIfEqFn()
	case "ifexist":
		return p.parseIfExistFn()
	case "switch":
		return p.parseSwitchFn()
	case "invoke":
		return p.parseInvokeFn()
	default:
		return nil, p.fail("unknown parser function #" + kw)
	}
}

func (p *Parser) readIdent() string {
	var sb strings.Builder
	for isAlpha(p.r.PeekByte()) {
		b, _ := p.r.Next()
		sb.WriteByte(b)
	}
	return sb.String()
}

// parsePFArgList splits `|`-separated arguments up to `}}`, without
// trimming: #if and #ifeq keep their raw argument text, trimming only
// where the transclusion semantics call for it (e.g. #ifeq's
// comparison). #switch trims its labeled `ref=body` segments itself, in
// splitAtEquals.
func (p *Parser) parsePFArgList() ([]ast.Nodes, error) {
	var args []ast.Nodes
	for {
		seg, err := p.parseText(anyOf(byteTerm('|'), literalTerm("}}")), true, ast.StripNone)
		if err != nil {
			return nil, err
		}
		args = append(args, seg)
		if ok, _ := p.r.Consume("|", true, true); ok {
			continue
		}
		if ok, _ := p.r.Consume("}}", true, false); ok {
			return args, nil
		}
		return nil, p.fail("expected '|' or '}}'")
	}
}

func (p *Parser) parseIfFn() (ast.Node, error) {
	args, err := p.parsePFArgList()
	if err != nil {
		return nil, err
	}
	if len(args) < 1 {
		return nil, p.fail("#if requires a condition")
	}
	n := ast.If{Cond: args[0]}
	if len(args) >= 2 {
		n.True = args[1]
	}
	if len(args) >= 3 {
		n.False = args[2]
	}
	return n, nil
}

func (p *Parser) parseIfEqFn() (ast.Node, error) {
	args, err := p.parsePFArgList()
	if err != nil {
		return nil, err
	}
	if len(args) < 2 {
		return nil, p.fail("#ifeq requires lhs and rhs")
	}
	n := ast.IfEq{LHS: args[0], RHS: args[1]}
	if len(args) >= 3 {
		n.True = args[2]
	}
	if len(args) >= 4 {
		n.False = args[3]
	}
	return n, nil
}

func (p *Parser) parseIfExistFn() (ast.Node, error) {
	args, err := p.parsePFArgList()
	if err != nil {
		return nil, err
	}
	if len(args) < 1 {
		return nil, p.fail("#ifexist requires a file")
	}
	n := ast.IfExist{File: args[0]}
	if len(args) >= 2 {
		n.True = args[1]
	}
	if len(args) >= 3 {
		n.False = args[2]
	}
	return n, nil
}

// parseSwitchFn implements `{{#switch:value|ref=body|ref2=body|default}}`.
// A bare segment with no top-level '=' is "pending": it shares the next
// labeled segment's body. A run of pending segments left at the end
// (nothing left to label them) becomes the unconditional #default
// value, taking the last one if there's more than one.
func (p *Parser) parseSwitchFn() (ast.Node, error) {
	args, err := p.parsePFArgList()
	if err != nil {
		return nil, err
	}
	if len(args) < 1 {
		return nil, p.fail("#switch requires a value")
	}
	value := args[0]

	var branches []ast.LinkBranch
	var pendingRefs []ast.Nodes
	for i := 1; i < len(args); i++ {
		ref, body, hasEq := splitAtEquals(args[i])
		if hasEq {
			refs := append(pendingRefs, ref)
			pendingRefs = nil
			for _, r := range refs {
				branches = append(branches, ast.LinkBranch{Ref: r, Body: body})
			}
			continue
		}
		pendingRefs = append(pendingRefs, args[i])
	}
	if len(pendingRefs) > 0 {
		defaultBody := pendingRefs[len(pendingRefs)-1]
		branches = append(branches, ast.LinkBranch{Ref: ast.Nodes{ast.Text{Content: "#default"}}, Body: defaultBody})
	}

	return ast.Switch{Value: value, Branches: branches}, nil
}

// splitAtEquals scans nodes for the first '=' inside a Text node and
// splits there, trimming both halves. It returns hasEq=false if no
// top-level '=' is found.
func splitAtEquals(nodes ast.Nodes) (ast.Nodes, ast.Nodes, bool) {
	for i, n := range nodes {
		t, ok := n.(ast.Text)
		if !ok {
			continue
		}
		idx := strings.IndexByte(t.Content, '=')
		if idx < 0 {
			continue
		}
		var ref, body ast.Nodes
		ref = append(ref, nodes[:i]...)
		if idx > 0 {
			ref = append(ref, ast.Text{Content: t.Content[:idx]})
		}
		if idx+1 < len(t.Content) {
			body = append(body, ast.Text{Content: t.Content[idx+1:]})
		}
		body = append(body, nodes[i+1:]...)
		return ast.TrimText(ref, ast.StripBoth), ast.TrimText(body, ast.StripBoth), true
	}
	return nil, nil, false
}

func (p *Parser) parseInvokeFn() (ast.Node, error) {
	module, err := p.parseText(anyOf(byteTerm('|'), literalTerm("}}")), true, ast.StripBoth)
	if err != nil {
		return nil, err
	}
	if ok, _ := p.r.Consume("|", true, false); !ok {
		return nil, p.fail("#invoke requires a function name")
	}
	function, err := p.parseText(anyOf(byteTerm('|'), literalTerm("}}")), true, ast.StripBoth)
	if err != nil {
		return nil, err
	}
	pos, named, err := p.parseArgList()
	if err != nil {
		return nil, err
	}
	return ast.Invoke{Module: module, Function: function, PosArgs: pos, NamedArgs: named}, nil
}
