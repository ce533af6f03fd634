package parser

import (
	"sort"
	"strconv"
	"strings"

	"github.com/gowiki/wikiparse/ast"
)

// tryParseDefref parses `[ids]`. Unlike tryParse, a SkipSignal result
// (from `[?]`) must NOT restore the cursor: the `[?]` has to stay
// consumed, or parse_text would see the same `[` again and loop
// forever retrying the same failed-to-skip construct.
func (p *Parser) tryParseDefref() (ast.Node, error) {
	snap := p.r.Snapshot()
	n, err := p.parseDefrefInner()
	if err == nil {
		return n, nil
	}
	if _, skip := err.(*SkipSignal); skip {
		return nil, err
	}
	p.r.Restore(snap)
	return nil, err
}

func (p *Parser) parseDefrefInner() (ast.Node, error) {
	if ok, _ := p.r.Consume("[", true, false); !ok {
		return nil, p.fail("not a defref")
	}
	if ok, _ := p.r.Consume("*]", true, true); ok {
		return ast.Defref{IDs: []string{"*"}}, nil
	}
	if ok, _ := p.r.Consume("?]", true, true); ok {
		return nil, &SkipSignal{}
	}

	var ids []string
	for {
		p.skipHSpace()
		expanded, err := p.parseDefrefExpr()
		if err != nil {
			return nil, err
		}
		ids = append(ids, expanded...)
		p.skipHSpace()
		if ok, _ := p.r.Consume(",", true, true); ok {
			continue
		}
		break
	}

	if ok, _ := p.r.Consume("]", true, false); !ok {
		return nil, p.fail("unterminated defref")
	}
	return ast.Defref{IDs: normalizeDefrefIDs(ids)}, nil
}

// parseDefrefExpr parses one comma-separated item: a bare number, a
// number+letter suffix, or an inclusive number-number range.
func (p *Parser) parseDefrefExpr() ([]string, error) {
	num := p.readDigits()
	if num == "" {
		return nil, p.fail("expected digits in defref")
	}
	if ok, _ := p.r.Consume("-", true, true); ok {
		end := p.readDigits()
		if end == "" {
			return nil, p.fail("expected range end in defref")
		}
		lo, _ := strconv.Atoi(num)
		hi, _ := strconv.Atoi(end)
		var out []string
		for v := lo; v <= hi; v++ {
			out = append(out, strconv.Itoa(v))
		}
		return out, nil
	}
	if b := p.r.PeekByte(); b >= 'a' && b <= 'z' {
		p.r.Skip(1)
		return []string{num + string(b)}, nil
	}
	return []string{num}, nil
}

func (p *Parser) readDigits() string {
	var sb strings.Builder
	for isDigit(p.r.PeekByte()) {
		b, _ := p.r.Next()
		sb.WriteByte(b)
	}
	return sb.String()
}

func normalizeDefrefIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	uniq := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			uniq = append(uniq, id)
		}
	}
	sort.Slice(uniq, func(i, j int) bool {
		ni, li := splitNumLetter(uniq[i])
		nj, lj := splitNumLetter(uniq[j])
		if ni != nj {
			return ni < nj
		}
		return li < lj
	})
	return uniq
}

func splitNumLetter(s string) (int, string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	n, _ := strconv.Atoi(s[:i])
	return n, s[i:]
}
