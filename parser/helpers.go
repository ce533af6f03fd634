package parser

import "github.com/gowiki/wikiparse/reader"

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isAlphaNum(b byte) bool { return isAlpha(b) || isDigit(b) }

func isAllWhitespace(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\r':
		default:
			return false
		}
	}
	return true
}

// countRun counts how many consecutive occurrences of ch start at the
// cursor, without consuming anything.
func countRun(r *reader.Reader, ch byte) int {
	n := 0
	for {
		s := r.Peek(n + 1)
		if len(s) <= n || s[n] != ch {
			return n
		}
		n++
	}
}

func (p *Parser) skipHSpace() {
	for {
		switch p.r.PeekByte() {
		case ' ', '\t':
			p.r.Skip(1)
		default:
			return
		}
	}
}

// consumeTrailingSpace consumes spaces/tabs up to and including the next
// newline, failing on any other character in between. At EOF with no
// newline reached it returns cleanly (a heading can be the last line of
// a page with no trailing newline at all).
func (p *Parser) consumeTrailingSpace() error {
	for {
		if p.r.AtEOF() {
			return nil
		}
		switch p.r.PeekByte() {
		case '\n':
			p.r.Skip(1)
			return nil
		case ' ', '\t', '\r':
			p.r.Skip(1)
		default:
			return p.fail("unexpected character after heading close marker")
		}
	}
}

// consumeCloseTagLoose matches a close tag for name, tolerant of
// whitespace around the slash and name (`</ foo >`), case-sensitively.
// On success it consumes the tag; on failure it leaves the cursor
// untouched.
func (p *Parser) consumeCloseTagLoose(name string) bool {
	ok := false
	p.r.Speculate(func() error {
		if c, _ := p.r.Consume("<", true, false); !c {
			return p.fail("no close tag")
		}
		p.skipHSpace()
		if c, _ := p.r.Consume("/", true, false); !c {
			return p.fail("no close tag")
		}
		p.skipHSpace()
		if c, _ := p.r.Consume(name, true, false); !c {
			return p.fail("close tag name mismatch")
		}
		p.skipHSpace()
		if c, _ := p.r.Consume(">", true, false); !c {
			return p.fail("unterminated close tag")
		}
		ok = true
		return nil
	})
	return ok
}

// peekCloseTagLoose is consumeCloseTagLoose without committing — used as
// a Terminator for the container/shortcut productions' body text.
func (p *Parser) peekCloseTagLoose(name string) bool {
	snap := p.r.Snapshot()
	ok := p.consumeCloseTagLoose(name)
	p.r.Restore(snap)
	return ok
}
