package parser

import "github.com/gowiki/wikiparse/reader"

// Terminator decides, by peeking at (never consuming from) r, whether
// parseText should stop before the current position. It can be a fixed
// byte set, a literal string match, or any other cursor predicate —
// byteTerm/literalTerm/anyOf build the common cases.
type Terminator func(r *reader.Reader) bool

func byteTerm(bs ...byte) Terminator {
	set := make(map[byte]bool, len(bs))
	for _, b := range bs {
		set[b] = true
	}
	return func(r *reader.Reader) bool {
		return set[r.PeekByte()]
	}
}

func literalTerm(s string) Terminator {
	return func(r *reader.Reader) bool {
		ok, _ := r.PeekStr(s, true, true)
		return ok
	}
}

func literalTermFold(s string) Terminator {
	return func(r *reader.Reader) bool {
		ok, _ := r.PeekStr(s, false, true)
		return ok
	}
}

func anyOf(terms ...Terminator) Terminator {
	return func(r *reader.Reader) bool {
		for _, t := range terms {
			if t(r) {
				return true
			}
		}
		return false
	}
}

func eofTerm(r *reader.Reader) bool { return r.AtEOF() }
