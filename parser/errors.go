package parser

import (
	"fmt"

	"github.com/gowiki/wikiparse/reader"
)

// ParseError signals a structural mismatch at a speculation point. It is
// recoverable: callers that try-and-fall-back (HTML, defref, braces)
// catch it locally and emit the opening character as literal text.
type ParseError struct {
	File   string
	Pos    reader.Position
	Peek   string
	Reason string
}

func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s (near %q)", e.File, e.Pos.Line, e.Pos.Column, e.Reason, e.Peek)
	}
	return fmt.Sprintf("%d:%d: %s (near %q)", e.Pos.Line, e.Pos.Column, e.Reason, e.Peek)
}

func (p *Parser) fail(reason string) *ParseError {
	return &ParseError{File: p.file, Pos: p.r.Pos(), Peek: p.r.Peek(16), Reason: reason}
}

// EOFError re-exports reader.EOFError under the parser package so callers
// that only import "parser" don't also need "reader" to type-switch on
// it. Top-level productions treat this as normal termination; others
// propagate it like any ParseError.
type EOFError = reader.EOFError

// RedirectSignal is raised during directive parsing when `#REDIRECT` (or
// its German alias) is seen. It is not an error: it is non-local control
// flow that parse_page's caller must catch and handle, e.g. by
// re-fetching Target. It deliberately does not implement the error
// interface's usual "something went wrong" connotation, but satisfies it
// mechanically so it can be returned alongside a nil result the way
// ParseError is.
type RedirectSignal struct{ Target string }

func (r *RedirectSignal) Error() string { return "redirect to " + r.Target }

// SkipSignal is raised by `[?]` inside defref parsing; the enclosing
// text production swallows it and drops the construct silently.
type SkipSignal struct{}

func (SkipSignal) Error() string { return "skip" }
