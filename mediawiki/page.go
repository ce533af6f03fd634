package mediawiki

import (
	"sync"

	"github.com/gowiki/wikiparse/ast"
	"github.com/gowiki/wikiparse/parser"
)

// Page is a fetched revision's wikitext body, parsed lazily and at most
// once: most callers only need one of (raw source, directives, AST), so
// paying parse cost on first access — not on fetch — avoids parsing
// pages nobody ever reads past their title.
type Page struct {
	Title     string
	Namespace int
	Source    string

	once       sync.Once
	directives parser.Directives
	nodes      ast.Nodes
	parseErr   error
}

// Parse runs (and memoizes) parser.ParsePage over Source. Safe to call
// from multiple goroutines; only the first caller actually parses.
func (p *Page) Parse() (parser.Directives, ast.Nodes, error) {
	p.once.Do(func() {
		p.directives, p.nodes, p.parseErr = parser.ParsePage(p.Source, p.Title)
	})
	return p.directives, p.nodes, p.parseErr
}

// Body is a convenience wrapper around Parse that discards directives,
// for callers (like Transclude) that only want the node tree.
func (p *Page) Body() (ast.Nodes, error) {
	_, nodes, err := p.Parse()
	return nodes, err
}
