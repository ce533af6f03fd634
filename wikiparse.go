// Package wikiparse is the public entry point: parse WikiText into an
// AST, expand transclusions against a template source, and render the
// result. The sub-packages (parser, ast, render, inclusion, transclude,
// mediawiki) are usable directly; this file just collects the common
// path into one surface.
package wikiparse

import (
	"context"

	"github.com/gowiki/wikiparse/ast"
	"github.com/gowiki/wikiparse/inclusion"
	"github.com/gowiki/wikiparse/mediawiki"
	"github.com/gowiki/wikiparse/parser"
	"github.com/gowiki/wikiparse/render"
	"github.com/gowiki/wikiparse/transclude"
)

// Parse parses source into a node tree, per parser.Parse.
func Parse(source string) (ast.Nodes, error) {
	return parser.Parse(source)
}

// ParsePage parses a full page (directives + body), per parser.ParsePage.
func ParsePage(source, title string) (parser.Directives, ast.Nodes, error) {
	return parser.ParsePage(source, title)
}

// Filter applies onlyinclude/noinclude rules, per inclusion.Filter.
func Filter(nodes ast.Nodes) ast.Nodes {
	return inclusion.Filter(nodes)
}

// RenderHTML renders nodes to HTML, the default output form.
func RenderHTML(nodes ast.Nodes) (string, error) {
	return render.Nodes(render.HTML{}, nodes)
}

// RenderIdentifier renders nodes to their plain-text identifier form,
// the form used to look up template names and #invoke module/function
// names.
func RenderIdentifier(nodes ast.Nodes) (string, error) {
	return render.Nodes(render.Identifier{}, nodes)
}

// NewTranscluder builds a transclusion engine over fetcher, per
// transclude.New. A mediawiki.Client satisfies transclude.Fetcher
// directly and can be passed here.
func NewTranscluder(fetcher transclude.Fetcher, opts ...transclude.Option) *transclude.Transcluder {
	return transclude.New(fetcher, opts...)
}

// NewClient builds a MediaWiki API client for language.host, per
// mediawiki.New.
func NewClient(host, language string, opts ...mediawiki.Option) *mediawiki.Client {
	return mediawiki.New(host, language, opts...)
}

// RenderPage is the full pipeline: fetch title from client, expand its
// transclusions against vars, filter inclusion markers, and render to
// HTML. It's the shape most callers want; anything more specific should
// use the sub-packages directly.
func RenderPage(ctx context.Context, client *mediawiki.Client, title string, vars transclude.Variables, opts ...transclude.Option) (string, error) {
	page, err := client.FetchPage(ctx, title)
	if err != nil {
		return "", err
	}
	body, err := page.Body()
	if err != nil {
		return "", err
	}
	tc := client.Transcluder(opts...)
	expanded, err := tc.Transclude(ctx, body, vars)
	if err != nil {
		return "", err
	}
	return client.Render(inclusion.Filter(expanded))
}
