// Package mediawiki speaks the MediaWiki action API well enough to
// resolve namespaces and fetch page/template revisions, and plugs
// directly into transclude.New and render.Nodes so a caller can go
// from a page title to rendered HTML in one pipeline.
package mediawiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"

	"github.com/gowiki/wikiparse/ast"
	"github.com/gowiki/wikiparse/render"
	"github.com/gowiki/wikiparse/transclude"
	"github.com/gowiki/wikiparse/wikilog"
)

const (
	defaultHost     = "wikipedia.org"
	defaultLanguage = "en"
	templateNSID    = 10
)

var loadEnvOnce sync.Once

// loadEnv loads a .env file into the process environment the first
// time any Client is constructed. Missing or unreadable .env is not an
// error — the override is opt-in, grounded on the pack's godotenv usage
// for optional local configuration.
func loadEnv() {
	loadEnvOnce.Do(func() {
		_ = godotenv.Load()
	})
}

func envOr(key, def string) string {
	loadEnv()
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Option configures a Client, mirroring transclude.Option's functional
// style.
type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(l wikilog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithRenderer(r render.Renderer) Option {
	return func(c *Client) { c.renderer = r }
}

// Client talks to one MediaWiki installation's action API. It
// implements transclude.Fetcher directly, so `transclude.New(client,
// ...)` wires a live wiki into the transclusion engine with no
// adapter glue.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     wikilog.Logger
	renderer   render.Renderer

	nsOnce sync.Once
	nsErr  error
	ns     *namespaceTable
}

// New builds a Client for language.host (e.g. "en.wikipedia.org"). An
// empty host or language falls back to WIKIPARSE_HOST / WIKIPARSE_LANGUAGE
// (loaded from a .env file if present), then to "wikipedia.org" / "en".
func New(host, language string, opts ...Option) *Client {
	if host == "" {
		host = envOr("WIKIPARSE_HOST", defaultHost)
	}
	if language == "" {
		language = envOr("WIKIPARSE_LANGUAGE", defaultLanguage)
	}
	c := &Client{
		httpClient: http.DefaultClient,
		baseURL:    fmt.Sprintf("https://%s.%s", language, host),
		logger:     wikilog.Nop(),
		renderer:   render.HTML{},
		ns:         newNamespaceTable(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Transcluder builds a transclude.Transcluder wired to this Client as
// its Fetcher. Callers that also have a Lua invoker pass it as an
// extra transclude.Option.
func (c *Client) Transcluder(opts ...transclude.Option) *transclude.Transcluder {
	return transclude.New(c, opts...)
}

// Render renders nodes with the Client's configured renderer (HTML by
// default).
func (c *Client) Render(nodes ast.Nodes) (string, error) {
	return render.Nodes(c.renderer, nodes)
}

type apiErrorBody struct {
	Info string `json:"info"`
}

type siteinfoResponse struct {
	Query struct {
		Namespaces map[string]struct {
			ID        int    `json:"id"`
			Name      string `json:"name"`
			Canonical string `json:"canonical"`
		} `json:"namespaces"`
		NamespaceAliases []struct {
			ID    int    `json:"id"`
			Alias string `json:"*"`
		} `json:"namespacealiases"`
	} `json:"query"`
	Error *apiErrorBody `json:"error,omitempty"`
}

// QueryNamespaces fetches and caches the wiki's namespace table
// (action=query&meta=siteinfo&siprop=namespaces|namespacealiases). It
// runs at most once per Client; later calls are free.
func (c *Client) QueryNamespaces(ctx context.Context) error {
	c.nsOnce.Do(func() {
		c.nsErr = c.fetchNamespaces(ctx)
	})
	return c.nsErr
}

func (c *Client) fetchNamespaces(ctx context.Context) error {
	params := url.Values{
		"action":  {"query"},
		"meta":    {"siteinfo"},
		"siprop":  {"namespaces|namespacealiases"},
		"format":  {"json"},
	}
	body, err := c.doGet(ctx, params)
	if err != nil {
		return err
	}
	var resp siteinfoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return err
	}
	if resp.Error != nil {
		return &APIError{Info: resp.Error.Info}
	}
	for _, ns := range resp.Query.Namespaces {
		c.ns.add(Namespace{ID: ns.ID, Name: ns.Name, Canonical: ns.Canonical})
	}
	for _, a := range resp.Query.NamespaceAliases {
		c.ns.addAlias(a.ID, a.Alias)
	}
	return nil
}

// Namespace resolves a namespace by name (canonical, localized, or
// alias), case-insensitively. QueryNamespaces must have been called
// first, or it reports not-found.
func (c *Client) Namespace(name string) (Namespace, bool) {
	return c.ns.lookup(name)
}

type revisionsResponse struct {
	Query struct {
		Pages map[string]struct {
			Title     string  `json:"title"`
			Namespace int     `json:"ns"`
			Missing   *string `json:"missing"`
			Revisions []struct {
				Slots struct {
					Main struct {
						Content string `json:"*"`
					} `json:"main"`
				} `json:"slots"`
			} `json:"revisions"`
		} `json:"pages"`
	} `json:"query"`
	Error *apiErrorBody `json:"error,omitempty"`
}

// GetRevision fetches title's current revision content
// (action=query&prop=revisions&rvprop=content&rvslots=main).
func (c *Client) GetRevision(ctx context.Context, title string) (*Page, error) {
	pages, err := c.getRevisions(ctx, []string{title})
	if err != nil {
		return nil, err
	}
	page, ok := pages[title]
	if !ok {
		return nil, &PageNotFoundError{Title: title}
	}
	return page, nil
}

// GetRevisionsFor batches GetRevision across multiple titles in one
// request (MediaWiki's `titles=a|b|c` form), returning a map keyed by
// the titles that actually resolved to content; titles that don't are
// simply absent rather than erroring the whole batch.
func (c *Client) GetRevisionsFor(ctx context.Context, titles []string) (map[string]*Page, error) {
	return c.getRevisions(ctx, titles)
}

func (c *Client) getRevisions(ctx context.Context, titles []string) (map[string]*Page, error) {
	params := url.Values{
		"action":  {"query"},
		"titles":  {strings.Join(titles, "|")},
		"prop":    {"revisions"},
		"rvprop":  {"content"},
		"rvslots": {"main"},
		"format":  {"json"},
	}
	body, err := c.doGet(ctx, params)
	if err != nil {
		return nil, err
	}
	var resp revisionsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, &APIError{Info: resp.Error.Info}
	}
	out := make(map[string]*Page, len(resp.Query.Pages))
	for _, p := range resp.Query.Pages {
		if p.Missing != nil || len(p.Revisions) == 0 {
			continue
		}
		out[p.Title] = &Page{
			Title:     p.Title,
			Namespace: p.Namespace,
			Source:    p.Revisions[0].Slots.Main.Content,
		}
	}
	return out, nil
}

// FetchPage fetches and returns the named page's current revision.
func (c *Client) FetchPage(ctx context.Context, title string) (*Page, error) {
	return c.GetRevision(ctx, title)
}

// FetchTemplate implements transclude.Fetcher: it resolves name against
// the Template namespace's canonical prefix and returns the parsed body
// of that page, so a `{{Foo}}` node resolves to the "Template:Foo" page.
func (c *Client) FetchTemplate(ctx context.Context, name string) (ast.Nodes, error) {
	page, err := c.GetRevision(ctx, c.templateTitle(name))
	if err != nil {
		return nil, err
	}
	return page.Body()
}

// PageExists implements transclude.Fetcher for {{#ifexist:}}.
func (c *Client) PageExists(ctx context.Context, name string) (bool, error) {
	_, err := c.GetRevision(ctx, name)
	if err != nil {
		if _, ok := err.(*PageNotFoundError); ok {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (c *Client) templateTitle(name string) string {
	prefix := "Template"
	if ns, ok := c.ns.byIDLookup(templateNSID); ok && ns.Canonical != "" {
		prefix = ns.Canonical
	}
	if strings.Contains(name, ":") {
		return name
	}
	return prefix + ":" + name
}

// doGet issues the API call and retries exactly once on a transient
// transport error (network hiccups, not HTTP/API-level failures).
func (c *Client) doGet(ctx context.Context, params url.Values) ([]byte, error) {
	reqURL := c.baseURL + "/w/api.php?" + params.Encode()
	body, err := c.get(ctx, reqURL)
	if err != nil {
		c.logger.Warn("mediawiki request failed, retrying once", wikilog.String("url", reqURL), wikilog.Err(err))
		body, err = c.get(ctx, reqURL)
	}
	return body, err
}

func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}
