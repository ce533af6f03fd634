package mediawiki

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := New("example.org", "en")
	c.baseURL = srv.URL
	return c
}

func TestQueryNamespaces_ResolvesCanonicalAndAliases(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"query": {
				"namespaces": {
					"0": {"id": 0, "name": ""},
					"10": {"id": 10, "name": "Template", "canonical": "Template"}
				},
				"namespacealiases": [
					{"id": 10, "*": "T"}
				]
			}
		}`))
	})
	err := c.QueryNamespaces(context.Background())
	require.NoError(t, err)

	ns, ok := c.Namespace("template")
	require.True(t, ok)
	require.Equal(t, 10, ns.ID)

	ns, ok = c.Namespace("T")
	require.True(t, ok)
	require.Equal(t, 10, ns.ID)
}

func TestQueryNamespaces_APIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": {"info": "boom"}}`))
	})
	err := c.QueryNamespaces(context.Background())
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "boom", apiErr.Info)
}

func TestGetRevision_ReturnsPageWithSource(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"query": {
				"pages": {
					"1": {
						"title": "Go",
						"ns": 0,
						"revisions": [{"slots": {"main": {"*": "'''Go''' is a language."}}}]
					}
				}
			}
		}`))
	})
	page, err := c.GetRevision(context.Background(), "Go")
	require.NoError(t, err)
	require.Equal(t, "Go", page.Title)
	require.Contains(t, page.Source, "Go")
}

func TestGetRevision_MissingPageReturnsNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"query": {
				"pages": {
					"-1": {"title": "Nope", "ns": 0, "missing": ""}
				}
			}
		}`))
	})
	_, err := c.GetRevision(context.Background(), "Nope")
	require.Error(t, err)
	var notFound *PageNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestFetchTemplate_PrefixesTemplateNamespace(t *testing.T) {
	var gotURL string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		w.Write([]byte(`{
			"query": {
				"pages": {
					"1": {
						"title": "Template:Infobox",
						"ns": 10,
						"revisions": [{"slots": {"main": {"*": "Infobox body"}}}]
					}
				}
			}
		}`))
	})
	nodes, err := c.FetchTemplate(context.Background(), "Infobox")
	require.NoError(t, err)
	require.NotEmpty(t, nodes)
	require.True(t, strings.Contains(gotURL, "Template%3AInfobox") || strings.Contains(gotURL, "Template:Infobox"))
}

func TestPageExists_FalseWhenMissing(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"query": {"pages": {"-1": {"title": "Nope", "ns": 0, "missing": ""}}}}`))
	})
	exists, err := c.PageExists(context.Background(), "Nope")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestDoGet_SingleRequestWhenFirstAttemptSucceeds(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.Write([]byte(`{"query": {"pages": {}}}`))
	}))
	defer srv.Close()
	c := New("example.org", "en")
	c.baseURL = srv.URL

	_, err := c.GetRevisionsFor(context.Background(), []string{"Go"})
	require.NoError(t, err)
	require.Equal(t, 1, attempts)
}
