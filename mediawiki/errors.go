package mediawiki

// APIError wraps a MediaWiki `{error: {info}}` response body.
type APIError struct{ Info string }

func (e *APIError) Error() string { return "mediawiki api error: " + e.Info }

// PageNotFoundError is returned when a query's `pages` entry carries no
// revision content (the page doesn't exist, or has been deleted).
type PageNotFoundError struct{ Title string }

func (e *PageNotFoundError) Error() string { return "page not found: " + e.Title }
