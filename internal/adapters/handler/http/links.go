package http

import "net/http"

// Links builds absolute URLs for hyperlinked API representations. When
// BaseURL is empty the request's scheme and host are used.
type Links struct {
	BaseURL string
}

func (l Links) URL(r *http.Request, path string) string {
	if l.BaseURL != "" {
		return l.BaseURL + path
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host + path
}
