// Package site serves the embedded browser pages.
package site

import (
	"context"
	"net/http"
)

// Register attaches the page routes to mux. "/" also serves the shared
// assets and answers 404 for anything else.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.Handle("/", http.FileServer(FS()))
	mux.HandleFunc("/contacts", NewContactsPageHandler().ServeHTTP)
}

// ContactsPageHandler serves the contacts manager page.
type ContactsPageHandler struct{}

// NewContactsPageHandler creates a new contacts page handler.
func NewContactsPageHandler() *ContactsPageHandler {
	return &ContactsPageHandler{}
}

// ServeHTTP handles GET /contacts.
func (h *ContactsPageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}
	http.ServeFileFS(w, r, pagesFS, "contacts.html")
}
