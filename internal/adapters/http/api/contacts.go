package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/okian/eventdesk/internal/domain/model"
)

const maxContactBody = 1 << 20

// ContactDependencies defines the contacts operations the handler needs.
type ContactDependencies interface {
	ListContacts(ctx context.Context) ([]model.Contact, error)
	CreateContact(ctx context.Context, in model.NewContact) (model.Contact, error)
	DeleteContact(ctx context.Context, id string) error
}

// ContactsHandler handles /api/contacts.
type ContactsHandler struct {
	deps ContactDependencies
}

// NewContactsHandler creates a new contacts handler.
func NewContactsHandler(deps ContactDependencies) *ContactsHandler {
	return &ContactsHandler{deps: deps}
}

// HandleContacts dispatches GET, POST and DELETE.
func (h *ContactsHandler) HandleContacts(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodPost, http.MethodDelete) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	case http.MethodDelete:
		h.delete(w, r)
	}
}

func (h *ContactsHandler) list(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.deps.ListContacts(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (h *ContactsHandler) create(w http.ResponseWriter, r *http.Request) {
	var in model.NewContact
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxContactBody)).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: invalid JSON body", ErrBadRequest))
		return
	}
	c, err := h.deps.CreateContact(r.Context(), in)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *ContactsHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.DeleteContact(r.Context(), r.URL.Query().Get("id")); err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Contact deleted"})
}
