package server

import (
	"encoding/json"
	"net/http"

	"github.com/klingberg/bokfor/internal/store"
)

type createContactRequest struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
}

func (s *Server) createContact(w http.ResponseWriter, r *http.Request) {
	var req createContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	c := &store.Contact{OwnerID: ownerFrom(r), Kind: req.Kind, Name: req.Name}
	if err := s.store.CreateContact(r.Context(), c); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) listContacts(w http.ResponseWriter, r *http.Request) {
	filter := store.ContactFilter{Kind: r.URL.Query().Get("kind")}
	contacts, err := s.store.ListContacts(r.Context(), ownerFrom(r), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if contacts == nil {
		contacts = []store.Contact{}
	}
	writeJSON(w, http.StatusOK, contacts)
}
