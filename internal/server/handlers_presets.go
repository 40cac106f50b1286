package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) listPresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.All())
}

func (s *Server) getPreset(w http.ResponseWriter, r *http.Request) {
	p, err := s.catalog.Find(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}
