package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/klingberg/bokfor/internal/ledger"
)

func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.store.ListAccounts(r.Context(), ownerFrom(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if accounts == nil {
		accounts = []ledger.Account{}
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	acct, err := s.store.GetAccount(r.Context(), ownerFrom(r), chi.URLParam(r, "number"))
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, acct)
}

func (s *Server) getChart(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ledger.BaseChart)
}
