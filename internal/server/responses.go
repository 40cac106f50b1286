package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/klingberg/bokfor/internal/ledger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func mapError(err error) int {
	switch {
	case errors.Is(err, ledger.ErrUnknownPreset),
		errors.Is(err, ledger.ErrTransactionNotFound),
		errors.Is(err, ledger.ErrContactNotFound),
		errors.Is(err, ledger.ErrUnknownAccount):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrOwnership):
		return http.StatusForbidden
	case errors.Is(err, ledger.ErrMalformedAccountNumber),
		errors.Is(err, ledger.ErrRowBothSides),
		errors.Is(err, ledger.ErrAmountNotPositive),
		errors.Is(err, ledger.ErrInvalidRuleInput),
		errors.Is(err, ledger.ErrZeroHeadcount),
		errors.Is(err, ledger.ErrEmptyDescription),
		errors.Is(err, ledger.ErrUnknownSpecialRule):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrUnbalancedPosting),
		errors.Is(err, ledger.ErrEmptyPosting):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
