package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/klingberg/bokfor/internal/ledger"
	"github.com/klingberg/bokfor/internal/store"
)

type postTransactionRequest struct {
	PresetID      string           `json:"preset_id"`
	Date          string           `json:"date,omitempty"`
	Description   string           `json:"description"`
	GrossAmount   decimal.Decimal  `json:"gross_amount"`
	Mode          string           `json:"mode"`
	Comment       string           `json:"comment,omitempty"`
	AttachmentRef string           `json:"attachment_ref,omitempty"`
	ContactID     int64            `json:"contact_id,omitempty"`
	RuleInput     ledger.RuleInput `json:"rule_input,omitempty"`
}

// assemble resolves the preset, mode, and ownership of the request and
// runs the posting engine. Shared by post and preview.
func (s *Server) assemble(r *http.Request, req *postTransactionRequest) (*ledger.Preset, *ledger.Posting, ledger.Mode, error) {
	preset, err := s.catalog.Find(req.PresetID)
	if err != nil {
		return nil, nil, ledger.Mode{}, err
	}
	kind, err := ledger.ParseModeKind(req.Mode)
	if err != nil {
		return nil, nil, ledger.Mode{}, fmt.Errorf("%w: %v", ledger.ErrInvalidRuleInput, err)
	}
	mode := ledger.ModeFor(kind, preset)

	if req.ContactID != 0 {
		if _, err := s.store.GetContact(r.Context(), ownerFrom(r), req.ContactID); err != nil {
			return nil, nil, mode, err
		}
	}

	posting, err := ledger.Assemble(preset, req.GrossAmount, mode, req.RuleInput)
	if err != nil {
		return nil, nil, mode, err
	}
	return preset, posting, mode, nil
}

// postTransaction is the single entry point for committing a posting:
// assemble, validate, and persist atomically.
func (s *Server) postTransaction(w http.ResponseWriter, r *http.Request) {
	var req postTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	_, posting, _, err := s.assemble(r, &req)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}

	txn := &ledger.Transaction{
		OwnerID:       ownerFrom(r),
		Description:   req.Description,
		GrossAmount:   req.GrossAmount,
		Comment:       req.Comment,
		AttachmentRef: req.AttachmentRef,
		ContactID:     req.ContactID,
		Lines:         posting.Lines,
	}
	if req.Date != "" {
		d, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date: "+err.Error())
			return
		}
		txn.Date = d
	}

	if err := s.store.CommitTransaction(r.Context(), txn); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}

	created, err := s.store.GetTransaction(r.Context(), txn.OwnerID, txn.ID)
	if err != nil {
		writeJSON(w, http.StatusCreated, txn)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

type previewResponse struct {
	Lines       []ledger.PostingLine `json:"lines"`
	TotalDebit  decimal.Decimal      `json:"total_debit"`
	TotalCredit decimal.Decimal      `json:"total_credit"`
	Schablon    decimal.Decimal      `json:"schablon,omitempty"`
}

// previewTransaction runs the engine without committing anything.
func (s *Server) previewTransaction(w http.ResponseWriter, r *http.Request) {
	var req postTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	_, posting, _, err := s.assemble(r, &req)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, previewResponse{
		Lines:       posting.Lines,
		TotalDebit:  posting.TotalDebit,
		TotalCredit: posting.TotalCredit,
		Schablon:    posting.Schablon,
	})
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	filter := store.TxnFilter{}
	if acct := r.URL.Query().Get("account"); acct != "" {
		filter.AccountNumber = acct
	}

	txns, err := s.store.ListTransactions(r.Context(), ownerFrom(r), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if txns == nil {
		txns = []ledger.Transaction{}
	}
	writeJSON(w, http.StatusOK, txns)
}

func (s *Server) getTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	txn, err := s.store.GetTransaction(r.Context(), ownerFrom(r), id)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, txn)
}
