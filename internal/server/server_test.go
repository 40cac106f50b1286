package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klingberg/bokfor/internal/catalog"
	"github.com/klingberg/bokfor/internal/ledger"
	"github.com/klingberg/bokfor/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cat, err := catalog.New()
	require.NoError(t, err)

	ts := httptest.NewServer(New(st, cat, "").Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, ts *httptest.Server, method, path, owner string, body any, out any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.NoError(t, err)
	if owner != "" {
		req.Header.Set("X-Owner-Id", owner)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	if out != nil && resp.StatusCode < 400 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestOwnerHeaderRequired(t *testing.T) {
	ts := newTestServer(t)
	resp := doJSON(t, ts, "GET", "/api/v1/presets", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	resp := doJSON(t, ts, "GET", "/healthz", "", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPostTransaction(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]any{
		"preset_id":    "kontorsmaterial",
		"date":         "2026-03-14",
		"description":  "Pennor och papper",
		"gross_amount": "1250",
		"mode":         "standard",
	}
	var txn ledger.Transaction
	resp := doJSON(t, ts, "POST", "/api/v1/transactions", "owner-a", body, &txn)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	assert.NotEmpty(t, txn.ID)
	assert.True(t, txn.Finalized)
	require.Len(t, txn.Lines, 3)
	assert.Equal(t, "6110", txn.Lines[0].AccountNumber)
	assert.True(t, txn.Lines[0].Debit.Equal(decimal.RequireFromString("1000")))
	assert.True(t, txn.Lines[2].Credit.Equal(decimal.RequireFromString("1250")))

	// The committed transaction is visible in the listing.
	var listed []ledger.Transaction
	resp = doJSON(t, ts, "GET", "/api/v1/transactions", "owner-a", nil, &listed)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, listed, 1)
	assert.Equal(t, txn.ID, listed[0].ID)

	// But not to another owner.
	resp = doJSON(t, ts, "GET", "/api/v1/transactions/"+txn.ID, "owner-b", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPostTransactionReimbursement(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]any{
		"preset_id":    "kontorsmaterial",
		"description":  "Utlägg skrivare",
		"gross_amount": "500",
		"mode":         "reimbursement",
	}
	var txn ledger.Transaction
	resp := doJSON(t, ts, "POST", "/api/v1/transactions", "owner-a", body, &txn)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var settled bool
	for _, l := range txn.Lines {
		if l.AccountNumber == ledger.AccountEmployeePayable {
			settled = true
			assert.True(t, l.Credit.Equal(decimal.RequireFromString("500")))
		}
		assert.NotEqual(t, ledger.AccountCompanyCash, l.AccountNumber)
	}
	assert.True(t, settled, "expected settlement on the employee payable")
}

func TestPreviewDoesNotPersist(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]any{
		"preset_id":    "representation",
		"description":  "Kundlunch",
		"gross_amount": "2000",
		"mode":         "standard",
		"rule_input": map[string]any{
			"headcount":     4,
			"food_incl_vat": "2000",
		},
	}
	var preview previewResponse
	resp := doJSON(t, ts, "POST", "/api/v1/transactions/preview", "owner-a", body, &preview)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.True(t, preview.TotalDebit.Equal(preview.TotalCredit))
	assert.True(t, preview.Schablon.Equal(decimal.RequireFromString("184")))

	var listed []ledger.Transaction
	doJSON(t, ts, "GET", "/api/v1/transactions", "owner-a", nil, &listed)
	assert.Empty(t, listed)
}

func TestPostTransactionErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{"unknown preset", map[string]any{
			"preset_id": "nope", "description": "x", "gross_amount": "10", "mode": "standard",
		}, http.StatusNotFound},
		{"unknown mode", map[string]any{
			"preset_id": "kontorsmaterial", "description": "x", "gross_amount": "10", "mode": "sideways",
		}, http.StatusBadRequest},
		{"non-positive amount", map[string]any{
			"preset_id": "kontorsmaterial", "description": "x", "gross_amount": "0", "mode": "standard",
		}, http.StatusBadRequest},
		{"zero headcount", map[string]any{
			"preset_id": "representation", "description": "x", "gross_amount": "100", "mode": "standard",
			"rule_input": map[string]any{"headcount": 0, "food_incl_vat": "100"},
		}, http.StatusBadRequest},
		{"missing description", map[string]any{
			"preset_id": "kontorsmaterial", "gross_amount": "10", "mode": "standard",
		}, http.StatusBadRequest},
		{"bad date", map[string]any{
			"preset_id": "kontorsmaterial", "description": "x", "gross_amount": "10",
			"mode": "standard", "date": "14/03/2026",
		}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, ts, "POST", "/api/v1/transactions", "owner-a", tt.body, nil)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestPresetsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	var presets []ledger.Preset
	resp := doJSON(t, ts, "GET", "/api/v1/presets", "owner-a", nil, &presets)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, presets)

	var preset ledger.Preset
	resp = doJSON(t, ts, "GET", "/api/v1/presets/lon", "owner-a", nil, &preset)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, ledger.SpecialPayroll, preset.Special)

	resp = doJSON(t, ts, "GET", "/api/v1/presets/nope", "owner-a", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAccountsSeededOnFirstRequest(t *testing.T) {
	ts := newTestServer(t)

	var accounts []ledger.Account
	resp := doJSON(t, ts, "GET", "/api/v1/accounts", "owner-a", nil, &accounts)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, accounts, len(ledger.BaseChart))

	var acct ledger.Account
	resp = doJSON(t, ts, "GET", "/api/v1/accounts/1930", "owner-a", nil, &acct)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Företagskonto", acct.Name)

	resp = doJSON(t, ts, "GET", "/api/v1/accounts/6999", "owner-a", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestContactsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	var created store.Contact
	resp := doJSON(t, ts, "POST", "/api/v1/contacts", "owner-a",
		map[string]any{"kind": "employee", "name": "Anna Lind"}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Positive(t, created.ID)

	// Referencing someone else's contact in a posting is forbidden.
	body := map[string]any{
		"preset_id": "kontorsmaterial", "description": "Utlägg", "gross_amount": "100",
		"mode": "reimbursement", "contact_id": created.ID,
	}
	resp = doJSON(t, ts, "POST", "/api/v1/transactions", "owner-b", body, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// The rightful owner can.
	resp = doJSON(t, ts, "POST", "/api/v1/transactions", "owner-a", body, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestListTransactionsAccountFilter(t *testing.T) {
	ts := newTestServer(t)

	post := func(preset string, extra map[string]any) {
		body := map[string]any{
			"preset_id": preset, "description": "x", "gross_amount": "1000", "mode": "standard",
		}
		for k, v := range extra {
			body[k] = v
		}
		resp := doJSON(t, ts, "POST", "/api/v1/transactions", "owner-a", body, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	post("kontorsmaterial", nil)
	post("lan-amortering", map[string]any{
		"rule_input": map[string]any{"interest_portion": "100"},
	})

	var loans []ledger.Transaction
	resp := doJSON(t, ts, "GET", "/api/v1/transactions?account=2350", "owner-a", nil, &loans)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, loans, 1)

	var all []ledger.Transaction
	doJSON(t, ts, "GET", "/api/v1/transactions", "owner-a", nil, &all)
	assert.Len(t, all, 2)
}
