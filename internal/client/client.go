package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/klingberg/bokfor/internal/ledger"
	"github.com/klingberg/bokfor/internal/store"
)

type Client struct {
	baseURL    string
	ownerID    string
	httpClient *http.Client
}

func New(baseURL, ownerID string) *Client {
	return &Client{
		baseURL: baseURL,
		ownerID: ownerID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// PostRequest mirrors the server's transaction request body.
type PostRequest struct {
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

// Preview holds a dry-run posting as returned by the server.
type Preview struct {
	Lines       []ledger.PostingLine `json:"lines"`
	TotalDebit  decimal.Decimal      `json:"total_debit"`
	TotalCredit decimal.Decimal      `json:"total_credit"`
	Schablon    decimal.Decimal      `json:"schablon"`
}

func (c *Client) PostTransaction(ctx context.Context, req *PostRequest) (*ledger.Transaction, error) {
	var result ledger.Transaction
	if err := c.post(ctx, "/api/v1/transactions", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) PreviewTransaction(ctx context.Context, req *PostRequest) (*Preview, error) {
	var result Preview
	if err := c.post(ctx, "/api/v1/transactions/preview", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListTransactions(ctx context.Context, accountNumber string) ([]ledger.Transaction, error) {
	params := url.Values{}
	if accountNumber != "" {
		params.Set("account", accountNumber)
	}
	var result []ledger.Transaction
	if err := c.get(ctx, "/api/v1/transactions?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) GetTransaction(ctx context.Context, id string) (*ledger.Transaction, error) {
	var result ledger.Transaction
	if err := c.get(ctx, "/api/v1/transactions/"+url.PathEscape(id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListPresets(ctx context.Context) ([]ledger.Preset, error) {
	var result []ledger.Preset
	if err := c.get(ctx, "/api/v1/presets", &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) GetPreset(ctx context.Context, id string) (*ledger.Preset, error) {
	var result ledger.Preset
	if err := c.get(ctx, "/api/v1/presets/"+url.PathEscape(id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListAccounts(ctx context.Context) ([]ledger.Account, error) {
	var result []ledger.Account
	if err := c.get(ctx, "/api/v1/accounts", &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) GetChart(ctx context.Context) ([]ledger.ChartEntry, error) {
	var result []ledger.ChartEntry
	if err := c.get(ctx, "/api/v1/chart", &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) CreateContact(ctx context.Context, kind, name string) (*store.Contact, error) {
	body := map[string]any{"kind": kind, "name": name}
	var result store.Contact
	if err := c.post(ctx, "/api/v1/contacts", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListContacts(ctx context.Context, kind string) ([]store.Contact, error) {
	params := url.Values{}
	if kind != "" {
		params.Set("kind", kind)
	}
	var result []store.Contact
	if err := c.get(ctx, "/api/v1/contacts?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Ping checks that the server is up. It hits the unauthenticated
// health endpoint, so it works before an owner id is known.
func (c *Client) Ping(ctx context.Context) error {
	return c.get(ctx, "/healthz", nil)
}

type apiError struct {
	Error string `json:"error"`
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.doRequest(req, result)
}

func (c *Client) post(ctx context.Context, path string, body any, result any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doRequest(req, result)
}

func (c *Client) doRequest(req *http.Request, result any) error {
	req.Header.Set("X-Owner-Id", c.ownerID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(bodyBytes, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	if result != nil {
		if err := json.Unmarshal(bodyBytes, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
