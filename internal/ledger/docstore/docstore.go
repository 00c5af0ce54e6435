// Package docstore talks to a remote whole-document store over HTTP: GET
// returns the document, POST replaces it.
package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/MrJamesThe3rd/tenderbook/internal/ledger"
)

const statusSuccess = "success"

type Client struct {
	endpoint string
	client   *http.Client
}

// New creates a client for the document endpoint.
func New(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type loadResponse struct {
	Tenders      []ledger.Tender      `json:"tenders"`
	Transactions []ledger.Transaction `json:"transactions"`
	Error        string               `json:"error"`
}

type saveResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (c *Client) Load(ctx context.Context) (ledger.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return ledger.Document{}, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return ledger.Document{}, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return ledger.Document{}, err
	}

	var body loadResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ledger.Document{}, fmt.Errorf("decoding response: %w", err)
	}

	if body.Error != "" {
		return ledger.Document{}, fmt.Errorf("store reported error: %s", body.Error)
	}

	return ledger.Document{Tenders: body.Tenders, Transactions: body.Transactions}, nil
}

func (c *Client) Save(ctx context.Context, doc ledger.Document) error {
	payload, err := json.Marshal(doc.Clone())
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	var body saveResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	if body.Status != statusSuccess {
		return fmt.Errorf("store rejected save (status %q): %s", body.Status, body.Message)
	}

	return nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

	return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
}
