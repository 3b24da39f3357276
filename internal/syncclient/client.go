// Package syncclient moves the portfolio document between the local store and
// the remote /api/portfolio endpoint.
package syncclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/domain/portfolio"
	"github.com/khoahotran/portfolio/internal/localstore"
	"github.com/khoahotran/portfolio/pkg/logger"
)

const portfolioPath = "/api/portfolio"

// SyncResult is the soft outcome of a push. Error is empty when Synced is true
// and also when the push was skipped for lack of a token.
type SyncResult struct {
	Synced bool   `json:"synced"`
	Error  string `json:"error,omitempty"`
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
	store   *localstore.Store
	logger  logger.Logger
}

// New uses http.DefaultClient when httpClient is nil.
func New(baseURL string, httpClient *http.Client, store *localstore.Store, log logger.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    httpClient,
		store:   store,
		logger:  log,
	}
}

type apiError struct {
	Error string `json:"error"`
}

// FetchRemote returns the remote document and stores it locally. Any failure
// falls back to the local document.
func (c *Client) FetchRemote(ctx context.Context) portfolio.Document {
	doc, err := c.fetch(ctx)
	if err != nil {
		c.logger.Warn("Remote portfolio unavailable, using local copy", zap.Error(err))
		return c.store.Load(ctx)
	}
	if err := c.store.Save(ctx, doc); err != nil {
		c.logger.Warn("Failed to cache remote portfolio locally", zap.Error(err))
	}
	return doc
}

func (c *Client) fetch(ctx context.Context) (portfolio.Document, error) {
	status, body, err := c.doRequest(ctx, http.MethodGet, nil, "")
	if err != nil {
		return portfolio.Document{}, err
	}
	if status < 200 || status >= 300 {
		return portfolio.Document{}, fmt.Errorf("HTTP %d", status)
	}
	doc, err := portfolio.Parse(body)
	if err != nil {
		return portfolio.Document{}, fmt.Errorf("unmarshal response: %w", err)
	}
	return doc, nil
}

// PushRemote saves doc locally, then posts it when token is set.
func (c *Client) PushRemote(ctx context.Context, doc portfolio.Document, token string) SyncResult {
	if err := c.store.Save(ctx, doc); err != nil {
		c.logger.Warn("Local save before push failed", zap.Error(err))
	}
	return c.Push(ctx, doc, token)
}

// Push posts doc without touching the local store. Callers that already
// saved, such as the editor, use it directly.
func (c *Client) Push(ctx context.Context, doc portfolio.Document, token string) SyncResult {
	token = strings.TrimSpace(token)
	if token == "" {
		return SyncResult{Synced: false}
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return SyncResult{Synced: false, Error: err.Error()}
	}

	status, body, err := c.doRequest(ctx, http.MethodPost, payload, token)
	if err != nil {
		return SyncResult{Synced: false, Error: err.Error()}
	}
	if status >= 200 && status < 300 {
		return SyncResult{Synced: true}
	}

	var apiErr apiError
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
		return SyncResult{Synced: false, Error: apiErr.Error}
	}
	return SyncResult{Synced: false, Error: fmt.Sprintf("HTTP %d", status)}
}

func (c *Client) doRequest(ctx context.Context, method string, payload []byte, token string) (int, []byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+portfolioPath, bodyReader)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, respBody, nil
}
