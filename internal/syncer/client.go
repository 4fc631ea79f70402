package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// Record is the remote mirror of the document, one per authenticated user.
type Record struct {
	Content   string    `json:"content"`
	Columns   int       `json:"columns"`
	FontSize  int       `json:"fontSize"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Client is the remote content collaborator: fetch creates a default record
// server-side on first access, update replaces the stored record wholesale
// and echoes it back.
type Client interface {
	FetchContent(ctx context.Context) (*Record, error)
	UpdateContent(ctx context.Context, rec Record) (*Record, error)
}

// HTTPClient talks JSON to the content service, carrying the opaque session
// credential on every request.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// SetToken swaps the session credential, e.g. after (re)authentication.
func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) authorize(req *http.Request) {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *HTTPClient) FetchContent(ctx context.Context) (*Record, error) {
	url := fmt.Sprintf("%s/api/content", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf(
			"content fetch error: status=%d body=%s",
			resp.StatusCode,
			string(b),
		)
	}

	var rec Record
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, err
	}

	return &rec, nil
}

func (c *HTTPClient) UpdateContent(ctx context.Context, rec Record) (*Record, error) {
	url := fmt.Sprintf("%s/api/content", c.baseURL)

	body, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPut,
		url,
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf(
			"content update error: status=%d body=%s",
			resp.StatusCode,
			string(b),
		)
	}

	var stored Record
	if err := json.NewDecoder(resp.Body).Decode(&stored); err != nil {
		return nil, err
	}

	return &stored, nil
}
