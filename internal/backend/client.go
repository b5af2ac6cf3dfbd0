// Package backend implements the client side of the external managed
// backend's contract: table queries, the authentication and handover
// procedures, and a watcher standing in for the realtime insert feed. The
// backend is the source of truth for all durable state; this package only
// reads snapshots and issues discrete mutation requests.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the backend's REST and RPC surface.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New creates a backend client for the given base URL and API key.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Error is a failure reported by the backend. The message is surfaced to the
// user verbatim on fatal paths (handover submission), so it is kept as
// received.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// get performs a table query and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, table string, query url.Values, out any) error {
	endpoint := c.baseURL + "/rest/v1/" + table
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", table, err)
	}

	return c.do(req, out)
}

// rpc invokes a remote procedure with JSON params, decoding the response
// into out when non-nil.
func (c *Client) rpc(ctx context.Context, name string, params, out any) error {
	body, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("encoding rpc params for %s: %w", name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/rest/v1/rpc/"+name, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building rpc request for %s: %w", name, err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

// patch updates rows matched by the query filter.
func (c *Client) patch(ctx context.Context, table string, query url.Values, fields any) error {
	body, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encoding update for %s: %w", table, err)
	}

	endpoint := c.baseURL + "/rest/v1/" + table + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building update request for %s: %w", table, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	return c.do(req, nil)
}

// do sends the request with auth headers and decodes the response.
func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding backend response: %w", err)
	}
	return nil
}

// decodeError extracts the backend's error message from a failed response.
func decodeError(resp *http.Response) error {
	backendErr := &Error{Status: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return backendErr
	}

	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
		backendErr.Message = payload.Message
	}
	return backendErr
}

// eq, ilike and contains build PostgREST filter expressions.
func eq(value string) string       { return "eq." + value }
func ilike(value string) string    { return "ilike." + value }
func contains(value string) string { return "ilike.*" + value + "*" }
