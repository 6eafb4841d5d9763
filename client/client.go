// Package client is the typed SDK for the EV-charging reservation API. It
// owns transport concerns only: bearer injection, the fixed wire formats,
// and the error taxonomy. Nothing here retries; a failed call is terminal
// for the action that issued it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPDoer defines the http.Client interface subset used by the SDK.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// TokenSource supplies the bearer credential for authenticated calls.
// The second return is false when no session is present, in which case
// the call fails locally with ErrNoSession and nothing is sent.
type TokenSource interface {
	Token() (string, bool)
}

// StaticToken is a TokenSource over a fixed credential.
type StaticToken string

// Token implements TokenSource.
func (t StaticToken) Token() (string, bool) {
	return string(t), t != ""
}

// Client calls the reservation API.
type Client struct {
	baseURL string
	http    HTTPDoer
	tokens  TokenSource
}

// New builds a client. tokens may be nil for a client that only performs
// unauthenticated calls.
func New(baseURL string, httpClient HTTPDoer, tokens TokenSource) *Client {
	if httpClient == nil {
		httpClient = NewDefaultHTTPClient(10 * time.Second)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		tokens:  tokens,
	}
}

// NewDefaultHTTPClient returns an *http.Client with a total timeout.
func NewDefaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

func (c *Client) url(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// do executes one API call. body and out may be nil. When authed is set,
// the bearer token is attached; a missing session fails before any request
// is issued.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, authed bool) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		if c.tokens == nil {
			return ErrNoSession
		}
		token, ok := c.tokens.Token()
		if !ok {
			return ErrNoSession
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("client: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp.StatusCode, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("client: decode response: %w", err)
		}
	}
	return nil
}
