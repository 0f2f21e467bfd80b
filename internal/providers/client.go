package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client is the upstream VPN-panel surface the reseller talks to. Payloads
// stay opaque maps; the wire contracts belong to the panels.
type Client interface {
	CreateUser(ctx context.Context, username, password string, quotaGB float64, days int) (map[string]any, error)
	GetUsage(ctx context.Context, username string) (map[string]any, error)
}

const requestTimeout = 15 * time.Second

// restClient implements the shared request plumbing for both panels.
type restClient struct {
	base  string
	token string
	name  string
	http  *http.Client
}

func newRESTClient(name, base, token string) *restClient {
	return &restClient{
		base:  strings.TrimRight(base, "/"),
		token: token,
		name:  name,
		http:  &http.Client{Timeout: requestTimeout},
	}
}

func (c *restClient) post(ctx context.Context, path string, payload map[string]any) (map[string]any, error) {
	if c.base == "" {
		return nil, fmt.Errorf("%s API URL not set", c.name)
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", c.name, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)
	return c.do(req)
}

func (c *restClient) get(ctx context.Context, path string) (map[string]any, error) {
	if c.base == "" {
		return nil, fmt.Errorf("%s API URL not set", c.name)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)
	return c.do(req)
}

func (c *restClient) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func (c *restClient) do(req *http.Request) (map[string]any, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", c.name, err)
	}
	defer resp.Body.Close()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", c.name, err)
	}
	if errMsg, ok := out["error"]; ok {
		return nil, fmt.Errorf("%s error: %v", c.name, errMsg)
	}
	return out, nil
}
