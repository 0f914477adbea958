package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Doer abstracts the transport used by JSONClient. It is satisfied by both
// Client and CircuitBreakerClient, so callers can layer breaker protection
// without changing the gateway code.
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// JSONClient issues JSON requests against a configured base URL, merging
// default headers and query parameters. Non-2xx responses are raised as
// errors via ParseResponseError.
type JSONClient struct {
	name    string
	baseURL string
	doer    Doer
	headers http.Header
}

// NewJSONClient creates a JSON client for the named remote API. The name is
// used in error messages and logs, not on the wire.
func NewJSONClient(name, baseURL string, doer Doer) *JSONClient {
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	headers.Set("Accept", "application/json")

	return &JSONClient{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		doer:    doer,
		headers: headers,
	}
}

// WithHeader returns a copy of the client with an additional default header.
func (c *JSONClient) WithHeader(key, value string) *JSONClient {
	cpy := *c
	cpy.headers = c.headers.Clone()
	cpy.headers.Set(key, value)
	return &cpy
}

// buildURL joins the base URL with the given path and encodes query
// parameters. Absolute URLs are passed through untouched.
func (c *JSONClient) buildURL(path string, params url.Values) string {
	full := path
	if !strings.HasPrefix(path, "http") {
		full = c.baseURL + path
	}
	if len(params) == 0 {
		return full
	}
	return full + "?" + params.Encode()
}

// Do issues a request with the given method, path, query parameters, and
// optional JSON body, decoding a JSON response into out when out is non-nil.
// Per-request headers override the client's defaults.
func (c *JSONClient) Do(ctx context.Context, method, path string, params url.Values, headers http.Header, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshal request body: %w", c.name, err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path, params), reqBody)
	if err != nil {
		return fmt.Errorf("%s: create %s request: %w", c.name, method, err)
	}

	for key, values := range c.headers {
		req.Header[key] = values
	}
	for key, values := range headers {
		req.Header[key] = values
	}

	resp, err := c.doer.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("%s: %w", c.name, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ParseResponseError(resp, c.name)
	}

	defer func() { _ = resp.Body.Close() }()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", c.name, err)
	}
	return nil
}

// Get issues a GET request and decodes the JSON response into out.
func (c *JSONClient) Get(ctx context.Context, path string, params url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, params, nil, nil, out)
}

// Post issues a POST request with a JSON body.
func (c *JSONClient) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, nil, body, out)
}

// Put issues a PUT request with a JSON body.
func (c *JSONClient) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, nil, body, out)
}

// Patch issues a PATCH request with a JSON body.
func (c *JSONClient) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPatch, path, nil, nil, body, out)
}

// Delete issues a DELETE request.
func (c *JSONClient) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, nil, out)
}
