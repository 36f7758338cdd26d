// Package gateway is the single chokepoint for calls to the remote HR service.
// Every request carries the current session's bearer token and the configured
// static headers, and every failure is reported as an *Error with a Kind.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	defaultTimeout  = 15 * time.Second
	maxResponseBody = 10 << 20
	maxPlainMessage = 200
)

// Options configures a Client.
type Options struct {
	// BaseURL is the API root, e.g. "https://hr.example.com/api".
	BaseURL string
	// Timeout bounds each call. The caller's context may end it sooner.
	Timeout time.Duration
	// ExtraHeaders are set on every request.
	ExtraHeaders map[string]string
	// ErrorMessagePath extracts a message from error bodies (JMESPath).
	ErrorMessagePath string
	// DataPath unwraps a response envelope before decoding (JMESPath).
	DataPath string

	Credentials CredentialSource
	HTTPClient  *http.Client
	Logger      *slog.Logger
}

// Client performs JSON calls against the HR service.
type Client struct {
	base     *url.URL
	timeout  time.Duration
	headers  map[string]string
	errorMsg Expression
	data     Expression
	creds    CredentialSource
	hc       *http.Client
	logger   *slog.Logger
}

// Request describes one call. Path is relative to the base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// New builds a Client. BaseURL must be an absolute http(s) URL.
func New(opts Options) (*Client, error) {
	raw := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if raw == "" {
		return nil, errors.New("gateway base url is required")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse gateway base url: %w", err)
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("gateway base url must be an absolute http(s) url: %q", raw)
	}

	errorMsg, err := CompileExpression(opts.ErrorMessagePath)
	if err != nil {
		return nil, fmt.Errorf("error message path: %w", err)
	}
	data, err := CompileExpression(opts.DataPath)
	if err != nil {
		return nil, fmt.Errorf("data path: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	creds := opts.Credentials
	if creds == nil {
		creds = SessionCredentials()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	headers := make(map[string]string, len(opts.ExtraHeaders))
	for k, v := range opts.ExtraHeaders {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		headers[http.CanonicalHeaderKey(k)] = strings.TrimSpace(v)
	}

	return &Client{
		base:     base,
		timeout:  timeout,
		headers:  headers,
		errorMsg: errorMsg,
		data:     data,
		creds:    creds,
		hc:       hc,
		logger:   logger.With("component", "gateway"),
	}, nil
}

// WithCredentials returns a copy of the client using creds for the bearer token.
func (c *Client) WithCredentials(creds CredentialSource) *Client {
	cp := *c
	cp.creds = creds
	return &cp
}

// Get issues a GET and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

// Post issues a POST with a JSON body and decodes the response into out (may be nil).
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

// Put issues a PUT with a JSON body and decodes the response into out (may be nil).
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body}, out)
}

// Delete issues a DELETE and discards the response body.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path}, nil)
}

// Do performs the request. When out is nil the response body is discarded.
func (c *Client) Do(ctx context.Context, r Request, out any) error {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	fail := func(kind Kind, err error) error {
		return &Error{Kind: kind, Method: method, Path: r.Path, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return fail(KindCanceled, err)
	}

	req, err := c.newRequest(ctx, method, r)
	if err != nil {
		return fail(KindNetwork, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	req = req.WithContext(callCtx)

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			c.logger.DebugContext(ctx, "gateway call canceled", "method", method, "path", r.Path)
			return fail(KindCanceled, ctx.Err())
		}
		c.logger.WarnContext(ctx, "gateway call failed", "method", method, "path", r.Path, "error", err)
		return fail(KindNetwork, err)
	}

	body, readErr := readBody(resp)
	c.logger.DebugContext(ctx, "gateway call",
		"method", method,
		"path", r.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)
	if readErr != nil {
		if ctx.Err() != nil {
			return fail(KindCanceled, ctx.Err())
		}
		return fail(KindNetwork, readErr)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		kind := KindRejected
		if resp.StatusCode == http.StatusUnauthorized {
			kind = KindUnauthorized
		}
		return &Error{
			Kind:    kind,
			Method:  method,
			Path:    r.Path,
			Status:  resp.StatusCode,
			Message: c.errorMessage(body),
		}
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := c.data.Decode(body, out); err != nil {
		return fail(KindMalformed, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method string, r Request) (*http.Request, error) {
	u := c.base.JoinPath(strings.TrimLeft(r.Path, "/"))
	if len(r.Query) > 0 {
		u.RawQuery = r.Query.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if token := c.creds.Token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func readBody(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	closeErr := resp.Body.Close()
	if err != nil {
		if closeErr != nil {
			return nil, errors.Join(
				fmt.Errorf("read response body: %w", err),
				fmt.Errorf("close response body: %w", closeErr),
			)
		}
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return body, nil
}

// errorMessage extracts a human message from an error body. Short plain-text
// bodies are used verbatim; HTML error pages are ignored.
func (c *Client) errorMessage(body []byte) string {
	if msg := c.errorMsg.SearchString(body); msg != "" {
		return msg
	}
	text := strings.TrimSpace(string(body))
	if text == "" || strings.HasPrefix(text, "<") || strings.HasPrefix(text, "{") || strings.HasPrefix(text, "[") {
		return ""
	}
	if !utf8.ValidString(text) || utf8.RuneCountInString(text) > maxPlainMessage {
		return ""
	}
	return text
}
