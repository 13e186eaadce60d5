package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/myhealth/internal/logging"
	json "github.com/goccy/go-json"
)

const maxBodySize = 4 << 20

// Client talks to the REST backend. It is safe for concurrent use.
type Client struct {
	base    *url.URL
	http    *http.Client
	logger  logging.Logger
	timeout time.Duration
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithTimeout bounds every request. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New parses baseURL and builds a client. The URL must be absolute.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	c := &Client{
		base:   u,
		http:   http.DefaultClient,
		logger: logging.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

type envelope struct {
	Error string          `json:"error"`
	Data  json.RawMessage `json:"data"`
}

// Fetch GETs path and decodes the envelope data into T.
func Fetch[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	var out T
	data, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return out, err
	}
	if err := decodeData(data, &out); err != nil {
		return out, err
	}
	return out, nil
}

// List GETs path and decodes the envelope data into a slice. A null or absent
// data field yields an empty slice.
func List[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	out, err := Fetch[[]T](ctx, c, path, query)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Upsert POSTs body as JSON to path.
func Upsert(ctx context.Context, c *Client, path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return transportError(0, fmt.Errorf("encode request: %w", err))
	}
	_, err = c.do(ctx, http.MethodPost, path, nil, payload)
	return err
}

func Delete(ctx context.Context, c *Client, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

func decodeData(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return transportError(0, fmt.Errorf("decode data: %w", err))
	}
	return nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.base.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do performs one request and returns the envelope data on success.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte) (json.RawMessage, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}

	target := c.endpoint(path, query)
	req, err := http.NewRequestWithContext(ctx, method, target, rd)
	if err != nil {
		return nil, transportError(0, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug(ctx, "backend request failed", "method", method, "url", target, "error", err)
		return nil, transportError(0, err)
	}
	defer resp.Body.Close()

	c.logger.Debug(ctx, "backend request",
		"method", method, "url", target, "status", resp.StatusCode, "elapsed", time.Since(start))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, transportError(resp.StatusCode, fmt.Errorf("read body: %w", err))
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, transportError(resp.StatusCode, fmt.Errorf("decode envelope: %w", err))
	}

	if env.Error != "" {
		kind := KindApplication
		if resp.StatusCode == http.StatusNotFound {
			kind = KindNotFound
		}
		return nil, &Error{Kind: kind, Status: resp.StatusCode, Message: env.Error}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, transportError(resp.StatusCode, fmt.Errorf("unexpected status %s", resp.Status))
	}

	return env.Data, nil
}
