package integrations

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

	"github.com/matzehuels/eleitos/pkg/buildinfo"
	"github.com/matzehuels/eleitos/pkg/cache"
	"github.com/matzehuels/eleitos/pkg/observability"
)

// Client provides shared HTTP functionality for the upstream API clients.
// It handles response caching, default headers, and status mapping. It never
// retries a request.
type Client struct {
	http      *http.Client
	cache     cache.Cache
	namespace string
	ttl       time.Duration
	headers   map[string]string
}

// NewClient creates a Client. Cached GETs are stored in c under namespace for
// ttl; pass a nil cache to disable caching. Headers are applied to every
// request; pass nil if none are needed.
func NewClient(c cache.Cache, namespace string, ttl time.Duration, headers map[string]string) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Client{
		http:      NewHTTPClient(),
		cache:     c,
		namespace: namespace,
		ttl:       ttl,
		headers:   headers,
	}
}


// Response is a raw HTTP response whose status the caller interprets.
type Response struct {
	StatusCode int
	Body       []byte
}

// DecodeJSON decodes the body into v, wrapping failures with [ErrMalformed].
func (r *Response) DecodeJSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

// Get performs a cached HTTP GET and JSON-decodes the response into v.
// Only successful, decodable responses are cached.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	key := cache.HTTPKey(c.namespace, url)
	if data, ok, err := c.cache.Get(ctx, key); err == nil && ok {
		if json.Unmarshal(data, v) == nil {
			observability.Cache().OnCacheHit(ctx, c.namespace)
			return nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, c.namespace)

	data, err := c.GetBytes(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, url, err)
	}
	_ = c.cache.Set(ctx, key, data, c.ttl)
	return nil
}

// GetBytes performs an uncached HTTP GET and returns the body.
// Non-200 statuses are mapped to [ErrNotFound], [ErrUnauthorized] or [ErrNetwork].
func (c *Client) GetBytes(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.Do(ctx, http.MethodGet, url, nil, "")
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	return resp.Body, nil
}

// GetRaw performs an uncached HTTP GET and returns the response whatever its status.
func (c *Client) GetRaw(ctx context.Context, url string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, url, nil, "")
}

// PostForm submits form as application/x-www-form-urlencoded and returns the
// response whatever its status.
func (c *Client) PostForm(ctx context.Context, url string, form url.Values) (*Response, error) {
	return c.Do(ctx, http.MethodPost, url, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
}

// Do sends a request with the client's default headers. Transport failures
// are wrapped with [ErrNetwork]; the status code is left to the caller.
func (c *Client) Do(ctx context.Context, method, rawURL string, body io.Reader, contentType string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	host, path := req.URL.Host, req.URL.Path
	observability.HTTP().OnRequest(ctx, method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, method, host, path, err)
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		observability.HTTP().OnError(ctx, method, host, path, err)
		return nil, fmt.Errorf("%w: read body: %v", ErrNetwork, err)
	}
	observability.HTTP().OnResponse(ctx, method, host, path, resp.StatusCode, time.Since(start))

	return &Response{StatusCode: resp.StatusCode, Body: buf.Bytes()}, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusUnauthorized:
		return ErrUnauthorized
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
