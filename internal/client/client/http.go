package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/eduroot/storefront/internal/client/store"
	"github.com/eduroot/storefront/internal/logging"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultAPIPath = "/api"
	DefaultTimeout = 15 * time.Second

	RequestIDHeaderName = "X-Request-ID"
)

// Options are fixed when the client is constructed.
type Options struct {
	// BaseURL is the backend origin joined with the API path, see BaseURL.
	BaseURL string
	Timeout time.Duration
	// AutoLogoutOnUnauthorized lets a 401 reply invoke the OnUnauthorized
	// hook. Off by default: a 401 is only logged.
	AutoLogoutOnUnauthorized bool
	// Transport is wrapped with otelhttp; nil means http.DefaultTransport.
	Transport http.RoundTripper
}

// BaseURL joins the backend origin with the API path. An empty origin yields
// the relative API path, which cannot reach any server; callers are expected
// to report that as a configuration error.
func BaseURL(origin, apiPath string) string {
	if apiPath == "" {
		apiPath = DefaultAPIPath
	}
	apiPath = "/" + strings.Trim(apiPath, "/")
	if origin == "" {
		return apiPath
	}
	return strings.TrimRight(origin, "/") + apiPath
}

// Response is a successful (2xx) reply.
type Response struct {
	Status int
	Header http.Header
	Data   json.RawMessage
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v any) error {
	if len(r.Data) == 0 {
		return fmt.Errorf("%w: empty body", ErrMalformedResponse)
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenReader
	logger     logging.Logger
	autoLogout bool

	mu             sync.RWMutex
	onUnauthorized func(ctx context.Context)
}

func NewHTTPClient(opts Options, tokens TokenReader, logger logging.Logger) *HTTPClient {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	return &HTTPClient{
		baseURL: opts.BaseURL,
		httpClient: &http.Client{
			Timeout:   opts.Timeout,
			Transport: otelhttp.NewTransport(transport),
		},
		tokens:     tokens,
		logger:     logger.With("component", "http"),
		autoLogout: opts.AutoLogoutOnUnauthorized,
	}
}

// OnUnauthorized registers the hook run on a 401 reply when auto-logout is
// enabled. A later call replaces the hook.
func (c *HTTPClient) OnUnauthorized(fn func(ctx context.Context)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

func (c *HTTPClient) BaseURL() string { return c.baseURL }

func (c *HTTPClient) Get(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

func (c *HTTPClient) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

func (c *HTTPClient) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPut, path, body)
}

func (c *HTTPClient) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil)
}

func (c *HTTPClient) url(path string) string {
	return strings.TrimRight(c.baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// Do sends one request through both interceptors. body, when non-nil, is
// encoded as JSON.
func (c *HTTPClient) Do(ctx context.Context, method, path string, body any) (*Response, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeaderName, uuid.NewString())

	c.authInterceptor(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s %s: %w", method, path, ctxErr)
		}
		return nil, fmt.Errorf("%s %s: %w: %v", method, path, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: reading body: %v", method, path, ErrUnavailable, err)
	}

	out := &Response{Status: resp.StatusCode, Header: resp.Header, Data: data}
	if err := c.responseInterceptor(ctx, method, path, out); err != nil {
		return nil, err
	}
	return out, nil
}

// authInterceptor attaches the stored bearer token, if any.
func (c *HTTPClient) authInterceptor(ctx context.Context, req *http.Request) {
	if c.tokens == nil {
		return
	}
	token, ok, err := c.tokens.Get(ctx, store.KeyToken)
	if err != nil {
		c.logger.Warn(ctx, "token lookup failed, sending request without credentials",
			"path", req.URL.Path, "error", err)
		return
	}
	if ok && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// credentialPaths answer 401 for bad credentials, not for a rejected token,
// so they never trigger the unauthorized hook.
var credentialPaths = map[string]bool{
	"/auth/login":    true,
	"/auth/register": true,
}

func (c *HTTPClient) responseInterceptor(ctx context.Context, method, path string, resp *Response) error {
	if resp.Status >= 200 && resp.Status < 300 {
		return nil
	}

	rerr := &ResponseError{Method: method, Path: path, Status: resp.Status, Data: resp.Data}

	if errors.Is(rerr, ErrUnauthorized) {
		c.logger.Warn(ctx, "unauthorized, token may be expired", "method", method, "path", path)

		c.mu.RLock()
		hook := c.onUnauthorized
		c.mu.RUnlock()

		if c.autoLogout && hook != nil && !credentialPaths[path] {
			hook(ctx)
		}
	}

	return rerr
}

// Close releases idle connections.
func (c *HTTPClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
