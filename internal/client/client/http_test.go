package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eduroot/storefront/internal/client/store"
	"github.com/eduroot/storefront/internal/logging"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingTokens struct{ err error }

func (f failingTokens) Get(context.Context, string) (string, bool, error) {
	return "", false, f.err
}

func bufferLogger() (logging.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil))), &buf
}

func newTestClient(t *testing.T, h http.HandlerFunc, opts Options, tokens TokenReader) (*HTTPClient, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	opts.BaseURL = BaseURL(srv.URL, "/api")
	log, buf := bufferLogger()
	c := NewHTTPClient(opts, tokens, log)
	t.Cleanup(func() { _ = c.Close() })
	return c, buf
}

func TestBaseURL(t *testing.T) {
	tests := []struct {
		name, origin, path, want string
	}{
		{"joined", "http://localhost:8001", "/api", "http://localhost:8001/api"},
		{"trailing slash on origin", "http://localhost:8001/", "/api", "http://localhost:8001/api"},
		{"path without slash", "https://shop.example", "api/", "https://shop.example/api"},
		{"default path", "https://shop.example", "", "https://shop.example/api"},
		{"missing origin is relative", "", "/api", "/api"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BaseURL(tt.origin, tt.path))
		})
	}
}

func TestDo_SetsDefaultHeadersAndBearer(t *testing.T) {
	tokens := store.NewMemoryStore()
	require.NoError(t, tokens.Set(context.Background(), store.KeyToken, "T1"))

	var got http.Header
	var gotPath string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{}`))
	}, Options{}, tokens)

	_, err := c.Get(context.Background(), "/books")
	require.NoError(t, err)

	assert.Equal(t, "/api/books", gotPath)
	assert.Equal(t, "Bearer T1", got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	_, err = uuid.Parse(got.Get(RequestIDHeaderName))
	assert.NoError(t, err, "request id must be a uuid")
}

func TestDo_NoTokenNoAuthorizationHeader(t *testing.T) {
	var auth string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}, Options{}, store.NewMemoryStore())

	_, err := c.Get(context.Background(), "/books")
	require.NoError(t, err)
	assert.Empty(t, auth)
}

func TestDo_TokenStoreFailureStillSendsRequest(t *testing.T) {
	called := false
	c, logs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{}`))
	}, Options{}, failingTokens{err: errors.New("disk gone")})

	_, err := c.Get(context.Background(), "/books")
	require.NoError(t, err)
	assert.True(t, called)
	assert.Contains(t, logs.String(), "token lookup failed")
}

func TestDo_PostEncodesJSONBody(t *testing.T) {
	var body map[string]any
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}, Options{}, nil)

	resp, err := c.Post(context.Background(), "/things", map[string]any{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.Status)
	assert.Equal(t, float64(1), body["a"])

	var out struct{ OK bool }
	require.NoError(t, resp.Decode(&out))
	assert.True(t, out.OK)
}

func TestDo_PutAndDeleteUseTheirMethods(t *testing.T) {
	var methods []string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}, Options{}, nil)

	_, err := c.Put(context.Background(), "/x", map[string]int{"n": 1})
	require.NoError(t, err)
	_, err = c.Delete(context.Background(), "/x")
	require.NoError(t, err)
	assert.Equal(t, []string{http.MethodPut, http.MethodDelete}, methods)
}

func TestDo_ErrorStatusBecomesResponseError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"Email already registered"}`))
	}, Options{}, nil)

	_, err := c.Post(context.Background(), "/auth/register", map[string]string{})
	require.Error(t, err)

	var rerr *ResponseError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, http.StatusBadRequest, rerr.Status)
	assert.Equal(t, "Email already registered", rerr.Detail())
	assert.Contains(t, rerr.Error(), "Email already registered")
	assert.NotErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestDo_UnauthorizedLogsWithoutLogoutByDefault(t *testing.T) {
	c, logs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Token expired"}`))
	}, Options{}, nil)

	hookCalls := 0
	c.OnUnauthorized(func(context.Context) { hookCalls++ })

	_, err := c.Get(context.Background(), "/auth/me")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Zero(t, hookCalls)
	assert.Contains(t, logs.String(), "unauthorized")
}

func TestDo_UnauthorizedRunsHookWhenAutoLogoutEnabled(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, Options{AutoLogoutOnUnauthorized: true}, nil)

	hookCalls := 0
	c.OnUnauthorized(func(context.Context) { hookCalls++ })

	_, err := c.Get(context.Background(), "/books")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 1, hookCalls)
}

func TestDo_UnauthorizedLoginDoesNotRunHook(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Invalid credentials"}`))
	}, Options{AutoLogoutOnUnauthorized: true}, nil)

	hookCalls := 0
	c.OnUnauthorized(func(context.Context) { hookCalls++ })

	for _, path := range []string{"/auth/login", "/auth/register"} {
		_, err := c.Post(context.Background(), path, map[string]string{"email": "a@x.in"})
		assert.ErrorIs(t, err, ErrUnauthorized, path)
	}
	assert.Zero(t, hookCalls)
}

func TestDo_TransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(Options{BaseURL: BaseURL(url, "/api")}, nil, logging.Nop())
	_, err := c.Get(context.Background(), "/books")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestDo_RelativeBaseURLFailsAsUnavailable(t *testing.T) {
	c := NewHTTPClient(Options{BaseURL: BaseURL("", "/api")}, nil, logging.Nop())
	_, err := c.Get(context.Background(), "/books")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestDo_TimeoutIsUnavailable(t *testing.T) {
	release := make(chan struct{})
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, Options{Timeout: 50 * time.Millisecond}, nil)
	defer close(release)

	_, err := c.Get(context.Background(), "/slow")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestDo_CanceledContextIsReported(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}, Options{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Get(ctx, "/books")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestResponse_DecodeErrors(t *testing.T) {
	r := &Response{Status: 200}
	assert.ErrorIs(t, r.Decode(&struct{}{}), ErrMalformedResponse)

	r.Data = []byte(`not json`)
	assert.ErrorIs(t, r.Decode(&struct{}{}), ErrMalformedResponse)
}

func TestResponseError_DetailFallbacks(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"detail string", `{"detail":"nope"}`, "nope"},
		{"message field", `{"message":"bad"}`, "bad"},
		{"validation list", `{"detail":[{"msg":"field required"}]}`, ""},
		{"not json", `<html>`, ""},
		{"empty", ``, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &ResponseError{Status: 422, Data: json.RawMessage(tt.body)}
			assert.Equal(t, tt.want, e.Detail())
		})
	}
}

// Requests from concurrent goroutines each read the token independently.
func TestDo_ConcurrentRequests(t *testing.T) {
	tokens := store.NewMemoryStore()
	require.NoError(t, tokens.Set(context.Background(), store.KeyToken, "T"))

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer T" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = io.WriteString(w, `{}`)
	}, Options{}, tokens)

	errs := make(chan error, 8)
	for range 8 {
		go func() {
			_, err := c.Get(context.Background(), "/books")
			errs <- err
		}()
	}
	for range 8 {
		assert.NoError(t, <-errs)
	}
}
