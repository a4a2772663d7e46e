package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/eduroot/storefront/internal/client/models"
	"github.com/eduroot/storefront/internal/client/store"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// ---- fake API ----

// fakeAPI implements client.API with canned replies and records calls.
type fakeAPI struct {
	mu sync.Mutex

	MeRet *models.User
	MeErr error
	// MeHook, when set, runs inside Me before it returns.
	MeHook func()

	LoginRet *models.AuthResponse
	LoginErr error

	RegisterRet *models.AuthResponse
	RegisterErr error

	BooksRet []models.Book
	BooksErr error

	CreateOrderRet *models.Order
	CreateOrderErr error

	VerifyErr error

	MeCalls         int
	LastCredentials models.Credentials
	LastReg         models.Registration
	LastOrder       models.OrderRequest
	LastVerify      models.PaymentVerification
}

func (f *fakeAPI) Me(context.Context) (*models.User, error) {
	f.mu.Lock()
	f.MeCalls++
	hook := f.MeHook
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	if f.MeErr != nil {
		return nil, f.MeErr
	}
	if f.MeRet == nil {
		return nil, nil
	}
	u := *f.MeRet
	return &u, nil
}

func (f *fakeAPI) Login(_ context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastCredentials = creds
	return f.LoginRet, f.LoginErr
}

func (f *fakeAPI) Register(_ context.Context, reg models.Registration) (*models.AuthResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastReg = reg
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeAPI) Books(context.Context) ([]models.Book, error) {
	return f.BooksRet, f.BooksErr
}

func (f *fakeAPI) CreateOrder(_ context.Context, req models.OrderRequest) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastOrder = req
	return f.CreateOrderRet, f.CreateOrderErr
}

func (f *fakeAPI) VerifyPayment(_ context.Context, v models.PaymentVerification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastVerify = v
	return f.VerifyErr
}

// ---- recording store ----

// recordingStore wraps a MemoryStore, counts writes and can fail them.
type recordingStore struct {
	*store.MemoryStore

	mu       sync.Mutex
	writes   []string
	SetErr   error
	DelErr   error
	GetErr   error
	closed   bool
	CloseErr error
}

func newRecordingStore() *recordingStore {
	return &recordingStore{MemoryStore: store.NewMemoryStore()}
}

func (r *recordingStore) Get(ctx context.Context, key string) (string, bool, error) {
	if r.GetErr != nil {
		return "", false, r.GetErr
	}
	return r.MemoryStore.Get(ctx, key)
}

func (r *recordingStore) Set(ctx context.Context, key, value string) error {
	if r.SetErr != nil {
		return r.SetErr
	}
	r.mu.Lock()
	r.writes = append(r.writes, "set "+key)
	r.mu.Unlock()
	return r.MemoryStore.Set(ctx, key, value)
}

func (r *recordingStore) Delete(ctx context.Context, key string) error {
	if r.DelErr != nil {
		return r.DelErr
	}
	r.mu.Lock()
	r.writes = append(r.writes, "delete "+key)
	r.mu.Unlock()
	return r.MemoryStore.Delete(ctx, key)
}

func (r *recordingStore) Close() error {
	r.closed = true
	return r.CloseErr
}

func (r *recordingStore) Writes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.writes...)
}

// ---- helpers ----

var errBoom = errors.New("boom")

func seed(t *testing.T, st store.Store, kv map[string]string) {
	t.Helper()
	for k, v := range kv {
		require.NoError(t, st.Set(context.Background(), k, v))
	}
}

func stored(t *testing.T, st store.Store, key string) (string, bool) {
	t.Helper()
	v, ok, err := st.Get(context.Background(), key)
	require.NoError(t, err)
	return v, ok
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}
