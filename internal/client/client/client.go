package client

import (
	"context"

	"github.com/eduroot/storefront/internal/client/models"
)

// API is the backend contract the client core depends on.
type API interface {
	// Me fetches the identity behind the current bearer token.
	Me(ctx context.Context) (*models.User, error)
	Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error)
	Register(ctx context.Context, reg models.Registration) (*models.AuthResponse, error)
	Books(ctx context.Context) ([]models.Book, error)
	CreateOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error)
	VerifyPayment(ctx context.Context, v models.PaymentVerification) error
}

// TokenReader is where the request interceptor looks up the bearer token.
// store.Store satisfies it.
type TokenReader interface {
	Get(ctx context.Context, key string) (string, bool, error)
}
