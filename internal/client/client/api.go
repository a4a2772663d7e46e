package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/eduroot/storefront/internal/client/models"
)

var _ API = (*HTTPClient)(nil)

// Me accepts both {"user": {...}} and a bare user object.
func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	resp, err := c.Get(ctx, "/auth/me")
	if err != nil {
		return nil, err
	}

	var envelope map[string]json.RawMessage
	if err := resp.Decode(&envelope); err != nil {
		return nil, err
	}

	raw := json.RawMessage(resp.Data)
	if inner, ok := envelope["user"]; ok && !isJSONNull(inner) {
		raw = inner
	}

	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("%w: user: %v", ErrMalformedResponse, err)
	}
	if user.ID == "" && user.Email == "" {
		return nil, fmt.Errorf("%w: no user in /auth/me reply", ErrMalformedResponse)
	}
	return &user, nil
}

func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	return c.authenticate(ctx, "/auth/login", creds)
}

func (c *HTTPClient) Register(ctx context.Context, reg models.Registration) (*models.AuthResponse, error) {
	return c.authenticate(ctx, "/auth/register", reg)
}

func (c *HTTPClient) authenticate(ctx context.Context, path string, payload any) (*models.AuthResponse, error) {
	resp, err := c.Post(ctx, path, payload)
	if err != nil {
		return nil, err
	}
	var out models.AuthResponse
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Books accepts both {"books": [...]} and a bare array.
func (c *HTTPClient) Books(ctx context.Context) ([]models.Book, error) {
	resp, err := c.Get(ctx, "/books")
	if err != nil {
		return nil, err
	}

	var books []models.Book
	if err := json.Unmarshal(resp.Data, &books); err == nil {
		return books, nil
	}

	var envelope struct {
		Books []models.Book `json:"books"`
	}
	if err := resp.Decode(&envelope); err != nil {
		return nil, err
	}
	return envelope.Books, nil
}

func (c *HTTPClient) CreateOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error) {
	resp, err := c.Post(ctx, "/orders/create", req)
	if err != nil {
		return nil, err
	}
	var order models.Order
	if err := resp.Decode(&order); err != nil {
		return nil, err
	}
	if order.OrderID == "" {
		return nil, fmt.Errorf("%w: no order_id in /orders/create reply", ErrMalformedResponse)
	}
	return &order, nil
}

func (c *HTTPClient) VerifyPayment(ctx context.Context, v models.PaymentVerification) error {
	_, err := c.Post(ctx, "/orders/verify", v)
	return err
}

func isJSONNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}
