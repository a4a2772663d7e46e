package services

import (
	"context"
	"fmt"

	"github.com/eduroot/storefront/internal/client/client"
	"github.com/eduroot/storefront/internal/client/models"
	"github.com/eduroot/storefront/internal/logging"
)

// CheckoutService turns the cart into a backend payment order and confirms
// the payment once the external payment widget reports success.
type CheckoutService struct {
	api      client.API
	session  *SessionService
	cart     *CartService
	currency string
	logger   logging.Logger
}

// NewCheckoutService builds a coordinator over session and cart. An empty
// currency means models.DefaultCurrency.
func NewCheckoutService(api client.API, session *SessionService, cart *CartService, currency string, logger logging.Logger) *CheckoutService {
	if currency == "" {
		currency = models.DefaultCurrency
	}
	return &CheckoutService{
		api:      api,
		session:  session,
		cart:     cart,
		currency: currency,
		logger:   logger.With("component", "checkout"),
	}
}

// Start creates a payment order for the current cart. The returned order's
// OrderID and KeyID are what the payment widget is opened with.
func (c *CheckoutService) Start(ctx context.Context) (*models.Order, error) {
	if !c.session.Snapshot().Authenticated() {
		return nil, ErrNotAuthenticated
	}
	req := c.cart.OrderRequest(c.currency)
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}

	order, err := c.api.CreateOrder(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	c.logger.Info(ctx, "order created", "order_id", order.OrderID, "amount", req.Amount, "currency", req.Currency)
	return order, nil
}

// Confirm verifies a completed payment with the backend and then empties
// the cart. If verification fails the cart is kept.
func (c *CheckoutService) Confirm(ctx context.Context, orderID, paymentID string) error {
	err := c.api.VerifyPayment(ctx, models.PaymentVerification{OrderID: orderID, PaymentID: paymentID})
	if err != nil {
		return fmt.Errorf("verify payment: %w", err)
	}
	c.logger.Info(ctx, "payment verified", "order_id", orderID)

	if err := c.cart.Clear(ctx); err != nil {
		return fmt.Errorf("payment verified but clearing cart failed: %w", err)
	}
	return nil
}
