package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/eduroot/storefront/internal/client/client"
	"github.com/eduroot/storefront/internal/client/store"
	"github.com/eduroot/storefront/internal/logging"
)

// Provider owns the session and cart managers and the checkout coordinator
// built on them. It is the single object the rest of the application holds.
type Provider struct {
	Session  *SessionService
	Cart     *CartService
	Checkout *CheckoutService

	store store.Store
}

// NewProvider wires the managers over api and st. Nothing is read until
// Init.
func NewProvider(api client.API, st store.Store, currency string, logger logging.Logger) *Provider {
	session := NewSessionService(api, st, logger)
	cart := NewCartService(st, logger)

	return &Provider{
		Session:  session,
		Cart:     cart,
		Checkout: NewCheckoutService(api, session, cart, currency, logger),
		store:    st,
	}
}

// Init loads the cart and restores the session. Both always complete; the
// returned error only reports what could not be read.
func (p *Provider) Init(ctx context.Context) error {
	var errs []error
	if err := p.Cart.Load(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := p.Session.Restore(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	return nil
}

// Close drops all subscribers and closes the store.
func (p *Provider) Close() error {
	p.Session.Close()
	p.Cart.Close()
	if err := p.store.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}
