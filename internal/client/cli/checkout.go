package cli

import (
	"context"
	"fmt"
)

// Checkout creates a payment order for the cart and prints what the payment
// widget needs.
func (a *App) Checkout(ctx context.Context) error {
	total := a.provider.Cart.Total()

	order, err := a.provider.Checkout.Start(ctx)
	if err != nil {
		return err
	}
	a.pending = order

	fmt.Fprintf(a.out, "Order %s created for %s\n", order.OrderID, a.money(total))
	fmt.Fprintf(a.out, "Pay with key %s, then run: confirm <payment id>\n", order.KeyID)
	return nil
}

// Confirm verifies a payment. With one argument it confirms the order
// started by the last checkout.
func (a *App) Confirm(ctx context.Context, args []string) error {
	var orderID, paymentID string
	switch len(args) {
	case 1:
		if a.pending == nil {
			return usage("no pending order; use: confirm <order id> <payment id>")
		}
		orderID, paymentID = a.pending.OrderID, args[0]
	case 2:
		orderID, paymentID = args[0], args[1]
	default:
		return usage("confirm [order id] <payment id>")
	}

	if err := a.provider.Checkout.Confirm(ctx, orderID, paymentID); err != nil {
		return err
	}
	a.pending = nil

	fmt.Fprintf(a.out, "Payment for order %s confirmed. Thank you!\n", orderID)
	return nil
}
