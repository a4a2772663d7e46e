package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/eduroot/storefront/internal/client/models"
)

// ShowCart prints the cart lines and the total.
func (a *App) ShowCart(ctx context.Context) error {
	cart := a.provider.Cart.Snapshot()
	if len(cart.Items) == 0 {
		fmt.Fprintln(a.out, "Your cart is empty")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tQTY\tPRICE\tSUBTOTAL")
	for _, it := range cart.Items {
		title := it.Title
		if a.provider.Session.Snapshot().Language == models.LanguageHindi {
			if hi := it.ExtraString("title_hi"); hi != "" {
				title = hi
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", it.ID, title, it.Quantity, a.money(it.Price), a.money(it.Subtotal()))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Total: %s (%d items)\n", a.money(cart.Total), cart.Count)
	return nil
}

func (a *App) Remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("remove <book id>")
	}
	if err := a.provider.Cart.Remove(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Removed")
	return nil
}

// Quantity sets the quantity of a cart line; 0 removes it.
func (a *App) Quantity(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("qty <book id> <quantity>")
	}
	q, err := strconv.Atoi(args[1])
	if err != nil {
		return usage("qty <book id> <quantity>: %q is not a number", args[1])
	}
	if err := a.provider.Cart.UpdateQuantity(ctx, args[0], q); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Total: %s\n", a.money(a.provider.Cart.Total()))
	return nil
}

func (a *App) ClearCart(ctx context.Context) error {
	if err := a.provider.Cart.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Cart cleared")
	return nil
}
