package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/eduroot/storefront/internal/client/models"
)

// Books fetches and prints the catalog.
func (a *App) Books(ctx context.Context) error {
	books, err := a.api.Books(ctx)
	if err != nil {
		return err
	}
	a.books = books

	if len(books) == 0 {
		fmt.Fprintln(a.out, "No books available")
		return nil
	}

	lang := a.provider.Session.Snapshot().Language
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPRICE")
	for _, b := range books {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", b.ID, b.LocalizedTitle(lang), a.money(b.Price))
	}
	return tw.Flush()
}

// Add puts one copy of a catalog book into the cart.
func (a *App) Add(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("add <book id>")
	}

	b, err := a.findBook(ctx, args[0])
	if err != nil {
		return err
	}
	if err := a.provider.Cart.Add(ctx, b.CartItem()); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Added %q to cart\n", b.LocalizedTitle(a.provider.Session.Snapshot().Language))
	return nil
}

// findBook looks id up in the last fetched catalog, fetching it if needed.
func (a *App) findBook(ctx context.Context, id string) (models.Book, error) {
	if a.books == nil {
		books, err := a.api.Books(ctx)
		if err != nil {
			return models.Book{}, err
		}
		a.books = books
	}
	for _, b := range a.books {
		if b.ID == id {
			return b, nil
		}
	}
	return models.Book{}, fmt.Errorf("no book with id %q (run 'books' to see the list)", id)
}

func (a *App) money(v float64) string {
	if a.config.Currency == models.DefaultCurrency {
		return fmt.Sprintf("₹%.2f", v)
	}
	return fmt.Sprintf("%.2f %s", v, a.config.Currency)
}
