package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
)

// CartItem is one line of the cart. ID, Title, Price and Quantity are the
// fields the cart logic works with; every other field of the product it was
// created from (image, localized title, description, ...) is kept in Extra
// and written back unchanged.
type CartItem struct {
	ID       string
	Title    string
	Price    float64
	Quantity int

	Extra map[string]json.RawMessage
}

var cartItemCoreKeys = []string{"id", "title", "price", "quantity"}

// Subtotal is Price × Quantity.
func (c CartItem) Subtotal() float64 {
	return c.Price * float64(c.Quantity)
}

// Clone returns a copy whose Extra map can be modified independently.
func (c CartItem) Clone() CartItem {
	c.Extra = maps.Clone(c.Extra)
	return c
}

// ExtraString returns a passthrough field decoded as a string, or "" when it
// is absent or not a string.
func (c CartItem) ExtraString(key string) string {
	raw, ok := c.Extra[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func (c CartItem) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Extra)+len(cartItemCoreKeys))
	for k, v := range c.Extra {
		out[k] = v
	}
	out["id"] = c.ID
	out["title"] = c.Title
	out["price"] = c.Price
	out["quantity"] = c.Quantity
	return json.Marshal(out)
}

func (c *CartItem) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}

	var item CartItem

	if raw, ok := fields["id"]; ok {
		id, err := decodeID(raw)
		if err != nil {
			return err
		}
		item.ID = id
	}
	if raw, ok := fields["title"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &item.Title); err != nil {
			return fmt.Errorf("cart item title: %w", err)
		}
	}
	if raw, ok := fields["price"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &item.Price); err != nil {
			return fmt.Errorf("cart item price: %w", err)
		}
	}
	if raw, ok := fields["quantity"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &item.Quantity); err != nil {
			return fmt.Errorf("cart item quantity: %w", err)
		}
	}

	for _, k := range cartItemCoreKeys {
		delete(fields, k)
	}
	if len(fields) > 0 {
		item.Extra = fields
	}

	*c = item
	return nil
}

// decodeID accepts string and numeric ids; numbers keep their literal text.
func decodeID(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&n); err != nil {
		return "", fmt.Errorf("cart item id: %w", err)
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return "", fmt.Errorf("cart item id: %w", err)
	}
	return n.String(), nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
