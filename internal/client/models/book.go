package models

import "encoding/json"

// Book is a bookstore catalog entry from GET /books.
type Book struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	TitleHi     string  `json:"title_hi,omitempty"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	ClassID     string  `json:"class_id,omitempty"`
}

// LocalizedTitle prefers the Hindi title when lang is Hindi and one exists.
func (b Book) LocalizedTitle(lang Language) string {
	if lang == LanguageHindi && b.TitleHi != "" {
		return b.TitleHi
	}
	return b.Title
}

// CartItem converts the book into a cart line with quantity 0; the cart
// assigns the quantity. Non-core fields travel in Extra.
func (b Book) CartItem() CartItem {
	item := CartItem{ID: b.ID, Title: b.Title, Price: b.Price, Extra: map[string]json.RawMessage{}}

	for k, v := range map[string]string{
		"title_hi":    b.TitleHi,
		"description": b.Description,
		"image":       b.Image,
		"class_id":    b.ClassID,
	} {
		if v == "" {
			continue
		}
		raw, _ := json.Marshal(v)
		item.Extra[k] = raw
	}
	return item
}
