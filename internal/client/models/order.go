package models

// DefaultCurrency is the currency the storefront charges in.
const DefaultCurrency = "INR"

// OrderItem is one line of an order payload.
type OrderItem struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// OrderRequest is the POST /orders/create payload.
type OrderRequest struct {
	Amount   float64     `json:"amount"`
	Currency string      `json:"currency"`
	Items    []OrderItem `json:"items"`
}

// Order is a payment order created by the backend. KeyID is the public key
// the external payment widget is opened with.
type Order struct {
	OrderID  string  `json:"order_id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	KeyID    string  `json:"key_id"`
}

// PaymentVerification is the POST /orders/verify payload.
type PaymentVerification struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
}
