package domain

import (
	"math"
	"time"
)

// CartLine is one product row in a cart, joined with catalog details for
// display. At most one line exists per (identity, product) pair.
type CartLine struct {
	ID           int64     `json:"id"`
	ProductID    int64     `json:"product_id"`
	Quantity     int32     `json:"quantity"`
	ProductName  string    `json:"product_name"`
	UnitPrice    float64   `json:"unit_price"`
	ImageURL     string    `json:"image_url,omitempty"`
	CategoryName string    `json:"category_name,omitempty"`
	TotalPrice   float64   `json:"total_price"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CartSummary is the cart view returned by every cart operation.
// ItemCount counts lines, not summed quantities.
type CartSummary struct {
	Items     []CartLine `json:"items"`
	Total     float64    `json:"total"`
	ItemCount int        `json:"itemCount"`
}

// RoundMoney rounds an amount to 2 decimal places. All derived totals pass
// through here so float accumulation never leaks sub-cent noise to callers.
func RoundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}
