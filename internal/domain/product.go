package domain

import "time"

// Product statuses. Inactive products are hidden from the storefront and
// cannot be added to carts.
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

// Product is a catalog entry. The cart and order engines treat it as the
// authoritative source for price and stock; only the order engine mutates
// StockQuantity.
type Product struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Price         float64   `json:"price"`
	OriginalPrice float64   `json:"original_price,omitempty"`
	CategoryID    int64     `json:"category_id,omitempty"`
	CategoryName  string    `json:"category_name,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	StockQuantity int32     `json:"stock_quantity"`
	IsFeatured    bool      `json:"is_featured"`
	IsNew         bool      `json:"is_new"`
	Rating        float64   `json:"rating"`
	ReviewCount   int32     `json:"review_count"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Category groups products for storefront navigation.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
