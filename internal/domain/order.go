package domain

import "time"

// Order statuses. Any status may transition to any other; only set
// membership is enforced.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Payment statuses.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// ValidOrderStatus reports whether s is one of the enumerated order statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is an immutable snapshot of a drained cart. Only Status and
// PaymentStatus change after creation.
type Order struct {
	ID              int64       `json:"id"`
	UserID          int64       `json:"user_id,omitempty"`
	OrderNumber     string      `json:"order_number"`
	TotalAmount     float64     `json:"total_amount"`
	Status          string      `json:"status"`
	ShippingAddress string      `json:"shipping_address"`
	BillingAddress  string      `json:"billing_address"`
	PaymentMethod   string      `json:"payment_method"`
	PaymentStatus   string      `json:"payment_status"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
	Items           []OrderItem `json:"items,omitempty"`
}

// OrderItem is one line of an order. Price is captured at order creation and
// never tracks later product price changes.
type OrderItem struct {
	ID          int64   `json:"id"`
	OrderID     int64   `json:"order_id"`
	ProductID   int64   `json:"product_id"`
	Quantity    int32   `json:"quantity"`
	Price       float64 `json:"price"`
	ProductName string  `json:"product_name,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
}

// OrderLineInput is a caller-supplied order line for order creation.
// The engine trusts the caller's price snapshot rather than re-pricing from
// the catalog; see the order service for discussion of that inherited choice.
type OrderLineInput struct {
	ProductID int64   `json:"product_id" validate:"required,gt=0"`
	Quantity  int32   `json:"quantity" validate:"required,gt=0"`
	Price     float64 `json:"price" validate:"gte=0"`
}

// User is a registered customer account.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
