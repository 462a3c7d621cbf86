package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/eliteshop/eliteshop/internal/domain"
)

// InsertOrderParams holds the fields for a new order row. UserID of zero
// stores NULL for guest orders.
type InsertOrderParams struct {
	UserID          int64
	OrderNumber     string
	TotalAmount     float64
	ShippingAddress string
	BillingAddress  string
	PaymentMethod   string
}

// InsertOrder creates an order row with pending status and payment status,
// returning the new order ID.
func (q *Queries) InsertOrder(ctx context.Context, params InsertOrderParams) (int64, error) {
	var id int64
	err := q.db.QueryRow(ctx, `
		INSERT INTO orders (user_id, order_number, total_amount, shipping_address, billing_address, payment_method)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		nullInt8(params.UserID), params.OrderNumber, params.TotalAmount,
		params.ShippingAddress, params.BillingAddress, params.PaymentMethod,
	).Scan(&id)
	return id, err
}

// InsertOrderItemParams holds the fields for one order line.
type InsertOrderItemParams struct {
	OrderID   int64
	ProductID int64
	Quantity  int32
	Price     float64
}

// InsertOrderItem creates one order line.
func (q *Queries) InsertOrderItem(ctx context.Context, params InsertOrderItemParams) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO order_items (order_id, product_id, quantity, price)
		VALUES ($1, $2, $3, $4)`,
		params.OrderID, params.ProductID, params.Quantity, params.Price)
	return err
}

// UpdateOrderStatus sets an order's status, returning rows affected so the
// caller can detect a missing order.
func (q *Queries) UpdateOrderStatus(ctx context.Context, orderID int64, status string) (int64, error) {
	tag, err := q.db.Exec(ctx, `
		UPDATE orders SET status = $1, updated_at = now() WHERE id = $2`,
		status, orderID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const orderColumns = `
	o.id, o.user_id, o.order_number, o.total_amount, o.status,
	COALESCE(o.shipping_address, ''), COALESCE(o.billing_address, ''),
	COALESCE(o.payment_method, ''), o.payment_status, o.created_at, o.updated_at`

func scanOrder(row rowScanner) (domain.Order, error) {
	var o domain.Order
	var userID pgtype.Int8
	err := row.Scan(
		&o.ID, &userID, &o.OrderNumber, &o.TotalAmount, &o.Status,
		&o.ShippingAddress, &o.BillingAddress,
		&o.PaymentMethod, &o.PaymentStatus, &o.CreatedAt, &o.UpdatedAt,
	)
	if userID.Valid {
		o.UserID = userID.Int64
	}
	return o, err
}

// GetOrder returns a single order without its items.
func (q *Queries) GetOrder(ctx context.Context, orderID int64) (domain.Order, error) {
	row := q.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders o WHERE o.id = $1`, orderID)
	return scanOrder(row)
}

// GetOrderItems returns an order's lines joined with product name and image.
func (q *Queries) GetOrderItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	rows, err := q.db.Query(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price,
		       p.name, COALESCE(p.image_url, '')
		FROM order_items oi
		JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id = $1
		ORDER BY oi.id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price,
			&item.ProductName, &item.ImageURL,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ListOrdersByUser returns a user's orders newest first, without items.
func (q *Queries) ListOrdersByUser(ctx context.Context, userID int64, limit, offset int32) ([]domain.Order, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders o
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
