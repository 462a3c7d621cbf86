package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/eliteshop/eliteshop/internal/domain"
	"github.com/eliteshop/eliteshop/internal/events"
	"github.com/eliteshop/eliteshop/internal/repository"
)

// OrderService provides business logic for order operations.
type OrderService interface {
	// CreateOrder atomically converts a cart snapshot into a persisted order:
	// the order row, every order line, every stock decrement, and the
	// cart-clear all commit together or not at all.
	CreateOrder(ctx context.Context, params CreateOrderParams) (*OrderConfirmation, error)

	// UpdateStatus sets an order's status. Only set membership is enforced;
	// any status may follow any other.
	UpdateStatus(ctx context.Context, orderID int64, status string) error

	// GetOrder retrieves a single order with nested items.
	GetOrder(ctx context.Context, orderID int64) (*domain.Order, error)

	// ListUserOrders retrieves a user's orders newest first, items nested.
	ListUserOrders(ctx context.Context, userID int64, limit, offset int32) ([]domain.Order, error)
}

// CreateOrderParams carries the caller's checkout snapshot.
//
// Lines come from the caller rather than being re-read from the live cart,
// and each line carries the price the caller saw. Server-side re-pricing
// from the catalog would be the safer design (a tampering client can submit
// arbitrary prices); the permissive behavior is kept deliberately until the
// storefront contract changes.
type CreateOrderParams struct {
	Identity        domain.Identity
	ShippingAddress string
	BillingAddress  string
	PaymentMethod   string
	Lines           []domain.OrderLineInput
}

// OrderConfirmation is the caller-facing result of order creation.
type OrderConfirmation struct {
	OrderID     int64   `json:"order_id"`
	OrderNumber string  `json:"order_number"`
	TotalAmount float64 `json:"total_amount"`
}

type orderService struct {
	store     repository.Store
	publisher events.Publisher
	logger    *slog.Logger
}

// NewOrderService creates a new OrderService instance.
func NewOrderService(store repository.Store, publisher events.Publisher, logger *slog.Logger) OrderService {
	return &orderService{
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateOrder drains a cart into an immutable order inside one transaction.
//
// Stock decrements are guarded (stock_quantity >= quantity); a line that
// cannot be covered aborts the transaction with insufficient-stock rather
// than driving inventory negative. Cart-level checks already validated
// availability, so hitting the guard here means a concurrent checkout won
// the race for the same stock.
func (s *orderService) CreateOrder(ctx context.Context, params CreateOrderParams) (*OrderConfirmation, error) {
	if len(params.Lines) == 0 {
		return nil, ErrEmptyOrder
	}

	orderNumber, err := generateOrderNumber()
	if err != nil {
		return nil, domain.Internal(err, "order.create", "failed to generate order number")
	}

	var total float64
	for _, line := range params.Lines {
		total += line.Price * float64(line.Quantity)
	}
	total = domain.RoundMoney(total)

	var orderID int64
	err = s.store.ExecTx(ctx, func(q repository.Querier) error {
		var err error
		orderID, err = q.InsertOrder(ctx, repository.InsertOrderParams{
			UserID:          params.Identity.UserID(),
			OrderNumber:     orderNumber,
			TotalAmount:     total,
			ShippingAddress: params.ShippingAddress,
			BillingAddress:  params.BillingAddress,
			PaymentMethod:   params.PaymentMethod,
		})
		if err != nil {
			return domain.Internal(err, "order.create", "failed to insert order")
		}

		for _, line := range params.Lines {
			err := q.InsertOrderItem(ctx, repository.InsertOrderItemParams{
				OrderID:   orderID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     line.Price,
			})
			if err != nil {
				return domain.Internal(err, "order.create", "failed to insert order item")
			}

			affected, err := q.DecrementProductStock(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return domain.Internal(err, "order.create", "failed to decrement stock")
			}
			if affected == 0 {
				return ErrInsufficientStock
			}
		}

		if params.Identity.Valid() {
			if err := q.DeleteCartLinesForIdentity(ctx, params.Identity); err != nil {
				return domain.Internal(err, "order.create", "failed to clear cart")
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		"order_id", orderID,
		"order_number", orderNumber,
		"identity", params.Identity.String(),
		"total_amount", total,
	)

	// Best effort: the order is committed, a publish failure only costs
	// downstream consumers the notification.
	evt := events.OrderCreated{
		OrderID:     orderID,
		OrderNumber: orderNumber,
		UserID:      params.Identity.UserID(),
		TotalAmount: total,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.publisher.PublishOrderCreated(ctx, evt); err != nil {
		s.logger.Error("failed to publish order created event", "order_id", orderID, "error", err)
	}

	return &OrderConfirmation{
		OrderID:     orderID,
		OrderNumber: orderNumber,
		TotalAmount: total,
	}, nil
}

// UpdateStatus sets an order's status after a set-membership check.
func (s *orderService) UpdateStatus(ctx context.Context, orderID int64, status string) error {
	if !domain.ValidOrderStatus(status) {
		return ErrInvalidStatus
	}

	affected, err := s.store.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		return domain.Internal(err, "order.update_status", "failed to update order status")
	}
	if affected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// GetOrder retrieves a single order with its items joined to product details.
func (s *orderService) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, domain.Internal(err, "order.get", "failed to fetch order")
	}

	items, err := s.store.GetOrderItems(ctx, orderID)
	if err != nil {
		return nil, domain.Internal(err, "order.get", "failed to fetch order items")
	}
	order.Items = items

	return &order, nil
}

// ListUserOrders retrieves a user's orders newest first with nested items.
func (s *orderService) ListUserOrders(ctx context.Context, userID int64, limit, offset int32) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	orders, err := s.store.ListOrdersByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, domain.Internal(err, "order.list", "failed to fetch orders")
	}

	for i := range orders {
		items, err := s.store.GetOrderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, domain.Internal(err, "order.list", "failed to fetch order items")
		}
		orders[i].Items = items
	}

	return orders, nil
}

const orderNumberAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// generateOrderNumber builds a time-plus-random order number, e.g.
// ORD-1735689600000-k3f9a2c1x. Collisions are not detected, only made
// statistically negligible; the unique index on order_number is the backstop.
func generateOrderNumber() (string, error) {
	b := make([]byte, 9)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random suffix: %w", err)
	}
	for i := range b {
		b[i] = orderNumberAlphabet[int(b[i])%len(orderNumberAlphabet)]
	}

	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), b), nil
}
