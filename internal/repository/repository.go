// Package repository provides PostgreSQL persistence for the storefront.
// Queries run against a DBTX so the same code serves both pooled connections
// and transactions.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eliteshop/eliteshop/internal/domain"
)

// DBTX is the subset of pgx methods the queries need. Both *pgxpool.Pool and
// pgx.Tx satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Queries holds the database handle for all query methods.
type Queries struct {
	db DBTX
}

// New creates a Queries instance over the given handle.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a Queries instance scoped to the given transaction.
func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}

// Querier is the storage interface the services depend on. *Queries is the
// PostgreSQL implementation; tests substitute in-memory fakes.
type Querier interface {
	// Cart
	GetCartLines(ctx context.Context, identity domain.Identity) ([]domain.CartLine, error)
	GetCartLineForProduct(ctx context.Context, identity domain.Identity, productID int64) (CartLineRef, error)
	InsertCartLine(ctx context.Context, identity domain.Identity, productID int64, quantity int32) error
	UpdateCartLineQuantity(ctx context.Context, lineID int64, quantity int32) error
	DeleteCartLine(ctx context.Context, identity domain.Identity, productID int64) error
	DeleteCartLinesForIdentity(ctx context.Context, identity domain.Identity) error

	// Catalog
	GetActiveProduct(ctx context.Context, productID int64) (domain.Product, error)
	GetProduct(ctx context.Context, productID int64) (domain.Product, error)
	ListActiveProducts(ctx context.Context, categoryID int64) ([]domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	DecrementProductStock(ctx context.Context, productID int64, quantity int32) (int64, error)

	// Orders
	InsertOrder(ctx context.Context, params InsertOrderParams) (int64, error)
	InsertOrderItem(ctx context.Context, params InsertOrderItemParams) error
	UpdateOrderStatus(ctx context.Context, orderID int64, status string) (int64, error)
	GetOrder(ctx context.Context, orderID int64) (domain.Order, error)
	GetOrderItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error)
	ListOrdersByUser(ctx context.Context, userID int64, limit, offset int32) ([]domain.Order, error)

	// Users
	InsertUser(ctx context.Context, params InsertUserParams) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	GetUserByID(ctx context.Context, userID int64) (domain.User, error)
}

var _ Querier = (*Queries)(nil)

// Store extends Querier with atomic multi-statement execution. Order creation
// and cart merging run through ExecTx so a failure rolls back every effect.
type Store interface {
	Querier
	ExecTx(ctx context.Context, fn func(Querier) error) error
}

// SQLStore is the pgx-backed Store.
type SQLStore struct {
	*Queries
	pool *pgxpool.Pool
}

var _ Store = (*SQLStore)(nil)

// NewStore creates a Store over a connection pool.
func NewStore(pool *pgxpool.Pool) *SQLStore {
	return &SQLStore{
		Queries: New(pool),
		pool:    pool,
	}
}

// ExecTx runs fn inside a transaction. If fn returns an error the transaction
// is rolled back and the error returned unchanged, so domain errors survive.
func (s *SQLStore) ExecTx(ctx context.Context, fn func(Querier) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(s.Queries.WithTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// identityColumn returns the cart_items column an identity keys on and its
// value. The column name comes from a fixed set, never caller input.
func identityColumn(identity domain.Identity) (string, any) {
	if identity.IsUser() {
		return "user_id", identity.UserID()
	}
	return "session_id", identity.SessionID()
}
