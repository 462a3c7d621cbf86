package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/eliteshop/eliteshop/internal/domain"
)

const productColumns = `
	p.id, p.name, COALESCE(p.description, ''), p.price,
	COALESCE(p.original_price, 0), COALESCE(p.category_id, 0),
	COALESCE(c.name, ''), COALESCE(p.image_url, ''), p.stock_quantity,
	p.is_featured, p.is_new, p.rating, p.review_count, p.status,
	p.created_at, p.updated_at`

func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price,
		&p.OriginalPrice, &p.CategoryID,
		&p.CategoryName, &p.ImageURL, &p.StockQuantity,
		&p.IsFeatured, &p.IsNew, &p.Rating, &p.ReviewCount, &p.Status,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// rowScanner matches both pgx.Row and pgx.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

// GetActiveProduct returns a product only when its status is active.
// Inactive or missing products both surface as pgx.ErrNoRows.
func (q *Queries) GetActiveProduct(ctx context.Context, productID int64) (domain.Product, error) {
	row := q.db.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.id = $1 AND p.status = 'active'`, productID)
	return scanProduct(row)
}

// GetProduct returns a product regardless of status.
func (q *Queries) GetProduct(ctx context.Context, productID int64) (domain.Product, error) {
	row := q.db.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.id = $1`, productID)
	return scanProduct(row)
}

// ListActiveProducts returns the active catalog ordered by newest first.
// A categoryID of zero means no category filter.
func (q *Queries) ListActiveProducts(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+productColumns+`
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.status = 'active'
		  AND ($1::bigint = 0 OR p.category_id = $1)
		ORDER BY p.created_at DESC`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// ListCategories returns all categories ordered by name.
func (q *Queries) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id, name, COALESCE(description, ''), COALESCE(image_url, ''), created_at
		FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// DecrementProductStock subtracts quantity from a product's stock, guarded so
// stock never goes below zero. Returns the number of rows affected: zero
// means the product lacked sufficient stock (or does not exist) and the
// caller should abort its transaction.
func (q *Queries) DecrementProductStock(ctx context.Context, productID int64, quantity int32) (int64, error) {
	tag, err := q.db.Exec(ctx, `
		UPDATE products
		SET stock_quantity = stock_quantity - $1, updated_at = now()
		WHERE id = $2 AND stock_quantity >= $1`,
		quantity, productID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// nullInt8 converts an optional int64 (0 means absent) to a pgtype.Int8.
func nullInt8(v int64) pgtype.Int8 {
	return pgtype.Int8{Int64: v, Valid: v != 0}
}
