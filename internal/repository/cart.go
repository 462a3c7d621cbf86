package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/eliteshop/eliteshop/internal/domain"
)

// CartLineRef identifies an existing cart line for upsert decisions.
type CartLineRef struct {
	ID       int64
	Quantity int32
}

// GetCartLines returns all lines for an identity joined with product and
// category details for display.
func (q *Queries) GetCartLines(ctx context.Context, identity domain.Identity) ([]domain.CartLine, error) {
	col, key := identityColumn(identity)
	query := fmt.Sprintf(`
		SELECT ci.id, ci.product_id, ci.quantity, ci.created_at, ci.updated_at,
		       p.name, p.price, COALESCE(p.image_url, ''), COALESCE(c.name, '')
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE ci.%s = $1
		ORDER BY ci.created_at`, col)

	rows, err := q.db.Query(ctx, query, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(
			&line.ID, &line.ProductID, &line.Quantity, &line.CreatedAt, &line.UpdatedAt,
			&line.ProductName, &line.UnitPrice, &line.ImageURL, &line.CategoryName,
		); err != nil {
			return nil, err
		}
		line.TotalPrice = domain.RoundMoney(line.UnitPrice * float64(line.Quantity))
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// GetCartLineForProduct returns the line for (identity, product), or
// pgx.ErrNoRows when the product is not in the cart.
func (q *Queries) GetCartLineForProduct(ctx context.Context, identity domain.Identity, productID int64) (CartLineRef, error) {
	col, key := identityColumn(identity)
	query := fmt.Sprintf(`SELECT id, quantity FROM cart_items WHERE %s = $1 AND product_id = $2`, col)

	var ref CartLineRef
	err := q.db.QueryRow(ctx, query, key, productID).Scan(&ref.ID, &ref.Quantity)
	return ref, err
}

// InsertCartLine creates a new line for (identity, product).
func (q *Queries) InsertCartLine(ctx context.Context, identity domain.Identity, productID int64, quantity int32) error {
	var userID pgtype.Int8
	var sessionID pgtype.Text
	if identity.IsUser() {
		userID = pgtype.Int8{Int64: identity.UserID(), Valid: true}
	} else {
		sessionID = pgtype.Text{String: identity.SessionID(), Valid: true}
	}

	_, err := q.db.Exec(ctx, `
		INSERT INTO cart_items (user_id, session_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)`,
		userID, sessionID, productID, quantity)
	return err
}

// UpdateCartLineQuantity overwrites a line's quantity by line ID.
func (q *Queries) UpdateCartLineQuantity(ctx context.Context, lineID int64, quantity int32) error {
	_, err := q.db.Exec(ctx, `
		UPDATE cart_items SET quantity = $1, updated_at = now() WHERE id = $2`,
		quantity, lineID)
	return err
}

// DeleteCartLine removes the line for (identity, product). Deleting an
// absent line is not an error.
func (q *Queries) DeleteCartLine(ctx context.Context, identity domain.Identity, productID int64) error {
	col, key := identityColumn(identity)
	query := fmt.Sprintf(`DELETE FROM cart_items WHERE %s = $1 AND product_id = $2`, col)
	_, err := q.db.Exec(ctx, query, key, productID)
	return err
}

// DeleteCartLinesForIdentity removes every line owned by the identity.
func (q *Queries) DeleteCartLinesForIdentity(ctx context.Context, identity domain.Identity) error {
	col, key := identityColumn(identity)
	query := fmt.Sprintf(`DELETE FROM cart_items WHERE %s = $1`, col)
	_, err := q.db.Exec(ctx, query, key)
	return err
}
