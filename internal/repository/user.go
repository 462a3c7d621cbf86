package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/eliteshop/eliteshop/internal/domain"
)

// InsertUserParams holds the fields for a new user row. Password must
// already be hashed.
type InsertUserParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// InsertUser creates a user row, returning the new user ID.
func (q *Queries) InsertUser(ctx context.Context, params InsertUserParams) (int64, error) {
	var phone pgtype.Text
	if params.Phone != "" {
		phone = pgtype.Text{String: params.Phone, Valid: true}
	}

	var id int64
	err := q.db.QueryRow(ctx, `
		INSERT INTO users (email, password, first_name, last_name, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		params.Email, params.Password, params.FirstName, params.LastName, phone,
	).Scan(&id)
	return id, err
}

const userColumns = `
	id, email, password, first_name, last_name, COALESCE(phone, ''),
	created_at, updated_at`

func scanUser(row rowScanner) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.Phone,
		&u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

// GetUserByEmail returns the user with the given email, or pgx.ErrNoRows.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := q.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// GetUserByID returns the user with the given ID, or pgx.ErrNoRows.
func (q *Queries) GetUserByID(ctx context.Context, userID int64) (domain.User, error) {
	row := q.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID)
	return scanUser(row)
}
