package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gatherly/event-planner-service/internal/models"
)

// ErrNotFound is returned when a single-row lookup matches nothing.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a uniqueness constraint.
var ErrDuplicate = errors.New("already exists")

// uniqueViolation is the Postgres SQLSTATE for unique_violation.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// CreateUser inserts a new account. Returns ErrDuplicate when the email is taken.
func (p *PostgresStore) CreateUser(ctx context.Context, u models.User) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO users(id, name, email, password_hash)
		VALUES ($1,$2,$3,$4)
	`, u.ID, u.Name, u.Email, u.PasswordHash)

	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// UserByEmail looks up an account for login.
func (p *PostgresStore) UserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := p.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE email=$1
	`, email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	return u, err
}

// UserByID returns the account for an authenticated user id.
func (p *PostgresStore) UserByID(ctx context.Context, id string) (models.User, error) {
	var u models.User
	err := p.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE id=$1
	`, id).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	return u, err
}
