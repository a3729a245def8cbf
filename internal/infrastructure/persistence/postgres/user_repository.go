package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tna-analytics/internal/domain/user"
)

const usersSchema = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'teacher',
	last_login_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// EnsureSchema creates the users table when it does not exist yet.
func (r *UserRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, usersSchema)
	return err
}

func (r *UserRepository) Create(ctx context.Context, u user.User) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, username, password_hash, role) VALUES ($1, $2, $3, $4)`,
		u.ID, u.Username, u.PasswordHash, u.Role,
	)
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return r.getBy(ctx, `WHERE id = $1`, id)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	return r.getBy(ctx, `WHERE lower(username) = lower($1)`, username)
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE lower(username) = lower($1))`, username,
	).Scan(&exists)
	return exists, err
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET last_login_at = now(), updated_at = now() WHERE id = $1`, id)
	return err
}

func (r *UserRepository) getBy(ctx context.Context, where string, arg any) (user.User, error) {
	var u user.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, role, last_login_at, created_at, updated_at FROM users `+where,
		arg,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}
