package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("user not found")

type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
}
