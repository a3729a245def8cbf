package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"tna-analytics/internal/domain/user"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInternal           = errors.New("internal error")
)

type RegisterInput struct {
	Username string
	Password string
	Role     string
}

type LoginInput struct {
	Username string
	Password string
}

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	username := normalizeUsername(in.Username)
	if !isValidUsername(username) {
		return user.User{}, ErrInvalidInput
	}
	if !isValidPassword(in.Password) {
		return user.User{}, ErrInvalidInput
	}

	role := in.Role
	if role == "" {
		role = user.RoleTeacher
	}
	if !user.ValidRole(role) {
		return user.User{}, ErrInvalidInput
	}

	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return user.User{}, ErrInternal
	}
	if exists {
		return user.User{}, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, ErrInternal
	}

	u := user.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := s.users.Create(ctx, u); err != nil {
		exists, exErr := s.users.ExistsByUsername(ctx, username)
		if exErr == nil && exists {
			return user.User{}, ErrUsernameTaken
		}
		return user.User{}, ErrInternal
	}

	created, err := s.users.GetByID(ctx, u.ID)
	if err != nil {
		return user.User{}, ErrInternal
	}
	return sanitizeUser(created), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	username := normalizeUsername(in.Username)
	if username == "" || in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}

	_ = s.users.TouchLastLogin(ctx, u.ID)

	return sanitizeUser(u), nil
}

// EnsureDefaultAdmin creates the bootstrap administrator account when no
// user with that username exists yet. Returns true when it created one.
func (s *Service) EnsureDefaultAdmin(ctx context.Context, username, password string) (bool, error) {
	username = normalizeUsername(username)
	if username == "" || password == "" {
		return false, ErrInvalidInput
	}

	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return false, ErrInternal
	}
	if exists {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, ErrInternal
	}

	u := user.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         user.RoleAdmin,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return false, ErrInternal
	}
	return true, nil
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func isValidUsername(username string) bool {
	if len(username) < 3 || len(username) > 20 {
		return false
	}
	for _, r := range username {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 8
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
