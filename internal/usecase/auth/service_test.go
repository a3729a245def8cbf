package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"tna-analytics/internal/domain/user"
)

type mockUserRepo struct {
	byUsername map[string]user.User
	byID       map[uuid.UUID]user.User
	touched    []uuid.UUID
	createErr  error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		byUsername: make(map[string]user.User),
		byID:       make(map[uuid.UUID]user.User),
	}
}

func (m *mockUserRepo) Create(ctx context.Context, u user.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.byUsername[u.Username] = u
	m.byID[u.ID] = u
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	u, ok := m.byUsername[username]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, ok := m.byUsername[username]
	return ok, nil
}

func (m *mockUserRepo) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	m.touched = append(m.touched, id)
	return nil
}

func TestRegister(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo)

	u, err := svc.Register(context.Background(), RegisterInput{Username: "Teacher_01", Password: "longenough"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if u.Username != "teacher_01" {
		t.Errorf("Username = %q, want lowercased teacher_01", u.Username)
	}
	if u.Role != user.RoleTeacher {
		t.Errorf("Role = %q, want default teacher", u.Role)
	}
	if u.PasswordHash != "" {
		t.Error("returned user must not carry the password hash")
	}

	stored := repo.byUsername["teacher_01"]
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("longenough")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(newMockUserRepo())

	cases := []struct {
		name string
		in   RegisterInput
	}{
		{"short username", RegisterInput{Username: "ab", Password: "longenough"}},
		{"long username", RegisterInput{Username: "abcdefghijklmnopqrstu", Password: "longenough"}},
		{"bad characters", RegisterInput{Username: "has space", Password: "longenough"}},
		{"short password", RegisterInput{Username: "validname", Password: "short"}},
		{"unknown role", RegisterInput{Username: "validname", Password: "longenough", Role: "superuser"}},
	}
	for _, c := range cases {
		if _, err := svc.Register(context.Background(), c.in); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: err = %v, want ErrInvalidInput", c.name, err)
		}
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo)

	if _, err := svc.Register(context.Background(), RegisterInput{Username: "duplicate", Password: "longenough"}); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if _, err := svc.Register(context.Background(), RegisterInput{Username: "Duplicate", Password: "longenough"}); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("second Register err = %v, want ErrUsernameTaken", err)
	}
}

func TestLogin(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo)

	created, err := svc.Register(context.Background(), RegisterInput{Username: "someone", Password: "longenough"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	u, err := svc.Login(context.Background(), LoginInput{Username: "  SomeOne  ", Password: "longenough"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u.ID != created.ID {
		t.Error("login returned a different user")
	}
	if len(repo.touched) != 1 || repo.touched[0] != created.ID {
		t.Errorf("TouchLastLogin calls = %v, want one for the user", repo.touched)
	}

	if _, err := svc.Login(context.Background(), LoginInput{Username: "someone", Password: "wrongpass"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(context.Background(), LoginInput{Username: "ghost", Password: "longenough"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user err = %v, want ErrInvalidCredentials", err)
	}
}

func TestEnsureDefaultAdmin(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo)

	created, err := svc.EnsureDefaultAdmin(context.Background(), "administrator", "admin123")
	if err != nil {
		t.Fatalf("EnsureDefaultAdmin: %v", err)
	}
	if !created {
		t.Fatal("expected the admin to be created")
	}
	if got := repo.byUsername["administrator"].Role; got != user.RoleAdmin {
		t.Errorf("Role = %q, want admin", got)
	}

	again, err := svc.EnsureDefaultAdmin(context.Background(), "administrator", "admin123")
	if err != nil {
		t.Fatalf("EnsureDefaultAdmin (second): %v", err)
	}
	if again {
		t.Error("second call must not create another admin")
	}
}
