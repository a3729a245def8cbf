package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestService() *HMACService {
	return NewHMACService("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestService()
	id := uuid.New()

	tok, err := svc.GenerateAccessToken(id, "someone", "admin")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != id || claims.Username != "someone" || claims.Role != "admin" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.TokenType != TokenTypeAccess || svc.IsRefreshToken(claims) {
		t.Errorf("token type = %q, want access", claims.TokenType)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := newTestService()

	tok, err := svc.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if !svc.IsRefreshToken(claims) {
		t.Error("expected a refresh token")
	}
}

func TestExpiredToken(t *testing.T) {
	svc := newTestService()
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	tok, err := svc.GenerateAccessToken(uuid.New(), "someone", "teacher")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := svc.ValidateToken(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("err = %v, want ErrTokenExpired", err)
	}
}

func TestTamperedToken(t *testing.T) {
	svc := newTestService()

	tok, err := svc.GenerateAccessToken(uuid.New(), "someone", "teacher")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	other := NewHMACService("other-secret", "other-refresh", time.Hour, time.Hour)
	if _, err := other.ValidateToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("err = %v, want ErrTokenInvalid", err)
	}

	if _, err := svc.ValidateToken("not.a.jwt"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("garbage token err = %v, want ErrTokenInvalid", err)
	}
}
