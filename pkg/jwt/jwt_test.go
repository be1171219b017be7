package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/config"
)

func newTestManager(secret string, ttl time.Duration) *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:      secret,
		AccessTokenTTL: ttl,
	})
}

func TestGenerateAndParseToken(t *testing.T) {
	mgr := newTestManager("test-secret-key-0123456789", time.Hour)

	token, err := mgr.GenerateToken(42, "ana@uni.edu")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := mgr.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("user_id = %d, want 42", claims.UserID)
	}
	if claims.Email != "ana@uni.edu" {
		t.Errorf("email = %q, want ana@uni.edu", claims.Email)
	}
	if claims.ID == "" {
		t.Error("jti 不应为空")
	}
	if claims.Issuer != "avocado" {
		t.Errorf("issuer = %q", claims.Issuer)
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) > time.Hour {
		t.Error("过期时间超出 TTL")
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	mgr := newTestManager("test-secret-key-0123456789", time.Hour)
	other := newTestManager("another-secret-key-987654321", time.Hour)

	token, err := mgr.GenerateToken(1, "a@uni.edu")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := other.ParseToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("error = %v, want ErrTokenInvalid", err)
	}
}

func TestParseTokenExpired(t *testing.T) {
	mgr := newTestManager("test-secret-key-0123456789", -time.Minute)

	token, err := mgr.GenerateToken(1, "a@uni.edu")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := mgr.ParseToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("error = %v, want ErrTokenExpired", err)
	}
}

func TestParseTokenGarbage(t *testing.T) {
	mgr := newTestManager("test-secret-key-0123456789", time.Hour)

	for _, bad := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := mgr.ParseToken(bad); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("ParseToken(%q) error = %v, want ErrTokenInvalid", bad, err)
		}
	}
}

func TestTokensCarryUniqueJTI(t *testing.T) {
	mgr := newTestManager("test-secret-key-0123456789", time.Hour)

	t1, err := mgr.GenerateToken(1, "a@uni.edu")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	t2, err := mgr.GenerateToken(1, "a@uni.edu")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	c1, _ := mgr.ParseToken(t1)
	c2, _ := mgr.ParseToken(t2)
	if c1.ID == c2.ID {
		t.Error("两次签发的 jti 不应相同")
	}
}
