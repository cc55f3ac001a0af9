package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func TestValidateAccessToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_AUD", "")
	t.Setenv("JWT_ISS", "")

	valid := signedToken(t, "test-secret", jwt.MapClaims{
		"id":  float64(42),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	_, claims, err := ValidateAccessToken(valid)
	if err != nil {
		t.Fatalf("valid token rejected: %v", err)
	}
	if got := UserIDFromClaims(claims); got != 42 {
		t.Errorf("user id = %d, want 42", got)
	}

	expired := signedToken(t, "test-secret", jwt.MapClaims{
		"id":  float64(42),
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	if _, _, err := ValidateAccessToken(expired); err == nil {
		t.Error("expired token accepted")
	}

	wrongKey := signedToken(t, "other-secret", jwt.MapClaims{
		"id":  float64(42),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	if _, _, err := ValidateAccessToken(wrongKey); err == nil {
		t.Error("token signed with the wrong secret accepted")
	}
}

func TestValidateAccessToken_AudiencePinning(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_AUD", "grid-store")
	t.Setenv("JWT_ISS", "")

	good := signedToken(t, "test-secret", jwt.MapClaims{
		"id":  float64(1),
		"aud": "grid-store",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	if _, _, err := ValidateAccessToken(good); err != nil {
		t.Errorf("matching audience rejected: %v", err)
	}

	bad := signedToken(t, "test-secret", jwt.MapClaims{
		"id":  float64(1),
		"aud": "somewhere-else",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	if _, _, err := ValidateAccessToken(bad); err == nil {
		t.Error("mismatched audience accepted")
	}
}

func TestUserIDFromClaims(t *testing.T) {
	if got := UserIDFromClaims(jwt.MapClaims{"id": float64(7)}); got != 7 {
		t.Errorf("float64 claim: got %d", got)
	}
	if got := UserIDFromClaims(jwt.MapClaims{"id": "15"}); got != 15 {
		t.Errorf("string claim: got %d", got)
	}
	if got := UserIDFromClaims(jwt.MapClaims{}); got != 0 {
		t.Errorf("missing claim: got %d", got)
	}
}
