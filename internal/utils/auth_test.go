package utils

import (
	"errors"
	"testing"
	"time"
)

func TestJWT(t *testing.T) {
	secret := "test-secret-key-12345"

	token, err := GenerateToken("forklift-7", "operator", secret, time.Hour)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	claims, err := ValidateToken(token, secret)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}
	if claims["sub"] != "forklift-7" {
		t.Errorf("Expected sub forklift-7, got %v", claims["sub"])
	}
	if claims["role"] != "operator" {
		t.Errorf("Expected role operator, got %v", claims["role"])
	}

	if _, err := ValidateToken(token, "wrong-secret"); err == nil {
		t.Error("Token signed with another secret should not validate")
	}
}

func TestJWTExpired(t *testing.T) {
	token, err := GenerateToken("forklift-7", "operator", "s3cret", -time.Minute)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	if _, err := ValidateToken(token, "s3cret"); err == nil {
		t.Error("Expired token should not validate")
	}
}

func TestJWTEmptySecret(t *testing.T) {
	if _, err := GenerateToken("x", "operator", "", time.Hour); !errors.Is(err, ErrEmptySecret) {
		t.Errorf("expected ErrEmptySecret, got %v", err)
	}
}
