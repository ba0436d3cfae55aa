package auth

import (
	"strings"
	"testing"
	"time"

	"eventbook/internal/shared/config"
)

func newTokens(secret string, expiresIn time.Duration) *TokenService {
	return NewTokenService(config.JWTConfig{
		Secret:    secret,
		ExpiresIn: expiresIn,
	})
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := newTokens("round-trip-secret", time.Hour)

	token, err := tokens.Issue("user-123", "9000000001", "USER")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if !tokens.Validate(token) {
		t.Fatal("Validate() = false for a freshly issued token")
	}
	if got := tokens.ExtractUserID(token); got != "user-123" {
		t.Errorf("ExtractUserID() = %q, want %q", got, "user-123")
	}
	if got := tokens.ExtractPhone(token); got != "9000000001" {
		t.Errorf("ExtractPhone() = %q, want %q", got, "9000000001")
	}
	if got := tokens.ExtractRole(token); got != "USER" {
		t.Errorf("ExtractRole() = %q, want %q", got, "USER")
	}
}

func TestTokenValidateRejectsGarbage(t *testing.T) {
	tokens := newTokens("garbage-secret", time.Hour)

	for _, input := range []string{"", "garbage", "a.b.c", "Bearer something"} {
		if tokens.Validate(input) {
			t.Errorf("Validate(%q) = true, want false", input)
		}
		if got := tokens.ExtractUserID(input); got != "" {
			t.Errorf("ExtractUserID(%q) = %q, want empty", input, got)
		}
		if got := tokens.ExtractRole(input); got != "" {
			t.Errorf("ExtractRole(%q) = %q, want empty", input, got)
		}
	}
}

func TestTokenValidateRejectsTampering(t *testing.T) {
	tokens := newTokens("tamper-secret", time.Hour)

	token, err := tokens.Issue("user-123", "9000000001", "USER")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// Flip a character in the payload segment; the signature no longer
	// matches.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	mutated := parts[0] + "." + string(payload) + "." + parts[2]

	if tokens.Validate(mutated) {
		t.Error("Validate() = true for a tampered token")
	}
}

func TestTokenValidateRejectsWrongSecret(t *testing.T) {
	issuer := newTokens("secret-one", time.Hour)
	verifier := newTokens("secret-two", time.Hour)

	token, err := issuer.Issue("user-123", "9000000001", "ADMIN")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if verifier.Validate(token) {
		t.Error("Validate() = true for a token signed with a different secret")
	}
}

func TestTokenValidateRejectsExpired(t *testing.T) {
	tokens := newTokens("expired-secret", -time.Minute)

	token, err := tokens.Issue("user-123", "9000000001", "USER")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if tokens.Validate(token) {
		t.Error("Validate() = true for an expired token")
	}
	if got := tokens.ExtractUserID(token); got != "" {
		t.Errorf("ExtractUserID() = %q for an expired token, want empty", got)
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi"},
		{"abc.def.ghi", "abc.def.ghi"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := BearerToken(tt.header); got != tt.want {
			t.Errorf("BearerToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
