package tokens

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/rosterpad/rosterpad/internal/config"
	"github.com/rosterpad/rosterpad/internal/models"
)

func TestGenerateAccessToken_ValidAndClaims(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-32-bytes-should-be-long-enough"

	u := &models.User{ID: "user-123", Username: "admin"}
	tokenStr, err := GenerateAccessToken(cfg, u, 2*time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}

	claims, err := Verify(cfg, tokenStr)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims["sub"] != u.ID {
		t.Fatalf("unexpected sub claim: got=%v want=%v", claims["sub"], u.ID)
	}
	if claims["username"] != u.Username {
		t.Fatalf("unexpected username claim: got=%v want=%v", claims["username"], u.Username)
	}
}

func TestVerify_Expired(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "another-secret-32-bytes-longgggg"
	u := &models.User{ID: "u2", Username: "x"}
	tokenStr, err := GenerateAccessToken(cfg, u, -1*time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}
	if _, err := Verify(cfg, tokenStr); err == nil {
		t.Fatalf("expected verification to fail for expired token")
	}
}

func TestVerify_WrongSecretFails(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "secret-one-32-bytes-xxxxxxxxxxxxxxxx"
	u := &models.User{ID: "u3", Username: "bob"}
	tokenStr, err := GenerateAccessToken(cfg, u, 2*time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}
	other := &config.Config{}
	other.JWT.Secret = "different-secret-xxxxxxxxxxxxxxxx"
	if _, err := Verify(other, tokenStr); err == nil {
		t.Fatalf("expected verification to fail with wrong secret")
	}
}

func TestVerify_Malformed(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "x"
	if _, err := Verify(cfg, "not.a.jwt"); err == nil {
		t.Fatalf("expected verification to fail for malformed token")
	}
}

// Rejected when alg=none (unsigned token)
func TestVerify_AlgNoneRejected(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "x"
	headerEnc := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none"}`))
	payloadEnc := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"u-none","exp":9999999999}`))
	tok := headerEnc + "." + payloadEnc + "."
	if _, err := Verify(cfg, tok); err == nil {
		t.Fatalf("expected verification to reject alg=none token")
	}
}

// Tampering with payload must fail signature verification
func TestVerify_TamperedPayload(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "tamper-test-secret-32-bytes-xxxxxxx"
	u := &models.User{ID: "user-t", Username: "tamper"}
	tokenStr, err := GenerateAccessToken(cfg, u, 5*time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}
	parts := strings.Split(tokenStr, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token parts")
	}
	payloadBytes, _ := base64.RawURLEncoding.DecodeString(parts[1])
	payloadStr := strings.Replace(string(payloadBytes), "user-t", "attacker", 1)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(payloadStr))
	if _, err := Verify(cfg, strings.Join(parts, ".")); err == nil {
		t.Fatalf("expected signature verification to fail for tampered token")
	}
}
