package tokens

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rosterpad/rosterpad/internal/config"
	"github.com/rosterpad/rosterpad/internal/models"
)

// GenerateAccessToken creates a signed JWT session token for the admin user
func GenerateAccessToken(cfg *config.Config, u *models.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":      u.ID,
		"username": u.Username,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(cfg.JWT.Secret))
}

// Verify parses and validates a session token, returning its claims.
// Only HMAC-signed tokens are accepted.
func Verify(cfg *config.Config, raw string) (map[string]interface{}, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// JWTVerifier adapts Verify to the middleware's Verifier interface.
type JWTVerifier struct {
	cfg *config.Config
}

func NewVerifier(cfg *config.Config) *JWTVerifier {
	return &JWTVerifier{cfg: cfg}
}

func (v *JWTVerifier) Verify(_ context.Context, raw string) (map[string]interface{}, error) {
	return Verify(v.cfg, raw)
}
