package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rosterpad/rosterpad/internal/models"
)

const blacklistPrefix = "rosterpad:blacklist:access:"

// blacklistClient is nil unless Redis is configured. Without it logout
// cannot revoke a live access token early, so the functions below no-op.
var blacklistClient *redis.Client

// SetBlacklistClient wires (or, with nil, disables) the revocation list.
func SetBlacklistClient(c *redis.Client) {
	blacklistClient = c
}

// BlacklistAccessToken marks an access token revoked until ttl elapses.
// Callers pass the token's remaining lifetime so the entry and the token
// expire together.
func BlacklistAccessToken(ctx context.Context, token string, ttl time.Duration) error {
	if blacklistClient == nil {
		return nil
	}
	if err := blacklistClient.Set(ctx, blacklistPrefix+token, "1", ttl).Err(); err != nil {
		return fmt.Errorf("%w: blacklist token: %v", models.ErrStorageUnavailable, err)
	}
	return nil
}

// IsAccessTokenBlacklisted reports whether the token was revoked by a logout.
func IsAccessTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	if blacklistClient == nil {
		return false, nil
	}
	n, err := blacklistClient.Exists(ctx, blacklistPrefix+token).Result()
	if err != nil {
		return false, fmt.Errorf("%w: blacklist lookup: %v", models.ErrStorageUnavailable, err)
	}
	return n > 0, nil
}
