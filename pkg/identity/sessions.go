package identity

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TTLs for the two kinds of short-lived identity state.
const (
	otpTTL     = 5 * time.Minute
	sessionTTL = 24 * time.Hour
)

// ErrOTPMismatch is returned when the submitted code is wrong or expired.
var ErrOTPMismatch = errors.New("otp code invalid or expired")

// SessionCache keeps OTP codes and session tokens in Redis with explicit TTLs.
type SessionCache struct {
	client *redis.Client
}

// NewSessionCache creates a new SessionCache.
func NewSessionCache(client *redis.Client) *SessionCache {
	return &SessionCache{client: client}
}

// IssueOTP generates and stores a 6-digit code for the email.
func (c *SessionCache) IssueOTP(ctx context.Context, email string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	code := fmt.Sprintf("%06d", n.Int64())

	if err := c.client.Set(ctx, otpKey(email), code, otpTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store otp: %w", err)
	}
	return code, nil
}

// VerifyOTP checks the submitted code and, on success, consumes it and issues
// a session token for the user.
func (c *SessionCache) VerifyOTP(ctx context.Context, email, code, userID string) (string, error) {
	stored, err := c.client.Get(ctx, otpKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrOTPMismatch
	}
	if err != nil {
		return "", fmt.Errorf("failed to read otp: %w", err)
	}
	if stored != code {
		return "", ErrOTPMismatch
	}

	if err := c.client.Del(ctx, otpKey(email)).Err(); err != nil {
		return "", fmt.Errorf("failed to consume otp: %w", err)
	}

	token := uuid.NewString()
	if err := c.client.Set(ctx, sessionKey(token), userID, sessionTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return token, nil
}

// ResolveSession returns the user ID bound to a session token, or
// redis.Nil-backed miss as an empty string.
func (c *SessionCache) ResolveSession(ctx context.Context, token string) (string, error) {
	userID, err := c.client.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve session: %w", err)
	}
	return userID, nil
}

func otpKey(email string) string {
	return "otp:" + email
}

func sessionKey(token string) string {
	return "session:" + token
}
