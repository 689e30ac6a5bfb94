// Package session holds server-side login sessions: an opaque id handed to the
// client maps to a user id with an expiry. Two stores exist, one backed by
// redis for multi-process deployments and one in-process for standalone runs
// and tests.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"
)

type Store interface {
	// Create registers a new session for the user and returns its opaque id.
	Create(ctx context.Context, userID uint, ttl time.Duration) (string, error)
	// Get resolves a session id to a user id. A missing or expired session
	// returns ok=false with a nil error.
	Get(ctx context.Context, sessionID string) (userID uint, ok bool, err error)
	// Delete invalidates a session. Deleting an unknown id is not an error.
	Delete(ctx context.Context, sessionID string) error
}

func newSessionID() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session id failed: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
