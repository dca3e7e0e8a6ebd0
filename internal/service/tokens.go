package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/noah-isme/therapy-admin-api/internal/models"
)

const tokenBytes = 32

// newOneTimeToken returns the plaintext token to mail out and the hashed record to store.
func newOneTimeToken(kind string, ttl time.Duration, now time.Time) (string, models.UserToken, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", models.UserToken{}, fmt.Errorf("generate token: %w", err)
	}
	plain := base64.RawURLEncoding.EncodeToString(buf)
	return plain, models.UserToken{
		Kind:      kind,
		TokenHash: hashToken(plain),
		ExpiresAt: now.Add(ttl),
	}, nil
}

func hashToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
