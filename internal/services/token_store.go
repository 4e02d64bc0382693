package services

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// TokenStore hands out opaque, expiring tokens that stand in for resume paths
// in URLs returned to clients.
type TokenStore interface {
	Issue(path string) (string, error)
	Resolve(token string) (string, error)
	Len() int
}

type tokenStore struct {
	entries *expirable.LRU[string, string]
}

// NewTokenStore keeps at most maxEntries tokens, each valid for ttl. The
// least recently used token is dropped when the store is full.
func NewTokenStore(maxEntries int, ttl time.Duration) TokenStore {
	return &tokenStore{
		entries: expirable.NewLRU[string, string](maxEntries, nil, ttl),
	}
}

// Issue implements TokenStore.
func (s *tokenStore) Issue(path string) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	token := base64.RawURLEncoding.EncodeToString(buf)
	s.entries.Add(token, path)
	return token, nil
}

// Resolve implements TokenStore.
func (s *tokenStore) Resolve(token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("%w: missing token", ErrAccess)
	}

	path, ok := s.entries.Get(token)
	if !ok {
		return "", fmt.Errorf("%w: invalid or expired token", ErrAccess)
	}
	return path, nil
}

// Len implements TokenStore.
func (s *tokenStore) Len() int {
	return s.entries.Len()
}
