package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/99designs/keyring"

	"github.com/therippa/tesla-bitbar/pkg/owner"
)

const (
	keyringServiceName = "tesla-bitbar"
	keyringTokenKey    = "access-token"
	keyringIssuedKey   = "access-token-created"
	keyringDirectory   = "~/.tesla-bitbar"

	// Tokens older than this force a re-login even if nominally valid; the
	// vendor quietly rotates signing material on roughly this horizon.
	tokenMaxAge = 45 * 24 * time.Hour
)

// TokenStore persists the access token and its issuance date in the OS
// credential store, falling back to an encrypted file backend on hosts without
// one.
type TokenStore struct {
	Keyring keyring.Keyring

	now func() time.Time
}

// OpenTokenStore opens the platform credential store.
func OpenTokenStore() (*TokenStore, error) {
	kr, err := keyring.Open(keyring.Config{
		ServiceName: keyringServiceName,
		FileDir:     keyringDirectory,
	})
	if err != nil {
		return nil, fmt.Errorf("could not open credential store: %w", err)
	}
	return NewTokenStore(kr), nil
}

// NewTokenStore wraps an already-open keyring. Tests pass an in-memory one.
func NewTokenStore(kr keyring.Keyring) *TokenStore {
	return &TokenStore{Keyring: kr, now: time.Now}
}

// Load returns the persisted token. A missing token, a missing or unparsable
// issuance date, or a token older than the staleness threshold all report
// owner.ErrAuthExpired: every one of those states is resolved by the same
// re-login flow.
func (s *TokenStore) Load() (string, error) {
	item, err := s.Keyring.Get(keyringTokenKey)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", fmt.Errorf("%w: no stored token", owner.ErrAuthExpired)
	}
	if err != nil {
		return "", fmt.Errorf("could not read credential store: %w", err)
	}

	issued, err := s.Keyring.Get(keyringIssuedKey)
	if err != nil {
		return "", fmt.Errorf("%w: token has no issuance date", owner.ErrAuthExpired)
	}
	issuedAt, err := time.Parse(time.RFC3339, string(issued.Data))
	if err != nil {
		return "", fmt.Errorf("%w: unreadable issuance date", owner.ErrAuthExpired)
	}
	if s.now().Sub(issuedAt) > tokenMaxAge {
		return "", fmt.Errorf("%w: token issued %s", owner.ErrAuthExpired, issuedAt.Format("2006-01-02"))
	}
	return string(item.Data), nil
}

// Save persists the token with the current instant as its issuance date. Only
// the login flow writes to the store.
func (s *TokenStore) Save(token string) error {
	if err := s.Keyring.Set(keyring.Item{
		Key:  keyringTokenKey,
		Data: []byte(token),
	}); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	if err := s.Keyring.Set(keyring.Item{
		Key:  keyringIssuedKey,
		Data: []byte(s.now().Format(time.RFC3339)),
	}); err != nil {
		return fmt.Errorf("failed to store token issuance date: %w", err)
	}
	return nil
}
