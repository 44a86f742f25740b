package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/zalando/go-keyring"
)

const service = "printmarket-cli"

// KeyringStore persists the session in the OS keychain/credential manager,
// scoped to a single backend origin.
type KeyringStore struct {
	origin string
}

// NewKeyringStore returns a store whose entries are keyed by the backend origin
func NewKeyringStore(origin string) *KeyringStore {
	return &KeyringStore{origin: strings.TrimRight(origin, "/")}
}

func (k *KeyringStore) tokenKey() string {
	return fmt.Sprintf("auth_token-%s", k.origin)
}

func (k *KeyringStore) userKey() string {
	return fmt.Sprintf("user-%s", k.origin)
}

// get reads an entry. A missing entry or an unusable credential manager
// both report absent.
func (k *KeyringStore) get(key string) (string, bool) {
	value, err := keyring.Get(service, key)
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			log.Debug().Err(err).Str("key", key).Msg("keyring read failed, treating as absent")
		}
		return "", false
	}
	return value, value != ""
}

func (k *KeyringStore) delete(key string) error {
	if err := keyring.Delete(service, key); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (k *KeyringStore) Token() (string, bool) {
	return k.get(k.tokenKey())
}

// SetToken persists the bearer token
func (k *KeyringStore) SetToken(token string) error {
	if err := keyring.Set(service, k.tokenKey(), token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

func (k *KeyringStore) ClearToken() error {
	return k.delete(k.tokenKey())
}

// User returns the cached user. Malformed data is reported as absent.
func (k *KeyringStore) User() (*User, bool) {
	if _, ok := k.Token(); !ok {
		return nil, false
	}

	raw, ok := k.get(k.userKey())
	if !ok {
		return nil, false
	}

	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		log.Debug().Err(err).Msg("stored user is malformed, ignoring")
		return nil, false
	}
	return &u, true
}

// SetUser persists the user record as a JSON string
func (k *KeyringStore) SetUser(u *User) error {
	if u == nil {
		return k.ClearUser()
	}

	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	if err := keyring.Set(service, k.userKey(), string(data)); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (k *KeyringStore) ClearUser() error {
	return k.delete(k.userKey())
}
