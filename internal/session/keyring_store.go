package session

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"liftlog/internal/constants"
)

// ErrKeyringUnavailable is returned when the OS keyring cannot be reached
var ErrKeyringUnavailable = errors.New("OS keyring is not available")

// KeyringStore persists the token in the OS keyring.
type KeyringStore struct {
	service string
	user    string
}

func NewKeyringStore() *KeyringStore {
	return &KeyringStore{
		service: constants.AppName,
		user:    constants.DefaultKeyringUser,
	}
}

func (s *KeyringStore) Save(token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if err := keyring.Set(s.service, s.user, token); err != nil {
		return fmt.Errorf("failed to store token in keyring: %w", err)
	}
	return nil
}

func (s *KeyringStore) Load() (string, error) {
	token, err := keyring.Get(s.service, s.user)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return token, nil
}

func (s *KeyringStore) Clear() error {
	err := keyring.Delete(s.service, s.user)
	if err != nil && err != keyring.ErrNotFound {
		return fmt.Errorf("failed to delete token from keyring: %w", err)
	}
	return nil
}

// KeyringAvailable checks whether the OS keyring can be used. Best effort:
// a read that fails with anything other than not-found means unavailable.
func KeyringAvailable() bool {
	_, err := keyring.Get(constants.AppName, "availability-probe")
	return err == nil || err == keyring.ErrNotFound
}
