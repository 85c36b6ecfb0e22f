// Package keychain stores the storage encryption key in the OS keyring,
// falling back to an environment variable where no keyring is available.
package keychain

import (
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"
)

const (
	serviceName = "ledgercraft"
	keyName     = "storage-encryption-key"

	// EnvKey overrides the keyring; useful on headless systems
	EnvKey = "LEDGERCRAFT_STORAGE_KEY"
)

// ErrNoKey means no encryption key has been configured yet
var ErrNoKey = errors.New("storage encryption key not found")

type Keychain struct{}

func New() *Keychain {
	return &Keychain{}
}

// GetKey retrieves the storage encryption key. The environment variable
// wins over the keyring so scripted runs stay deterministic.
func (k *Keychain) GetKey() (string, error) {
	if key := os.Getenv(EnvKey); key != "" {
		return key, nil
	}
	key, err := keyring.Get(serviceName, keyName)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNoKey
		}
		return "", fmt.Errorf("failed to read keyring: %w", err)
	}
	if key == "" {
		return "", ErrNoKey
	}
	return key, nil
}

// SetKey stores the storage encryption key in the keyring
func (k *Keychain) SetKey(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}
	if err := keyring.Set(serviceName, keyName, password); err != nil {
		return fmt.Errorf("failed to store key in keyring: %w", err)
	}
	return nil
}

// DeleteKey removes the stored key
func (k *Keychain) DeleteKey() error {
	if err := keyring.Delete(serviceName, keyName); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNoKey
		}
		return fmt.Errorf("failed to delete key from keyring: %w", err)
	}
	return nil
}
