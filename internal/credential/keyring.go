// Package credential keeps the CLI session, the id of the logged-in user, in
// the system keyring.
package credential

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/99designs/keyring"
)

const (
	serviceName   = "personal-diary"
	activeUserKey = "active-user"
)

// ErrNoSession reports that no user is logged in.
var ErrNoSession = errors.New("not logged in")

// Vault stores the active user id in a keyring.
type Vault struct {
	ring keyring.Keyring
}

// NewVault wraps an already opened keyring.
func NewVault(ring keyring.Keyring) *Vault {
	return &Vault{ring: ring}
}

// Open opens the system keyring, falling back to an encrypted file under
// configDir when no OS backend is available.
func Open(configDir string) (*Vault, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  filepath.Join(configDir, "credentials"),
		FilePasswordFunc:         keyring.FixedStringPrompt("personal-diary-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return NewVault(ring), nil
}

// SetActiveUser records userID as the logged-in user.
func (v *Vault) SetActiveUser(userID string) error {
	if userID == "" {
		return errors.New("user id must not be empty")
	}
	err := v.ring.Set(keyring.Item{
		Key:   activeUserKey,
		Data:  []byte(userID),
		Label: "personal diary session",
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", activeUserKey, err)
	}
	return nil
}

// ActiveUser returns the logged-in user id, or ErrNoSession.
func (v *Vault) ActiveUser() (string, error) {
	item, err := v.ring.Get(activeUserKey)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", activeUserKey, err)
	}
	if len(item.Data) == 0 {
		return "", ErrNoSession
	}
	return string(item.Data), nil
}

// ClearActiveUser logs out. Clearing an empty session is not an error.
func (v *Vault) ClearActiveUser() error {
	err := v.ring.Remove(activeUserKey)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("deleting credential %q: %w", activeUserKey, err)
	}
	return nil
}
