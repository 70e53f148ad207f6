// Package store implements the verifier registry consumed by the SRP
// server role: per-account salt and verifier, persisted as a JSON file.
// The plaintext password is never stored.
package store

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"sync"
)

// ErrAccountNotFound is returned when no account exists for a username.
var ErrAccountNotFound = errors.New("store: account not found")

// Account is one stored credential row. Salt and verifier are
// base64-encoded for the on-disk representation.
type Account struct {
	Username string `json:"username"`
	Salt     string `json:"salt"`
	Verifier string `json:"verifier"`
}

// Store is a thread-safe verifier registry backed by a JSON file.
type Store struct {
	mu       sync.RWMutex
	path     string
	accounts map[string]Account
}

// Open loads the registry at path, creating an empty one if the file does
// not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{
		path:     path,
		accounts: make(map[string]Account),
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read account registry: %w", err)
	}

	var accounts []Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("failed to parse account registry: %w", err)
	}
	for _, a := range accounts {
		s.accounts[a.Username] = a
	}

	return s, nil
}

// Put records the salt and verifier for a username, replacing any previous
// entry.
func (s *Store) Put(username string, salt []byte, verifier *big.Int) error {
	if username == "" {
		return fmt.Errorf("username must be non-empty")
	}
	if len(salt) == 0 || verifier == nil || verifier.Sign() <= 0 {
		return fmt.Errorf("salt and verifier must be non-empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[username] = Account{
		Username: username,
		Salt:     base64.StdEncoding.EncodeToString(salt),
		Verifier: base64.StdEncoding.EncodeToString(verifier.Bytes()),
	}
	return nil
}

// Get returns the stored salt and verifier for a username.
func (s *Store) Get(username string) (salt []byte, verifier *big.Int, err error) {
	s.mu.RLock()
	account, ok := s.accounts[username]
	s.mu.RUnlock()
	if !ok {
		return nil, nil, ErrAccountNotFound
	}

	salt, err = base64.StdEncoding.DecodeString(account.Salt)
	if err != nil {
		return nil, nil, fmt.Errorf("corrupt salt for %q: %w", username, err)
	}
	verifierBytes, err := base64.StdEncoding.DecodeString(account.Verifier)
	if err != nil {
		return nil, nil, fmt.Errorf("corrupt verifier for %q: %w", username, err)
	}
	return salt, new(big.Int).SetBytes(verifierBytes), nil
}

// Count returns the number of stored accounts.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}

// Save writes the registry to disk with owner-only permissions.
func (s *Store) Save() error {
	s.mu.RLock()
	accounts := make([]Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		accounts = append(accounts, a)
	}
	s.mu.RUnlock()

	data, err := json.MarshalIndent(accounts, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal account registry: %w", err)
	}

	dir := filepath.Dir(s.path)
	//nolint:gosec // G301: the registry file itself is 0600
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create registry directory: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(s.path), data, 0o600); err != nil {
		return fmt.Errorf("failed to write account registry: %w", err)
	}
	return nil
}
