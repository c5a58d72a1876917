// Package credentials persists the API key on disk with owner-only permissions.
package credentials

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"clockify-cli/internal/domain"
)

// EnvKey names the environment variable that overrides the persisted key.
const EnvKey = "CLOCKIFY_API_KEY"

const fileName = "credentials"

var keyRe = regexp.MustCompile(`^[A-Za-z0-9]{20,128}$`)

// ValidateKey checks the shape of an API key without contacting the service.
func ValidateKey(key string) error {
	if !keyRe.MatchString(key) {
		return domain.ErrInvalidCredentialFormat
	}
	return nil
}

// FileStore implements ports.CredentialStore.
type FileStore struct {
	dir      string
	override string
}

// NewFileStore stores the key in dir/credentials. A non-empty override
// (the value of EnvKey) is returned by Get instead of the persisted key.
func NewFileStore(dir, override string) *FileStore {
	return &FileStore{dir: dir, override: strings.TrimSpace(override)}
}

func (s *FileStore) path() string { return filepath.Join(s.dir, fileName) }

// Set validates and persists key.
func (s *FileStore) Set(key string) error {
	key = strings.TrimSpace(key)
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}
	// MkdirAll leaves an existing directory's mode alone.
	if err := os.Chmod(s.dir, 0o700); err != nil {
		return fmt.Errorf("restrict credentials dir: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, fileName+".*")
	if err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("write credentials: %w", err)
	}
	if _, err := tmp.WriteString(key); err != nil {
		tmp.Close()
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path()); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// Get returns the environment override if set, else the persisted key.
func (s *FileStore) Get() (string, bool, error) {
	if s.override != "" {
		return s.override, true, nil
	}
	b, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read credentials: %w", err)
	}
	key := strings.TrimSpace(string(b))
	if key == "" {
		return "", false, nil
	}
	return key, true, nil
}

// Remove deletes the persisted key and reports whether one existed.
// The environment override is not affected.
func (s *FileStore) Remove() (bool, error) {
	err := os.Remove(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("remove credentials: %w", err)
	}
	return true, nil
}

// Overridden reports whether the key comes from the environment.
func (s *FileStore) Overridden() bool { return s.override != "" }

// Has reports whether a key is available from either source.
func (s *FileStore) Has() bool {
	_, ok, err := s.Get()
	return ok && err == nil
}
