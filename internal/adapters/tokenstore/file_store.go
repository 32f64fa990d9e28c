package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gitlab.com/nubelio/licences/storefront-client/internal/domain"
)

// FileStore persists the token pair as a JSON file, the CLI equivalent
// of the browser's persistent storage. Reads never fail: a missing,
// unreadable or partial pair is reported as absent.
type FileStore struct {
	mu     sync.Mutex
	path   string
	logger domain.Logger
}

// DefaultTokenPath returns the standard location of the token file
// under the user's configuration directory.
func DefaultTokenPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "licences-storefront", "tokens.json"), nil
}

// NewFileStore creates a FileStore writing to path. An empty path
// selects DefaultTokenPath.
func NewFileStore(path string, logger domain.Logger) (*FileStore, error) {
	if logger == nil {
		panic("logger cannot be nil in NewFileStore")
	}
	if path == "" {
		var err error
		path, err = DefaultTokenPath()
		if err != nil {
			return nil, err
		}
	}
	return &FileStore{path: path, logger: logger}, nil
}

// Get returns the stored pair, or (zero, false) when the file is
// missing, unreadable or holds a partial pair.
func (s *FileStore) Get() (domain.TokenPair, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn(context.Background(), "Failed to read token file, treating as absent", "path", s.path, "error", err.Error())
		}
		return domain.TokenPair{}, false
	}

	var pair domain.TokenPair
	if err := json.Unmarshal(data, &pair); err != nil {
		s.logger.Warn(context.Background(), "Token file is corrupt, treating as absent", "path", s.path, "error", err.Error())
		return domain.TokenPair{}, false
	}
	if !pair.Valid() {
		return domain.TokenPair{}, false
	}
	return pair, true
}

// Set overwrites the stored pair unconditionally. The file is written
// with 0600 permissions under a 0700 directory.
func (s *FileStore) Set(pair domain.TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	data, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("failed to marshal token pair: %w", err)
	}

	// Write-then-rename so a crash never leaves a truncated token file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace token file: %w", err)
	}
	return nil
}

// Clear removes the token file. A missing file is not an error.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}
