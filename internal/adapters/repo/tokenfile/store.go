package tokenfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/zainarain279/paws/internal/domain"
	"github.com/zainarain279/paws/internal/ports"
)

const (
	tokensFileMode  = 0o600
	tokensDirMode   = 0o700
	tempFilePattern = ".tokens-*.json.tmp"
)

// Store persists the account-id -> bearer-token map as a single flat JSON
// object, rewritten wholesale on every change. The file format is part of
// the automated service's local-state contract, so it stays plain JSON.
type Store struct {
	path string
	mu   *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.TokenStore = (*Store)(nil)

func NewStore(path string) (*Store, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve tokens path: %w", err)
	}
	absPath = filepath.Clean(absPath)

	return &Store{path: absPath, mu: lockForPath(absPath)}, nil
}

func (s *Store) Get(ctx context.Context, id domain.AccountID) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	tokens, err := s.readAll()
	if err != nil {
		return "", err
	}

	token, ok := tokens[string(id)]
	if !ok || token == "" {
		return "", domain.ErrTokenNotFound
	}

	return token, nil
}

func (s *Store) Put(ctx context.Context, id domain.AccountID, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tokens, err := s.readAll()
	if err != nil {
		return err
	}

	tokens[string(id)] = token

	return s.writeAll(tokens)
}

func (s *Store) Delete(ctx context.Context, id domain.AccountID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tokens, err := s.readAll()
	if err != nil {
		return err
	}

	if _, ok := tokens[string(id)]; !ok {
		return nil
	}
	delete(tokens, string(id))

	return s.writeAll(tokens)
}

func (s *Store) readAll() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read tokens file: %w", err)
	}

	tokens := map[string]string{}
	if len(data) == 0 {
		return tokens, nil
	}
	if err := json.Unmarshal(data, &tokens); err != nil {
		return nil, fmt.Errorf("decode tokens file: %w", err)
	}

	return tokens, nil
}

func (s *Store) writeAll(tokens map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), tokensDirMode); err != nil {
		return fmt.Errorf("create tokens directory: %w", err)
	}

	data, err := json.MarshalIndent(tokens, "", "  ")
	if err != nil {
		return fmt.Errorf("encode tokens file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(s.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp tokens file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp tokens file: %w", err)
	}

	if err := tempFile.Chmod(tokensFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp tokens file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp tokens file: %w", err)
	}

	if err := os.Rename(tempName, s.path); err != nil {
		return fmt.Errorf("replace tokens file: %w", err)
	}

	cleanup = false

	return nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
