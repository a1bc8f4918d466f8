package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tradeapp "github.com/agencydesk/backend/internal/application/trade"
)

// Ensure LocalObjectStorage implements ObjectStorageService
var _ tradeapp.ObjectStorageService = (*LocalObjectStorage)(nil)

// LocalObjectStorage stores objects on the local filesystem. Used for
// development when no S3 credentials are configured.
type LocalObjectStorage struct {
	baseDir       string
	publicBaseURL string
}

// NewLocalObjectStorage creates a filesystem-backed object store rooted at baseDir
func NewLocalObjectStorage(baseDir, publicBaseURL string) (*LocalObjectStorage, error) {
	if baseDir == "" {
		return nil, errors.New("base directory is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalObjectStorage{
		baseDir:       baseDir,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}, nil
}

// path maps a storage key to a filesystem path, rejecting traversal
func (s *LocalObjectStorage) path(storageKey string) (string, error) {
	if storageKey == "" {
		return "", errors.New("storage key is required")
	}
	cleaned := filepath.Clean(storageKey)
	if strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid storage key %q", storageKey)
	}
	return filepath.Join(s.baseDir, cleaned), nil
}

// Upload stores an object under the given key
func (s *LocalObjectStorage) Upload(_ context.Context, storageKey string, data []byte, _ string) error {
	path, err := s.path(storageKey)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create object directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// PublicURL returns the URL under which the object is served
func (s *LocalObjectStorage) PublicURL(storageKey string) string {
	return s.publicBaseURL + "/" + storageKey
}

// DeleteObject removes an object from storage
func (s *LocalObjectStorage) DeleteObject(_ context.Context, storageKey string) error {
	path, err := s.path(storageKey)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}
