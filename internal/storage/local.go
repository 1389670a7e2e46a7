package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage implements Storage using local disk only.
// Workspaces are created under a configurable root directory; report
// uploads are not supported unless wrapped with S3Storage.
type LocalStorage struct {
	rootDir string
}

// NewLocalStorage creates a new LocalStorage instance.
// The rootDir parameter specifies where workspaces are created.
// If rootDir is empty, a directory under os.TempDir() is used.
// The directory is created if it doesn't exist.
func NewLocalStorage(rootDir string) (*LocalStorage, error) {
	if rootDir == "" {
		rootDir = filepath.Join(os.TempDir(), "videoextractor")
	}

	if err := os.MkdirAll(rootDir, 0750); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}

	return &LocalStorage{rootDir: rootDir}, nil
}

// RootDir returns the directory under which workspaces are created.
func (s *LocalStorage) RootDir() string {
	return s.rootDir
}

// NewWorkspace allocates a fresh request-scoped directory.
func (s *LocalStorage) NewWorkspace(ctx context.Context) (*Workspace, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	dir, err := os.MkdirTemp(s.rootDir, "req_*")
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}

	return &Workspace{dir: dir}, nil
}

// UploadReport is not supported by LocalStorage and returns ErrS3NotConfigured.
func (s *LocalStorage) UploadReport(_ context.Context, _ string, _ io.Reader) (string, error) {
	return "", ErrS3NotConfigured
}

// Compile-time check that LocalStorage implements Storage.
var _ Storage = (*LocalStorage)(nil)
