// Package storage provides per-request temporary workspaces and optional
// S3 upload of processing reports.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrS3NotConfigured is returned when S3 operations are attempted
// without proper configuration.
var ErrS3NotConfigured = errors.New("S3 storage is not configured")

// Storage is the port for workspace allocation and report persistence.
type Storage interface {
	// NewWorkspace allocates an isolated temporary directory for one
	// request. The caller must Close it on every exit path.
	NewWorkspace(ctx context.Context) (*Workspace, error)

	// UploadReport uploads a processing report and returns its URL.
	// Returns ErrS3NotConfigured when no S3 backend is configured.
	UploadReport(ctx context.Context, key string, data io.Reader) (url string, err error)
}

// Workspace is a request-scoped scratch directory. All intermediate
// artifacts (uploaded video, extracted wav, reduced wav) live inside it and
// are removed together when the workspace is closed, so partially written
// output never leaks into caller-visible locations.
type Workspace struct {
	dir string
}

// Dir returns the workspace directory path.
func (w *Workspace) Dir() string {
	return w.dir
}

// Path returns the path of a named artifact inside the workspace.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.dir, name)
}

// SaveFile writes the reader's content to a named file inside the
// workspace and returns its path.
func (w *Workspace) SaveFile(name string, data io.Reader) (string, error) {
	path := w.Path(name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600) // #nosec G304 - path is inside the workspace
	if err != nil {
		return "", fmt.Errorf("create workspace file: %w", err)
	}

	if _, err := io.Copy(f, data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write workspace file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close workspace file: %w", err)
	}

	return path, nil
}

// Close removes the workspace and everything in it.
func (w *Workspace) Close() error {
	return os.RemoveAll(w.dir)
}
