// Package filestore keeps uploaded attachment bytes on the local disk.
package filestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Local writes blobs under a base directory. The returned storage path is the
// full on-disk path, which is what the attachment records carry.
type Local struct {
	baseDir string
}

func NewLocal(baseDir string) (*Local, error) {
	if baseDir == "" {
		baseDir = "uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{baseDir: baseDir}, nil
}

func (l *Local) Store(_ context.Context, fileName string, content io.Reader) (string, int64, error) {
	// fileName is generated upstream from the attachment id, never from
	// client input, so a plain join is safe.
	fullPath := filepath.Join(l.baseDir, filepath.Base(fileName))

	file, err := os.Create(fullPath)
	if err != nil {
		return "", 0, fmt.Errorf("create blob file: %w", err)
	}
	size, err := io.Copy(file, content)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(fullPath)
		return "", 0, fmt.Errorf("write blob file: %w", err)
	}
	return fullPath, size, nil
}

func (l *Local) Remove(_ context.Context, path string) error {
	if path == "" {
		return nil
	}
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
