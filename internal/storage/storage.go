package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Upload is a byte stream plus its declared metadata.
type Upload struct {
	Reader       io.Reader
	OriginalName string
	ContentType  string
	Size         int64
}

// BlobStore accepts an upload and returns a stable locator path. Size and
// content-type policy is the caller's concern; the store only persists.
type BlobStore interface {
	Save(ctx context.Context, folder string, upload Upload) (string, error)
}

// LocalStore writes uploads to durable local disk under a base directory.
// Stored names are generated, never the client-declared filename, so
// concurrent uploads of the same name cannot collide.
type LocalStore struct {
	dir    string
	logger *zap.Logger
}

// NewLocalStore creates the base directory if needed.
func NewLocalStore(dir string, logger *zap.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &LocalStore{dir: dir, logger: logger}, nil
}

// Save streams the upload to disk and returns its locator path relative to
// the base directory.
func (s *LocalStore) Save(_ context.Context, folder string, upload Upload) (string, error) {
	name := uuid.NewString() + filepath.Ext(upload.OriginalName)
	rel := filepath.Join(folder, name)

	target := filepath.Join(s.dir, rel)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create upload folder: %w", err)
	}

	out, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer out.Close()

	written, err := io.Copy(out, upload.Reader)
	if err != nil {
		_ = os.Remove(target)
		return "", fmt.Errorf("write upload: %w", err)
	}

	s.logger.Debug("stored upload",
		zap.String("path", rel),
		zap.String("original", upload.OriginalName),
		zap.Int64("bytes", written))
	return rel, nil
}
