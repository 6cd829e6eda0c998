package local

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/meteolog/almanac/internal"
)

type Option func(*Repository)

// Repository persists forecast payloads as plain files under basePath.
// Writes truncate any prior file of the same name.
type Repository struct {
	basePath string
	logger   *zap.Logger
}

func WithLogger(logger *zap.Logger) Option {
	return func(r *Repository) {
		r.logger = logger
	}
}

func New(basePath string, opts ...Option) *Repository {
	r := &Repository{
		basePath: basePath,
		logger:   zap.NewNop(),
	}

	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Repository) path(key string) string {
	return filepath.Join(r.basePath, key)
}

func (r *Repository) Write(ctx context.Context, key string, reader io.Reader) error {
	fullPath := r.path(key)
	r.logger.Debug("writing file", zap.String("path", fullPath))

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(file, reader)
	return err
}

func (r *Repository) Stat(ctx context.Context, key string) (internal.FileInfo, error) {
	fi, err := os.Stat(r.path(key))
	if err != nil {
		return internal.FileInfo{}, err
	}

	return internal.FileInfo{
		Size:    fi.Size(),
		ModTime: fi.ModTime(),
	}, nil
}
