package internal

import (
	"context"
	"io"
)

type Repository interface {
	Write(ctx context.Context, key string, reader io.Reader) error
	Stat(ctx context.Context, key string) (FileInfo, error)
}
