package storage

import (
	"context"
	"io"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/storage_mocks.go -package=mocks

type ObjectStorage interface {
	Upload(ctx context.Context, key string, reader io.Reader, contentType string, size int64) error
	GetURL(key string) string
	Delete(ctx context.Context, key string) error
}

// ImageProcessor normalizes an uploaded image before storage. It returns the
// processed bytes, their size and the output content type.
type ImageProcessor interface {
	Process(reader io.Reader) (io.Reader, int64, string, error)
}
