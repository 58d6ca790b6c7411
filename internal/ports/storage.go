package ports

import "context"

// FileStore uploads an object to blob storage and returns its public URL.
type FileStore interface {
	Upload(ctx context.Context, name, contentType string, data []byte) (string, error)
}
