package service

import (
	"context"
	"io"
)

// FileStorage accepts an image payload and returns a stored relative path.
// Implementations enforce the extension allow-list and the maximum size,
// returning no path otherwise.
type FileStorage interface {
	// Save streams the payload into storage under a generated name derived
	// from filename's extension. size is the declared payload length in bytes.
	Save(ctx context.Context, filename string, size int64, payload io.Reader) (string, error)

	// Remove deletes a previously stored path. Removing a missing path is not
	// an error.
	Remove(ctx context.Context, storedPath string) error
}
