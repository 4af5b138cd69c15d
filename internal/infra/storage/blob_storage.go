package storage

import (
	"context"
	"io"
	"log/slog"
	"path"
	"strings"

	"souq/config"
	domainerrors "souq/internal/domain/errors"
	"souq/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	_ "gocloud.dev/blob/fileblob"
)

// allowedExtensions is the image extension allow-list; anything else is
// rejected before a single byte is written.
var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
}

// blobStorage stores uploads in a gocloud.dev bucket. Keys are random UUIDs
// with the original extension, so a hostile filename never reaches storage.
type blobStorage struct {
	bucket  *blob.Bucket
	maxSize int64
}

// StorageParams holds dependencies for the FileStorage, injected by Fx.
type StorageParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewBlobStorage opens the configured bucket and wires its shutdown into the
// application lifecycle.
func NewBlobStorage(params StorageParams) (service.FileStorage, error) {
	cfg := params.Config.Uploads

	bucket, err := blob.OpenBucket(params.Ctx, cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open upload bucket")
	}

	params.Logger.Info("Using blob upload storage",
		slog.String("bucket_url", cfg.BucketURL),
		slog.Int64("max_size_bytes", cfg.MaxSizeBytes),
	)

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			params.Logger.Info("Closing upload bucket")

			return bucket.Close()
		},
	})

	return &blobStorage{bucket: bucket, maxSize: cfg.MaxSizeBytes}, nil
}

// Save validates the extension and declared size, then streams the payload
// into the bucket under a generated key. The actual byte count is checked
// against the limit as well, so a payload with an understated Content-Length
// is rejected instead of stored truncated.
func (s *blobStorage) Save(ctx context.Context, filename string, size int64, payload io.Reader) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", domainerrors.ErrImageRejected.WrapMessage("unsupported image extension " + ext)
	}
	if size > s.maxSize {
		return "", domainerrors.ErrImageRejected.WrapMessage("image exceeds the maximum allowed size")
	}

	key := uuid.NewString() + ext

	writer, err := s.bucket.NewWriter(ctx, key, nil)
	if err != nil {
		return "", domainerrors.ErrStorageFailed.WrapMessage("failed to open upload writer")
	}

	// Read one byte past the limit so an oversized stream is detectable.
	written, err := io.Copy(writer, io.LimitReader(payload, s.maxSize+1))
	if err != nil {
		writer.Close()
		s.bucket.Delete(ctx, key)

		return "", domainerrors.ErrStorageFailed.WrapMessage("failed to write upload")
	}
	if written > s.maxSize {
		writer.Close()
		s.bucket.Delete(ctx, key)

		return "", domainerrors.ErrImageRejected.WrapMessage("image exceeds the maximum allowed size")
	}
	if err := writer.Close(); err != nil {
		return "", domainerrors.ErrStorageFailed.WrapMessage("failed to finish upload")
	}

	return key, nil
}

// Remove deletes a stored key. A missing key is treated as already removed.
func (s *blobStorage) Remove(ctx context.Context, storedPath string) error {
	if err := s.bucket.Delete(ctx, storedPath); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}

		return errors.Wrap(err, "failed to remove upload")
	}

	return nil
}

// Module provides the upload storage FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewBlobStorage),
)
