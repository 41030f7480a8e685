package upload

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"postboard/config"
	deliverycontext "postboard/internal/delivery/context"
	"postboard/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob" // registers mem:// for bucketUrl
	"gocloud.dev/gcerrors"
)

const defaultUploadDir = "public/uploads"

// Object metadata keys written on every upload.
const (
	metadataUploadedBy = "uploaded-by"
	metadataRequestID  = "request-id"
)

// BlobStorage keeps uploads in a gocloud.dev bucket.
type BlobStorage struct {
	bucket *blob.Bucket
	prefix string
	now    func() time.Time
	logger *slog.Logger
}

// StorageParams defines the dependencies for the fx constructor.
type StorageParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

// New opens the configured bucket and closes it when the app stops.
func New(params StorageParams) (service.MediaStorage, error) {
	bucket, err := OpenBucket(context.Background(), params.Config.Uploads)
	if err != nil {
		return nil, err
	}

	storage := NewBlobStorage(bucket, params.Config.Uploads.PublicPrefix, params.Logger)

	params.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return storage.Close()
		},
	})

	return storage, nil
}

// OpenBucket opens uploads.bucketUrl when set, otherwise a directory bucket at uploads.dir.
func OpenBucket(ctx context.Context, cfg config.UploadsConfig) (*blob.Bucket, error) {
	if url := strings.TrimSpace(cfg.BucketURL); url != "" {
		bucket, err := blob.OpenBucket(ctx, url)
		if err != nil {
			return nil, errors.Wrapf(err, "open bucket %q", url)
		}

		return bucket, nil
	}

	dir := cfg.Dir
	if strings.TrimSpace(dir) == "" {
		dir = defaultUploadDir
	}

	bucket, err := fileblob.OpenBucket(dir, &fileblob.Options{CreateDir: true})
	if err != nil {
		return nil, errors.Wrapf(err, "open upload dir %q", dir)
	}

	return bucket, nil
}

// NewBlobStorage wraps an already opened bucket.
func NewBlobStorage(bucket *blob.Bucket, publicPrefix string, logger *slog.Logger) *BlobStorage {
	if publicPrefix == "" {
		publicPrefix = "/uploads/"
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &BlobStorage{
		bucket: bucket,
		prefix: publicPrefix,
		now:    time.Now,
		logger: logger,
	}
}

// Save streams content into the bucket under a fresh stored name.
func (s *BlobStorage) Save(ctx context.Context, originalName string, content io.Reader) (*service.StoredMedia, error) {
	name := NewStoredName(originalName, s.now())

	writer, err := s.bucket.NewWriter(ctx, name, &blob.WriterOptions{
		Metadata: uploadMetadata(ctx),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open blob writer")
	}

	if _, err := io.Copy(writer, content); err != nil {
		_ = writer.Close()

		return nil, errors.Wrap(err, "write blob")
	}

	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "close blob writer")
	}

	s.logger.DebugContext(ctx, "Stored upload",
		slog.String("original", originalName),
		slog.String("name", name),
	)

	return &service.StoredMedia{
		Name:       name,
		PublicPath: s.prefix + name,
	}, nil
}

// Open returns a reader for a stored object.
func (s *BlobStorage) Open(ctx context.Context, name string) (service.MediaReader, error) {
	if !IsStoredName(name) {
		return nil, service.ErrMediaNotFound
	}

	reader, err := s.bucket.NewReader(ctx, name, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, service.ErrMediaNotFound
		}

		return nil, errors.Wrapf(err, "open blob %q", name)
	}

	return reader, nil
}

// Close releases the bucket.
func (s *BlobStorage) Close() error {
	return errors.Wrap(s.bucket.Close(), "close bucket")
}

// uploadMetadata records who stored an object and in which request.
func uploadMetadata(ctx context.Context) map[string]string {
	metadata := make(map[string]string, 2)
	if identity, ok := deliverycontext.IdentityFromContext(ctx); ok {
		metadata[metadataUploadedBy] = identity.UserID.String()
	}
	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		metadata[metadataRequestID] = requestID
	}

	return metadata
}
