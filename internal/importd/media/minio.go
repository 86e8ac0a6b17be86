// Package media stores vehicle images in an S3-compatible object store.
// The object key is the source filename; dedup is by title prefix.
package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/vinsync-io/vinsync/internal/importd/core"
	"github.com/vinsync-io/vinsync/internal/importd/core/model"
	"github.com/vinsync-io/vinsync/pkg/log"
	"github.com/vinsync-io/vinsync/pkg/options"
)

var _ core.MediaStore = (*Store)(nil)

// Store is a MediaStore backed by MinIO or any S3-compatible endpoint.
type Store struct {
	client        *minio.Client
	bucket        string
	region        string
	publicBaseURL string
}

// NewStore creates the media store client. The bucket is not touched here;
// call EnsureBucket before serving.
func NewStore(opts *options.S3Options) (*Store, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKeyID, opts.SecretAccessKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create media store client: %w", err)
	}

	publicBaseURL := strings.TrimSuffix(opts.PublicBaseURL, "/")
	if publicBaseURL == "" {
		scheme := "http"
		if opts.UseSSL {
			scheme = "https"
		}
		publicBaseURL = fmt.Sprintf("%s://%s/%s", scheme, opts.Endpoint, opts.BucketName)
	}

	return &Store{
		client:        client,
		bucket:        opts.BucketName,
		region:        opts.Region,
		publicBaseURL: publicBaseURL,
	}, nil
}

// EnsureBucket creates the media bucket if it does not exist yet.
func (s *Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}

	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	log.Info("created media bucket", "bucket", s.bucket)
	return nil
}

// FindByTitle returns the stored asset whose object key stem matches the
// title, or nil when none is stored yet. The bare prefix also catches keys
// stored without an extension.
func (s *Store) FindByTitle(ctx context.Context, title string) (*model.MediaAsset, error) {
	objects := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix: title,
	})

	for obj := range objects {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list media objects: %w", obj.Err)
		}
		if !keyMatchesTitle(obj.Key, title) {
			continue
		}
		return &model.MediaAsset{
			ID:    obj.Key,
			URL:   s.publicURL(obj.Key),
			Title: title,
		}, nil
	}

	return nil, nil
}

// keyMatchesTitle reports whether an object key belongs to the given title:
// the key's filename stem must equal the title exactly.
func keyMatchesTitle(key, title string) bool {
	return strings.TrimSuffix(key, path.Ext(key)) == title
}

// Put stores a new asset under its source filename.
func (s *Store) Put(ctx context.Context, title, filename, contentType string, body io.Reader, size int64) (*model.MediaAsset, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, s.bucket, filename, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store %s: %w", filename, err)
	}

	return &model.MediaAsset{
		ID:    filename,
		URL:   s.publicURL(filename),
		Title: title,
	}, nil
}

func (s *Store) publicURL(key string) string {
	return s.publicBaseURL + "/" + key
}
