package output

import (
	"bytes"
	"context"
	"net/url"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// BucketConfig locates an S3-compatible bucket.
type BucketConfig struct {
	// URL is the endpoint, e.g. https://s3.example.com.
	URL       string
	Bucket    string
	Prefix    string
	AccessKey string
	SecretKey string
}

// Bucket uploads scripts to an S3-compatible object store.
type Bucket struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewBucket creates a client for the bucket. No request is made until the
// first Write.
func NewBucket(cfg BucketConfig) (*Bucket, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("bucket name is required")
	}

	uri, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid bucket URL %q", cfg.URL)
	}
	if uri.Host == "" {
		return nil, errors.Errorf("invalid bucket URL %q", cfg.URL)
	}

	client, err := minio.New(uri.Host, &minio.Options{
		BucketLookup: minio.BucketLookupPath,
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       uri.Scheme == "https",
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create bucket client")
	}

	return &Bucket{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
	}, nil
}

// Key returns the object key a script of the given name is stored under.
func (b *Bucket) Key(name string) string {
	if b.prefix == "" {
		return name
	}
	return path.Join(b.prefix, name)
}

// Write uploads contents, replacing any existing object with the same key.
func (b *Bucket) Write(ctx context.Context, name string, contents []byte) (string, error) {
	key := b.Key(name)

	_, err := b.client.PutObject(ctx, b.bucket, key, bytes.NewReader(contents), int64(len(contents)), minio.PutObjectOptions{
		ContentType: "application/sql",
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to upload %s", key)
	}

	location := "s3://" + b.bucket + "/" + key
	zerolog.Ctx(ctx).Info().Str("path", location).Msg("Uploaded file")

	return location, nil
}
