package s3

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hupe1980/reqindex/blobstore"
)

// Store implements blobstore.BlobStore for S3.
type Store struct {
	client   Client
	uploader *manager.Uploader
	bucket   string
	prefix   string
}

var _ blobstore.BlobStore = (*Store)(nil)

// NewStore creates a new S3 blob store.
// rootPrefix is prepended to all keys (e.g. "reqindex/").
func NewStore(client Client, bucket, rootPrefix string) *Store {
	return &Store{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		prefix:   rootPrefix,
	}
}

type options struct {
	prefix       string
	region       string
	endpoint     string
	accessKey    string
	secretKey    string
	usePathStyle bool
}

// Option configures New.
type Option func(*options)

// WithPrefix sets the key prefix for all blobs.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithRegion overrides the region from the shared AWS configuration.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithEndpoint points the client at an S3-compatible endpoint and enables
// path-style addressing.
func WithEndpoint(endpoint string) Option {
	return func(o *options) {
		o.endpoint = endpoint
		o.usePathStyle = true
	}
}

// WithStaticCredentials uses fixed credentials instead of the default chain.
func WithStaticCredentials(accessKey, secretKey string) Option {
	return func(o *options) {
		o.accessKey = accessKey
		o.secretKey = secretKey
	}
}

// New loads the default AWS configuration and creates a Store for bucket.
func New(ctx context.Context, bucket string, optFns ...Option) (*Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3: bucket is required")
	}

	var o options
	for _, fn := range optFns {
		fn(&o)
	}

	var loadOpts []func(*config.LoadOptions) error
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}
	if o.accessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.accessKey, o.secretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("s3: load config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(so *s3.Options) {
		if o.endpoint != "" {
			so.BaseEndpoint = aws.String(o.endpoint)
		}
		so.UsePathStyle = o.usePathStyle
	})

	return NewStore(client, bucket, o.prefix), nil
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open opens a blob for reading.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	return openBlob(ctx, s.client, s.bucket, s.key(name))
}

// Put uploads data, switching to a multipart upload for large blobs.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
		Body:   bytes.NewReader(data),
	})
	return err
}

// Delete removes a blob.
func (s *Store) Delete(ctx context.Context, name string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil && isNotFound(err) {
		return nil
	}
	return err
}

// List returns all blob names with the given prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	fullPrefix := s.key(prefix)
	if strings.HasSuffix(prefix, "/") {
		fullPrefix += "/"
	}
	return listObjects(ctx, s.client, s.bucket, fullPrefix, s.prefix)
}
