package minio

import (
	"bytes"
	"context"
	"io"
	"path"
	"slices"
	"strings"

	"github.com/hupe1980/reqindex/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Store is a blobstore.BlobStore backed by a MinIO (or other S3-compatible) bucket.
type Store struct {
	client *minio.Client
	bucket string
	prefix string
}

var _ blobstore.BlobStore = (*Store)(nil)

// NewStore wraps an existing client. Every blob name is joined to prefix.
func NewStore(client *minio.Client, bucket, prefix string) *Store {
	return &Store{client: client, bucket: bucket, prefix: prefix}
}

type options struct {
	prefix    string
	accessKey string
	secretKey string
	secure    bool
	region    string
}

// Option configures New.
type Option func(*options)

// WithPrefix sets the key prefix blobs are stored under.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithCredentials sets static access keys.
func WithCredentials(accessKey, secretKey string) Option {
	return func(o *options) {
		o.accessKey = accessKey
		o.secretKey = secretKey
	}
}

// WithSecure enables TLS.
func WithSecure(secure bool) Option {
	return func(o *options) { o.secure = secure }
}

// WithRegion sets the bucket region.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// New connects to endpoint and returns a Store for bucket. No request is made
// until the store is first used.
func New(endpoint, bucket string, optFns ...Option) (*Store, error) {
	var o options
	for _, fn := range optFns {
		fn(&o)
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(o.accessKey, o.secretKey, ""),
		Secure: o.secure,
		Region: o.region,
	})
	if err != nil {
		return nil, err
	}
	return NewStore(client, bucket, o.prefix), nil
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

func isNotFound(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NotFound":
		return true
	}
	return false
}

// contentType derives the object content type from the snapshot name.
func contentType(name string) string {
	switch path.Ext(name) {
	case ".json":
		return "application/json"
	case ".zst":
		return "application/zstd"
	default:
		return "application/octet-stream"
	}
}

// Open stats the object and returns a blob that reads it with ranged GETs.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	key := s.key(name)

	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil, blobstore.ErrNotFound
		}
		return nil, err
	}
	return &object{store: s, key: key, size: info.Size}, nil
}

// Put uploads data as a single object.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, s.key(name), bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType(name)})
	return err
}

// Delete removes the object. A missing object is not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, s.key(name), minio.RemoveObjectOptions{}); err != nil && !isNotFound(err) {
		return err
	}
	return nil
}

// List returns the sorted names below prefix, relative to the store prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	want := s.key(prefix)
	if strings.HasSuffix(prefix, "/") {
		want += "/"
	}

	var names []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: want, Recursive: true}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		if name := strings.TrimPrefix(strings.TrimPrefix(obj.Key, s.prefix), "/"); name != "" {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

type object struct {
	store *Store
	key   string
	size  int64
}

func (o *object) Size() int64 { return o.size }

func (o *object) Close() error { return nil }

func (o *object) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if off >= o.size {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}

	want := min(int64(len(p)), o.size-off)

	var opts minio.GetObjectOptions
	if err := opts.SetRange(off, off+want-1); err != nil {
		return 0, err
	}
	r, err := o.store.client.GetObject(ctx, o.store.bucket, o.key, opts)
	if err != nil {
		return 0, err
	}
	defer func() { _ = r.Close() }()

	n, err := io.ReadFull(r, p[:want])
	if err == nil && n < len(p) {
		err = io.EOF
	}
	return n, err
}
