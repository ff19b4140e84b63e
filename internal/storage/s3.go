package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3API is the subset of the S3 client used by S3Store.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store keeps objects in an S3 bucket, optionally below a key prefix.
type S3Store struct {
	client  S3API
	bucket  string
	prefix  string
	baseURL string
}

// NewS3Store loads the default AWS credential chain.
func NewS3Store(ctx context.Context, region, bucket, prefix, baseURL string) (*S3Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return NewS3StoreWithClient(s3.NewFromConfig(cfg), bucket, prefix, baseURL), nil
}

func NewS3StoreWithClient(client S3API, bucket, prefix, baseURL string) *S3Store {
	return &S3Store{
		client:  client,
		bucket:  bucket,
		prefix:  strings.Trim(strings.TrimSpace(prefix), "/"),
		baseURL: baseURL,
	}
}

func (s *S3Store) Save(ctx context.Context, owner, fileName string, r io.Reader) (Object, error) {
	key, err := newKey(owner, fileName)
	if err != nil {
		return Object{}, err
	}
	if err := ctx.Err(); err != nil {
		return Object{}, err
	}

	mimeType, body, err := sniff(r)
	if err != nil {
		return Object{}, err
	}
	// buffered so the SDK can compute the payload hash and length
	data, err := io.ReadAll(body)
	if err != nil {
		return Object{}, fmt.Errorf("read body: %w", err)
	}

	objectKey := s.objectKey(key)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(s.bucket),
		Key:                  aws.String(objectKey),
		Body:                 bytes.NewReader(data),
		ContentType:          aws.String(mimeType),
		ServerSideEncryption: s3types.ServerSideEncryptionAes256,
	})
	if err != nil {
		return Object{}, fmt.Errorf("s3 put object bucket=%s key=%s: %w", s.bucket, objectKey, err)
	}

	return Object{Key: key, Size: int64(len(data)), MimeType: mimeType}, nil
}

func (s *S3Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	clean, err := cleanKey(key)
	if err != nil {
		return nil, err
	}

	objectKey := s.objectKey(clean)
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		var nsk *s3types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("s3 get object bucket=%s key=%s: %w", s.bucket, objectKey, err)
	}
	return out.Body, nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	clean, err := cleanKey(key)
	if err != nil {
		return err
	}

	objectKey := s.objectKey(clean)
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("s3 delete object bucket=%s key=%s: %w", s.bucket, objectKey, err)
	}
	return nil
}

// URL uses baseURL when configured, otherwise an s3:// address.
func (s *S3Store) URL(key string) string {
	if s.baseURL != "" {
		return joinURL(s.baseURL, s.objectKey(key))
	}
	return "s3://" + s.bucket + "/" + s.objectKey(key)
}

func (s *S3Store) objectKey(key string) string {
	key = strings.TrimLeft(key, "/")
	if s.prefix == "" {
		return key
	}
	return s.prefix + "/" + key
}

var _ ObjectStore = (*S3Store)(nil)
