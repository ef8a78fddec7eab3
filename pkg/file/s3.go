package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// FilenameMetadataKey is the object metadata entry holding the original file
// name. Objects without it are named after the last segment of their key.
const FilenameMetadataKey = "filename"

// S3Client defines the interface for S3 operations used by S3Storage.
type S3Client interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Storage resolves references as object keys in one bucket of Amazon S3 or
// an S3-compatible service. It is safe for concurrent use.
type S3Storage struct {
	client    S3Client
	bucket    string
	keyPrefix string
}

// S3Config contains configuration for S3 storage.
type S3Config struct {
	Bucket         string `env:"EV_S3_BUCKET"`
	Region         string `env:"EV_S3_REGION" envDefault:"us-east-1"`
	AccessKeyID    string `env:"EV_S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"EV_S3_SECRET_KEY"`
	Endpoint       string `env:"EV_S3_ENDPOINT"`         // Optional: for S3-compatible services
	ForcePathStyle bool   `env:"EV_S3_FORCE_PATH_STYLE"` // For S3-compatible services like MinIO
	KeyPrefix      string `env:"EV_S3_KEY_PREFIX"`       // Prepended to every reference
}

// S3Option defines a function that configures S3Storage.
type S3Option func(*s3Options)

type s3Options struct {
	httpClient      *http.Client
	s3Client        S3Client
	s3ConfigOptions []func(*config.LoadOptions) error
	s3ClientOptions []func(*s3.Options)
}

// WithS3Client sets a custom pre-configured S3 client.
// Useful for testing with mocks.
func WithS3Client(client S3Client) S3Option {
	return func(o *s3Options) {
		o.s3Client = client
	}
}

// WithHTTPClient sets a custom HTTP client for S3 requests.
func WithHTTPClient(client *http.Client) S3Option {
	return func(o *s3Options) {
		o.httpClient = client
	}
}

// WithS3ConfigOption adds a custom AWS config option.
func WithS3ConfigOption(option func(*config.LoadOptions) error) S3Option {
	return func(o *s3Options) {
		o.s3ConfigOptions = append(o.s3ConfigOptions, option)
	}
}

// WithS3ClientOption adds a custom S3 client option.
func WithS3ClientOption(option func(*s3.Options)) S3Option {
	return func(o *s3Options) {
		o.s3ClientOptions = append(o.s3ClientOptions, option)
	}
}

// NewS3Storage creates a resolver over cfg.Bucket. Without WithS3Client the
// client is built from the default AWS configuration chain, with static
// credentials when both keys are set.
func NewS3Storage(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3Storage, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, ErrInvalidConfig
	}

	options := &s3Options{}
	for _, opt := range opts {
		opt(options)
	}

	client := options.s3Client
	if client == nil {
		var err error
		if client, err = newS3Client(ctx, cfg, options); err != nil {
			return nil, err
		}
	}

	storage := &S3Storage{client: client, bucket: cfg.Bucket}
	if prefix := strings.Trim(cfg.KeyPrefix, "/"); prefix != "" {
		storage.keyPrefix = prefix + "/"
	}
	return storage, nil
}

func newS3Client(ctx context.Context, cfg S3Config, options *s3Options) (*s3.Client, error) {
	loadOptions := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
		creds := credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, "")
		loadOptions = append(loadOptions, config.WithCredentialsProvider(creds))
	}
	if options.httpClient != nil {
		loadOptions = append(loadOptions, config.WithHTTPClient(options.httpClient))
	}
	loadOptions = append(loadOptions, options.s3ConfigOptions...)

	awsConfig, err := config.LoadDefaultConfig(ctx, loadOptions...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToLoadConfig, err)
	}

	clientOptions := append([]func(*s3.Options){func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.ForcePathStyle
	}}, options.s3ClientOptions...)

	return s3.NewFromConfig(awsConfig, clientOptions...), nil
}

// Stat implements Resolver with a HEAD request.
func (s *S3Storage) Stat(ctx context.Context, ref string) (*File, error) {
	key, err := s.key(ref)
	if err != nil {
		return nil, err
	}

	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, classifyS3Error(err, "stat file")
	}

	filename := out.Metadata[FilenameMetadataKey]
	if filename == "" {
		filename = path.Base(key)
	}

	return newFile(ref, filename, aws.ToInt64(out.ContentLength), aws.ToString(out.ContentType)), nil
}

// Open implements Resolver. The object body is streamed, callers decoding an
// image header read only what they need.
func (s *S3Storage) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	key, err := s.key(ref)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, classifyS3Error(err, "open file")
	}
	if out.Body == nil {
		return io.NopCloser(strings.NewReader("")), nil
	}
	return out.Body, nil
}

func (s *S3Storage) key(ref string) (string, error) {
	ref = strings.TrimPrefix(strings.TrimSpace(ref), "/")
	if ref == "" {
		return "", ErrInvalidReference
	}
	if strings.Contains(ref, "..") {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, ref)
	}
	return s.keyPrefix + ref, nil
}

// s3ErrorCodes maps S3 API error codes to resolver errors.
var s3ErrorCodes = map[string]error{
	"AccessDenied":       ErrAccessDenied,
	"Forbidden":          ErrAccessDenied,
	"RequestTimeout":     ErrRequestTimeout,
	"SlowDown":           ErrServiceUnavailable,
	"ServiceUnavailable": ErrServiceUnavailable,
	"InvalidObjectState": ErrInvalidObjectState,
	"NoSuchKey":          ErrFileNotFound,
	"NotFound":           ErrFileNotFound,
	"NoSuchBucket":       ErrBucketNotFound,
}

// classifyS3Error converts S3 errors to resolver errors, keeping the cause.
func classifyS3Error(err error, operation string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s", ErrOperationTimeout, operation)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %s", ErrOperationCanceled, operation)
	}

	// HEAD responses carry no body, a missing key surfaces as NotFound.
	var (
		noSuchKey    *types.NoSuchKey
		notFound     *types.NotFound
		noSuchBucket *types.NoSuchBucket
	)
	switch {
	case errors.As(err, &noSuchKey), errors.As(err, &notFound):
		return fmt.Errorf("%w: %s: %v", ErrFileNotFound, operation, err)
	case errors.As(err, &noSuchBucket):
		return fmt.Errorf("%w: %s", ErrBucketNotFound, operation)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if mapped, ok := s3ErrorCodes[apiErr.ErrorCode()]; ok {
			return fmt.Errorf("%w: %s: %v", mapped, operation, err)
		}
		return fmt.Errorf("%s failed (code: %s): %w", operation, apiErr.ErrorCode(), err)
	}

	return fmt.Errorf("%s failed: %w", operation, err)
}
