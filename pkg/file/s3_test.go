package file_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/entityvalidator/pkg/file"
)

// MockS3Client is a mock implementation of the S3Client interface
type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.HeadObjectOutput), args.Error(1)
}

func (m *MockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

func newS3Storage(t *testing.T, client *MockS3Client, prefix string) *file.S3Storage {
	t.Helper()
	storage, err := file.NewS3Storage(context.Background(), file.S3Config{
		Bucket:    "files",
		Region:    "eu-west-1",
		KeyPrefix: prefix,
	}, file.WithS3Client(client))
	require.NoError(t, err)
	return storage
}

func keyIs(key string) any {
	return mock.MatchedBy(func(in *s3.HeadObjectInput) bool {
		return aws.ToString(in.Bucket) == "files" && aws.ToString(in.Key) == key
	})
}

func TestNewS3Storage_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := file.NewS3Storage(context.Background(), file.S3Config{Region: "eu-west-1"})
	assert.ErrorIs(t, err, file.ErrInvalidConfig)

	_, err = file.NewS3Storage(context.Background(), file.S3Config{Bucket: "files"})
	assert.ErrorIs(t, err, file.ErrInvalidConfig)
}

func TestS3Storage_Stat(t *testing.T) {
	t.Parallel()

	t.Run("uses the filename metadata", func(t *testing.T) {
		t.Parallel()

		client := &MockS3Client{}
		client.On("HeadObject", mock.Anything, keyIs("uploads/42"), mock.Anything).Return(&s3.HeadObjectOutput{
			ContentLength: aws.Int64(2048),
			ContentType:   aws.String("image/jpeg"),
			Metadata:      map[string]string{"filename": "holiday.JPG"},
		}, nil)

		f, err := newS3Storage(t, client, "/uploads/").Stat(context.Background(), "42")
		require.NoError(t, err)
		assert.Equal(t, "42", f.Reference)
		assert.Equal(t, "holiday.JPG", f.Filename)
		assert.Equal(t, "JPG", f.Extension)
		assert.Equal(t, int64(2048), f.Size)
		assert.Equal(t, "image/jpeg", f.MIMEType)
		client.AssertExpectations(t)
	})

	t.Run("falls back to the key name", func(t *testing.T) {
		t.Parallel()

		client := &MockS3Client{}
		client.On("HeadObject", mock.Anything, keyIs("docs/report.tar.gz"), mock.Anything).Return(&s3.HeadObjectOutput{}, nil)

		f, err := newS3Storage(t, client, "").Stat(context.Background(), "/docs/report.tar.gz")
		require.NoError(t, err)
		assert.Equal(t, "report.tar.gz", f.Filename)
		assert.Equal(t, "gz", f.Extension)
		assert.Equal(t, "application/octet-stream", f.MIMEType)
		client.AssertExpectations(t)
	})

	t.Run("classifies errors", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			err  error
			want error
		}{
			{"not found", &types.NotFound{}, file.ErrFileNotFound},
			{"no such bucket", &types.NoSuchBucket{}, file.ErrBucketNotFound},
			{"access denied", &smithy.GenericAPIError{Code: "AccessDenied"}, file.ErrAccessDenied},
			{"throttled", &smithy.GenericAPIError{Code: "SlowDown"}, file.ErrServiceUnavailable},
			{"deadline", context.DeadlineExceeded, file.ErrOperationTimeout},
			{"cancelled", context.Canceled, file.ErrOperationCanceled},
		}
		for _, tt := range tests {
			client := &MockS3Client{}
			client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			_, err := newS3Storage(t, client, "").Stat(context.Background(), "42")
			assert.ErrorIs(t, err, tt.want, tt.name)
		}
	})

	t.Run("unknown API errors keep the cause", func(t *testing.T) {
		t.Parallel()

		cause := &smithy.GenericAPIError{Code: "Teapot"}
		client := &MockS3Client{}
		client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, cause)

		_, err := newS3Storage(t, client, "").Stat(context.Background(), "42")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "code: Teapot")

		var apiErr smithy.APIError
		assert.True(t, errors.As(err, &apiErr))
	})

	t.Run("rejects traversal and empty references", func(t *testing.T) {
		t.Parallel()

		client := &MockS3Client{}
		storage := newS3Storage(t, client, "")

		_, err := storage.Stat(context.Background(), "../secrets")
		assert.ErrorIs(t, err, file.ErrInvalidPath)

		_, err = storage.Stat(context.Background(), "")
		assert.ErrorIs(t, err, file.ErrInvalidReference)
		client.AssertNotCalled(t, "HeadObject", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestS3Storage_Open(t *testing.T) {
	t.Parallel()

	t.Run("returns the object body", func(t *testing.T) {
		t.Parallel()

		client := &MockS3Client{}
		client.On("GetObject", mock.Anything, mock.MatchedBy(func(in *s3.GetObjectInput) bool {
			return aws.ToString(in.Key) == "images/cover.png"
		}), mock.Anything).Return(&s3.GetObjectOutput{
			Body: io.NopCloser(strings.NewReader("content")),
		}, nil)

		rc, err := newS3Storage(t, client, "").Open(context.Background(), "images/cover.png")
		require.NoError(t, err)
		defer rc.Close()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "content", string(data))
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()

		client := &MockS3Client{}
		client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, &types.NoSuchKey{})

		_, err := newS3Storage(t, client, "").Open(context.Background(), "images/cover.png")
		assert.ErrorIs(t, err, file.ErrFileNotFound)
	})

	t.Run("image dimensions from the object header", func(t *testing.T) {
		t.Parallel()

		client := &MockS3Client{}
		client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).Return(&s3.GetObjectOutput{
			Body: io.NopCloser(strings.NewReader(string(pngBytes(t, 120, 80)))),
		}, nil)

		dims, err := file.ImageDimensions(context.Background(), newS3Storage(t, client, ""), "cover.png")
		require.NoError(t, err)
		assert.Equal(t, file.Dimensions{Width: 120, Height: 80}, dims)
	})
}
