package file

import "errors"

var (
	ErrInvalidPath      = errors.New("invalid path") // Prevents path traversal attacks
	ErrInvalidReference = errors.New("invalid file reference")

	// Lookup errors
	ErrFileNotFound       = errors.New("file not found")
	ErrIsDirectory        = errors.New("path is a directory")
	ErrUnsupportedImage   = errors.New("unsupported or corrupt image")
	ErrFailedToOpenFile   = errors.New("failed to open file")
	ErrFailedToReadFile   = errors.New("failed to read file")
	ErrFailedToStatPath   = errors.New("failed to stat path")
	ErrFailedToGetAbsPath = errors.New("failed to get absolute path")

	// S3-specific errors for proper error classification
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrRequestTimeout     = errors.New("request timed out")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
	ErrInvalidObjectState = errors.New("invalid object state")

	// Context and cancellation errors
	ErrOperationTimeout  = errors.New("operation timed out")
	ErrOperationCanceled = errors.New("operation canceled")

	// Configuration errors
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrFailedToLoadConfig = errors.New("failed to load AWS config")
)
