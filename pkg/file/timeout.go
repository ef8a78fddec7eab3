package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// WithTimeout bounds every lookup made through r. Open keeps its deadline
// until the returned reader is closed. A non-positive timeout returns r as is.
func WithTimeout(r Resolver, timeout time.Duration) Resolver {
	if timeout <= 0 {
		return r
	}
	return &timeoutResolver{next: r, timeout: timeout}
}

type timeoutResolver struct {
	next    Resolver
	timeout time.Duration
}

func (r *timeoutResolver) Stat(ctx context.Context, ref string) (*File, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	f, err := r.next.Stat(ctx, ref)
	if err != nil {
		return nil, classifyContextError(ctx, err, "stat")
	}
	return f, nil
}

func (r *timeoutResolver) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)

	rc, err := r.next.Open(ctx, ref)
	if err != nil {
		cancel()
		return nil, classifyContextError(ctx, err, "open")
	}
	return &cancelReadCloser{ReadCloser: rc, cancel: cancel}, nil
}

type cancelReadCloser struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelReadCloser) Close() error {
	defer c.cancel()
	return c.ReadCloser.Close()
}

// classifyContextError maps deadline and cancellation failures to
// ErrOperationTimeout and ErrOperationCanceled, keeping the original error.
func classifyContextError(ctx context.Context, err error, operation string) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %s operation: %w", ErrOperationTimeout, operation, err)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %s operation: %w", ErrOperationCanceled, operation, err)
	}
	return err
}
