package middleware

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"
	"time"

	"litecoin-rpc/log"
	"litecoin-rpc/message"
)

// RetryMiddleware retries calls that failed before reaching the daemon, with
// exponential backoff. Faults are answers, not failures, and are never retried:
// resending a sendtoaddress that the daemon already rejected (or accepted)
// must not happen.
func RetryMiddleware(maxRetries int, baseDelay time.Duration) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *message.Request) (*message.Response, error) {
			resp, err := next(ctx, req)
			for i := 0; i < maxRetries; i++ {
				if err == nil || !retryable(err) {
					return resp, err
				}

				log.FromContext(ctx).Warn("retrying rpc call",
					"attempt", i+1, "method", req.Method, "error", err)

				select {
				case <-time.After(baseDelay * time.Duration(1<<i)):
				case <-ctx.Done():
					return nil, ctx.Err()
				}
				resp, err = next(ctx, req)
			}
			return resp, err
		}
	}
}

func retryable(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, ErrTimeout) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "timeout") || strings.Contains(msg, "connection refused")
}
