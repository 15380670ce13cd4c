package middleware

import (
	"context"
	"errors"
	"time"

	"litecoin-rpc/message"
)

var ErrTimeout = errors.New("request timed out")

type result struct {
	resp *message.Response
	err  error
}

// TimeOutMiddleware bounds a call to timeout. The inner handler sees a context
// with the deadline, and the caller is released even if it ignores it.
func TimeOutMiddleware(timeout time.Duration) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *message.Request) (*message.Response, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			done := make(chan result, 1)
			go func() {
				resp, err := next(ctx, req)
				done <- result{resp: resp, err: err}
			}()

			select {
			case r := <-done:
				return r.resp, r.err
			case <-ctx.Done():
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					return nil, ErrTimeout
				}
				return nil, ctx.Err()
			}
		}
	}
}
