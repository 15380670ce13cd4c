package middleware

import (
	"context"
	"errors"

	"golang.org/x/time/rate"

	"litecoin-rpc/message"
)

var ErrRateLimited = errors.New("rate limit exceeded")

// RateLimitMiddleware admits r calls per second with bursts of burst, using a
// token bucket. Calls beyond the bucket fail fast with ErrRateLimited instead of queueing.
func RateLimitMiddleware(r float64, burst int) Middleware {
	limiter := rate.NewLimiter(rate.Limit(r), burst)
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *message.Request) (*message.Response, error) {
			if !limiter.Allow() {
				return nil, ErrRateLimited
			}
			return next(ctx, req)
		}
	}
}
