// Package middleware wraps the transport's round trip with optional behaviour:
// logging, timeouts, rate limiting, retries and metrics.
//
// Everything here belongs to the transport collaborator. The dispatcher never
// retries or times out on its own; a client only gets that behaviour when it
// asks for it with client.WithMiddleware.
package middleware

import (
	"context"

	"litecoin-rpc/message"
)

// HandlerFunc performs one request/response exchange.
type HandlerFunc func(ctx context.Context, req *message.Request) (*message.Response, error)

type Middleware func(next HandlerFunc) HandlerFunc

// Chain composes middlewares into one.
// Chain(A, B, C)(h) runs A first: A(B(C(h))).
func Chain(middlewares ...Middleware) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}
