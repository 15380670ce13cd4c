package middleware

import (
	"context"
	"time"

	"litecoin-rpc/log"
	"litecoin-rpc/message"
)

// LoggingMiddleware logs every call with its duration and outcome.
func LoggingMiddleware(lg log.Logger) Middleware {
	if lg == nil {
		lg = log.NewNoopLogger()
	}
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *message.Request) (*message.Response, error) {
			start := time.Now()
			resp, err := next(ctx, req)
			duration := time.Since(start)

			switch {
			case err != nil:
				lg.Error("rpc call failed", "method", req.Method, "duration", duration, "error", err)
			case resp.IsFault():
				lg.Warn("rpc call faulted", "method", req.Method, "duration", duration,
					"code", resp.Fault.Code, "fault", resp.Fault.Message)
			default:
				lg.Info("rpc call", "method", req.Method, "duration", duration)
			}
			return resp, err
		}
	}
}
