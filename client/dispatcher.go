package client

import (
	"context"
	"encoding/json"
	"fmt"

	"litecoin-rpc/codec"
	"litecoin-rpc/message"
	"litecoin-rpc/middleware"
)

// DiagnosticMethod is the no-argument call CanConnect probes with.
const DiagnosticMethod = "getinfo"

// Dispatcher turns a method name and loosely-typed arguments into one
// request/response exchange. It keeps no per-call state, so concurrent calls
// are as safe as the transport underneath.
type Dispatcher struct {
	cfg   Config
	send  middleware.HandlerFunc
	newID func() string
}

func newDispatcher(cfg Config, o options) *Dispatcher {
	return &Dispatcher{
		cfg:   cfg,
		send:  middleware.Chain(o.middlewares...)(o.transport.Send),
		newID: o.newID,
	}
}

// Config returns the settings the dispatcher was built with.
func (d *Dispatcher) Config() Config {
	return d.cfg
}

// Call sends method with args, each coerced to a wire parameter in order, and
// returns the decoded result: nil, bool, string, int64, float64, []any or
// map[string]any.
//
// A daemon fault comes back as *FaultError. Transport failures are returned
// as they are.
func (d *Dispatcher) Call(ctx context.Context, method string, args ...any) (any, error) {
	resp, err := d.roundTrip(ctx, method, args)
	if err != nil {
		return nil, err
	}
	return codec.DecodeValue(resp.Result)
}

// CallResult is Call with the result decoded into dst, which must be a
// pointer. Unknown keys in the result are ignored.
func (d *Dispatcher) CallResult(ctx context.Context, method string, dst any, args ...any) error {
	resp, err := d.roundTrip(ctx, method, args)
	if err != nil {
		return err
	}
	if dst == nil || len(resp.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Result, dst); err != nil {
		return fmt.Errorf("litecoin: %s: unexpected result %s: %w", method, resp.Result, err)
	}
	return nil
}

// CanConnect probes the daemon with a diagnostic call. It never fails: it
// reports true, or false with the error's message.
func (d *Dispatcher) CanConnect(ctx context.Context) (bool, string) {
	if _, err := d.Call(ctx, DiagnosticMethod); err != nil {
		return false, err.Error()
	}
	return true, ""
}

func (d *Dispatcher) roundTrip(ctx context.Context, method string, args []any) (*message.Response, error) {
	if blank(method) {
		return nil, ErrInvalidCall
	}

	req := message.NewRequest(d.newID(), method, args...)
	resp, err := d.send(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("litecoin: %s: transport returned no response", method)
	}
	if resp.IsFault() {
		return nil, &FaultError{Method: method, Code: resp.Fault.Code, Message: resp.Fault.Message}
	}
	return resp, nil
}
