package client

import (
	"context"
	"encoding/json"
	"sync"

	"litecoin-rpc/message"
)

// fakeTransport records every request and answers with a canned result,
// fault or error.
type fakeTransport struct {
	mu       sync.Mutex
	requests []*message.Request

	result string // raw JSON, "null" when empty
	fault  *message.Fault
	err    error

	debugLevel  int
	verifyHost  *bool
	verifyPeer  *bool
	trustAnchor string
	anchorErr   error
}

func (f *fakeTransport) Send(ctx context.Context, req *message.Request) (*message.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	if f.fault != nil {
		return &message.Response{ID: req.ID, Fault: f.fault}, nil
	}
	result := f.result
	if result == "" {
		result = "null"
	}
	return &message.Response{ID: req.ID, Result: json.RawMessage(result)}, nil
}

func (f *fakeTransport) SetDebugLevel(level int) { f.debugLevel = level }

func (f *fakeTransport) SetVerifyRemoteHost(verify bool) { f.verifyHost = &verify }

func (f *fakeTransport) SetVerifyRemotePeer(verify bool) { f.verifyPeer = &verify }

func (f *fakeTransport) SetTrustAnchor(path string) error {
	if f.anchorErr != nil {
		return f.anchorErr
	}
	f.trustAnchor = path
	return nil
}

func (f *fakeTransport) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeTransport) last() *message.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return nil
	}
	return f.requests[len(f.requests)-1]
}

// lastParams returns the values of the last request's parameters.
func (f *fakeTransport) lastParams() []any {
	req := f.last()
	if req == nil {
		return nil
	}
	out := make([]any, len(req.Params))
	for i, p := range req.Params {
		out[i] = p.Value
	}
	return out
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Username = "rpcuser"
	cfg.Password = "rpcpass"
	return cfg
}

func newFakeClient(t interface{ Fatalf(string, ...any) }, ft *fakeTransport, opts ...Option) *Client {
	c, err := New(testConfig(), append([]Option{WithTransport(ft)}, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}
