package transport

import (
	"bytes"
	"context"
	"encoding/pem"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"litecoin-rpc/log"
	"litecoin-rpc/message"
	"litecoin-rpc/middleware"
	"litecoin-rpc/param"
	"litecoin-rpc/protocol"
	"litecoin-rpc/server"
)

func newDaemon(t *testing.T, tls bool) *httptest.Server {
	t.Helper()
	svr := server.NewServer(server.WithBasicAuth("user", "pass"))
	svr.Handle("getblockcount", func(ctx context.Context, params []param.Param) (any, error) {
		return 1024, nil
	})
	svr.Handle("echo", func(ctx context.Context, params []param.Param) (any, error) {
		out := make([]any, len(params))
		for i, p := range params {
			out[i] = p.Value
		}
		return out, nil
	})
	svr.Handle("gettransaction", func(ctx context.Context, params []param.Param) (any, error) {
		return nil, &message.Fault{Code: -5, Message: "Invalid or non-wallet transaction id"}
	})

	var ts *httptest.Server
	if tls {
		ts = httptest.NewTLSServer(svr)
	} else {
		ts = httptest.NewServer(svr)
	}
	t.Cleanup(ts.Close)
	return ts
}

func TestSend(t *testing.T) {
	ts := newDaemon(t, false)
	tr := NewHTTPTransport(ts.URL+"/", "user", "pass", nil)
	defer tr.Close()

	resp, err := tr.Send(context.Background(), message.NewRequest("1", "getblockcount"))
	require.NoError(t, err)
	assert.False(t, resp.IsFault())
	assert.JSONEq(t, `1024`, string(resp.Result))
	assert.Equal(t, "1", resp.ID)
}

func TestSendEncodesCoercedParams(t *testing.T) {
	ts := newDaemon(t, false)
	tr := NewHTTPTransport(ts.URL+"/", "user", "pass", nil)

	resp, err := tr.Send(context.Background(), message.NewRequest("2", "echo", "acct", "6", 0.5, true))
	require.NoError(t, err)
	assert.JSONEq(t, `["acct", 6, 0.5, true]`, string(resp.Result))
}

func TestSendFaultIsNotAnError(t *testing.T) {
	ts := newDaemon(t, false)
	tr := NewHTTPTransport(ts.URL+"/", "user", "pass", nil)

	resp, err := tr.Send(context.Background(), message.NewRequest("3", "gettransaction", strings.Repeat("0", 64)))
	require.NoError(t, err)
	require.True(t, resp.IsFault())
	assert.Equal(t, -5, resp.Fault.Code)
}

func TestSendBadCredentials(t *testing.T) {
	ts := newDaemon(t, false)
	tr := NewHTTPTransport(ts.URL+"/", "user", "nope", nil)

	_, err := tr.Send(context.Background(), message.NewRequest("4", "getblockcount"))
	assert.ErrorIs(t, err, protocol.ErrUnauthorized)
}

func TestSendConnectionRefused(t *testing.T) {
	ts := newDaemon(t, false)
	url := ts.URL + "/"
	ts.Close()

	tr := NewHTTPTransport(url, "user", "pass", nil)
	_, err := tr.Send(context.Background(), message.NewRequest("5", "getblockcount"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transport: send request")
}

func TestSendRejectsEmptyMethod(t *testing.T) {
	tr := NewHTTPTransport("http://127.0.0.1:1/", "user", "pass", nil)
	_, err := tr.Send(context.Background(), &message.Request{ID: "6"})
	assert.Error(t, err)
}

func TestUseMiddleware(t *testing.T) {
	ts := newDaemon(t, false)
	tr := NewHTTPTransport(ts.URL+"/", "user", "pass", nil)

	calls := 0
	tr.Use(func(next middleware.HandlerFunc) middleware.HandlerFunc {
		return func(ctx context.Context, req *message.Request) (*message.Response, error) {
			calls++
			return next(ctx, req)
		}
	})
	blocked := errors.New("blocked")
	tr.Use(func(next middleware.HandlerFunc) middleware.HandlerFunc {
		return func(ctx context.Context, req *message.Request) (*message.Response, error) {
			if req.Method == "stop" {
				return nil, blocked
			}
			return next(ctx, req)
		}
	})

	_, err := tr.Send(context.Background(), message.NewRequest("7", "getblockcount"))
	require.NoError(t, err)
	_, err = tr.Send(context.Background(), message.NewRequest("8", "stop"))
	assert.ErrorIs(t, err, blocked)
	assert.Equal(t, 2, calls)
}

type bufferSyncer struct {
	bytes.Buffer
}

func (b *bufferSyncer) Sync() error { return nil }

var _ zapcore.WriteSyncer = (*bufferSyncer)(nil)

func TestDebugLevels(t *testing.T) {
	ts := newDaemon(t, false)

	cases := []struct {
		level       int
		wantSent    bool
		wantReceive bool
	}{
		{DebugOff, false, false},
		{DebugReceived, false, true},
		{DebugAll, true, true},
	}
	for _, tc := range cases {
		buf := &bufferSyncer{}
		lg := log.NewZapLogger(log.Config{Format: "json", Level: log.LevelDebug, Output: "discard"}, buf)
		tr := NewHTTPTransport(ts.URL+"/", "user", "pass", lg)
		tr.SetDebugLevel(tc.level)

		_, err := tr.Send(context.Background(), message.NewRequest("9", "getblockcount"))
		require.NoError(t, err)

		out := buf.String()
		assert.Equal(t, tc.wantSent, strings.Contains(out, "rpc send"), "level %d", tc.level)
		assert.Equal(t, tc.wantReceive, strings.Contains(out, "rpc receive"), "level %d", tc.level)
	}
}

func writeCert(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "daemon.pem")
	data := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: ts.Certificate().Raw})
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestTLSUntrustedPeerFails(t *testing.T) {
	ts := newDaemon(t, true)
	tr := NewHTTPTransport(ts.URL+"/", "user", "pass", nil)

	_, err := tr.Send(context.Background(), message.NewRequest("10", "getblockcount"))
	assert.Error(t, err)
}

func TestTLSWithoutPeerVerification(t *testing.T) {
	ts := newDaemon(t, true)
	tr := NewHTTPTransport(ts.URL+"/", "user", "pass", nil)
	tr.SetVerifyRemotePeer(false)

	resp, err := tr.Send(context.Background(), message.NewRequest("11", "getblockcount"))
	require.NoError(t, err)
	assert.JSONEq(t, `1024`, string(resp.Result))
}

func TestTLSTrustAnchor(t *testing.T) {
	ts := newDaemon(t, true)
	tr := NewHTTPTransport(ts.URL+"/", "user", "pass", nil)
	require.NoError(t, tr.SetTrustAnchor(writeCert(t, ts)))
	tr.SetVerifyRemoteHost(false)

	resp, err := tr.Send(context.Background(), message.NewRequest("12", "getblockcount"))
	require.NoError(t, err)
	assert.JSONEq(t, `1024`, string(resp.Result))
}

func TestSetTrustAnchorErrors(t *testing.T) {
	tr := NewHTTPTransport("https://127.0.0.1:1/", "user", "pass", nil)

	err := tr.SetTrustAnchor(filepath.Join(t.TempDir(), "missing.pem"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "garbage.pem")
	require.NoError(t, os.WriteFile(path, []byte("not a certificate"), 0o600))
	assert.ErrorIs(t, tr.SetTrustAnchor(path), ErrNoCertificates)
}

func TestEndpoint(t *testing.T) {
	tr := NewHTTPTransport("http://127.0.0.1:9332/", "user", "pass", nil)
	assert.Equal(t, "http://127.0.0.1:9332/", tr.Endpoint())
}
