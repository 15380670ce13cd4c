// Package transport implements the transport collaborator the dispatcher
// talks through: JSON-RPC over HTTP(S) to a single daemon endpoint.
//
//	Send(req) ─► middleware chain ─► codec.Encode ─► protocol.Encode ─► http.Client
//	                                                                       │
//	Response  ◄─ codec.Decode ◄─ protocol.Decode ◄──────────────────────────┘
//
// One HTTPTransport is one logical session: it owns one http.Client whose
// connection reuse is the only pooling there is. Concurrent Sends are safe.
package transport

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"net/http"
	"os"
	"sync"

	"github.com/pkg/errors"

	"litecoin-rpc/codec"
	"litecoin-rpc/log"
	"litecoin-rpc/message"
	"litecoin-rpc/middleware"
	"litecoin-rpc/protocol"
)

// Debug levels understood by SetDebugLevel.
const (
	DebugOff      = 0
	DebugReceived = 1 // trace responses
	DebugAll      = 2 // trace requests too
)

var ErrNoCertificates = errors.New("transport: trust anchor holds no PEM certificates")

// HTTPTransport sends JSON-RPC requests to one daemon endpoint.
type HTTPTransport struct {
	header protocol.Header
	codec  codec.Codec
	logger log.Logger

	mu          sync.Mutex
	client      *http.Client // rebuilt lazily after any TLS setting changes
	debugLevel  int
	verifyHost  bool
	verifyPeer  bool
	roots       *x509.CertPool
	middlewares []middleware.Middleware
	handler     middleware.HandlerFunc
}

// NewHTTPTransport creates a transport for endpoint, e.g. "http://127.0.0.1:9332/".
// Remote host and peer verification start enabled.
func NewHTTPTransport(endpoint, username, password string, lg log.Logger) *HTTPTransport {
	if lg == nil {
		lg = log.NewNoopLogger()
	}
	t := &HTTPTransport{
		header: protocol.Header{
			Endpoint: endpoint,
			Username: username,
			Password: password,
		},
		codec:      codec.GetCodec(codec.CodecTypeJSON),
		logger:     lg.WithName("transport").WithKV("endpoint", endpoint),
		verifyHost: true,
		verifyPeer: true,
	}
	t.header.ContentType = t.codec.ContentType()
	t.handler = t.roundTrip
	return t
}

// Endpoint returns the URL requests are posted to.
func (t *HTTPTransport) Endpoint() string {
	return t.header.Endpoint
}

// Use appends middlewares around the round trip. They run in the order given.
func (t *HTTPTransport) Use(mws ...middleware.Middleware) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.middlewares = append(t.middlewares, mws...)
	t.handler = middleware.Chain(t.middlewares...)(t.roundTrip)
}

// SetDebugLevel sets tracing: 0 none, 1 responses, 2 requests and responses.
func (t *HTTPTransport) SetDebugLevel(level int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.debugLevel = level
}

func (t *HTTPTransport) SetVerifyRemoteHost(verify bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.verifyHost = verify
	t.client = nil
}

func (t *HTTPTransport) SetVerifyRemotePeer(verify bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.verifyPeer = verify
	t.client = nil
}

// SetTrustAnchor makes the PEM certificates in path the only roots trusted
// for the daemon's certificate.
func (t *HTTPTransport) SetTrustAnchor(path string) error {
	pemData, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "transport: read trust anchor")
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pemData) {
		return ErrNoCertificates
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.roots = pool
	t.client = nil
	return nil
}

// Send performs one request/response exchange. A fault is a successful
// exchange and comes back inside the Response; only failures to get an answer
// are returned as errors.
func (t *HTTPTransport) Send(ctx context.Context, req *message.Request) (*message.Response, error) {
	t.mu.Lock()
	handler := t.handler
	t.mu.Unlock()
	return handler(ctx, req)
}

// Close drops idle keep-alive connections.
func (t *HTTPTransport) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.client != nil {
		t.client.CloseIdleConnections()
	}
}

func (t *HTTPTransport) roundTrip(ctx context.Context, req *message.Request) (*message.Response, error) {
	client, debugLevel := t.session()

	body, err := t.codec.Encode(req)
	if err != nil {
		return nil, errors.Wrap(err, "transport: encode request")
	}
	if debugLevel >= DebugAll {
		t.logger.Info("rpc send", "method", req.Method, "body", string(body))
	}

	httpReq, err := protocol.Encode(ctx, &t.header, body)
	if err != nil {
		return nil, err
	}
	httpResp, err := client.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "transport: send request")
	}
	data, err := protocol.Decode(httpResp)
	if err != nil {
		return nil, err
	}
	if debugLevel >= DebugReceived {
		t.logger.Info("rpc receive", "method", req.Method, "status", httpResp.StatusCode, "body", string(data))
	}

	var resp message.Response
	if err := t.codec.Decode(data, &resp); err != nil {
		return nil, errors.Wrap(err, "transport: decode response")
	}
	return &resp, nil
}

func (t *HTTPTransport) session() (*http.Client, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.client == nil {
		t.client = &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				TLSClientConfig:     t.tlsConfig(),
				MaxIdleConnsPerHost: 4,
			},
		}
	}
	return t.client, t.debugLevel
}

func (t *HTTPTransport) tlsConfig() *tls.Config {
	cfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
		RootCAs:    t.roots,
	}
	switch {
	case !t.verifyPeer:
		cfg.InsecureSkipVerify = true
	case !t.verifyHost:
		// Verify the chain but not the name: daemon certificates are usually
		// self-signed for whatever name the operator picked.
		roots := t.roots
		cfg.InsecureSkipVerify = true
		cfg.VerifyConnection = func(cs tls.ConnectionState) error {
			return verifyChain(cs, roots)
		}
	}
	return cfg
}

func verifyChain(cs tls.ConnectionState, roots *x509.CertPool) error {
	if len(cs.PeerCertificates) == 0 {
		return errors.New("transport: daemon presented no certificate")
	}
	intermediates := x509.NewCertPool()
	for _, cert := range cs.PeerCertificates[1:] {
		intermediates.AddCert(cert)
	}
	_, err := cs.PeerCertificates[0].Verify(x509.VerifyOptions{
		Roots:         roots,
		Intermediates: intermediates,
	})
	return err
}
