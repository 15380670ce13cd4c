// Package server is a minimal JSON-RPC 1.0 HTTP server that speaks the same
// dialect as a Litecoin daemon. It backs fake daemons in tests and can front
// any Go implementation of the daemon's commands.
//
// Request processing pipeline:
//
//	POST / → protocol.ReadRequest → basic auth → Codec.Decode
//	  → Middleware Chain → businessHandler (method lookup, Handler call)
//	  → Codec.Encode → protocol.WriteResponse (200, or 500 for a fault)
package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"litecoin-rpc/codec"
	"litecoin-rpc/log"
	"litecoin-rpc/message"
	"litecoin-rpc/middleware"
	"litecoin-rpc/param"
	"litecoin-rpc/protocol"
	"litecoin-rpc/registry"
)

// Fault codes used by the server itself, as the daemon reports them.
const (
	CodeMiscError      = -1
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInternalError  = -32603
	CodeParseError     = -32700
)

// Server dispatches JSON-RPC requests to registered methods.
type Server struct {
	name     string // service name announced to the registry
	username string
	password string
	logger   log.Logger
	codec    codec.Codec

	mu          sync.RWMutex
	methods     map[string]Handler
	middlewares []middleware.Middleware
	handler     middleware.HandlerFunc

	httpServer *http.Server // Serve after Shutdown returns at once
	shutdown   atomic.Bool
	registry   registry.Registry
	advertise  registry.Endpoint
}

type Option func(*Server)

// WithBasicAuth requires every request to carry these credentials.
func WithBasicAuth(username, password string) Option {
	return func(s *Server) {
		s.username = username
		s.password = password
	}
}

func WithLogger(lg log.Logger) Option {
	return func(s *Server) {
		if lg != nil {
			s.logger = lg
		}
	}
}

// WithName sets the service name used when announcing to a registry.
// The default is "litecoind".
func WithName(name string) Option {
	return func(s *Server) { s.name = name }
}

func NewServer(opts ...Option) *Server {
	s := &Server{
		name:    "litecoind",
		logger:  log.NewNoopLogger(),
		codec:   codec.GetCodec(codec.CodecTypeJSON),
		methods: make(map[string]Handler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithName("server")
	s.handler = s.businessHandler
	s.httpServer = &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Register exposes the receiver's methods of the form
// func(context.Context, []param.Param) (any, error) under their lower-case
// names.
func (svr *Server) Register(rcvr any) error {
	svc, err := NewService(rcvr)
	if err != nil {
		return err
	}

	svr.mu.Lock()
	defer svr.mu.Unlock()
	for name := range svc.method {
		if _, dup := svr.methods[name]; dup {
			return fmt.Errorf("rpc: method %q already registered", name)
		}
	}
	for name, mt := range svc.method {
		svr.methods[name] = svc.handler(mt)
	}
	return nil
}

// Handle registers a single method under name, replacing any previous one.
func (svr *Server) Handle(name string, h Handler) {
	svr.mu.Lock()
	defer svr.mu.Unlock()
	svr.methods[name] = h
}

// Use registers a middleware. Middlewares run in the order they are added.
func (svr *Server) Use(mw middleware.Middleware) {
	svr.mu.Lock()
	defer svr.mu.Unlock()
	svr.middlewares = append(svr.middlewares, mw)
	svr.handler = middleware.Chain(svr.middlewares...)(svr.businessHandler)
}

// Serve answers requests on l until Shutdown. When reg is not nil, advertise
// is announced under the server's name first and withdrawn on Shutdown.
func (svr *Server) Serve(l net.Listener, advertise registry.Endpoint, reg registry.Registry) error {
	if reg != nil {
		if err := reg.Register(context.Background(), svr.name, advertise, 10); err != nil {
			return err
		}
		svr.mu.Lock()
		svr.registry = reg
		svr.advertise = advertise
		svr.mu.Unlock()
	}

	err := svr.httpServer.Serve(l)
	if errors.Is(err, http.ErrServerClosed) && svr.shutdown.Load() {
		return nil
	}
	return err
}

// Shutdown withdraws the registry entry, stops accepting connections, and
// waits up to timeout for in-flight requests.
func (svr *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	svr.mu.RLock()
	reg, advertise := svr.registry, svr.advertise
	svr.mu.RUnlock()

	// Deregister first so clients stop picking this daemon.
	if reg != nil {
		if err := reg.Deregister(ctx, svr.name, advertise.Addr()); err != nil {
			svr.logger.Warn("deregister failed", "error", err)
		}
	}

	svr.shutdown.Store(true)
	if err := svr.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("timeout waiting for ongoing requests to finish: %w", err)
	}
	return nil
}

// ServeHTTP handles one JSON-RPC POST.
func (svr *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := protocol.ReadRequest(r)
	switch {
	case errors.Is(err, protocol.ErrMethod):
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "JSONRPC server handles only POST requests", http.StatusMethodNotAllowed)
		return
	case errors.Is(err, protocol.ErrBodyTooLarge):
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !svr.authorized(r) {
		w.Header().Set("WWW-Authenticate", `Basic realm="jsonrpc"`)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var req message.Request
	if err := svr.codec.Decode(body, &req); err != nil {
		svr.reply(w, &message.Response{Fault: &message.Fault{Code: CodeParseError, Message: "Parse error"}})
		return
	}
	if req.Method == "" {
		svr.reply(w, &message.Response{ID: req.ID, Fault: &message.Fault{Code: CodeInvalidRequest, Message: "Method must be a string"}})
		return
	}

	svr.mu.RLock()
	handler := svr.handler
	svr.mu.RUnlock()

	resp, err := handler(r.Context(), &req)
	switch {
	case err != nil:
		resp = &message.Response{Fault: &message.Fault{Code: CodeInternalError, Message: err.Error()}}
	case resp == nil:
		resp = &message.Response{Fault: &message.Fault{Code: CodeInternalError, Message: "no response"}}
	}
	resp.ID = req.ID
	svr.reply(w, resp)
}

func (svr *Server) authorized(r *http.Request) bool {
	if svr.username == "" && svr.password == "" {
		return true
	}
	user, pass, ok := r.BasicAuth()
	if !ok {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(svr.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(svr.password)) == 1
	return userOK && passOK
}

func (svr *Server) reply(w http.ResponseWriter, resp *message.Response) {
	data, err := svr.codec.Encode(resp)
	if err != nil {
		svr.logger.Error("failed to encode response", "error", err)
		resp = &message.Response{ID: resp.ID, Fault: &message.Fault{Code: CodeInternalError, Message: "cannot encode result"}}
		data, _ = svr.codec.Encode(resp)
	}

	status := http.StatusOK
	if resp.IsFault() {
		status = http.StatusInternalServerError
	}
	if err := protocol.WriteResponse(w, status, svr.codec.ContentType(), data); err != nil {
		svr.logger.Warn("failed to write response", "error", err)
	}
}

// businessHandler looks the method up and calls it. It has the HandlerFunc
// signature so middlewares can wrap it.
func (svr *Server) businessHandler(ctx context.Context, req *message.Request) (*message.Response, error) {
	svr.mu.RLock()
	h, ok := svr.methods[req.Method]
	svr.mu.RUnlock()
	if !ok {
		return &message.Response{Fault: &message.Fault{Code: CodeMethodNotFound, Message: "Method not found"}}, nil
	}

	params := req.Params
	if params == nil {
		params = []param.Param{}
	}
	result, err := h(ctx, params)
	if err != nil {
		var fault *message.Fault
		if !errors.As(err, &fault) {
			fault = &message.Fault{Code: CodeMiscError, Message: err.Error()}
		}
		return &message.Response{Fault: fault}, nil
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	return &message.Response{Result: raw}, nil
}
