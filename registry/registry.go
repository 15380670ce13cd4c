package registry

import (
	"context"
	"net"
	"strconv"
)

// Endpoint is one daemon that can answer JSON-RPC calls.
// Credentials never live here: they belong to the client configuration.
type Endpoint struct {
	Scheme  string `json:"scheme"` // "http" or "https"
	Host    string `json:"host"`
	Port    int    `json:"port"`
	Weight  int    `json:"weight"` // Weight for load balancing
	Version string `json:"version,omitempty"`
}

// Addr returns "host:port".
func (e Endpoint) Addr() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// URL returns the JSON-RPC endpoint URL, e.g. "http://127.0.0.1:9332/".
func (e Endpoint) URL() string {
	scheme := e.Scheme
	if scheme == "" {
		scheme = "http"
	}
	return scheme + "://" + e.Addr() + "/"
}

type Registry interface {
	Register(ctx context.Context, service string, endpoint Endpoint, ttl int64) error
	Deregister(ctx context.Context, service string, addr string) error
	Discover(ctx context.Context, service string) ([]Endpoint, error)
	Watch(ctx context.Context, service string) <-chan []Endpoint
}
