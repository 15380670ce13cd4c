package client

import (
	"context"
	"net"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"litecoin-rpc/loadbalance"
	"litecoin-rpc/message"
	"litecoin-rpc/param"
	"litecoin-rpc/protocol"
	"litecoin-rpc/registry"
	"litecoin-rpc/server"
)

type Daemon struct {
	blocks int64
}

func (d *Daemon) GetBlockCount(ctx context.Context, params []param.Param) (any, error) {
	return d.blocks, nil
}

func (d *Daemon) GetInfo(ctx context.Context, params []param.Param) (any, error) {
	return map[string]any{"version": 80500, "blocks": d.blocks, "connections": 8, "testnet": true}, nil
}

func (d *Daemon) GetBalance(ctx context.Context, params []param.Param) (any, error) {
	if len(params) == 0 {
		return 12.5, nil
	}
	return 3.25, nil
}

func (d *Daemon) SendToAddress(ctx context.Context, params []param.Param) (any, error) {
	if len(params) < 2 || params[1].Type != param.TypeFloat && params[1].Type != param.TypeInteger {
		return nil, &message.Fault{Code: -3, Message: "Invalid amount"}
	}
	return testTxID, nil
}

func (d *Daemon) ValidateAddress(ctx context.Context, params []param.Param) (any, error) {
	return nil, &message.Fault{Code: -5, Message: "Invalid Litecoin address"}
}

func startDaemon(t *testing.T) (host string, port int) {
	t.Helper()
	svr := server.NewServer(server.WithBasicAuth("rpcuser", "rpcpass"))
	require.NoError(t, svr.Register(&Daemon{blocks: 2100}))
	ts := httptest.NewServer(svr)
	t.Cleanup(ts.Close)

	h, p, err := net.SplitHostPort(ts.Listener.Addr().String())
	require.NoError(t, err)
	port, err = strconv.Atoi(p)
	require.NoError(t, err)
	return h, port
}

func newDaemonClient(t *testing.T, password string) *Client {
	t.Helper()
	host, port := startDaemon(t)
	cfg := testConfig()
	cfg.Host = host
	cfg.Port = port
	cfg.Password = password
	c, err := New(cfg)
	require.NoError(t, err)
	return c
}

func TestClientAgainstDaemon(t *testing.T) {
	ctx := context.Background()
	c := newDaemonClient(t, "rpcpass")

	n, err := c.GetBlockCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2100), n)

	info, err := c.GetInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(80500), info.Version)
	assert.True(t, info.TestNet)

	total, err := c.GetBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12.5, total)

	acct, err := c.GetAccountBalance(ctx, "savings", 6)
	require.NoError(t, err)
	assert.Equal(t, 3.25, acct)

	txid, err := c.SendToAddress(ctx, testAddr, 1.5, "", "")
	require.NoError(t, err)
	assert.Equal(t, testTxID, txid)

	ok, msg := c.CanConnect(ctx)
	assert.True(t, ok)
	assert.Empty(t, msg)
}

func TestClientFaultFromDaemon(t *testing.T) {
	c := newDaemonClient(t, "rpcpass")

	_, err := c.ValidateAddress(context.Background(), "bogus")
	var fault *FaultError
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, -5, fault.Code)
	assert.Equal(t, "Invalid Litecoin address", fault.Message)

	_, err = c.Call(context.Background(), "nosuchcommand")
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, server.CodeMethodNotFound, fault.Code)
}

func TestClientBadCredentials(t *testing.T) {
	c := newDaemonClient(t, "wrong")

	_, err := c.GetBlockCount(context.Background())
	assert.ErrorIs(t, err, protocol.ErrUnauthorized)

	ok, msg := c.CanConnect(context.Background())
	assert.False(t, ok)
	assert.Equal(t, protocol.ErrUnauthorized.Error(), msg)
}

type staticRegistry struct {
	endpoints []registry.Endpoint
}

func (r *staticRegistry) Register(ctx context.Context, service string, ep registry.Endpoint, ttl int64) error {
	return nil
}

func (r *staticRegistry) Deregister(ctx context.Context, service string, addr string) error {
	return nil
}

func (r *staticRegistry) Discover(ctx context.Context, service string) ([]registry.Endpoint, error) {
	return r.endpoints, nil
}

func (r *staticRegistry) Watch(ctx context.Context, service string) <-chan []registry.Endpoint {
	return nil
}

func TestNewFromRegistry(t *testing.T) {
	host, port := startDaemon(t)
	reg := &staticRegistry{endpoints: []registry.Endpoint{{Scheme: "http", Host: host, Port: port, Weight: 1}}}

	c, err := NewFromRegistry(context.Background(), reg, &loadbalance.RoundRobinBalancer{}, "litecoind", testConfig())
	require.NoError(t, err)
	assert.Equal(t, port, c.Config().Port)

	n, err := c.GetBlockCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2100), n)
}

func TestNewFromRegistryNoEndpoints(t *testing.T) {
	_, err := NewFromRegistry(context.Background(), &staticRegistry{}, &loadbalance.RoundRobinBalancer{}, "litecoind", testConfig())
	assert.ErrorIs(t, err, loadbalance.ErrNoEndpoints)
}
