package test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"litecoin-rpc/message"
	"litecoin-rpc/param"
	"litecoin-rpc/registry"
)

// ---- 测试用的钱包节点 ----

// Wallet is an in-memory stand-in for a daemon's wallet: accounts with
// balances, addresses filed under accounts, and sent transactions.
type Wallet struct {
	mu        sync.Mutex
	blocks    int64
	balances  map[string]decimal.Decimal // account → balance
	addresses map[string]string          // address → account
	txs       map[string]decimal.Decimal // txid → amount
	nextAddr  int
}

func NewWallet() *Wallet {
	return &Wallet{
		blocks:    1000,
		balances:  map[string]decimal.Decimal{"": decimal.RequireFromString("50")},
		addresses: map[string]string{},
		txs:       map[string]decimal.Decimal{},
	}
}

var (
	errInvalidParams = &message.Fault{Code: -1, Message: "invalid parameters"}
	errFunds         = &message.Fault{Code: -6, Message: "Insufficient funds"}
	errAddress       = &message.Fault{Code: -5, Message: "Invalid Litecoin address"}
	errTx            = &message.Fault{Code: -5, Message: "Invalid or non-wallet transaction id"}
)

func (w *Wallet) GetBlockCount(ctx context.Context, params []param.Param) (any, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.blocks, nil
}

func (w *Wallet) GetInfo(ctx context.Context, params []param.Param) (any, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return map[string]any{
		"version":     80500,
		"balance":     w.total().InexactFloat64(),
		"blocks":      w.blocks,
		"connections": 8,
		"difficulty":  1.5,
		"testnet":     true,
		"errors":      "",
	}, nil
}

func (w *Wallet) GetBalance(ctx context.Context, params []param.Param) (any, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(params) == 0 {
		return w.total().InexactFloat64(), nil
	}
	if len(params) != 2 || params[1].Type != param.TypeInteger {
		return nil, errInvalidParams
	}
	account, _ := params[0].Value.(string)
	return w.balances[account].InexactFloat64(), nil
}

func (w *Wallet) GetNewAddress(ctx context.Context, params []param.Param) (any, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	account := ""
	if len(params) > 0 {
		account, _ = params[0].Value.(string)
	}
	w.nextAddr++
	addr := fmt.Sprintf("Ltest%030d", w.nextAddr)
	w.addresses[addr] = account
	if _, ok := w.balances[account]; !ok {
		w.balances[account] = decimal.Zero
	}
	return addr, nil
}

func (w *Wallet) GetAccount(ctx context.Context, params []param.Param) (any, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(params) != 1 {
		return nil, errInvalidParams
	}
	addr, _ := params[0].Value.(string)
	account, ok := w.addresses[addr]
	if !ok {
		return nil, errAddress
	}
	return account, nil
}

func (w *Wallet) ListAccounts(ctx context.Context, params []param.Param) (any, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[string]float64, len(w.balances))
	for account, bal := range w.balances {
		out[account] = bal.InexactFloat64()
	}
	return out, nil
}

func (w *Wallet) Move(ctx context.Context, params []param.Param) (any, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(params) < 4 || len(params) > 5 {
		return nil, errInvalidParams
	}
	from, _ := params[0].Value.(string)
	to, _ := params[1].Value.(string)
	amount, ok := amountOf(params[2])
	if !ok {
		return nil, errInvalidParams
	}
	if w.balances[from].LessThan(amount) {
		return nil, errFunds
	}
	w.balances[from] = w.balances[from].Sub(amount)
	w.balances[to] = w.balances[to].Add(amount)
	return true, nil
}

// SendToAddress pays an external address from the default account.
func (w *Wallet) SendToAddress(ctx context.Context, params []param.Param) (any, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(params) < 2 || len(params) > 4 {
		return nil, errInvalidParams
	}
	addr, _ := params[0].Value.(string)
	if addr == "" {
		return nil, errAddress
	}
	amount, ok := amountOf(params[1])
	if !ok {
		return nil, errInvalidParams
	}
	if w.balances[""].LessThan(amount) {
		return nil, errFunds
	}
	w.balances[""] = w.balances[""].Sub(amount)

	sum := sha256.Sum256([]byte(fmt.Sprintf("%s/%s/%d", addr, amount, len(w.txs))))
	txid := hex.EncodeToString(sum[:])
	w.txs[txid] = amount
	return txid, nil
}

func (w *Wallet) GetTransaction(ctx context.Context, params []param.Param) (any, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(params) != 1 {
		return nil, errInvalidParams
	}
	txid, _ := params[0].Value.(string)
	amount, ok := w.txs[txid]
	if !ok {
		return nil, errTx
	}
	return map[string]any{
		"amount":        amount.Neg().InexactFloat64(),
		"fee":           0,
		"confirmations": 0,
		"txid":          txid,
		"time":          1300000000,
	}, nil
}

func (w *Wallet) total() decimal.Decimal {
	sum := decimal.Zero
	for _, bal := range w.balances {
		sum = sum.Add(bal)
	}
	return sum
}

func amountOf(p param.Param) (decimal.Decimal, bool) {
	switch v := p.Value.(type) {
	case int64:
		return decimal.NewFromInt(v), true
	case float64:
		return decimal.NewFromFloat(v), true
	}
	return decimal.Zero, false
}

// ---- Mock Registry（不依赖 etcd）----

type MockRegistry struct {
	mu        sync.Mutex
	endpoints map[string][]registry.Endpoint
}

func NewMockRegistry() *MockRegistry {
	return &MockRegistry{endpoints: make(map[string][]registry.Endpoint)}
}

func (m *MockRegistry) Register(ctx context.Context, service string, ep registry.Endpoint, ttl int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.endpoints[service] = append(m.endpoints[service], ep)
	return nil
}

func (m *MockRegistry) Deregister(ctx context.Context, service string, addr string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	eps := m.endpoints[service]
	for i, ep := range eps {
		if ep.Addr() == addr {
			m.endpoints[service] = append(eps[:i], eps[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MockRegistry) Discover(ctx context.Context, service string) ([]registry.Endpoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]registry.Endpoint(nil), m.endpoints[service]...), nil
}

func (m *MockRegistry) Watch(ctx context.Context, service string) <-chan []registry.Endpoint {
	return nil
}
