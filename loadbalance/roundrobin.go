package loadbalance

import (
	"sync/atomic"

	"litecoin-rpc/registry"
)

// RoundRobinBalancer cycles through endpoints in order using an atomic
// counter, so it needs no lock.
type RoundRobinBalancer struct {
	counter atomic.Uint64
}

func (b *RoundRobinBalancer) Pick(endpoints []registry.Endpoint) (*registry.Endpoint, error) {
	if len(endpoints) == 0 {
		return nil, ErrNoEndpoints
	}
	index := (b.counter.Add(1) - 1) % uint64(len(endpoints))
	return &endpoints[index], nil
}

func (b *RoundRobinBalancer) Name() string {
	return "RoundRobin"
}
