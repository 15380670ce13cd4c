// Package loadbalance picks which daemon a call goes to when more than one
// endpoint serves the same wallet service.
//
// Three strategies are implemented:
//   - RoundRobin:      read-only calls against interchangeable nodes
//   - WeightedRandom:  nodes with different capacity
//   - ConsistentHash:  wallet calls that must keep hitting the daemon holding
//     the wallet, keyed by wallet or account name
package loadbalance

import (
	"errors"

	"litecoin-rpc/registry"
)

var ErrNoEndpoints = errors.New("loadbalance: no endpoints available")

// Balancer is the interface for load balancing strategies.
type Balancer interface {
	// Pick selects one endpoint from the available list.
	// Must be goroutine-safe.
	Pick(endpoints []registry.Endpoint) (*registry.Endpoint, error)

	// Name returns the strategy name (for logging/debugging).
	Name() string
}
