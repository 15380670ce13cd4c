package loadbalance

import (
	"fmt"
	"hash/crc32"
	"sort"
	"strings"
	"sync"

	"litecoin-rpc/registry"
)

// ConsistentHashBalancer maps a key (a wallet or account name) onto a hash
// ring of endpoints. The same key keeps landing on the same daemon for as long
// as the endpoint set is unchanged, and only about 1/N of the keys move when
// a daemon joins or leaves.
//
// Each real endpoint is placed on the ring as 100 virtual nodes.
//
//	Hash Ring:
//	                  0
//	                ╱   ╲
//	              ╱       ╲
//	         B ●               ● A
//	           │    key ◆──►   │   (clockwise to nearest node → A)
//	         C ●               ● A' (virtual node of A)
//	              ╲       ╱
//	                ╲   ╱
type ConsistentHashBalancer struct {
	key      string // used by Pick
	replicas int

	mu    sync.RWMutex
	ring  []uint32                      // sorted hash values
	nodes map[uint32]*registry.Endpoint // hash value → endpoint
	set   string                        // endpoint set the ring was built from
}

// NewConsistentHashBalancer creates a ring whose Pick always resolves key.
func NewConsistentHashBalancer(key string) *ConsistentHashBalancer {
	return &ConsistentHashBalancer{
		key:      key,
		replicas: 100,
		nodes:    make(map[uint32]*registry.Endpoint),
	}
}

// Add places an endpoint onto the ring.
func (b *ConsistentHashBalancer) Add(ep *registry.Endpoint) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.add(ep)
	b.set = ""
}

func (b *ConsistentHashBalancer) add(ep *registry.Endpoint) {
	for i := 0; i < b.replicas; i++ {
		hash := crc32.ChecksumIEEE([]byte(fmt.Sprintf("%s#%d", ep.Addr(), i)))
		b.ring = append(b.ring, hash)
		b.nodes[hash] = ep
	}
	sort.Slice(b.ring, func(i, j int) bool {
		return b.ring[i] < b.ring[j]
	})
}

// Pick rebuilds the ring when endpoints differ from the last call, then
// resolves the balancer's key.
func (b *ConsistentHashBalancer) Pick(endpoints []registry.Endpoint) (*registry.Endpoint, error) {
	if len(endpoints) == 0 {
		return nil, ErrNoEndpoints
	}

	set := setKey(endpoints)
	b.mu.Lock()
	if set != b.set {
		b.ring = b.ring[:0]
		b.nodes = make(map[uint32]*registry.Endpoint, len(endpoints)*b.replicas)
		for i := range endpoints {
			ep := endpoints[i]
			b.add(&ep)
		}
		b.set = set
	}
	b.mu.Unlock()

	return b.PickKey(b.key)
}

// PickKey finds the endpoint responsible for key on the current ring.
func (b *ConsistentHashBalancer) PickKey(key string) (*registry.Endpoint, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.ring) == 0 {
		return nil, ErrNoEndpoints
	}

	hash := crc32.ChecksumIEEE([]byte(key))
	idx := sort.Search(len(b.ring), func(i int) bool {
		return b.ring[i] >= hash
	})
	// Wrap around past the largest hash.
	if idx == len(b.ring) {
		idx = 0
	}
	return b.nodes[b.ring[idx]], nil
}

func (b *ConsistentHashBalancer) Name() string {
	return "ConsistentHash"
}

func setKey(endpoints []registry.Endpoint) string {
	addrs := make([]string, len(endpoints))
	for i, ep := range endpoints {
		addrs[i] = ep.Addr()
	}
	sort.Strings(addrs)
	return strings.Join(addrs, ",")
}
