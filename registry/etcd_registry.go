// Package registry keeps track of which daemons can serve a given wallet
// service, backed by etcd.
//
// etcd is used as a shared phonebook of daemon endpoints:
//
//	Key:   /litecoin-rpc/{service}/{host:port}
//	Value: JSON-encoded Endpoint
//
// Registration uses TTL-based leases: if the process that announced a daemon
// dies, the lease expires and the entry disappears on its own.
package registry

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/pkg/errors"
	clientv3 "go.etcd.io/etcd/client/v3"
)

const keyPrefix = "/litecoin-rpc/"

// EtcdRegistry implements Registry using etcd v3.
type EtcdRegistry struct {
	client *clientv3.Client // thread-safe, shared across goroutines

	mu         sync.Mutex
	keepAlives map[string]context.CancelFunc // key → stops its lease renewal
}

// NewEtcdRegistry connects to the given etcd endpoints.
func NewEtcdRegistry(endpoints []string, dialTimeout time.Duration) (*EtcdRegistry, error) {
	c, err := clientv3.New(clientv3.Config{
		Endpoints:   endpoints,
		DialTimeout: dialTimeout,
	})
	if err != nil {
		return nil, errors.Wrap(err, "registry: connect to etcd")
	}
	return &EtcdRegistry{
		client:     c,
		keepAlives: make(map[string]context.CancelFunc),
	}, nil
}

func serviceKey(service, addr string) string {
	return keyPrefix + service + "/" + addr
}

// Register announces endpoint under service with a TTL lease (seconds) that
// is renewed in the background until Deregister or Close.
func (r *EtcdRegistry) Register(ctx context.Context, service string, endpoint Endpoint, ttl int64) error {
	lease, err := r.client.Grant(ctx, ttl)
	if err != nil {
		return errors.Wrap(err, "registry: grant lease")
	}

	val, err := json.Marshal(endpoint)
	if err != nil {
		return err
	}

	key := serviceKey(service, endpoint.Addr())
	if _, err := r.client.Put(ctx, key, string(val), clientv3.WithLease(lease.ID)); err != nil {
		return errors.Wrapf(err, "registry: put %s", key)
	}

	// Renewal outlives ctx: it stops with Deregister or Close.
	kaCtx, cancel := context.WithCancel(context.Background())
	ch, err := r.client.KeepAlive(kaCtx, lease.ID)
	if err != nil {
		cancel()
		return errors.Wrap(err, "registry: keep lease alive")
	}
	go func() {
		for range ch {
		}
	}()

	r.mu.Lock()
	if prev, ok := r.keepAlives[key]; ok {
		prev()
	}
	r.keepAlives[key] = cancel
	r.mu.Unlock()
	return nil
}

// Deregister removes the endpoint at addr ("host:port") from service.
func (r *EtcdRegistry) Deregister(ctx context.Context, service string, addr string) error {
	key := serviceKey(service, addr)

	r.mu.Lock()
	if cancel, ok := r.keepAlives[key]; ok {
		cancel()
		delete(r.keepAlives, key)
	}
	r.mu.Unlock()

	if _, err := r.client.Delete(ctx, key); err != nil {
		return errors.Wrapf(err, "registry: delete %s", key)
	}
	return nil
}

// Discover returns every endpoint currently registered for service.
func (r *EtcdRegistry) Discover(ctx context.Context, service string) ([]Endpoint, error) {
	resp, err := r.client.Get(ctx, keyPrefix+service+"/", clientv3.WithPrefix())
	if err != nil {
		return nil, errors.Wrap(err, "registry: discover")
	}

	endpoints := make([]Endpoint, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		var ep Endpoint
		if err := json.Unmarshal(kv.Value, &ep); err != nil {
			continue // Skip malformed entries
		}
		endpoints = append(endpoints, ep)
	}
	return endpoints, nil
}

// Watch emits the full endpoint list of service after every change under its
// prefix. The channel is closed when ctx is done.
func (r *EtcdRegistry) Watch(ctx context.Context, service string) <-chan []Endpoint {
	ch := make(chan []Endpoint, 1)

	go func() {
		defer close(ch)
		watchChan := r.client.Watch(ctx, keyPrefix+service+"/", clientv3.WithPrefix())
		for range watchChan {
			// Re-read the whole list instead of applying individual events.
			endpoints, err := r.Discover(ctx, service)
			if err != nil {
				continue
			}
			select {
			case ch <- endpoints:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch
}

// Close stops every lease renewal and closes the etcd connection.
func (r *EtcdRegistry) Close() error {
	r.mu.Lock()
	for key, cancel := range r.keepAlives {
		cancel()
		delete(r.keepAlives, key)
	}
	r.mu.Unlock()
	return r.client.Close()
}
