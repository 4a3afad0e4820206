// etcd-backed Registry. Endpoints live under
//
//	Key:   /async-json-rpc/{service}/{url}
//	Value: JSON-encoded Endpoint
//
// Registration attaches a TTL lease with background KeepAlive, so a node
// that dies stops renewing and its entry expires on its own.
package registry

import (
	"context"
	"encoding/json"

	clientv3 "go.etcd.io/etcd/client/v3"
)

const keyPrefix = "/async-json-rpc/"

// EtcdRegistry implements Registry on etcd v3. The underlying etcd client
// is safe to share, so one EtcdRegistry serves any number of goroutines.
type EtcdRegistry struct {
	client *clientv3.Client
}

// NewEtcdRegistry connects to the given etcd endpoints.
func NewEtcdRegistry(endpoints []string) (*EtcdRegistry, error) {
	c, err := clientv3.New(clientv3.Config{
		Endpoints: endpoints,
	})
	if err != nil {
		return nil, err
	}
	return &EtcdRegistry{client: c}, nil
}

// Register announces an endpoint under a TTL lease and keeps the lease
// renewed in the background. The lease id stays local to this call; storing
// it on the struct would race when several nodes share one registry.
func (r *EtcdRegistry) Register(service string, endpoint Endpoint, ttl int64) error {
	ctx := context.TODO()

	lease, err := r.client.Grant(ctx, ttl)
	if err != nil {
		return err
	}

	val, err := json.Marshal(endpoint)
	if err != nil {
		return err
	}

	_, err = r.client.Put(ctx, keyPrefix+service+"/"+endpoint.URL, string(val), clientv3.WithLease(lease.ID))
	if err != nil {
		return err
	}

	ch, err := r.client.KeepAlive(ctx, lease.ID)
	if err != nil {
		return err
	}

	// Drain renewal responses so the channel never fills up.
	go func() {
		for range ch {
		}
	}()
	return nil
}

// Deregister removes an endpoint, typically on graceful shutdown.
func (r *EtcdRegistry) Deregister(service string, url string) error {
	_, err := r.client.Delete(context.TODO(), keyPrefix+service+"/"+url)
	return err
}

// Watch emits the full endpoint list whenever anything under the service
// prefix changes. Re-listing on every event is simpler than replaying the
// individual deltas and the lists are small.
func (r *EtcdRegistry) Watch(service string) <-chan []Endpoint {
	ch := make(chan []Endpoint, 1)
	prefix := keyPrefix + service + "/"

	go func() {
		watchChan := r.client.Watch(context.TODO(), prefix, clientv3.WithPrefix())
		for range watchChan {
			endpoints, _ := r.Discover(service)
			ch <- endpoints
		}
	}()

	return ch
}

// Discover lists the currently registered endpoints for a service.
func (r *EtcdRegistry) Discover(service string) ([]Endpoint, error) {
	prefix := keyPrefix + service + "/"

	resp, err := r.client.Get(context.TODO(), prefix, clientv3.WithPrefix())
	if err != nil {
		return nil, err
	}

	endpoints := make([]Endpoint, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		var endpoint Endpoint
		if err := json.Unmarshal(kv.Value, &endpoint); err != nil {
			continue // skip malformed entries
		}
		endpoints = append(endpoints, endpoint)
	}

	return endpoints, nil
}
