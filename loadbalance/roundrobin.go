package loadbalance

import (
	"sync/atomic"

	"github.com/hlb8122/async-json-rpc/registry"
)

// RoundRobin cycles through endpoints in order. The atomic counter keeps
// Pick lock-free under concurrent use.
type RoundRobin struct {
	counter atomic.Uint64
}

func (b *RoundRobin) Pick(endpoints []registry.Endpoint) (*registry.Endpoint, error) {
	if len(endpoints) == 0 {
		return nil, ErrNoEndpoints
	}
	i := (b.counter.Add(1) - 1) % uint64(len(endpoints))
	return &endpoints[i], nil
}

func (b *RoundRobin) Name() string {
	return "RoundRobin"
}
