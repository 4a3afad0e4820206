// Package loadbalance selects which endpoint a client binds to when a
// registry returns more than one.
package loadbalance

import (
	"errors"

	"github.com/hlb8122/async-json-rpc/registry"
)

// ErrNoEndpoints is returned by Pick when the discovered list is empty.
var ErrNoEndpoints = errors.New("loadbalance: no endpoints available")

// Balancer picks one endpoint from a discovered list.
// Implementations must be safe for concurrent use.
type Balancer interface {
	Pick(endpoints []registry.Endpoint) (*registry.Endpoint, error)

	// Name identifies the strategy in logs.
	Name() string
}
