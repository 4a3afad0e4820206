// Package registry provides endpoint discovery for deployments running more
// than one node of the same JSON-RPC service. A client can bind to a
// discovered endpoint instead of a hardcoded URL.
package registry

// Endpoint describes one reachable JSON-RPC server.
type Endpoint struct {
	URL     string // full endpoint URL, e.g. "http://10.0.0.5:8332"
	Weight  int    // weight for load balancing
	Version string
}

type Registry interface {
	Register(service string, endpoint Endpoint, ttl int64) error
	Deregister(service string, url string) error
	Discover(service string) ([]Endpoint, error)
	Watch(service string) <-chan []Endpoint
}
