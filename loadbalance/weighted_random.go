package loadbalance

import (
	"math/rand/v2"

	"github.com/hlb8122/async-json-rpc/registry"
)

// WeightedRandom picks endpoints with probability proportional to their
// Weight. Endpoints with a non-positive weight count as weight 1, so a list
// registered without weights degrades to uniform random.
type WeightedRandom struct{}

func (b *WeightedRandom) Pick(endpoints []registry.Endpoint) (*registry.Endpoint, error) {
	if len(endpoints) == 0 {
		return nil, ErrNoEndpoints
	}

	total := 0
	for i := range endpoints {
		total += weightOf(&endpoints[i])
	}

	n := rand.IntN(total)
	for i := range endpoints {
		n -= weightOf(&endpoints[i])
		if n < 0 {
			return &endpoints[i], nil
		}
	}
	return &endpoints[len(endpoints)-1], nil
}

func (b *WeightedRandom) Name() string {
	return "WeightedRandom"
}

func weightOf(e *registry.Endpoint) int {
	if e.Weight > 0 {
		return e.Weight
	}
	return 1
}
