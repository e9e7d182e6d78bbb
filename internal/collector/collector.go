package collector

import (
	"context"
	"fmt"

	"NewsBuddy/internal/config"
	"NewsBuddy/internal/domain"
)

// Request carries all parameters required to execute one fetch run against a
// single source. MaxItems caps the number of returned items.
type Request struct {
	Source   config.SourceConfig
	MaxItems int
}

// Collector captures a single fetch strategy (feed, newslist, bloglinks).
// Each Fetch call re-fetches from the network and returns a finite, ordered
// batch of items; a failure terminates that one invocation only.
type Collector interface {
	Name() string
	Fetch(ctx context.Context, req Request) ([]domain.CollectedItem, error)
}

// Registry keeps a mapping from strategy names to their implementations.
type Registry struct {
	collectors map[string]Collector
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{collectors: map[string]Collector{}}
}

// Register adds or replaces a collector implementation.
func (r *Registry) Register(c Collector) {
	if r.collectors == nil {
		r.collectors = map[string]Collector{}
	}
	r.collectors[c.Name()] = c
}

// Resolve returns a collector by strategy name or an error if it is absent.
func (r *Registry) Resolve(name string) (Collector, error) {
	if c, ok := r.collectors[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("collector %s is not registered", name)
}
