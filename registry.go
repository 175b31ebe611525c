package pagos

import (
	"sort"
	"sync"
)

// GatewayFactory constructs a driver's Gateway from its raw config.
type GatewayFactory func(cfg Config, deps Deps) (Gateway, error)

// Registry maps driver names to gateway constructors. It replaces
// string-to-class reflection with an explicit table: what a build links in
// is exactly what Make can resolve.
type Registry struct {
	mu      sync.RWMutex
	drivers map[string]GatewayFactory
}

func NewRegistry() *Registry {
	return &Registry{drivers: make(map[string]GatewayFactory)}
}

// Register binds a driver name to its constructor. Last registration wins,
// which lets tests shadow a driver.
func (r *Registry) Register(driver string, factory GatewayFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drivers[driver] = factory
}

func (r *Registry) lookup(driver string) (GatewayFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.drivers[driver]
	return factory, ok
}

// Drivers lists the registered driver names, sorted.
func (r *Registry) Drivers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.drivers))
	for name := range r.drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry is where driver packages self-register from init. It is
// only a convenience default; factories accept any Registry for isolation.
var DefaultRegistry = NewRegistry()

// Register adds a driver to the DefaultRegistry.
func Register(driver string, factory GatewayFactory) {
	DefaultRegistry.Register(driver, factory)
}
