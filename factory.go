package pagos

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

const defaultHTTPTimeout = 30 * time.Second

// Factory resolves driver names to gateway instances. Each Factory owns an
// independent cache; there is no process-wide state.
type Factory struct {
	registry *Registry
	deps     Deps

	mu       sync.Mutex
	gateways map[string]Gateway
}

type FactoryOption func(*Factory)

// WithRegistry swaps the driver registry, typically for test isolation.
func WithRegistry(r *Registry) FactoryOption {
	return func(f *Factory) { f.registry = r }
}

// WithHTTPClient swaps the transport shared by every gateway the factory
// builds.
func WithHTTPClient(client HTTPDoer) FactoryOption {
	return func(f *Factory) { f.deps.HTTPClient = client }
}

// WithLogger sets the logger handed to every gateway the factory builds.
func WithLogger(logger *slog.Logger) FactoryOption {
	return func(f *Factory) { f.deps.Logger = logger }
}

func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{
		registry: DefaultRegistry,
		deps: Deps{
			HTTPClient: &http.Client{Timeout: defaultHTTPTimeout},
			Logger:     slog.Default(),
		},
		gateways: make(map[string]Gateway),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Drivers lists the driver names this factory can resolve.
func (f *Factory) Drivers() []string {
	return f.registry.Drivers()
}

// Make resolves cfg["driver"] to a Gateway and returns a Client bound to
// it. Constructed gateways are cached by driver name: the first successful
// construction wins for that name for the factory's lifetime, and a later
// Make with a different config for the same driver silently reuses the
// first instance. Callers needing per-config instances use separate
// factories.
func (f *Factory) Make(cfg Config) (*Client, error) {
	driver := cfg.Driver()
	if driver == "" {
		return nil, &InvalidArgumentError{Msg: "A driver must be specified"}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if gateway, ok := f.gateways[driver]; ok {
		return &Client{driver: driver, gateway: gateway}, nil
	}

	build, ok := f.registry.lookup(driver)
	if !ok {
		return nil, &InvalidArgumentError{Msg: fmt.Sprintf("Unsupported gateway [%s]", driver)}
	}

	gateway, err := build(cfg, f.deps)
	if err != nil {
		return nil, err
	}
	f.gateways[driver] = gateway

	return &Client{driver: driver, gateway: gateway}, nil
}
