package llm

import "fmt"

// ProviderFactory creates a Client from a provider config.
type ProviderFactory func(cfg Config) (Client, error)

// registry of provider factories, populated by init() in each provider
// package or explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewClient creates a Client using the registered factory for
// cfg.Provider.
func NewClient(cfg Config) (Client, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown model provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
