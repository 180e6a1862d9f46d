package container

import "fmt"

// Provider registers a group of bindings.
type Provider interface {
	Register(c *Container) error
}

// Booter is implemented by providers that need to resolve bindings once
// every provider has registered.
type Booter interface {
	Boot(c *Container) error
}

// ProviderFunc adapts a function into a Provider.
type ProviderFunc func(c *Container) error

// Register calls fn.
func (fn ProviderFunc) Register(c *Container) error {
	return fn(c)
}

// Load registers every provider, then boots the ones implementing Booter.
func (c *Container) Load(providers ...Provider) error {
	for idx, provider := range providers {
		if provider == nil {
			continue
		}
		if err := provider.Register(c); err != nil {
			return fmt.Errorf("container: register provider %d (%T): %w", idx, provider, err)
		}
	}
	for idx, provider := range providers {
		booter, ok := provider.(Booter)
		if !ok {
			continue
		}
		if err := booter.Boot(c); err != nil {
			return fmt.Errorf("container: boot provider %d (%T): %w", idx, provider, err)
		}
	}
	return nil
}
