package container

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrNotBound is returned when resolving a name with no binding.
	ErrNotBound = errors.New("container: binding not found")
	// ErrTypeMismatch is returned by Resolve when the bound value does not
	// have the requested type.
	ErrTypeMismatch = errors.New("container: unexpected binding type")
)

// Factory builds the value bound to a name.
type Factory func(c *Container) (any, error)

type binding struct {
	factory  Factory
	shared   bool
	mu       sync.Mutex
	instance any
	resolved bool
}

// Container maps names to values, factories and shared singletons.
// Singleton factories run at most once successfully; a failed factory is
// retried on the next Make.
type Container struct {
	mu       sync.RWMutex
	bindings map[string]*binding
	aliases  map[string]string
}

// New creates an empty container.
func New() *Container {
	return &Container{
		bindings: make(map[string]*binding),
		aliases:  make(map[string]string),
	}
}

// Bind registers a factory that runs on every Make.
func (c *Container) Bind(name string, factory Factory) error {
	return c.set(name, factory, false)
}

// Singleton registers a factory whose first successful result is reused.
func (c *Container) Singleton(name string, factory Factory) error {
	return c.set(name, factory, true)
}

// Instance binds an already built value.
func (c *Container) Instance(name string, value any) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("container: binding name is required")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.aliases, name)
	c.bindings[name] = &binding{shared: true, instance: value, resolved: true}
	return nil
}

// Alias makes alias resolve to the binding registered under name.
func (c *Container) Alias(name, alias string) error {
	name = strings.TrimSpace(name)
	alias = strings.TrimSpace(alias)
	if name == "" || alias == "" {
		return fmt.Errorf("container: alias and target are required")
	}
	if name == alias {
		return fmt.Errorf("container: %q cannot alias itself", name)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, bound := c.bindings[alias]; bound {
		return fmt.Errorf("container: alias %q shadows a binding", alias)
	}
	seen := map[string]struct{}{}
	for target := name; ; {
		if target == alias {
			return fmt.Errorf("container: alias %q to %q forms a cycle", alias, name)
		}
		next, ok := c.aliases[target]
		if !ok {
			break
		}
		if _, loop := seen[target]; loop {
			break
		}
		seen[target] = struct{}{}
		target = next
	}
	c.aliases[alias] = name
	return nil
}

// Has reports whether name, or the target of an alias, is bound.
func (c *Container) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.bindings[c.canonical(name)]
	return ok
}

// Names returns the bound names sorted alphabetically.
func (c *Container) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.bindings))
	for name := range c.bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Make resolves name. Factories run outside the container lock so they can
// resolve their own dependencies.
func (c *Container) Make(name string) (any, error) {
	c.mu.RLock()
	resolved := c.canonical(name)
	b, ok := c.bindings[resolved]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotBound, name)
	}

	if !b.shared {
		return c.build(resolved, b.factory)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.resolved {
		return b.instance, nil
	}
	value, err := c.build(resolved, b.factory)
	if err != nil {
		return nil, err
	}
	b.instance = value
	b.resolved = true
	return value, nil
}

// MustMake mirrors Make but panics on error.
func (c *Container) MustMake(name string) any {
	value, err := c.Make(name)
	if err != nil {
		panic(err)
	}
	return value
}

// Forget removes a binding and every alias pointing at it.
func (c *Container) Forget(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	resolved := c.canonical(name)
	delete(c.bindings, resolved)
	for alias, target := range c.aliases {
		if target == resolved {
			delete(c.aliases, alias)
		}
	}
}

func (c *Container) set(name string, factory Factory, shared bool) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("container: binding name is required")
	}
	if factory == nil {
		return fmt.Errorf("container: factory for %q is required", name)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.aliases, name)
	c.bindings[name] = &binding{factory: factory, shared: shared}
	return nil
}

func (c *Container) build(name string, factory Factory) (any, error) {
	value, err := factory(c)
	if err != nil {
		return nil, fmt.Errorf("container: build %q: %w", name, err)
	}
	return value, nil
}

// canonical follows alias chains. Callers hold c.mu.
func (c *Container) canonical(name string) string {
	name = strings.TrimSpace(name)
	seen := map[string]struct{}{}
	for {
		target, ok := c.aliases[name]
		if !ok {
			return name
		}
		if _, loop := seen[name]; loop {
			return name
		}
		seen[name] = struct{}{}
		name = target
	}
}

// Resolve makes name and asserts the result to T.
func Resolve[T any](c *Container, name string) (T, error) {
	var zero T
	value, err := c.Make(name)
	if err != nil {
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q is %T, want %T", ErrTypeMismatch, name, value, zero)
	}
	return typed, nil
}

// MustResolve mirrors Resolve but panics on error.
func MustResolve[T any](c *Container, name string) T {
	value, err := Resolve[T](c, name)
	if err != nil {
		panic(err)
	}
	return value
}
