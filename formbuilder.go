package formbuilder

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/container"
	"github.com/goliatone/go-formbuilder/pkg/field"
	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/routing"
	"github.com/goliatone/go-formbuilder/pkg/session"
)

// Binding names used by Provider.
const (
	FormBinding    = "form"
	RoutesBinding  = "routes"
	SessionBinding = "session"
	LoggerBinding  = "logger"
)

// Renderer aliases form.Renderer for callers that only import the root
// package.
type Renderer = form.Renderer

// Descriptor aliases field.Descriptor.
type Descriptor = field.Descriptor

// Options aliases field.Options.
type Options = field.Options

// Choice aliases field.Choice.
type Choice = field.Choice

var (
	defaultMu        sync.RWMutex
	defaultContainer = container.New()
)

// SetContainer replaces the container the facade resolves from. A nil
// container resets it to an empty one.
func SetContainer(c *container.Container) {
	if c == nil {
		c = container.New()
	}
	defaultMu.Lock()
	defaultContainer = c
	defaultMu.Unlock()
}

// Container returns the container the facade resolves from.
func Container() *container.Container {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultContainer
}

// Form resolves the shared form renderer.
func Form() (*Renderer, error) {
	return container.Resolve[*form.Renderer](Container(), FormBinding)
}

// MustForm mirrors Form but panics when the renderer is not registered.
func MustForm() *Renderer {
	renderer, err := Form()
	if err != nil {
		panic(err)
	}
	return renderer
}

// Provider binds the form renderer as a singleton. The renderer is built
// from the "routes" binding (required) plus the optional "session" and
// "logger" bindings.
func Provider(options ...form.Option) container.Provider {
	return container.ProviderFunc(func(c *container.Container) error {
		return c.Singleton(FormBinding, func(c *container.Container) (any, error) {
			routes, err := container.Resolve[routing.Resolver](c, RoutesBinding)
			if err != nil {
				return nil, fmt.Errorf("formbuilder: %w", err)
			}

			var state session.Reader
			if c.Has(SessionBinding) {
				if state, err = container.Resolve[session.Reader](c, SessionBinding); err != nil {
					return nil, fmt.Errorf("formbuilder: %w", err)
				}
			}

			opts := options
			if c.Has(LoggerBinding) {
				logger, err := container.Resolve[*zap.Logger](c, LoggerBinding)
				if err != nil {
					return nil, fmt.Errorf("formbuilder: %w", err)
				}
				opts = append([]form.Option{form.WithLogger(logger)}, options...)
			}
			return form.New(routes, state, opts...)
		})
	})
}

// Register binds routes, the session reader and the renderer on the facade
// container.
func Register(routes routing.Resolver, state session.Reader, options ...form.Option) error {
	if routes == nil {
		return errors.New("formbuilder: routes are required")
	}
	c := Container()
	if err := c.Instance(RoutesBinding, routes); err != nil {
		return err
	}
	if state != nil {
		if err := c.Instance(SessionBinding, state); err != nil {
			return err
		}
	}
	return c.Load(Provider(options...))
}
