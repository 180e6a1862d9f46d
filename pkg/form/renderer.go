package form

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/markup"
	"github.com/goliatone/go-formbuilder/pkg/routing"
	"github.com/goliatone/go-formbuilder/pkg/session"
	"go.uber.org/zap"
)

var (
	// ErrNoRoutes is returned by Create when the renderer has no URL
	// resolver.
	ErrNoRoutes = errors.New("form: route resolver is not configured")
	// ErrRouteResolution wraps failures to resolve a form action.
	ErrRouteResolution = errors.New("form: cannot resolve form action")
)

// Sink builds the unstyled primitives the renderer decorates. markup.Builder
// is the default implementation.
type Sink interface {
	Input(typ, name, value string) *markup.Element
	Textarea(name, value string) *markup.Element
	Select(name string, options []markup.Option, selected string) *markup.Element
	Multiselect(name string, options []markup.Option, selected []string) *markup.Element
	Checkbox(name, value string, checked bool) *markup.Element
	Radio(name, value string, checked bool) *markup.Element
	Label(text, forID string) *markup.Element
	Div() *markup.Element
	Button(typ string) *markup.Element
	Form(method, action string) *markup.Element
}

var _ Sink = markup.Builder{}

// Renderer produces Bootstrap styled form markup. It resolves form actions
// through a route table and reads validation state from the request
// session. A Renderer holds no per-form state and is safe for concurrent
// use.
type Renderer struct {
	routes  routing.Resolver
	state   session.Reader
	sink    Sink
	classes Classes
	csrf    func(context.Context) string
	logger  *zap.Logger
}

// New builds a renderer. A nil state reader behaves as an empty session.
func New(routes routing.Resolver, state session.Reader, options ...Option) (*Renderer, error) {
	cfg := config{
		sink:    markup.Builder{},
		classes: DefaultClasses(),
		logger:  zap.NewNop(),
	}
	for _, option := range options {
		if option != nil {
			option(&cfg)
		}
	}

	if cfg.themeSelector != nil {
		selection, err := cfg.themeSelector.Select(cfg.themeName, cfg.themeVariant)
		if err != nil {
			return nil, fmt.Errorf("form: select theme %q: %w", cfg.themeName, err)
		}
		if selection != nil {
			cfg.classes = cfg.classes.Merge(ClassesFromTokens(SelectionTokens(selection)))
			cfg.logger.Debug("form theme applied",
				zap.String("theme", selection.Theme),
				zap.String("variant", selection.Variant),
			)
		}
	}

	if state == nil {
		state = session.Empty
	}

	return &Renderer{
		routes:  routes,
		state:   state,
		sink:    cfg.sink,
		classes: cfg.classes,
		csrf:    cfg.csrf,
		logger:  cfg.logger,
	}, nil
}

// Classes returns the effective class set.
func (r *Renderer) Classes() Classes {
	return r.classes
}

// Sink returns the primitive builder.
func (r *Renderer) Sink() Sink {
	return r.sink
}

func (r *Renderer) errorBag(ctx context.Context) (session.ErrorBag, error) {
	bag, err := r.state.Errors(ctx)
	if err != nil {
		return session.ErrorBag{}, fmt.Errorf("form: read validation errors: %w", err)
	}
	return bag, nil
}

func (r *Renderer) flash(ctx context.Context, key string) (string, error) {
	value, err := r.state.Flash(ctx, key)
	if err != nil {
		return "", fmt.Errorf("form: read %s flash: %w", key, err)
	}
	return value, nil
}
