package form

import (
	"context"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"
)

// Option configures a Renderer.
type Option func(*config)

type config struct {
	sink          Sink
	classes       Classes
	logger        *zap.Logger
	csrf          func(context.Context) string
	themeSelector theme.ThemeSelector
	themeName     string
	themeVariant  string
}

// WithSink swaps the element sink used to build primitives.
func WithSink(sink Sink) Option {
	return func(cfg *config) {
		if sink != nil {
			cfg.sink = sink
		}
	}
}

// WithClasses overrides the default class set. Empty values keep the
// defaults.
func WithClasses(classes Classes) Option {
	return func(cfg *config) {
		cfg.classes = cfg.classes.Merge(classes)
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithCSRF registers a token source. When set, opened forms carry a hidden
// _token input.
func WithCSRF(token func(context.Context) string) Option {
	return func(cfg *config) {
		cfg.csrf = token
	}
}

// WithTheme resolves a theme selection at construction time and applies its
// forms.class.* tokens on top of the class set.
func WithTheme(selector theme.ThemeSelector, name, variant string) Option {
	return func(cfg *config) {
		cfg.themeSelector = selector
		cfg.themeName = name
		cfg.themeVariant = variant
	}
}
