package preview

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/markup"
)

// BootstrapStylesheet is linked by pages that declare no stylesheet.
const BootstrapStylesheet = "https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css"

// DefaultLayout is the embedded layout template name.
const DefaultLayout = "layout.tpl"

//go:embed templates/*.tpl
var embedded embed.FS

// Page is one rendered preview.
type Page struct {
	Title       string
	Lang        string
	Stylesheets []string
	// Messages renders above the body, typically Renderer.Messages.
	Messages markup.Node
	Body     markup.Node
	// Data is exposed to custom layouts as top-level variables.
	Data map[string]any
}

// Option configures an Engine.
type Option func(*config)

type config struct {
	templates fs.FS
	layout    string
	globals   map[string]any
	logger    *zap.Logger
}

// WithFS loads layouts from files before falling back to the embedded
// templates.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithLayout selects the layout template name.
func WithLayout(name string) Option {
	return func(cfg *config) {
		if name = strings.TrimSpace(name); name != "" {
			cfg.layout = name
		}
	}
}

// WithGlobals seeds variables available to every layout.
func WithGlobals(globals map[string]any) Option {
	return func(cfg *config) {
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(globals))
		}
		maps.Copy(cfg.globals, globals)
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

// Engine renders pages through a pongo2 template set.
type Engine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
	layout    string
	logger    *zap.Logger
}

// New builds an engine.
func New(options ...Option) (*Engine, error) {
	cfg := config{layout: DefaultLayout, logger: zap.NewNop()}
	for _, option := range options {
		if option != nil {
			option(&cfg)
		}
	}

	builtin, err := fs.Sub(embedded, "templates")
	if err != nil {
		return nil, fmt.Errorf("preview: embedded templates: %w", err)
	}
	var loaders []pongo2.TemplateLoader
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}
	loaders = append(loaders, pongo2.NewFSLoader(builtin))

	set := pongo2.NewSet("formbuilder-preview", loaders...)
	if set.Globals == nil {
		set.Globals = make(pongo2.Context)
	}
	if len(cfg.globals) > 0 {
		set.Globals.Update(pongo2.Context(cfg.globals))
	}

	return &Engine{
		set:       set,
		templates: make(map[string]*pongo2.Template),
		layout:    cfg.layout,
		logger:    cfg.logger,
	}, nil
}

// Render writes page through the configured layout.
func (e *Engine) Render(ctx context.Context, w io.Writer, page Page) error {
	if e == nil || e.set == nil {
		return errors.New("preview: engine is nil")
	}
	tmpl, err := e.template(e.layout)
	if err != nil {
		return err
	}

	body, err := renderNode(ctx, page.Body)
	if err != nil {
		return fmt.Errorf("preview: render body: %w", err)
	}
	messages, err := renderNode(ctx, page.Messages)
	if err != nil {
		return fmt.Errorf("preview: render messages: %w", err)
	}

	stylesheets := page.Stylesheets
	if len(stylesheets) == 0 {
		stylesheets = []string{BootstrapStylesheet}
	}

	data := pongo2.Context{}
	data.Update(pongo2.Context(page.Data))
	data.Update(pongo2.Context{
		"page": map[string]any{
			"title":       page.Title,
			"lang":        page.Lang,
			"stylesheets": stylesheets,
		},
		"messages": messages,
		"body":     body,
	})

	if err := tmpl.ExecuteWriter(data, w); err != nil {
		return fmt.Errorf("preview: execute %q: %w", e.layout, err)
	}
	e.logger.Debug("preview rendered", zap.String("layout", e.layout), zap.String("title", page.Title))
	return nil
}

func (e *Engine) template(name string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.templates[name]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.templates[name]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("preview: load template %q: %w", name, err)
	}
	e.templates[name] = tmpl
	return tmpl, nil
}

func renderNode(ctx context.Context, node markup.Node) (string, error) {
	if node == nil {
		return "", nil
	}
	if el, ok := node.(*markup.Element); ok && el == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := node.Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
