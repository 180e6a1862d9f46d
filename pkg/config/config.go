package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	theme "github.com/goliatone/go-theme"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/session"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "FORMBUILDER_"

var (
	// ErrReadConfig wraps failures to read the YAML file.
	ErrReadConfig = errors.New("config: read file")
	// ErrParseConfig wraps YAML and environment parsing failures.
	ErrParseConfig = errors.New("config: parse")
)

// Config is the runtime configuration of the binaries.
type Config struct {
	Classes form.Classes   `yaml:"classes" envPrefix:"CLASS_"`
	Theme   Theme          `yaml:"theme" envPrefix:"THEME_"`
	Session session.Config `yaml:"session" envPrefix:"SESSION_"`
	Server  Server         `yaml:"server" envPrefix:"SERVER_"`
	Log     Log            `yaml:"log" envPrefix:"LOG_"`
}

// Server configures the demo HTTP server.
type Server struct {
	Addr string `yaml:"addr" env:"ADDR"`
	// CSRF enables the _token hidden input on rendered forms.
	CSRF bool `yaml:"csrf" env:"CSRF"`
}

// Theme declares a single inline theme whose forms.class.* tokens override
// Classes.
type Theme struct {
	Name     string                       `yaml:"name" env:"NAME"`
	Variant  string                       `yaml:"variant" env:"VARIANT"`
	Tokens   map[string]string            `yaml:"tokens" env:"TOKENS"`
	Variants map[string]map[string]string `yaml:"variants"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() Config {
	return Config{
		Classes: form.DefaultClasses(),
		Session: session.Config{
			Store:      session.BackendMemory,
			CookieName: "formbuilder_session",
		},
		Server: Server{Addr: ":8080"},
		Log:    Log{Level: "info"},
	}
}

// LoadOption customises Load.
type LoadOption func(*loadOptions)

type loadOptions struct {
	envFiles []string
	environ  map[string]string
}

// WithEnvFiles sets the dotenv files read before parsing the environment.
// Missing files are ignored. Defaults to ".env".
func WithEnvFiles(files ...string) LoadOption {
	return func(o *loadOptions) {
		o.envFiles = files
	}
}

// WithEnviron parses the given variables instead of the process
// environment. Dotenv files are skipped.
func WithEnviron(environ map[string]string) LoadOption {
	return func(o *loadOptions) {
		o.environ = environ
	}
}

// Load layers configuration: defaults, then the YAML file at path (when
// path is not empty), then dotenv files and environment variables prefixed
// with FORMBUILDER_.
func Load(path string, options ...LoadOption) (Config, error) {
	opts := loadOptions{envFiles: []string{".env"}}
	for _, option := range options {
		if option != nil {
			option(&opts)
		}
	}

	cfg := Default()
	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("%w %s: %w", ErrReadConfig, path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%w %s: %w", ErrParseConfig, path, err)
		}
	}

	envOpts := env.Options{Prefix: EnvPrefix}
	if opts.environ != nil {
		envOpts.Environment = opts.environ
	} else if err := loadEnvFiles(opts.envFiles); err != nil {
		return Config{}, err
	}
	if err := env.ParseWithOptions(&cfg, envOpts); err != nil {
		return Config{}, fmt.Errorf("%w environment: %w", ErrParseConfig, err)
	}

	cfg.Classes = form.DefaultClasses().Merge(cfg.Classes)
	return cfg, nil
}

func loadEnvFiles(files []string) error {
	for _, file := range files {
		if strings.TrimSpace(file) == "" {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("%w %s: %w", ErrReadConfig, file, err)
		}
	}
	return nil
}

// Manifest converts the inline theme into a go-theme manifest, or nil when
// no theme is configured.
func (t Theme) Manifest() *theme.Manifest {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return nil
	}
	manifest := &theme.Manifest{
		Name:   name,
		Tokens: t.Tokens,
	}
	if len(t.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(t.Variants))
		for variant, tokens := range t.Variants {
			manifest.Variants[variant] = theme.Variant{Tokens: tokens}
		}
	}
	return manifest
}

// FormOptions translates the configuration into renderer options.
func (c Config) FormOptions() ([]form.Option, error) {
	options := []form.Option{form.WithClasses(c.Classes)}
	manifest := c.Theme.Manifest()
	if manifest == nil {
		return options, nil
	}
	selector, err := form.NewManifestSelector(manifest)
	if err != nil {
		return nil, err
	}
	return append(options, form.WithTheme(selector, manifest.Name, c.Theme.Variant)), nil
}
