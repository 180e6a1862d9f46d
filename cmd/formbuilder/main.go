package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/config"
	"github.com/goliatone/go-formbuilder/pkg/field"
	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/markup"
	"github.com/goliatone/go-formbuilder/pkg/openapi"
	"github.com/goliatone/go-formbuilder/pkg/preview"
	"github.com/goliatone/go-formbuilder/pkg/prompt"
)

const usage = `usage: formbuilder <command> [flags]

commands:
  render       render fields declared in a YAML file
  scaffold     render the request body of an OpenAPI operation
  interactive  declare fields at the prompt and render them
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, prompt.NewSurvey(os.Stderr)); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatalf("formbuilder: %v", err)
	}
}

// common holds the flags shared by every command.
type common struct {
	configPath string
	output     string
	action     string
	method     string
	title      string
	page       bool
	submit     string
}

func (c *common) bind(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&c.output, "output", "", "output file (stdout if empty)")
	fs.StringVar(&c.action, "action", "", "form action URL")
	fs.StringVar(&c.method, "method", http.MethodPost, "form method")
	fs.StringVar(&c.title, "title", "Form", "preview page title")
	fs.BoolVar(&c.page, "page", false, "wrap the form in a full preview page")
	fs.StringVar(&c.submit, "submit", form.DefaultSubmitText, "submit button text")
}

func run(ctx context.Context, args []string, stdout io.Writer, driver prompt.Driver) error {
	if len(args) == 0 {
		fmt.Fprint(stdout, usage)
		return flag.ErrHelp
	}

	var (
		opts common
		fs   = flag.NewFlagSet("formbuilder "+args[0], flag.ContinueOnError)
	)
	fs.SetOutput(stdout)
	opts.bind(fs)

	switch args[0] {
	case "render":
		fieldsPath := fs.String("fields", "", "YAML file listing field descriptors")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		fields, err := readFields(*fieldsPath)
		if err != nil {
			return err
		}
		return emit(ctx, opts, stdout, fields, false)

	case "scaffold":
		source := fs.String("source", "", "OpenAPI document path or URL")
		operationID := fs.String("operation", "", "operation ID to render")
		ask := fs.Bool("values", false, "prompt for field values")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		op, err := loadOperation(ctx, *source, *operationID)
		if err != nil {
			return err
		}
		fields, err := op.Fields()
		if err != nil {
			return err
		}
		if *ask {
			if fields, err = prompt.NewCollector(driver).Values(ctx, fields); err != nil {
				return err
			}
		}
		if !isSet(fs, "action") {
			opts.action = op.Path
		}
		if !isSet(fs, "method") {
			opts.method = op.Method
		}
		if !isSet(fs, "title") && op.Summary != "" {
			opts.title = op.Summary
		}
		return emit(ctx, opts, stdout, fields, op.Multipart)

	case "interactive":
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		collector := prompt.NewCollector(driver)
		fields, err := collector.Descriptors(ctx)
		if err != nil {
			return err
		}
		if len(fields) == 0 {
			return driver.Info(ctx, "no fields declared")
		}
		if fields, err = collector.Values(ctx, fields); err != nil {
			return err
		}
		return emit(ctx, opts, stdout, fields, false)

	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	}

	fmt.Fprint(stdout, usage)
	return fmt.Errorf("unknown command %q", args[0])
}

func isSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func readFields(path string) ([]field.Descriptor, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("-fields is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fields []field.Descriptor
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for idx := range fields {
		typ, err := field.ParseType(string(fields[idx].Type))
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", fields[idx].Name, err)
		}
		fields[idx].Type = typ
	}
	return fields, nil
}

func loadOperation(ctx context.Context, source, operationID string) (openapi.Operation, error) {
	fetcher := openapi.Fetcher{Client: http.DefaultClient}
	data, err := fetcher.Fetch(ctx, source)
	if err != nil {
		return openapi.Operation{}, err
	}
	parser := openapi.NewParser()
	if strings.TrimSpace(operationID) != "" {
		return parser.Operation(ctx, data, operationID)
	}

	ops, err := parser.Operations(ctx, data)
	if err != nil {
		return openapi.Operation{}, err
	}
	for _, op := range ops {
		if op.HasForm() {
			return op, nil
		}
	}
	return openapi.Operation{}, openapi.ErrNoRequestBody
}

func emit(ctx context.Context, opts common, stdout io.Writer, fields []field.Descriptor, multipart bool) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	logger, err := cfg.Log.Logger()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	formOptions, err := cfg.FormOptions()
	if err != nil {
		return err
	}
	formOptions = append(formOptions, form.WithLogger(logger))

	renderer, err := form.New(staticAction(opts.action), nil, formOptions...)
	if err != nil {
		return err
	}
	f, err := renderer.Create(ctx, "form", nil, multipart)
	if err != nil {
		return err
	}
	if method := strings.ToUpper(strings.TrimSpace(opts.method)); method != "" {
		f.Method = method
	}

	for _, d := range fields {
		el, err := renderer.Field(ctx, d)
		if err != nil {
			return fmt.Errorf("field %q: %w", d.Name, err)
		}
		f.Append(el)
	}
	f.Append(renderer.Submit(opts.submit))
	logger.Debug("form built", zap.Int("fields", len(fields)), zap.String("action", f.Action))

	out := stdout
	if opts.output != "" {
		file, err := os.Create(opts.output)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}

	if !opts.page {
		if err := f.Render(ctx, out); err != nil {
			return err
		}
		_, err = io.WriteString(out, "\n")
		return err
	}

	engine, err := preview.New(preview.WithLogger(logger))
	if err != nil {
		return err
	}
	return engine.Render(ctx, out, preview.Page{Title: opts.title, Body: markup.Group(f)})
}

// staticAction resolves every route name to the same URL.
type staticAction string

func (a staticAction) URL(string, map[string]string) (string, error) {
	return string(a), nil
}
