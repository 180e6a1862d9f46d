package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"go.uber.org/zap"
)

var (
	// ErrEmptyDocument is returned when no document bytes are provided.
	ErrEmptyDocument = errors.New("openapi: document payload is empty")
	// ErrOperationNotFound is returned when the operation id is unknown.
	ErrOperationNotFound = errors.New("openapi: operation not found")
	// ErrNoRequestBody is returned when an operation has no usable request
	// schema.
	ErrNoRequestBody = errors.New("openapi: operation has no request body schema")
)

var formMediaTypes = []string{
	"application/x-www-form-urlencoded",
	"multipart/form-data",
	"application/json",
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithExternalRefs allows references to other files or URLs.
func WithExternalRefs(allowed bool) Option {
	return func(p *Parser) {
		p.externalRefs = allowed
	}
}

// WithValidation validates the document before extracting operations.
func WithValidation(enabled bool) Option {
	return func(p *Parser) {
		p.validate = enabled
	}
}

// Parser loads OpenAPI documents and extracts form operations.
type Parser struct {
	logger       *zap.Logger
	externalRefs bool
	validate     bool
}

// NewParser builds a parser.
func NewParser(options ...Option) *Parser {
	p := &Parser{logger: zap.NewNop()}
	for _, option := range options {
		if option != nil {
			option(p)
		}
	}
	return p
}

// Operations returns every operation of the document sorted by id.
// Operations without an operationId are keyed "<method>:<path>".
func (p *Parser) Operations(ctx context.Context, data []byte) ([]Operation, error) {
	spec, err := p.load(ctx, data)
	if err != nil {
		return nil, err
	}

	var operations []Operation
	if spec.Paths != nil {
		for path, item := range spec.Paths.Map() {
			if item == nil {
				continue
			}
			for method, op := range item.Operations() {
				if op == nil {
					continue
				}
				operations = append(operations, p.convert(method, path, op))
			}
		}
	}
	sort.Slice(operations, func(i, j int) bool {
		return operations[i].ID < operations[j].ID
	})
	return operations, nil
}

// Operation returns the operation identified by operationID.
func (p *Parser) Operation(ctx context.Context, data []byte, operationID string) (Operation, error) {
	operations, err := p.Operations(ctx, data)
	if err != nil {
		return Operation{}, err
	}
	for _, op := range operations {
		if op.ID == operationID {
			return op, nil
		}
	}
	return Operation{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
}

func (p *Parser) load(ctx context.Context, data []byte) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}
	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: p.externalRefs,
	}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if p.validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}
	return spec, nil
}

func (p *Parser) convert(method, path string, op *openapi3.Operation) Operation {
	id := op.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}
	out := Operation{
		ID:      id,
		Method:  strings.ToUpper(method),
		Path:    path,
		Summary: op.Summary,
	}
	schema, mediaType := requestSchema(op.RequestBody)
	if schema == nil {
		return out
	}
	out.Multipart = mediaType == "multipart/form-data"
	out.schema = schema
	return out
}

func requestSchema(body *openapi3.RequestBodyRef) (*openapi3.Schema, string) {
	if body == nil || body.Value == nil {
		return nil, ""
	}
	content := body.Value.Content
	for _, mediaType := range formMediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value, mediaType
		}
	}
	return nil, ""
}
