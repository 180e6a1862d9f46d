package form

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/goliatone/go-formbuilder/pkg/field"
	"github.com/goliatone/go-formbuilder/pkg/markup"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/routing"
	"go.uber.org/zap"
)

// TokenField is the hidden input carrying the CSRF token.
const TokenField = "_token"

// Form is an opened form bound to an optional model. Fields rendered
// through a Form pick up the bound model for checkbox groups.
type Form struct {
	// Method is the logical HTTP method: PUT for existing models, POST
	// otherwise. GET renders as is; PUT, PATCH and DELETE are spoofed
	// through a hidden _method input on a POST form.
	Method string
	// Action is the resolved submit URL.
	Action string
	// Multipart is set when the form accepts file uploads.
	Multipart bool
	// Model is the bound model, nil for creation forms.
	Model model.Model

	renderer *Renderer
	token    string
	children []markup.Node
}

var _ templ.Component = (*Form)(nil)

// Create opens a form for m. Persisted models submit to <base>.update with
// PUT semantics, everything else to <base>.store with POST. The route
// parameter is the lowercased model name and its value the model key.
func (r *Renderer) Create(ctx context.Context, baseRoute string, m model.Model, acceptsFiles bool) (*Form, error) {
	if r.routes == nil {
		return nil, ErrNoRoutes
	}
	base := strings.TrimSpace(baseRoute)
	if base == "" {
		return nil, fmt.Errorf("%w: empty base route", ErrRouteResolution)
	}

	f := &Form{
		Method:    http.MethodPost,
		Multipart: acceptsFiles,
		renderer:  r,
	}

	var (
		name   string
		params map[string]string
	)
	if exists(m) {
		name = routing.Name(base, routing.ActionUpdate)
		params = map[string]string{model.NameOf(m): m.Key()}
		f.Method = http.MethodPut
		f.Model = m
	} else {
		name = routing.Name(base, routing.ActionStore)
	}

	action, err := r.routes.URL(name, params)
	if err != nil {
		r.logger.Debug("form action not resolved", zap.String("route", name), zap.Error(err))
		return nil, fmt.Errorf("%w: %s: %w", ErrRouteResolution, name, err)
	}
	f.Action = action

	if r.csrf != nil {
		f.token = r.csrf(ctx)
	}
	return f, nil
}

func exists(m model.Model) bool {
	if isNil(m) {
		return false
	}
	return m.Exists()
}

// Element builds the complete form element including appended children.
func (f *Form) Element() *markup.Element {
	el := f.opening()
	el.Append(f.children...)
	return el
}

// Open returns the opening tag with its hidden inputs, for templates that
// emit fields between Open and End.
func (f *Form) Open() markup.Node {
	return openTag{el: f.opening()}
}

// End returns the closing tag.
func (f *Form) End() markup.Node {
	return markup.Raw("</form>")
}

// Append adds nodes rendered inside the form by Render.
func (f *Form) Append(nodes ...markup.Node) *Form {
	f.children = append(f.children, nodes...)
	return f
}

// Render writes the complete form.
func (f *Form) Render(ctx context.Context, w io.Writer) error {
	return f.Element().Render(ctx, w)
}

// Field renders a field against the bound model.
func (f *Form) Field(ctx context.Context, label, name string, typ field.Type, value any, options field.Options) (*markup.Element, error) {
	return f.renderer.Field(ctx, field.Descriptor{
		Label:   label,
		Name:    name,
		Type:    typ,
		Value:   value,
		Options: options,
		Model:   f.Model,
	})
}

// Checkboxes renders a checkbox group pre-selected from the bound model.
func (f *Form) Checkboxes(ctx context.Context, label, name string, choices []field.Choice) (*markup.Element, error) {
	return f.renderer.Checkboxes(ctx, label, name, choices, f.Model)
}

func (f *Form) opening() *markup.Element {
	sink := f.renderer.sink
	method := http.MethodPost
	if f.Method == http.MethodGet {
		method = http.MethodGet
	}
	el := sink.Form(method, f.Action)
	el.AttrIf(f.Multipart, "enctype", "multipart/form-data")
	switch f.Method {
	case http.MethodPut, http.MethodPatch, http.MethodDelete:
		el.Append(sink.Input("hidden", routing.MethodField, f.Method).RemoveAttr("id"))
	}
	if f.token != "" {
		el.Append(sink.Input("hidden", TokenField, f.token).RemoveAttr("id"))
	}
	return el
}

type openTag struct {
	el *markup.Element
}

func (o openTag) Render(ctx context.Context, w io.Writer) error {
	if err := o.el.RenderOpen(w); err != nil {
		return err
	}
	for _, child := range o.el.Children() {
		if err := child.Render(ctx, w); err != nil {
			return err
		}
	}
	return nil
}
