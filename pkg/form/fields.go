package form

import (
	"context"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/field"
	"github.com/goliatone/go-formbuilder/pkg/markup"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"go.uber.org/zap"
)

// Field renders a labelled control wrapped in a form group:
//
//	<div class="form-group"><label for=name class="strong">..</label>control[feedback]</div>
//
// The control gets the type specific class plus is-invalid when the
// session holds errors for the field name. Unknown types fail with
// field.ErrUnsupportedFieldType.
func (r *Renderer) Field(ctx context.Context, d field.Descriptor) (*markup.Element, error) {
	if d.Type == "" {
		d.Type = field.Text
	}

	control, class, err := r.control(d)
	if err != nil {
		r.logger.Debug("field not rendered",
			zap.String("name", d.Name),
			zap.String("type", string(d.Type)),
			zap.Error(err),
		)
		return nil, err
	}

	bag, err := r.errorBag(ctx)
	if err != nil {
		return nil, err
	}

	for _, key := range slices.Sorted(maps.Keys(d.Options.Attributes)) {
		control.Attr(key, d.Options.Attributes[key])
	}
	control.Class(class)
	if bag.Has(d.Name) {
		control.Class(r.classes.Invalid)
	}

	// Controls without an id, such as checkbox groups, get an unbound label.
	forID, _ := control.Get("id")
	group := r.sink.Div().Class(r.classes.Group)
	group.Append(
		r.sink.Label(d.Label, forID).Class(r.classes.Label),
		control,
		r.feedback(bag.Get(d.Name)),
	)
	return group, nil
}

// Dropdown renders a select field.
func (r *Renderer) Dropdown(ctx context.Context, label, name string, choices []field.Choice, value any) (*markup.Element, error) {
	return r.Field(ctx, field.Descriptor{
		Label:   label,
		Name:    name,
		Type:    field.Select,
		Value:   value,
		Options: field.Options{Choices: choices},
	})
}

// Checkboxes renders a checkbox group whose checked entries come from the
// association of m named after the field.
func (r *Renderer) Checkboxes(ctx context.Context, label, name string, choices []field.Choice, m model.Model) (*markup.Element, error) {
	d := field.Descriptor{
		Label:   label,
		Name:    name,
		Type:    field.Checkboxes,
		Options: field.Options{Choices: choices},
	}
	if !isNil(m) {
		d.Model = m
	}
	return r.Field(ctx, d)
}

// Datepicker renders a date field.
func (r *Renderer) Datepicker(ctx context.Context, label, name string, value any) (*markup.Element, error) {
	return r.Field(ctx, field.Descriptor{
		Label: label,
		Name:  name,
		Type:  field.Date,
		Value: value,
	})
}

func (r *Renderer) control(d field.Descriptor) (*markup.Element, string, error) {
	opts := d.Options
	value := field.Stringify(d.Value)

	switch d.Type {
	case field.Text, field.Input, field.Email, field.Hidden, field.Tel,
		field.Date, field.DateTimeLocal, field.Password:
		typ, _ := d.Type.InputType()
		el := r.sink.Input(typ, d.Name, value)
		el.AttrIf(opts.Placeholder != "", "placeholder", opts.Placeholder)
		return el, r.classes.Control, nil

	case field.Textarea:
		el := r.sink.Textarea(d.Name, value)
		el.AttrIf(opts.Placeholder != "", "placeholder", opts.Placeholder)
		return el, r.classes.Control, nil

	case field.Number:
		el := r.sink.Input("number", d.Name, value).Attr("step", "any")
		el.FlagIf(opts.Readonly, "readonly")
		return el, r.classes.Control, nil

	case field.Select:
		el := r.sink.Select(d.Name, selectOptions(opts.Choices), value)
		el.FlagIf(opts.Readonly, "readonly")
		return el, r.classes.Select, nil

	case field.Multiselect:
		el := r.sink.Multiselect(d.Name, selectOptions(opts.Choices), field.Strings(d.Value))
		return el, r.classes.Select, nil

	case field.Checkbox:
		return r.sink.Checkbox(d.Name, "1", !field.IsEmpty(d.Value)), r.classes.Control, nil

	case field.Checkboxes:
		el, err := r.checkboxGroup(d)
		if err != nil {
			return nil, "", err
		}
		return el, r.classes.Control, nil

	case field.Radio:
		return r.sink.Radio(d.Name, value, opts.Checked), r.classes.Control, nil
	}

	return nil, "", fmt.Errorf("%w: %q", field.ErrUnsupportedFieldType, string(d.Type))
}

func (r *Renderer) checkboxGroup(d field.Descriptor) (*markup.Element, error) {
	relation := strings.TrimSpace(d.Options.Relation)
	if relation == "" {
		relation = d.Name
	}

	var checked []string
	if !isNil(d.Model) {
		keys, err := model.RelatedKeys(d.Model, relation)
		if err != nil {
			return nil, fmt.Errorf("form: checkbox group %q: %w", d.Name, err)
		}
		checked = keys
	} else {
		checked = field.Strings(d.Value)
	}

	group := r.sink.Div()
	for _, choice := range d.Options.Choices {
		id := d.Name + "_" + choice.Value
		input := r.sink.Checkbox(d.Name+"[]", choice.Value, slices.Contains(checked, choice.Value))
		input.Attr("id", id).Class(r.classes.CheckInput)
		label := r.sink.Label(field.Capitalize(choice.Label), id).Class(r.classes.CheckLabel)
		group.Append(r.sink.Div().Class(r.classes.CheckWrapper).Append(input, label))
	}
	return group, nil
}

func selectOptions(choices []field.Choice) []markup.Option {
	out := make([]markup.Option, 0, len(choices))
	for _, choice := range choices {
		out = append(out, markup.Option{Value: choice.Value, Label: choice.Label})
	}
	return out
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Interface, reflect.Slice:
		return rv.IsNil()
	}
	return false
}
