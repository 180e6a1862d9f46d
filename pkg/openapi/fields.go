package openapi

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/pkg/field"
)

// Extension keys read from property schemas.
const (
	ExtType   = "x-form-type"
	ExtLabel  = "x-form-label"
	ExtOrder  = "x-form-order"
	ExtLabels = "x-form-labels"
)

// Operation is a form-capable OpenAPI operation.
type Operation struct {
	ID        string
	Method    string
	Path      string
	Summary   string
	Multipart bool

	schema *openapi3.Schema
}

// HasForm reports whether the operation carries a request body schema.
func (o Operation) HasForm() bool {
	return o.schema != nil
}

// Fields maps the request body properties onto field descriptors. Nested
// objects are skipped.
func (o Operation) Fields() ([]field.Descriptor, error) {
	if o.schema == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoRequestBody, o.ID)
	}

	type entry struct {
		order      int
		name       string
		descriptor field.Descriptor
	}
	var entries []entry
	for name, ref := range o.schema.Properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		descriptor, ok, err := Descriptor(name, ref.Value)
		if err != nil {
			return nil, fmt.Errorf("openapi: %s property %q: %w", o.ID, name, err)
		}
		if !ok {
			continue
		}
		if slices.Contains(o.schema.Required, name) {
			if descriptor.Options.Attributes == nil {
				descriptor.Options.Attributes = map[string]string{}
			}
			descriptor.Options.Attributes["required"] = "required"
		}
		entries = append(entries, entry{order: orderOf(ref.Value), name: name, descriptor: descriptor})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].order != entries[j].order {
			return entries[i].order < entries[j].order
		}
		return entries[i].name < entries[j].name
	})

	out := make([]field.Descriptor, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.descriptor)
	}
	return out, nil
}

// Descriptor maps a single property schema. ok is false for properties
// that have no form control, such as nested objects.
func Descriptor(name string, schema *openapi3.Schema) (field.Descriptor, bool, error) {
	typ, ok, err := fieldType(schema)
	if err != nil || !ok {
		return field.Descriptor{}, ok, err
	}

	d := field.Descriptor{
		Label: labelOf(name, schema),
		Name:  name,
		Type:  typ,
		Value: schema.Default,
		Options: field.Options{
			Readonly: schema.ReadOnly,
		},
	}

	if enum := enumOf(schema); len(enum) > 0 {
		labels := stringMap(schema.Extensions[ExtLabels])
		for _, value := range enum {
			key := field.Stringify(value)
			label := labels[key]
			if label == "" {
				label = field.Capitalize(key)
			}
			d.Options.Choices = append(d.Options.Choices, field.Choice{Value: key, Label: label})
		}
	}
	if schema.Example != nil {
		d.Options.Placeholder = field.Stringify(schema.Example)
	}
	if attrs := constraintAttributes(schema); len(attrs) > 0 {
		d.Options.Attributes = attrs
	}
	return d, true, nil
}

func fieldType(schema *openapi3.Schema) (field.Type, bool, error) {
	if raw, ok := schema.Extensions[ExtType].(string); ok && strings.TrimSpace(raw) != "" {
		typ, err := field.ParseType(raw)
		return typ, err == nil, err
	}

	switch firstSchemaType(schema.Type) {
	case openapi3.TypeBoolean:
		return field.Checkbox, true, nil
	case openapi3.TypeInteger, openapi3.TypeNumber:
		if len(schema.Enum) > 0 {
			return field.Select, true, nil
		}
		return field.Number, true, nil
	case openapi3.TypeArray:
		if len(enumOf(schema)) > 0 {
			return field.Multiselect, true, nil
		}
		return "", false, nil
	case openapi3.TypeObject:
		return "", false, nil
	}

	if len(schema.Enum) > 0 {
		return field.Select, true, nil
	}
	switch strings.ToLower(schema.Format) {
	case "email":
		return field.Email, true, nil
	case "date":
		return field.Date, true, nil
	case "date-time":
		return field.DateTimeLocal, true, nil
	case "password":
		return field.Password, true, nil
	case "tel", "phone":
		return field.Tel, true, nil
	}
	return field.Text, true, nil
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func enumOf(schema *openapi3.Schema) []any {
	if len(schema.Enum) > 0 {
		return schema.Enum
	}
	if schema.Items != nil && schema.Items.Value != nil {
		return schema.Items.Value.Enum
	}
	return nil
}

func labelOf(name string, schema *openapi3.Schema) string {
	if label, ok := schema.Extensions[ExtLabel].(string); ok && strings.TrimSpace(label) != "" {
		return label
	}
	if title := strings.TrimSpace(schema.Title); title != "" {
		return title
	}
	return humanize(name)
}

func humanize(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	})
	return field.Capitalize(strings.Join(words, " "))
}

func orderOf(schema *openapi3.Schema) int {
	switch value := schema.Extensions[ExtOrder].(type) {
	case float64:
		return int(value)
	case int:
		return value
	case string:
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return int(^uint(0) >> 1)
}

func stringMap(raw any) map[string]string {
	values, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(values))
	for key, value := range values {
		out[key] = field.Stringify(value)
	}
	return out
}

func constraintAttributes(schema *openapi3.Schema) map[string]string {
	attrs := map[string]string{}
	if schema.MaxLength != nil {
		attrs["maxlength"] = strconv.FormatUint(*schema.MaxLength, 10)
	}
	if schema.MinLength > 0 {
		attrs["minlength"] = strconv.FormatUint(schema.MinLength, 10)
	}
	if schema.Pattern != "" {
		attrs["pattern"] = schema.Pattern
	}
	if schema.Min != nil {
		attrs["min"] = strconv.FormatFloat(*schema.Min, 'f', -1, 64)
	}
	if schema.Max != nil {
		attrs["max"] = strconv.FormatFloat(*schema.Max, 'f', -1, 64)
	}
	return attrs
}
