package field

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedFieldType is returned when a field type is not part of the
// recognised set. No control is ever produced for such a field.
var ErrUnsupportedFieldType = errors.New("field: unsupported field type")

// Type tags the control variant a field renders as.
type Type string

const (
	Text          Type = "text"
	Input         Type = "input"
	Email         Type = "email"
	Hidden        Type = "hidden"
	Tel           Type = "tel"
	Date          Type = "date"
	DateTimeLocal Type = "datetime-local"
	Password      Type = "password"
	Textarea      Type = "textarea"
	Number        Type = "number"
	Select        Type = "select"
	Multiselect   Type = "multiselect"
	Checkbox      Type = "checkbox"
	Checkboxes    Type = "checkboxes"
	Radio         Type = "radio"
)

// Types returns every recognised field type.
func Types() []Type {
	return []Type{
		Text, Input, Email, Hidden, Tel, Date, DateTimeLocal, Password,
		Textarea, Number, Select, Multiselect, Checkbox, Checkboxes, Radio,
	}
}

// ParseType normalises raw and validates it against the recognised set. An
// empty value defaults to Text.
func ParseType(raw string) (Type, error) {
	normalized := Type(strings.ToLower(strings.TrimSpace(raw)))
	if normalized == "" {
		return Text, nil
	}
	if !normalized.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFieldType, raw)
	}
	return normalized, nil
}

// Valid reports whether t is one of the recognised types.
func (t Type) Valid() bool {
	for _, candidate := range Types() {
		if candidate == t {
			return true
		}
	}
	return false
}

// InputType reports the HTML input type attribute for plain input variants.
// ok is false for variants that do not render a single <input>.
func (t Type) InputType() (string, bool) {
	switch t {
	case Text, Input:
		return "text", true
	case Email, Hidden, Tel, Date, DateTimeLocal, Password, Number:
		return string(t), true
	default:
		return "", false
	}
}

func (t Type) String() string {
	return string(t)
}

// Choice is one entry of a choice based control.
type Choice struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Options carries the per-type settings of a field.
type Options struct {
	// Choices feed select, multiselect and checkboxes controls, in order.
	Choices []Choice `json:"choices,omitempty" yaml:"choices,omitempty"`
	// Readonly is honoured by number and select controls.
	Readonly bool `json:"readonly,omitempty" yaml:"readonly,omitempty"`
	// Checked drives radio controls.
	Checked bool `json:"checked,omitempty" yaml:"checked,omitempty"`
	// Relation names the model association used to pre-select checkbox
	// groups. Defaults to the field name.
	Relation string `json:"relation,omitempty" yaml:"relation,omitempty"`
	// Placeholder is copied onto text-like controls.
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	// Attributes are extra HTML attributes set on the control.
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// ChoicesFromMap builds choices from key/label pairs sorted by key. Use a
// Choices slice directly when order matters.
func ChoicesFromMap(values map[string]string) []Choice {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sortKeys(keys)
	out := make([]Choice, 0, len(keys))
	for _, key := range keys {
		out = append(out, Choice{Value: key, Label: values[key]})
	}
	return out
}
