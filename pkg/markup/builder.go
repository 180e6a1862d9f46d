package markup

import (
	"slices"
	"strings"
)

// Option is a single entry of a select control.
type Option struct {
	Value string
	Label string
}

// Builder creates plain HTML form primitives with no styling applied. The
// zero value is ready to use.
type Builder struct{}

// Input builds <input type=typ name=name value=value>. The id mirrors the
// name unless the name is an array name.
func (Builder) Input(typ, name, value string) *Element {
	el := El("input").Attr("type", typ)
	setName(el, name)
	el.AttrIf(value != "", "value", value)
	return el
}

// Textarea builds a multi-line text control holding value.
func (Builder) Textarea(name, value string) *Element {
	el := El("textarea")
	setName(el, name)
	el.Text(value)
	return el
}

// Select builds a single-choice dropdown.
func (b Builder) Select(name string, options []Option, selected string) *Element {
	el := El("select")
	setName(el, name)
	appendOptions(el, options, []string{selected})
	return el
}

// Multiselect builds a multiple-choice dropdown submitting name[]. The id is
// the bare name so labels can point at it.
func (b Builder) Multiselect(name string, options []Option, selected []string) *Element {
	el := El("select").Flag("multiple")
	setName(el, arrayName(name))
	if id := strings.TrimSuffix(arrayName(name), "[]"); id != "" {
		el.Attr("id", id)
	}
	appendOptions(el, options, selected)
	return el
}

// Checkbox builds a checkbox input.
func (Builder) Checkbox(name, value string, checked bool) *Element {
	el := El("input").Attr("type", "checkbox")
	setName(el, name)
	el.AttrIf(value != "", "value", value)
	el.FlagIf(checked, "checked")
	return el
}

// Radio builds a radio input.
func (Builder) Radio(name, value string, checked bool) *Element {
	el := El("input").Attr("type", "radio")
	setName(el, name)
	el.AttrIf(value != "", "value", value)
	el.FlagIf(checked, "checked")
	return el
}

// Label builds a label bound to the control id forID.
func (Builder) Label(text, forID string) *Element {
	return El("label").AttrIf(forID != "", "for", forID).Text(text)
}

// Div builds an empty container.
func (Builder) Div() *Element {
	return El("div")
}

// Button builds a button, setting type only when provided.
func (Builder) Button(typ string) *Element {
	return El("button").AttrIf(strings.TrimSpace(typ) != "", "type", typ)
}

// Form builds an opening form element. Children appended to it render
// inside the form.
func (Builder) Form(method, action string) *Element {
	return El("form").Attr("method", method).Attr("action", action)
}

func setName(el *Element, name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	el.Attr("name", name)
	if !strings.HasSuffix(name, "[]") {
		el.Attr("id", name)
	}
}

func appendOptions(el *Element, options []Option, selected []string) {
	for _, option := range options {
		opt := El("option").Attr("value", option.Value)
		opt.FlagIf(slices.Contains(selected, option.Value), "selected")
		opt.Text(option.Label)
		el.Append(opt)
	}
}

func arrayName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || strings.HasSuffix(name, "[]") {
		return name
	}
	return name + "[]"
}
