package markup

import (
	"bytes"
	"context"
	"html"
	"io"
	"slices"
	"strings"

	"github.com/a-h/templ"
)

// Node is anything that can write itself as HTML. The method set matches
// templ.Component so nodes can be embedded directly in templ views.
type Node interface {
	Render(ctx context.Context, w io.Writer) error
}

type attribute struct {
	name  string
	value string
	flag  bool
}

// Element is a mutable HTML element. Attributes keep insertion order and the
// class list is always written last.
type Element struct {
	tag      string
	void     bool
	attrs    []attribute
	classes  []string
	children []Node
}

var _ templ.Component = (*Element)(nil)

var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {},
	"img": {}, "input": {}, "link": {}, "meta": {}, "source": {}, "track": {}, "wbr": {},
}

// El creates an element for the given tag name.
func El(tag string) *Element {
	tag = strings.ToLower(strings.TrimSpace(tag))
	_, void := voidElements[tag]
	return &Element{tag: tag, void: void}
}

// Tag returns the element tag name.
func (e *Element) Tag() string {
	if e == nil {
		return ""
	}
	return e.tag
}

// Attr sets an attribute, replacing any previous value.
func (e *Element) Attr(name, value string) *Element {
	name = strings.TrimSpace(name)
	if name == "" {
		return e
	}
	if strings.EqualFold(name, "class") {
		e.classes = nil
		return e.Class(value)
	}
	for idx := range e.attrs {
		if e.attrs[idx].name == name {
			e.attrs[idx] = attribute{name: name, value: value}
			return e
		}
	}
	e.attrs = append(e.attrs, attribute{name: name, value: value})
	return e
}

// AttrIf sets the attribute only when ok is true. The attribute is omitted
// entirely otherwise.
func (e *Element) AttrIf(ok bool, name, value string) *Element {
	if !ok {
		return e
	}
	return e.Attr(name, value)
}

// Flag sets a boolean attribute such as checked or readonly.
func (e *Element) Flag(name string) *Element {
	name = strings.TrimSpace(name)
	if name == "" {
		return e
	}
	for idx := range e.attrs {
		if e.attrs[idx].name == name {
			e.attrs[idx] = attribute{name: name, flag: true}
			return e
		}
	}
	e.attrs = append(e.attrs, attribute{name: name, flag: true})
	return e
}

// FlagIf sets the boolean attribute only when ok is true.
func (e *Element) FlagIf(ok bool, name string) *Element {
	if !ok {
		return e
	}
	return e.Flag(name)
}

// RemoveAttr drops an attribute if present.
func (e *Element) RemoveAttr(name string) *Element {
	e.attrs = slices.DeleteFunc(e.attrs, func(attr attribute) bool {
		return attr.name == name
	})
	return e
}

// Get returns the attribute value. Boolean attributes report an empty value.
func (e *Element) Get(name string) (string, bool) {
	if e == nil {
		return "", false
	}
	if strings.EqualFold(name, "class") {
		if len(e.classes) == 0 {
			return "", false
		}
		return strings.Join(e.classes, " "), true
	}
	for _, attr := range e.attrs {
		if attr.name == name {
			return attr.value, true
		}
	}
	return "", false
}

// Class appends one or more space separated class names, skipping
// duplicates.
func (e *Element) Class(classes ...string) *Element {
	for _, value := range classes {
		for _, class := range strings.Fields(value) {
			if slices.Contains(e.classes, class) {
				continue
			}
			e.classes = append(e.classes, class)
		}
	}
	return e
}

// HasClass reports whether the class list contains class.
func (e *Element) HasClass(class string) bool {
	if e == nil {
		return false
	}
	return slices.Contains(e.classes, class)
}

// Classes returns a copy of the class list.
func (e *Element) Classes() []string {
	if e == nil {
		return nil
	}
	return slices.Clone(e.classes)
}

// Append adds children. Nil nodes, including typed nil elements, are skipped.
func (e *Element) Append(children ...Node) *Element {
	for _, child := range children {
		if isNil(child) {
			continue
		}
		e.children = append(e.children, child)
	}
	return e
}

// Text appends an escaped text node.
func (e *Element) Text(value string) *Element {
	return e.Append(Text(value))
}

// Children returns the element children.
func (e *Element) Children() []Node {
	if e == nil {
		return nil
	}
	return slices.Clone(e.children)
}

// Render writes the element and its children. A nil element writes nothing.
func (e *Element) Render(ctx context.Context, w io.Writer) error {
	if e == nil {
		return nil
	}
	if err := e.RenderOpen(w); err != nil {
		return err
	}
	if e.void {
		return nil
	}
	for _, child := range e.children {
		if err := child.Render(ctx, w); err != nil {
			return err
		}
	}
	return e.RenderClose(w)
}

// RenderOpen writes only the opening tag.
func (e *Element) RenderOpen(w io.Writer) error {
	var builder strings.Builder
	builder.WriteByte('<')
	builder.WriteString(e.tag)
	for _, attr := range e.attrs {
		builder.WriteByte(' ')
		builder.WriteString(attr.name)
		if attr.flag {
			continue
		}
		builder.WriteString(`="`)
		builder.WriteString(html.EscapeString(attr.value))
		builder.WriteByte('"')
	}
	if len(e.classes) > 0 {
		builder.WriteString(` class="`)
		builder.WriteString(html.EscapeString(strings.Join(e.classes, " ")))
		builder.WriteByte('"')
	}
	builder.WriteByte('>')
	_, err := io.WriteString(w, builder.String())
	return err
}

// RenderClose writes only the closing tag. Void elements write nothing.
func (e *Element) RenderClose(w io.Writer) error {
	if e.void {
		return nil
	}
	_, err := io.WriteString(w, "</"+e.tag+">")
	return err
}

// String renders the element into a string.
func (e *Element) String() string {
	return String(e)
}

// String renders any node into a string, ignoring writer errors.
func String(node Node) string {
	if isNil(node) {
		return ""
	}
	var buf bytes.Buffer
	_ = node.Render(context.Background(), &buf)
	return buf.String()
}

func isNil(node Node) bool {
	if node == nil {
		return true
	}
	if el, ok := node.(*Element); ok && el == nil {
		return true
	}
	return false
}
