package form

import (
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/markup"
)

// DefaultSubmitText labels Submit buttons created without text.
const DefaultSubmitText = "Submit"

// Button renders a btn styled button. contents may hold inline markup such
// as icons; it is sanitized before rendering. type and name are only set
// when provided.
func (r *Renderer) Button(contents, typ, name string) *markup.Element {
	el := r.sink.Button(typ)
	el.AttrIf(strings.TrimSpace(name) != "", "name", name)
	el.Class(r.classes.Button)
	if safe := markup.Sanitize(contents); safe != "" {
		el.Append(markup.Raw(safe))
	}
	return el
}

// Submit renders a primary submit button.
func (r *Renderer) Submit(text string) *markup.Element {
	if strings.TrimSpace(text) == "" {
		text = DefaultSubmitText
	}
	return r.Button(text, "submit", "").Class(r.classes.Primary)
}
