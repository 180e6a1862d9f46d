package markup

import (
	"context"
	"html"
	"html/template"
	"io"
	"strings"

	"github.com/a-h/templ"
)

type textNode string

func (t textNode) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, html.EscapeString(string(t)))
	return err
}

// Text returns a node that writes value HTML-escaped.
func Text(value string) Node {
	return textNode(value)
}

type rawNode string

func (r rawNode) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, string(r))
	return err
}

// Raw returns a node that writes value verbatim. Callers are responsible for
// sanitizing untrusted input first, see Sanitize.
func Raw(value string) Node {
	return rawNode(value)
}

// Fragment groups sibling nodes without a wrapping element.
type Fragment []Node

// Group builds a fragment from the non-nil nodes.
func Group(nodes ...Node) Fragment {
	out := make(Fragment, 0, len(nodes))
	for _, node := range nodes {
		if isNil(node) {
			continue
		}
		out = append(out, node)
	}
	return out
}

func (f Fragment) Render(ctx context.Context, w io.Writer) error {
	for _, node := range f {
		if err := node.Render(ctx, w); err != nil {
			return err
		}
	}
	return nil
}

// Lines joins text values with <br> separators, escaping each value.
func Lines(values []string) Fragment {
	out := make(Fragment, 0, len(values)*2)
	for idx, value := range values {
		if idx > 0 {
			out = append(out, Raw("<br>"))
		}
		out = append(out, Text(value))
	}
	return out
}

// ToHTML renders a node into a html/template value so it can be used from
// standard templates without double escaping.
func ToHTML(ctx context.Context, node Node) (template.HTML, error) {
	if isNil(node) {
		return "", nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return templ.ToGoHTML(ctx, node)
}

// Join renders nodes and concatenates the output with sep.
func Join(sep string, nodes ...Node) string {
	parts := make([]string, 0, len(nodes))
	for _, node := range nodes {
		if isNil(node) {
			continue
		}
		parts = append(parts, String(node))
	}
	return strings.Join(parts, sep)
}
