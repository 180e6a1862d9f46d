// Package markup is the element sink the form renderer writes into. Elements
// are small mutable trees (tag, ordered attributes, class list, children)
// that render as HTML and satisfy templ.Component, so they drop into templ
// views, html/template (via ToHTML) or plain io.Writer output alike.
package markup
