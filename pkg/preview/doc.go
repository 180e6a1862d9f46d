// Package preview wraps rendered form markup in a minimal Bootstrap page.
// Layouts are pongo2 templates; the embedded layout.tpl can be replaced by
// supplying an fs.FS holding a template with the same name.
package preview
