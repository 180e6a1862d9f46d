// Package openapi scaffolds field descriptors from the request body of an
// OpenAPI 3 operation. Documents are parsed with kin-openapi; each
// top-level property of the JSON (or form encoded) request schema becomes
// one field.Descriptor.
//
// The mapping can be steered per property with extensions:
//
//	x-form-type:   any field.Type, e.g. "textarea" or "checkboxes"
//	x-form-label:  label text, defaults to the title or the humanized name
//	x-form-order:  integer sort key, properties without one sort by name
//	x-form-labels: map of enum value to choice label
package openapi
