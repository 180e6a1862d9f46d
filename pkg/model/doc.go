// Package model describes what the form renderer needs from a bound entity:
// whether it is persisted, its identifier, its type name (used as the route
// parameter name) and the identifiers of its associations. Record derives
// all of it from gorm struct tags; Entity is a plain value implementation.
package model
