// Package field defines the descriptor handed to the form renderer: the
// closed set of control types, the per-type options bag and the value
// helpers (emptiness, stringification) shared by every control variant.
package field
