package model

import "slices"

// Entity is a plain Model for callers that do not use gorm structs.
type Entity struct {
	Name      string
	ID        string
	Relations map[string][]string
}

var (
	_ Model   = Entity{}
	_ Named   = Entity{}
	_ Related = Entity{}
)

// Exists reports whether the entity carries an identifier.
func (e Entity) Exists() bool { return e.ID != "" }

// Key returns the identifier.
func (e Entity) Key() string { return e.ID }

// ModelName returns the entity name.
func (e Entity) ModelName() string { return e.Name }

// RelatedKeys returns the identifiers stored for relation.
func (e Entity) RelatedKeys(relation string) ([]string, error) {
	return slices.Clone(e.Relations[relation]), nil
}
