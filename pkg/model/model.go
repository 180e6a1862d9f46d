package model

import (
	"reflect"
	"strings"
)

// Model is the identity contract a form binds to. Exists reports whether the
// entity has been persisted, Key returns its identifier.
type Model interface {
	Exists() bool
	Key() string
}

// Named models report the type name used for route parameters.
type Named interface {
	ModelName() string
}

// Related models expose the identifiers of an association, used to
// pre-select checkbox groups.
type Related interface {
	RelatedKeys(relation string) ([]string, error)
}

// NameOf returns the lowercased type name of m. Named models win, otherwise
// the dynamic Go type name is used.
func NameOf(m Model) string {
	if m == nil {
		return ""
	}
	if named, ok := m.(Named); ok {
		if name := strings.TrimSpace(named.ModelName()); name != "" {
			return strings.ToLower(name)
		}
	}
	t := reflect.TypeOf(m)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return strings.ToLower(t.Name())
}

// RelatedKeys returns the related identifiers of m for relation, or nil when
// m does not expose associations.
func RelatedKeys(m any, relation string) ([]string, error) {
	if m == nil {
		return nil, nil
	}
	related, ok := m.(Related)
	if !ok {
		return nil, nil
	}
	return related.RelatedKeys(relation)
}
