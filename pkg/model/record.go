package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"gorm.io/gorm/schema"

	"github.com/goliatone/go-formbuilder/pkg/field"
)

var (
	// ErrNilModel is returned when Wrap receives a nil value.
	ErrNilModel = errors.New("model: value is nil")
	// ErrUnknownRelation is returned when a relation name does not match any
	// association declared on the model.
	ErrUnknownRelation = errors.New("model: unknown relation")
)

var (
	schemaCache sync.Map
	namer       = schema.NamingStrategy{}
)

// Record adapts a gorm-tagged struct into a Model. Identity comes from the
// prioritised primary key, the name from the struct type and related keys
// from the associations gorm discovers (has-many, many2many, ...).
type Record struct {
	value  reflect.Value
	schema *schema.Schema
}

var (
	_ Model   = (*Record)(nil)
	_ Named   = (*Record)(nil)
	_ Related = (*Record)(nil)
)

// Wrap parses v with gorm's schema parser. v must be a struct or a pointer to
// one.
func Wrap(v any) (*Record, error) {
	if v == nil {
		return nil, ErrNilModel
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, ErrNilModel
	}
	parsed, err := schema.Parse(v, &schemaCache, namer)
	if err != nil {
		return nil, fmt.Errorf("model: parse %T: %w", v, err)
	}
	return &Record{value: reflect.Indirect(rv), schema: parsed}, nil
}

// MustWrap mirrors Wrap but panics on error.
func MustWrap(v any) *Record {
	record, err := Wrap(v)
	if err != nil {
		panic(err)
	}
	return record
}

// Exists reports whether the primary key holds a non-zero value.
func (r *Record) Exists() bool {
	if r == nil {
		return false
	}
	_, zero := r.primaryKey()
	return !zero
}

// Key returns the primary key as a string, or "" for new records.
func (r *Record) Key() string {
	if r == nil {
		return ""
	}
	value, zero := r.primaryKey()
	if zero {
		return ""
	}
	return field.Stringify(value)
}

// ModelName returns the Go struct name.
func (r *Record) ModelName() string {
	if r == nil || r.schema == nil {
		return ""
	}
	return r.schema.Name
}

// Value returns the wrapped struct value.
func (r *Record) Value() any {
	if r == nil || !r.value.IsValid() {
		return nil
	}
	return r.value.Interface()
}

// RelatedKeys collects the primary keys of the association matching
// relation (compared case-insensitively against the struct field name).
func (r *Record) RelatedKeys(relation string) ([]string, error) {
	if r == nil || r.schema == nil {
		return nil, nil
	}
	rel := r.relationship(relation)
	if rel == nil {
		return nil, fmt.Errorf("%w %q on %s", ErrUnknownRelation, relation, r.schema.Name)
	}
	if rel.FieldSchema == nil || rel.FieldSchema.PrioritizedPrimaryField == nil {
		return nil, nil
	}

	assoc := reflect.Indirect(rel.Field.ReflectValueOf(r.value))
	primary := rel.FieldSchema.PrioritizedPrimaryField

	var keys []string
	collect := func(item reflect.Value) {
		item = reflect.Indirect(item)
		if !item.IsValid() {
			return
		}
		value, zero := primary.ValueOf(item)
		if zero {
			return
		}
		keys = append(keys, field.Stringify(value))
	}

	switch assoc.Kind() {
	case reflect.Slice, reflect.Array:
		for idx := 0; idx < assoc.Len(); idx++ {
			collect(assoc.Index(idx))
		}
	case reflect.Struct:
		collect(assoc)
	}
	return keys, nil
}

func (r *Record) primaryKey() (any, bool) {
	if r.schema == nil || r.schema.PrioritizedPrimaryField == nil {
		return nil, true
	}
	return r.schema.PrioritizedPrimaryField.ValueOf(r.value)
}

func (r *Record) relationship(name string) *schema.Relationship {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if rel, ok := r.schema.Relationships.Relations[name]; ok {
		return rel
	}
	for key, rel := range r.schema.Relationships.Relations {
		if strings.EqualFold(key, name) {
			return rel
		}
	}
	return nil
}
