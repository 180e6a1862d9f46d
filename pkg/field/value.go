package field

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Descriptor describes one field to render.
type Descriptor struct {
	Label   string  `json:"label" yaml:"label"`
	Name    string  `json:"name" yaml:"name"`
	Type    Type    `json:"type" yaml:"type"`
	Value   any     `json:"value,omitempty" yaml:"value,omitempty"`
	Options Options `json:"options,omitempty" yaml:"options,omitempty"`
	// Model is consulted by checkbox groups to pre-select related entries.
	// It is typed loosely so this package stays free of model imports.
	Model any `json:"-" yaml:"-"`
}

// IsEmpty reports whether value counts as empty: nil, "", "0", numeric
// zero, false and empty slices or maps.
func IsEmpty(value any) bool {
	if value == nil {
		return true
	}
	switch v := value.(type) {
	case string:
		return v == "" || v == "0"
	case *string:
		return v == nil || *v == "" || *v == "0"
	case bool:
		return !v
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return true
		}
		return IsEmpty(rv.Elem().Interface())
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	case reflect.String:
		s := rv.String()
		return s == "" || s == "0"
	case reflect.Bool:
		return !rv.Bool()
	}
	return false
}

// Stringify renders value as an attribute string. Nil becomes "".
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case *string:
		if v == nil {
			return ""
		}
		return *v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		return Stringify(rv.Elem().Interface())
	}
	return fmt.Sprint(value)
}

// Strings flattens value into a list of strings: slices and arrays yield one
// entry per element, scalars a single entry, empty values none.
func Strings(value any) []string {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []string:
		return slices.Clone(v)
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]string, 0, rv.Len())
		for idx := 0; idx < rv.Len(); idx++ {
			out = append(out, Stringify(rv.Index(idx).Interface()))
		}
		return out
	}
	if s := Stringify(value); s != "" {
		return []string{s}
	}
	return nil
}

// Capitalize upper-cases the first letter of value.
func Capitalize(value string) string {
	if value == "" {
		return ""
	}
	runes := []rune(value)
	runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
	return string(runes)
}

func sortKeys(keys []string) {
	slices.SortFunc(keys, func(a, b string) int {
		ai, aErr := strconv.ParseFloat(a, 64)
		bi, bErr := strconv.ParseFloat(b, 64)
		switch {
		case aErr == nil && bErr == nil:
			if ai < bi {
				return -1
			}
			if ai > bi {
				return 1
			}
			return 0
		case aErr == nil:
			return -1
		case bErr == nil:
			return 1
		}
		return strings.Compare(a, b)
	})
}
