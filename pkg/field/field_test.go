package field

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseType(t *testing.T) {
	for _, typ := range Types() {
		got, err := ParseType(" " + string(typ) + " ")
		if err != nil {
			t.Fatalf("parse %q: %v", typ, err)
		}
		if got != typ {
			t.Fatalf("parse %q: got %q", typ, got)
		}
	}

	if got, err := ParseType(""); err != nil || got != Text {
		t.Fatalf("expected empty type to default to text, got %q (%v)", got, err)
	}
	if got, err := ParseType("SELECT"); err != nil || got != Select {
		t.Fatalf("expected case-insensitive parse, got %q (%v)", got, err)
	}

	_, err := ParseType("colour-wheel")
	if !errors.Is(err, ErrUnsupportedFieldType) {
		t.Fatalf("expected ErrUnsupportedFieldType, got %v", err)
	}
}

func TestInputType(t *testing.T) {
	cases := map[Type]string{
		Text:          "text",
		Input:         "text",
		Email:         "email",
		Hidden:        "hidden",
		Tel:           "tel",
		Date:          "date",
		DateTimeLocal: "datetime-local",
		Password:      "password",
		Number:        "number",
	}
	for typ, want := range cases {
		got, ok := typ.InputType()
		if !ok || got != want {
			t.Fatalf("%s: got %q ok=%v, want %q", typ, got, ok, want)
		}
	}
	for _, typ := range []Type{Textarea, Select, Multiselect, Checkbox, Checkboxes, Radio} {
		if _, ok := typ.InputType(); ok {
			t.Fatalf("%s should not map to a plain input", typ)
		}
	}
}

func TestIsEmpty(t *testing.T) {
	var nilString *string
	zero := "0"
	filled := "yes"

	empty := []any{nil, "", "0", 0, int64(0), uint(0), 0.0, false, []string{}, map[string]int{}, nilString, &zero}
	for _, value := range empty {
		if !IsEmpty(value) {
			t.Fatalf("expected %#v to be empty", value)
		}
	}

	present := []any{"1", "off", 1, -1, 0.5, true, []string{"a"}, &filled}
	for _, value := range present {
		if IsEmpty(value) {
			t.Fatalf("expected %#v to be non-empty", value)
		}
	}
}

func TestStringifyAndStrings(t *testing.T) {
	value := "x"
	if got := Stringify(&value); got != "x" {
		t.Fatalf("stringify pointer: %q", got)
	}
	if got := Stringify(nil); got != "" {
		t.Fatalf("stringify nil: %q", got)
	}
	if got := Stringify(2.50); got != "2.5" {
		t.Fatalf("stringify float: %q", got)
	}
	if diff := cmp.Diff([]string{"1", "2"}, Strings([]int{1, 2})); diff != "" {
		t.Fatalf("strings mismatch (-want +got):\n%s", diff)
	}
	if got := Strings(""); got != nil {
		t.Fatalf("expected nil for empty string, got %v", got)
	}
}

func TestChoicesFromMapSortsNumericKeys(t *testing.T) {
	got := ChoicesFromMap(map[string]string{"10": "Ten", "2": "User", "1": "Admin"})
	want := []Choice{{"1", "Admin"}, {"2", "User"}, {"10", "Ten"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("choices mismatch (-want +got):\n%s", diff)
	}
}

func TestCapitalize(t *testing.T) {
	if got := Capitalize("admin"); got != "Admin" {
		t.Fatalf("capitalize: %q", got)
	}
	if got := Capitalize("élan"); got != "Élan" {
		t.Fatalf("capitalize unicode: %q", got)
	}
}
