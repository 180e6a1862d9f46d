package form

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbuilder/pkg/field"
	"github.com/goliatone/go-formbuilder/pkg/routing"
)

func TestClasses_MergeKeepsDefaults(t *testing.T) {
	got := DefaultClasses().Merge(Classes{Control: "input", Label: " "})

	want := DefaultClasses()
	want.Control = "input"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}

func TestWithClasses(t *testing.T) {
	renderer := newTestRenderer(t, nil, WithClasses(Classes{Group: "mb-3", Label: "form-label"}))

	el, err := renderer.Field(context.Background(), field.Descriptor{Label: "Name", Name: "name"})
	if err != nil {
		t.Fatalf("field: %v", err)
	}
	want := `<div class="mb-3"><label for="name" class="form-label">Name</label>` +
		`<input type="text" name="name" id="name" class="form-control"></div>`
	if diff := cmp.Diff(want, el.String()); diff != "" {
		t.Fatalf("markup mismatch (-want +got):\n%s", diff)
	}
}

func TestWithTheme_VariantTokensWin(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "compact",
		Version: "1.0.0",
		Tokens: map[string]string{
			"forms.class.control": "form-control form-control-sm",
			"forms.class.primary": "btn-dark",
			"brand":               "#123456",
		},
		Variants: map[string]theme.Variant{
			"light": {
				Tokens: map[string]string{"forms.class.primary": "btn-light"},
			},
		},
	}
	selector := &stubThemeSelector{selection: &theme.Selection{Theme: "compact", Variant: "light", Manifest: manifest}}

	renderer := newTestRenderer(t, nil, WithTheme(selector, "compact", "light"))

	if len(selector.calls) != 1 || selector.calls[0] != (selectorCall{name: "compact", variant: "light"}) {
		t.Fatalf("unexpected selector calls: %+v", selector.calls)
	}
	classes := renderer.Classes()
	if classes.Control != "form-control form-control-sm" {
		t.Fatalf("control class not themed: %q", classes.Control)
	}
	if classes.Primary != "btn-light" {
		t.Fatalf("variant token not applied: %q", classes.Primary)
	}
	if classes.Group != "form-group" {
		t.Fatalf("unthemed class lost its default: %q", classes.Group)
	}
	if got := renderer.Submit("").String(); !strings.Contains(got, `class="btn btn-light"`) {
		t.Fatalf("submit did not use themed class: %s", got)
	}
}

func TestWithTheme_SelectionError(t *testing.T) {
	boom := errors.New("missing")
	selector := &stubThemeSelector{err: boom}

	_, err := New(routing.NewRoutes(), nil, WithTheme(selector, "nope", ""))
	if !errors.Is(err, boom) {
		t.Fatalf("expected selector error, got %v", err)
	}
}

func TestManifestSelector(t *testing.T) {
	selector, err := NewManifestSelector(
		&theme.Manifest{Name: "default"},
		&theme.Manifest{Name: "compact"},
	)
	if err != nil {
		t.Fatalf("selector: %v", err)
	}

	selection, err := selector.Select("", "dark")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if selection.Theme != "default" || selection.Variant != "dark" {
		t.Fatalf("unexpected fallback selection: %+v", selection)
	}
	if _, err := selector.Select("missing", ""); err == nil {
		t.Fatalf("expected unknown theme error")
	}
	if _, err := NewManifestSelector(&theme.Manifest{Name: "a"}, &theme.Manifest{Name: "a"}); err == nil {
		t.Fatalf("expected duplicate theme error")
	}
}

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, s.err
}
