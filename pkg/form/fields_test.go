package form

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/field"
	"github.com/goliatone/go-formbuilder/pkg/markup"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/session"
)

func TestField_Controls(t *testing.T) {
	roles := []field.Choice{{Value: "1", Label: "Admin"}, {Value: "2", Label: "Editor"}}

	cases := []struct {
		name string
		in   field.Descriptor
		want string
	}{
		{
			name: "text default",
			in:   field.Descriptor{Label: "Name", Name: "name", Value: "Ada"},
			want: `<div class="form-group"><label for="name" class="strong">Name</label>` +
				`<input type="text" name="name" id="name" value="Ada" class="form-control"></div>`,
		},
		{
			name: "email with placeholder",
			in: field.Descriptor{Label: "Email", Name: "email", Type: field.Email,
				Options: field.Options{Placeholder: "you@example.com"}},
			want: `<div class="form-group"><label for="email" class="strong">Email</label>` +
				`<input type="email" name="email" id="email" placeholder="you@example.com" class="form-control"></div>`,
		},
		{
			name: "datetime local",
			in:   field.Descriptor{Label: "Starts", Name: "starts_at", Type: field.DateTimeLocal, Value: "2024-01-02T10:00"},
			want: `<div class="form-group"><label for="starts_at" class="strong">Starts</label>` +
				`<input type="datetime-local" name="starts_at" id="starts_at" value="2024-01-02T10:00" class="form-control"></div>`,
		},
		{
			name: "textarea escapes",
			in:   field.Descriptor{Label: "Bio", Name: "bio", Type: field.Textarea, Value: "<b>hi</b>"},
			want: `<div class="form-group"><label for="bio" class="strong">Bio</label>` +
				`<textarea name="bio" id="bio" class="form-control">&lt;b&gt;hi&lt;/b&gt;</textarea></div>`,
		},
		{
			name: "number readonly",
			in: field.Descriptor{Label: "Age", Name: "age", Type: field.Number, Value: 42,
				Options: field.Options{Readonly: true}},
			want: `<div class="form-group"><label for="age" class="strong">Age</label>` +
				`<input type="number" name="age" id="age" value="42" step="any" readonly class="form-control"></div>`,
		},
		{
			name: "select",
			in: field.Descriptor{Label: "Role", Name: "role", Type: field.Select, Value: "2",
				Options: field.Options{Choices: roles}},
			want: `<div class="form-group"><label for="role" class="strong">Role</label>` +
				`<select name="role" id="role" class="form-select">` +
				`<option value="1">Admin</option><option value="2" selected>Editor</option></select></div>`,
		},
		{
			name: "select readonly",
			in: field.Descriptor{Label: "Role", Name: "role", Type: field.Select,
				Options: field.Options{Choices: roles[:1], Readonly: true}},
			want: `<div class="form-group"><label for="role" class="strong">Role</label>` +
				`<select name="role" id="role" readonly class="form-select">` +
				`<option value="1">Admin</option></select></div>`,
		},
		{
			name: "multiselect",
			in: field.Descriptor{Label: "Tags", Name: "tags", Type: field.Multiselect, Value: []string{"1", "2"},
				Options: field.Options{Choices: roles}},
			want: `<div class="form-group"><label for="tags" class="strong">Tags</label>` +
				`<select multiple name="tags[]" id="tags" class="form-select">` +
				`<option value="1" selected>Admin</option><option value="2" selected>Editor</option></select></div>`,
		},
		{
			name: "checkbox checked",
			in:   field.Descriptor{Label: "Active", Name: "active", Type: field.Checkbox, Value: true},
			want: `<div class="form-group"><label for="active" class="strong">Active</label>` +
				`<input type="checkbox" name="active" id="active" value="1" checked class="form-control"></div>`,
		},
		{
			name: "checkbox zero string",
			in:   field.Descriptor{Label: "Active", Name: "active", Type: field.Checkbox, Value: "0"},
			want: `<div class="form-group"><label for="active" class="strong">Active</label>` +
				`<input type="checkbox" name="active" id="active" value="1" class="form-control"></div>`,
		},
		{
			name: "radio",
			in: field.Descriptor{Label: "Plan", Name: "plan", Type: field.Radio, Value: "pro",
				Options: field.Options{Checked: true}},
			want: `<div class="form-group"><label for="plan" class="strong">Plan</label>` +
				`<input type="radio" name="plan" id="plan" value="pro" checked class="form-control"></div>`,
		},
		{
			name: "extra attributes sorted",
			in: field.Descriptor{Label: "Code", Name: "code", Type: field.Input,
				Options: field.Options{Attributes: map[string]string{"maxlength": "4", "autocomplete": "off"}}},
			want: `<div class="form-group"><label for="code" class="strong">Code</label>` +
				`<input type="text" name="code" id="code" autocomplete="off" maxlength="4" class="form-control"></div>`,
		},
	}

	renderer := newTestRenderer(t, nil)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			el, err := renderer.Field(context.Background(), tc.in)
			if err != nil {
				t.Fatalf("field: %v", err)
			}
			if diff := cmp.Diff(tc.want, el.String()); diff != "" {
				t.Fatalf("markup mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestField_InvalidStateFromSession(t *testing.T) {
	bag := session.NewErrorBag()
	bag.Add("email", "Email is required", "Email must be valid")
	renderer := newTestRenderer(t, session.Snapshot{Bag: bag})

	el, err := renderer.Field(context.Background(), field.Descriptor{Label: "Email", Name: "email", Type: field.Email})
	if err != nil {
		t.Fatalf("field: %v", err)
	}

	want := `<div class="form-group"><label for="email" class="strong">Email</label>` +
		`<input type="email" name="email" id="email" class="form-control is-invalid">` +
		`<div class="invalid-feedback">Email is required<br>Email must be valid</div></div>`
	if diff := cmp.Diff(want, el.String()); diff != "" {
		t.Fatalf("markup mismatch (-want +got):\n%s", diff)
	}
}

func TestField_SnapshotFromContext(t *testing.T) {
	bag := session.NewErrorBag()
	bag.Add("name", "Name is required")
	ctx := session.WithSnapshot(context.Background(), session.Snapshot{Bag: bag})

	renderer := newTestRenderer(t, contextReader{})
	el, err := renderer.Field(ctx, field.Descriptor{Label: "Name", Name: "name"})
	if err != nil {
		t.Fatalf("field: %v", err)
	}
	if !el.Children()[1].(*markup.Element).HasClass("is-invalid") {
		t.Fatalf("expected control to be invalid: %s", el)
	}
}

func TestField_UnsupportedType(t *testing.T) {
	renderer := newTestRenderer(t, nil)

	_, err := renderer.Field(context.Background(), field.Descriptor{Label: "X", Name: "x", Type: "color"})
	if !errors.Is(err, field.ErrUnsupportedFieldType) {
		t.Fatalf("expected ErrUnsupportedFieldType, got %v", err)
	}
}

func TestCheckboxes_CheckedFromModel(t *testing.T) {
	renderer := newTestRenderer(t, nil)
	user := model.Entity{Name: "user", ID: "1", Relations: map[string][]string{"role": {"2"}}}
	roles := []field.Choice{{Value: "1", Label: "admin"}, {Value: "2", Label: "editor"}}

	el, err := renderer.Checkboxes(context.Background(), "Roles", "role", roles, user)
	if err != nil {
		t.Fatalf("checkboxes: %v", err)
	}

	want := `<div class="form-group"><label class="strong">Roles</label>` +
		`<div class="form-control">` +
		`<div class="form-check"><input type="checkbox" name="role[]" value="1" id="role_1" class="form-check-input">` +
		`<label for="role_1" class="form-check-label">Admin</label></div>` +
		`<div class="form-check"><input type="checkbox" name="role[]" value="2" checked id="role_2" class="form-check-input">` +
		`<label for="role_2" class="form-check-label">Editor</label></div>` +
		`</div></div>`
	if diff := cmp.Diff(want, el.String()); diff != "" {
		t.Fatalf("markup mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckboxes_RelationOverrideOnBoundForm(t *testing.T) {
	renderer := newTestRenderer(t, nil)
	user := model.Entity{Name: "user", ID: "1", Relations: map[string][]string{"roles": {"1"}}}

	f, err := renderer.Create(context.Background(), "users", user, false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	el, err := f.Field(context.Background(), "Roles", "role_ids", field.Checkboxes, nil, field.Options{
		Choices:  []field.Choice{{Value: "1", Label: "admin"}},
		Relation: "roles",
	})
	if err != nil {
		t.Fatalf("field: %v", err)
	}

	group := el.Children()[1].(*markup.Element)
	item := group.Children()[0].(*markup.Element)
	input := item.Children()[0].(*markup.Element)
	if _, checked := input.Get("checked"); !checked {
		t.Fatalf("expected checkbox to be checked: %s", el)
	}
}

func TestCheckboxes_UnknownGormRelation(t *testing.T) {
	type Account struct {
		ID uint
	}
	renderer := newTestRenderer(t, nil)

	_, err := renderer.Checkboxes(context.Background(), "Roles", "roles", nil, model.MustWrap(&Account{ID: 1}))
	if !errors.Is(err, model.ErrUnknownRelation) {
		t.Fatalf("expected ErrUnknownRelation, got %v", err)
	}
}

func TestDropdownAndDatepicker(t *testing.T) {
	renderer := newTestRenderer(t, nil)
	ctx := context.Background()

	dropdown, err := renderer.Dropdown(ctx, "Size", "size", []field.Choice{{Value: "s", Label: "Small"}}, "s")
	if err != nil {
		t.Fatalf("dropdown: %v", err)
	}
	if want := `<select name="size" id="size" class="form-select"><option value="s" selected>Small</option></select>`; markup.String(dropdown.Children()[1]) != want {
		t.Fatalf("unexpected dropdown control: %s", dropdown)
	}

	picker, err := renderer.Datepicker(ctx, "Born", "born", "2000-01-01")
	if err != nil {
		t.Fatalf("datepicker: %v", err)
	}
	if want := `<input type="date" name="born" id="born" value="2000-01-01" class="form-control">`; markup.String(picker.Children()[1]) != want {
		t.Fatalf("unexpected datepicker control: %s", picker)
	}
}

type contextReader struct{}

func (contextReader) Errors(ctx context.Context) (session.ErrorBag, error) {
	snap, _ := session.SnapshotFrom(ctx)
	return snap.Bag, nil
}

func (contextReader) Flash(ctx context.Context, key string) (string, error) {
	snap, _ := session.SnapshotFrom(ctx)
	return snap.Flashes[key], nil
}
