package model

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

type Role struct {
	ID   uint
	Name string
}

type User struct {
	ID    uint
	Email string
	Roles []Role `gorm:"many2many:user_roles;"`
}

type Document struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title string
}

func TestWrapPersistedRecord(t *testing.T) {
	record, err := Wrap(&User{ID: 7, Roles: []Role{{ID: 2, Name: "user"}, {ID: 5, Name: "ops"}}})
	if err != nil {
		t.Fatalf("wrap: %v", err)
	}
	if !record.Exists() {
		t.Fatalf("expected record with id to exist")
	}
	if got := record.Key(); got != "7" {
		t.Fatalf("key = %q, want 7", got)
	}
	if got := NameOf(record); got != "user" {
		t.Fatalf("name = %q, want user", got)
	}

	keys, err := record.RelatedKeys("roles")
	if err != nil {
		t.Fatalf("related keys: %v", err)
	}
	if diff := cmp.Diff([]string{"2", "5"}, keys); diff != "" {
		t.Fatalf("related keys mismatch (-want +got):\n%s", diff)
	}
}

func TestWrapNewRecord(t *testing.T) {
	record := MustWrap(User{Email: "new@example.com"})
	if record.Exists() {
		t.Fatalf("expected zero primary key to report not persisted")
	}
	if record.Key() != "" {
		t.Fatalf("expected empty key for new record")
	}
}

func TestWrapUUIDPrimaryKey(t *testing.T) {
	id := uuid.MustParse("6f1c2f1e-2d4b-4d6e-9a4f-3b8f0b7f1a11")
	record := MustWrap(&Document{ID: id})
	if !record.Exists() {
		t.Fatalf("expected uuid record to exist")
	}
	if got := record.Key(); got != id.String() {
		t.Fatalf("key = %q, want %q", got, id.String())
	}
	if MustWrap(&Document{}).Exists() {
		t.Fatalf("expected nil uuid to report not persisted")
	}
}

func TestWrapRejectsNil(t *testing.T) {
	var user *User
	if _, err := Wrap(user); !errors.Is(err, ErrNilModel) {
		t.Fatalf("expected ErrNilModel, got %v", err)
	}
	if _, err := Wrap(nil); !errors.Is(err, ErrNilModel) {
		t.Fatalf("expected ErrNilModel, got %v", err)
	}
}

func TestRelatedKeysUnknownRelation(t *testing.T) {
	record := MustWrap(&User{ID: 1})
	if _, err := record.RelatedKeys("teams"); !errors.Is(err, ErrUnknownRelation) {
		t.Fatalf("expected ErrUnknownRelation, got %v", err)
	}
}

func TestEntity(t *testing.T) {
	entity := Entity{Name: "Post", ID: "42", Relations: map[string][]string{"tags": {"1"}}}
	if !entity.Exists() || entity.Key() != "42" {
		t.Fatalf("unexpected entity identity: %+v", entity)
	}
	if got := NameOf(entity); got != "post" {
		t.Fatalf("name = %q, want post", got)
	}
	keys, err := RelatedKeys(entity, "tags")
	if err != nil || len(keys) != 1 || keys[0] != "1" {
		t.Fatalf("unexpected related keys %v (%v)", keys, err)
	}
	if (Entity{}).Exists() {
		t.Fatalf("expected entity without id to not exist")
	}
}

type plainModel struct{ id string }

func (p *plainModel) Exists() bool { return p.id != "" }
func (p *plainModel) Key() string  { return p.id }

func TestNameOfFallsBackToTypeName(t *testing.T) {
	if got := NameOf(&plainModel{}); got != "plainmodel" {
		t.Fatalf("name = %q, want plainmodel", got)
	}
	keys, err := RelatedKeys(&plainModel{}, "any")
	if err != nil || keys != nil {
		t.Fatalf("expected no related keys for plain model, got %v (%v)", keys, err)
	}
}
