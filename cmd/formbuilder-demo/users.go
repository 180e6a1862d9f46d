package main

import (
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-formbuilder/pkg/field"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

var errUserNotFound = errors.New("user not found")

// roleChoices feed the roles checkbox group.
var roleChoices = []field.Choice{
	{Value: "admin", Label: "administrator"},
	{Value: "editor", Label: "editor"},
	{Value: "viewer", Label: "viewer"},
}

var planChoices = []field.Choice{
	{Value: "free", Label: "Free"},
	{Value: "team", Label: "Team"},
	{Value: "enterprise", Label: "Enterprise"},
}

// User is the demo resource.
type User struct {
	ID     string
	Name   string   `form:"name" validate:"required,max=80"`
	Email  string   `form:"email" validate:"required,email"`
	Plan   string   `form:"plan" validate:"required,oneof=free team enterprise"`
	Born   string   `form:"born" validate:"omitempty,datetime=2006-01-02"`
	Bio    string   `form:"bio" validate:"max=500"`
	Active bool     `form:"active"`
	Roles  []string `form:"roles" validate:"dive,oneof=admin editor viewer"`
}

var (
	_ model.Model   = (*User)(nil)
	_ model.Named   = (*User)(nil)
	_ model.Related = (*User)(nil)
)

func (u *User) Exists() bool      { return u.ID != "" }
func (u *User) Key() string       { return u.ID }
func (u *User) ModelName() string { return "user" }

func (u *User) RelatedKeys(relation string) ([]string, error) {
	if relation != "roles" {
		return nil, model.ErrUnknownRelation
	}
	return slices.Clone(u.Roles), nil
}

// users is an in-memory user repository.
type users struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]User
}

func newUsers() *users {
	return &users{byID: make(map[string]User)}
}

func (s *users) List() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

func (s *users) Get(id string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.byID[strings.TrimSpace(id)]
	if !ok {
		return User{}, errUserNotFound
	}
	return user, nil
}

func (s *users) Save(user User) User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if _, exists := s.byID[user.ID]; !exists {
		s.order = append(s.order, user.ID)
	}
	s.byID[user.ID] = user
	return user
}

func (s *users) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return false
	}
	delete(s.byID, id)
	s.order = slices.DeleteFunc(s.order, func(candidate string) bool { return candidate == id })
	return true
}
