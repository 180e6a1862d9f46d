package formbuilder

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/container"
	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/routing"
	"github.com/goliatone/go-formbuilder/pkg/session"
)

func useContainer(t *testing.T) *container.Container {
	t.Helper()
	previous := Container()
	c := container.New()
	SetContainer(c)
	t.Cleanup(func() { SetContainer(previous) })
	return c
}

func TestForm_NotRegistered(t *testing.T) {
	useContainer(t)

	if _, err := Form(); !errors.Is(err, container.ErrNotBound) {
		t.Fatalf("expected ErrNotBound, got %v", err)
	}
}

func TestRegister_ResolvesSingleton(t *testing.T) {
	useContainer(t)
	routes := routing.NewRoutes()
	if err := routes.Resource("users", "/users", "user"); err != nil {
		t.Fatalf("routes: %v", err)
	}
	state := session.Snapshot{}.With(session.SuccessKey, "Saved")

	if err := Register(routes, state); err != nil {
		t.Fatalf("register: %v", err)
	}

	first := MustForm()
	second := MustForm()
	if first != second {
		t.Fatalf("expected the same renderer instance")
	}

	el, err := first.Success(context.Background())
	if err != nil {
		t.Fatalf("success: %v", err)
	}
	if got := el.String(); got != `<div class="alert alert-success">Saved</div>` {
		t.Fatalf("renderer not wired to session: %s", got)
	}

	f, err := first.Create(context.Background(), "users", nil, false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if f.Action != "/users" {
		t.Fatalf("renderer not wired to routes: %s", f.Action)
	}
}

func TestProvider_UsesContainerBindings(t *testing.T) {
	c := useContainer(t)
	_ = c.Instance(RoutesBinding, routing.Resolver(routing.NewRoutes()))
	_ = c.Instance(LoggerBinding, zap.NewNop())

	if err := c.Load(Provider(form.WithClasses(form.Classes{Button: "button"}))); err != nil {
		t.Fatalf("load: %v", err)
	}
	renderer, err := Form()
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	if renderer.Classes().Button != "button" {
		t.Fatalf("options not applied: %+v", renderer.Classes())
	}
}

func TestProvider_MissingRoutes(t *testing.T) {
	c := useContainer(t)
	if err := c.Load(Provider()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := Form(); !errors.Is(err, container.ErrNotBound) {
		t.Fatalf("expected missing routes error, got %v", err)
	}
	if err := Register(nil, nil); err == nil {
		t.Fatalf("expected nil routes to fail")
	}
}
