package container

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type counter struct {
	id int64
}

func TestBind_BuildsEveryTime(t *testing.T) {
	c := New()
	var calls atomic.Int64
	if err := c.Bind("counter", func(*Container) (any, error) {
		return &counter{id: calls.Add(1)}, nil
	}); err != nil {
		t.Fatalf("bind: %v", err)
	}

	first := MustResolve[*counter](c, "counter")
	second := MustResolve[*counter](c, "counter")
	if first == second {
		t.Fatalf("expected transient binding to build new values")
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 factory calls, got %d", calls.Load())
	}
}

func TestSingleton_BuildsOnceConcurrently(t *testing.T) {
	c := New()
	var calls atomic.Int64
	if err := c.Singleton("counter", func(*Container) (any, error) {
		return &counter{id: calls.Add(1)}, nil
	}); err != nil {
		t.Fatalf("singleton: %v", err)
	}

	var wg sync.WaitGroup
	results := make([]*counter, 16)
	for idx := range results {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx] = MustResolve[*counter](c, "counter")
		}(idx)
	}
	wg.Wait()

	for _, got := range results {
		if got != results[0] {
			t.Fatalf("expected a shared instance")
		}
	}
	if calls.Load() != 1 {
		t.Fatalf("expected 1 factory call, got %d", calls.Load())
	}
}

func TestSingleton_RetriesAfterFailure(t *testing.T) {
	c := New()
	boom := errors.New("boom")
	fail := true
	_ = c.Singleton("flaky", func(*Container) (any, error) {
		if fail {
			fail = false
			return nil, boom
		}
		return "ok", nil
	})

	if _, err := c.Make("flaky"); !errors.Is(err, boom) {
		t.Fatalf("expected factory error, got %v", err)
	}
	value, err := Resolve[string](c, "flaky")
	if err != nil || value != "ok" {
		t.Fatalf("expected retry to succeed, got %q %v", value, err)
	}
}

func TestFactoriesResolveDependencies(t *testing.T) {
	c := New()
	_ = c.Instance("name", "forms")
	_ = c.Singleton("greeting", func(c *Container) (any, error) {
		name, err := Resolve[string](c, "name")
		if err != nil {
			return nil, err
		}
		return "hello " + name, nil
	})

	if got := MustResolve[string](c, "greeting"); got != "hello forms" {
		t.Fatalf("unexpected greeting %q", got)
	}
}

func TestAlias(t *testing.T) {
	c := New()
	_ = c.Instance("renderer", 42)
	_ = c.Alias("renderer", "form")
	_ = c.Alias("form", "html")

	if !c.Has("html") {
		t.Fatalf("expected alias chain to resolve")
	}
	if got := MustResolve[int](c, "html"); got != 42 {
		t.Fatalf("unexpected value %d", got)
	}
	if err := c.Alias("x", "x"); err == nil {
		t.Fatalf("expected self alias to fail")
	}
	if err := c.Alias("html", "renderer"); err == nil {
		t.Fatalf("expected cyclic alias to fail")
	}
	if err := c.Alias("a", "b"); err != nil {
		t.Fatalf("alias: %v", err)
	}
	if err := c.Alias("b", "a"); err == nil {
		t.Fatalf("expected two-step cycle to fail")
	}
	_ = c.Instance("other", 7)
	if err := c.Alias("renderer", "other"); err == nil {
		t.Fatalf("expected alias over a binding to fail")
	}
	if got := MustResolve[int](c, "other"); got != 7 {
		t.Fatalf("binding must stay reachable, got %d", got)
	}

	c.Forget("renderer")
	if c.Has("form") {
		t.Fatalf("expected forget to drop aliases")
	}
}

func TestResolveErrors(t *testing.T) {
	c := New()
	_ = c.Instance("number", 1)

	if _, err := c.Make("missing"); !errors.Is(err, ErrNotBound) {
		t.Fatalf("expected ErrNotBound, got %v", err)
	}
	if _, err := Resolve[string](c, "number"); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
	if err := c.Bind(" ", func(*Container) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected empty name to fail")
	}
	if err := c.Singleton("nil", nil); err == nil {
		t.Fatalf("expected nil factory to fail")
	}
}

type bootProvider struct {
	booted []string
}

func (p *bootProvider) Register(c *Container) error {
	return c.Instance("a", "alpha")
}

func (p *bootProvider) Boot(c *Container) error {
	value, err := Resolve[string](c, "b")
	if err != nil {
		return err
	}
	p.booted = append(p.booted, value)
	return nil
}

func TestLoad_RegistersBeforeBoot(t *testing.T) {
	c := New()
	provider := &bootProvider{}

	err := c.Load(provider, ProviderFunc(func(c *Container) error {
		return c.Instance("b", "beta")
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"beta"}, provider.booted); diff != "" {
		t.Fatalf("boot mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b"}, c.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}
