package routing

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrRouteNotFound is returned when no route is registered under a name.
	ErrRouteNotFound = errors.New("routing: route not found")
	// ErrMissingParam is returned when a pattern placeholder has no value.
	ErrMissingParam = errors.New("routing: missing route parameter")
	// ErrDuplicateRoute is returned when a name is registered twice.
	ErrDuplicateRoute = errors.New("routing: route already registered")
)

// Resolver resolves a named route into a URL.
type Resolver interface {
	URL(name string, params map[string]string) (string, error)
}

// Route is a named route. Patterns use chi placeholders: {id} or
// {id:[0-9]+}.
type Route struct {
	Name    string
	Method  string
	Pattern string
}

// Routes is a named route table. Safe for concurrent use.
type Routes struct {
	mu     sync.RWMutex
	routes map[string]Route
}

var _ Resolver = (*Routes)(nil)

// NewRoutes creates an empty table.
func NewRoutes() *Routes {
	return &Routes{routes: make(map[string]Route)}
}

// Add registers a named route.
func (r *Routes) Add(name, method, pattern string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("routing: route name is required")
	}
	pattern = strings.TrimSpace(pattern)
	if pattern == "" || !strings.HasPrefix(pattern, "/") {
		return fmt.Errorf("routing: pattern for %q must start with /", name)
	}
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		method = http.MethodGet
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.routes[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateRoute, name)
	}
	r.routes[name] = Route{Name: name, Method: method, Pattern: pattern}
	return nil
}

// MustAdd mirrors Add but panics on error.
func (r *Routes) MustAdd(name, method, pattern string) {
	if err := r.Add(name, method, pattern); err != nil {
		panic(err)
	}
}

// Route returns the route registered under name.
func (r *Routes) Route(name string) (Route, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	route, ok := r.routes[name]
	return route, ok
}

// Has reports whether name is registered.
func (r *Routes) Has(name string) bool {
	_, ok := r.Route(name)
	return ok
}

// Names returns the sorted route names.
func (r *Routes) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.routes))
	for name := range r.routes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// URL fills the pattern of the named route with params. Values are path
// escaped; params not consumed by the pattern are appended as a sorted
// query string.
func (r *Routes) URL(name string, params map[string]string) (string, error) {
	route, ok := r.Route(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrRouteNotFound, name)
	}
	return Expand(route.Pattern, params)
}

// Expand substitutes the placeholders of pattern.
func Expand(pattern string, params map[string]string) (string, error) {
	used := make(map[string]struct{}, len(params))
	var builder strings.Builder
	builder.Grow(len(pattern) + 16)

	rest := pattern
	for {
		start := strings.IndexByte(rest, '{')
		if start < 0 {
			builder.WriteString(rest)
			break
		}
		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			return "", fmt.Errorf("routing: unterminated placeholder in %q", pattern)
		}
		end += start

		builder.WriteString(rest[:start])
		key := placeholderName(rest[start+1 : end])
		value, ok := params[key]
		if !ok || value == "" {
			return "", fmt.Errorf("%w %q for %q", ErrMissingParam, key, pattern)
		}
		used[key] = struct{}{}
		builder.WriteString(url.PathEscape(value))
		rest = rest[end+1:]
	}

	query := url.Values{}
	for key, value := range params {
		if _, ok := used[key]; ok {
			continue
		}
		query.Set(key, value)
	}
	if len(query) > 0 {
		builder.WriteByte('?')
		builder.WriteString(query.Encode())
	}
	return builder.String(), nil
}

// Placeholders lists the parameter names used by pattern, in order.
func Placeholders(pattern string) []string {
	var names []string
	rest := pattern
	for {
		start := strings.IndexByte(rest, '{')
		if start < 0 {
			return names
		}
		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			return names
		}
		names = append(names, placeholderName(rest[start+1:start+end]))
		rest = rest[start+end+1:]
	}
}

func placeholderName(raw string) string {
	if idx := strings.IndexByte(raw, ':'); idx >= 0 {
		raw = raw[:idx]
	}
	return strings.TrimSpace(raw)
}
