package routing

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Chi mounts named routes on a chi router while recording them in a Routes
// table for URL generation.
type Chi struct {
	router chi.Router
	routes *Routes
}

// NewChi binds router and routes. A nil routes table is created.
func NewChi(router chi.Router, routes *Routes) *Chi {
	if routes == nil {
		routes = NewRoutes()
	}
	return &Chi{router: router, routes: routes}
}

// Routes returns the route table.
func (c *Chi) Routes() *Routes {
	return c.routes
}

// Handle registers handler under name.
func (c *Chi) Handle(name, method, pattern string, handler http.Handler) error {
	if err := c.routes.Add(name, method, pattern); err != nil {
		return err
	}
	route, _ := c.routes.Route(name)
	c.router.Method(route.Method, route.Pattern, handler)
	return nil
}

// Get registers a named GET route.
func (c *Chi) Get(name, pattern string, handler http.HandlerFunc) error {
	return c.Handle(name, http.MethodGet, pattern, handler)
}

// Post registers a named POST route.
func (c *Chi) Post(name, pattern string, handler http.HandlerFunc) error {
	return c.Handle(name, http.MethodPost, pattern, handler)
}

// Put registers a named PUT route.
func (c *Chi) Put(name, pattern string, handler http.HandlerFunc) error {
	return c.Handle(name, http.MethodPut, pattern, handler)
}

// Resource mounts the non-nil handlers of a resource.
func (c *Chi) Resource(base, path, param string, handlers ResourceHandlers) error {
	for _, route := range ResourceRoutes(base, path, param) {
		handler := handlers.forAction(route.Name)
		if handler == nil {
			continue
		}
		if err := c.Handle(route.Name, route.Method, route.Pattern, handler); err != nil {
			return err
		}
	}
	return nil
}
