package routing

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// Gin mounts named routes on a gin router while recording them in a Routes
// table. Patterns are written with chi style placeholders and translated
// to gin's :param syntax.
type Gin struct {
	router gin.IRoutes
	routes *Routes
}

// NewGin binds router and routes. A nil routes table is created.
func NewGin(router gin.IRoutes, routes *Routes) *Gin {
	if routes == nil {
		routes = NewRoutes()
	}
	return &Gin{router: router, routes: routes}
}

// Routes returns the route table.
func (g *Gin) Routes() *Routes {
	return g.routes
}

// Handle registers handlers under name.
func (g *Gin) Handle(name, method, pattern string, handlers ...gin.HandlerFunc) error {
	if err := g.routes.Add(name, method, pattern); err != nil {
		return err
	}
	route, _ := g.routes.Route(name)
	g.router.Handle(route.Method, GinPath(route.Pattern), handlers...)
	return nil
}

// GinPath converts {param} and {param:regex} placeholders into :param.
func GinPath(pattern string) string {
	var builder strings.Builder
	rest := pattern
	for {
		start := strings.IndexByte(rest, '{')
		if start < 0 {
			builder.WriteString(rest)
			return builder.String()
		}
		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			builder.WriteString(rest)
			return builder.String()
		}
		builder.WriteString(rest[:start])
		builder.WriteByte(':')
		builder.WriteString(placeholderName(rest[start+1 : start+end]))
		rest = rest[start+end+1:]
	}
}
