// Package formbuilder is the entry point of the form helpers. It exposes
// the shared form renderer through a service container:
//
//	routes := routing.NewRoutes()
//	_ = routes.Resource("users", "/users", "user")
//	if err := formbuilder.Register(routes, store); err != nil {
//		return err
//	}
//	renderer := formbuilder.MustForm()
//
// The rendering itself lives in pkg/form; pkg/routing, pkg/session and
// pkg/model provide the collaborators it reads from.
package formbuilder
