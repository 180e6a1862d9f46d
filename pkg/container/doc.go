// Package container is a small service container. Values are bound by name
// as transient factories, lazily built singletons or prebuilt instances,
// and resolved with Make or the typed Resolve helper.
//
//	c := container.New()
//	_ = c.Singleton("form", func(c *container.Container) (any, error) {
//		routes, err := container.Resolve[*routing.Routes](c, "routes")
//		if err != nil {
//			return nil, err
//		}
//		return form.New(routes, nil)
//	})
//	renderer, err := container.Resolve[*form.Renderer](c, "form")
package container
