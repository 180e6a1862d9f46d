package routing

import (
	"fmt"
	"net/http"
	"strings"
)

// Resource action suffixes appended to a base route name.
const (
	ActionIndex   = "index"
	ActionCreate  = "create"
	ActionStore   = "store"
	ActionShow    = "show"
	ActionEdit    = "edit"
	ActionUpdate  = "update"
	ActionDestroy = "destroy"
)

// ResourceRoutes lists the conventional routes of a resource mounted at
// path with the member placeholder {param}.
func ResourceRoutes(base, path, param string) []Route {
	base = strings.TrimSpace(base)
	path = "/" + strings.Trim(strings.TrimSpace(path), "/")
	if path == "/" {
		path = ""
	}
	member := path + "/{" + strings.TrimSpace(param) + "}"

	root := path
	if root == "" {
		root = "/"
	}
	return []Route{
		{Name: Name(base, ActionIndex), Method: http.MethodGet, Pattern: root},
		{Name: Name(base, ActionCreate), Method: http.MethodGet, Pattern: path + "/create"},
		{Name: Name(base, ActionStore), Method: http.MethodPost, Pattern: root},
		{Name: Name(base, ActionShow), Method: http.MethodGet, Pattern: member},
		{Name: Name(base, ActionEdit), Method: http.MethodGet, Pattern: member + "/edit"},
		{Name: Name(base, ActionUpdate), Method: http.MethodPut, Pattern: member},
		{Name: Name(base, ActionDestroy), Method: http.MethodDelete, Pattern: member},
	}
}

// Resource registers every conventional route of a resource.
func (r *Routes) Resource(base, path, param string) error {
	if strings.TrimSpace(param) == "" {
		return fmt.Errorf("routing: resource %q needs a member parameter", base)
	}
	for _, route := range ResourceRoutes(base, path, param) {
		if err := r.Add(route.Name, route.Method, route.Pattern); err != nil {
			return err
		}
	}
	return nil
}

// Name joins a base route name and an action: Name("users", "store") is
// "users.store".
func Name(base, action string) string {
	return strings.TrimSpace(base) + "." + action
}

// ResourceHandlers are the handlers of a resource. Nil handlers are not
// mounted.
type ResourceHandlers struct {
	Index   http.HandlerFunc
	Create  http.HandlerFunc
	Store   http.HandlerFunc
	Show    http.HandlerFunc
	Edit    http.HandlerFunc
	Update  http.HandlerFunc
	Destroy http.HandlerFunc
}

func (h ResourceHandlers) forAction(name string) http.HandlerFunc {
	switch name[strings.LastIndexByte(name, '.')+1:] {
	case ActionIndex:
		return h.Index
	case ActionCreate:
		return h.Create
	case ActionStore:
		return h.Store
	case ActionShow:
		return h.Show
	case ActionEdit:
		return h.Edit
	case ActionUpdate:
		return h.Update
	case ActionDestroy:
		return h.Destroy
	}
	return nil
}
