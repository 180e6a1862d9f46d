package main

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder"
	"github.com/goliatone/go-formbuilder/pkg/config"
	"github.com/goliatone/go-formbuilder/pkg/container"
	"github.com/goliatone/go-formbuilder/pkg/field"
	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/markup"
	"github.com/goliatone/go-formbuilder/pkg/preview"
	"github.com/goliatone/go-formbuilder/pkg/routing"
	"github.com/goliatone/go-formbuilder/pkg/session"
)

const csrfKey = "csrf_token"

type app struct {
	cfg      config.Config
	logger   *zap.Logger
	sessions *scs.SessionManager
	store    *session.Store
	routes   *routing.Routes
	users    *users
	validate *validator.Validate
	pages    *preview.Engine
}

// newApp wires the session store, the named routes and the form facade and
// returns the HTTP handler.
func newApp(cfg config.Config, logger *zap.Logger) (*app, http.Handler, error) {
	manager, err := session.NewManager(cfg.Session)
	if err != nil {
		return nil, nil, err
	}
	store, err := session.NewStore(manager, session.WithStoreLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	pages, err := preview.New(preview.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}

	validate := validator.New()
	validate.RegisterTagNameFunc(func(sf reflect.StructField) string {
		name, _, _ := strings.Cut(sf.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	a := &app{
		cfg:      cfg,
		logger:   logger,
		sessions: manager,
		store:    store,
		users:    newUsers(),
		validate: validate,
		pages:    pages,
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(manager.LoadAndSave)
	router.Use(routing.MethodOverride)
	router.Use(store.Middleware)
	if cfg.Server.CSRF {
		router.Use(a.verifyCSRF)
	}

	mounted := routing.NewChi(router, nil)
	if err := mounted.Resource("users", "/users", "user", routing.ResourceHandlers{
		Index:   a.index,
		Create:  a.create,
		Store:   a.save,
		Edit:    a.edit,
		Update:  a.update,
		Destroy: a.destroy,
	}); err != nil {
		return nil, nil, err
	}
	if err := mounted.Get("home", "/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, a.url("users.index", nil), http.StatusSeeOther)
	}); err != nil {
		return nil, nil, err
	}
	a.routes = mounted.Routes()

	options, err := cfg.FormOptions()
	if err != nil {
		return nil, nil, err
	}
	options = append(options, form.WithLogger(logger))
	if cfg.Server.CSRF {
		options = append(options, form.WithCSRF(a.csrfToken))
	}

	formbuilder.SetContainer(container.New())
	if err := formbuilder.Register(a.routes, store, options...); err != nil {
		return nil, nil, err
	}
	return a, router, nil
}

func (a *app) url(name string, params map[string]string) string {
	url, err := a.routes.URL(name, params)
	if err != nil {
		a.logger.Error("route not resolved", zap.String("route", name), zap.Error(err))
		return "/"
	}
	return url
}

func (a *app) csrfToken(ctx context.Context) string {
	token := a.sessions.GetString(ctx, csrfKey)
	if token == "" {
		token = uuid.NewString()
		a.sessions.Put(ctx, csrfKey, token)
	}
	return token
}

func (a *app) verifyCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}
		expected := a.sessions.GetString(r.Context(), csrfKey)
		given := r.PostFormValue(form.TokenField)
		if expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(given)) != 1 {
			http.Error(w, "invalid form token", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *app) index(w http.ResponseWriter, r *http.Request) {
	table := markup.El("table").Class("table")
	for _, user := range a.users.List() {
		edit := markup.El("a").
			Attr("href", a.url("users.edit", map[string]string{"user": user.ID})).
			Text(user.Name)
		table.Append(markup.El("tr").Append(
			markup.El("td").Append(edit),
			markup.El("td").Text(user.Email),
			markup.El("td").Text(user.Plan),
		))
	}
	add := markup.El("a").Attr("href", a.url("users.create", nil)).Class("btn", "btn-primary").Text("New user")
	a.render(w, r, "Users", markup.Group(table, add))
}

func (a *app) create(w http.ResponseWriter, r *http.Request) {
	a.renderForm(w, r, "New user", &User{Plan: "free"})
}

func (a *app) edit(w http.ResponseWriter, r *http.Request) {
	user, err := a.users.Get(chi.URLParam(r, "user"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	a.renderForm(w, r, "Edit user", &user)
}

func (a *app) save(w http.ResponseWriter, r *http.Request) {
	user, ok := a.bind(w, r, User{})
	if !ok {
		http.Redirect(w, r, a.url("users.create", nil), http.StatusSeeOther)
		return
	}
	user = a.users.Save(user)
	a.logger.Info("user created", zap.String("id", user.ID))
	a.store.FlashSuccess(r.Context(), "User "+user.Name+" created.")
	http.Redirect(w, r, a.url("users.index", nil), http.StatusSeeOther)
}

func (a *app) update(w http.ResponseWriter, r *http.Request) {
	current, err := a.users.Get(chi.URLParam(r, "user"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	user, ok := a.bind(w, r, current)
	if !ok {
		http.Redirect(w, r, a.url("users.edit", map[string]string{"user": current.ID}), http.StatusSeeOther)
		return
	}
	a.users.Save(user)
	a.store.FlashSuccess(r.Context(), "User "+user.Name+" updated.")
	http.Redirect(w, r, a.url("users.index", nil), http.StatusSeeOther)
}

func (a *app) destroy(w http.ResponseWriter, r *http.Request) {
	if !a.users.Delete(chi.URLParam(r, "user")) {
		a.store.FlashError(r.Context(), "User not found.")
	} else {
		a.store.FlashSuccess(r.Context(), "User deleted.")
	}
	http.Redirect(w, r, a.url("users.index", nil), http.StatusSeeOther)
}

// bind reads the posted form into user and validates it. Failures are
// stored in the session for the next request.
func (a *app) bind(w http.ResponseWriter, r *http.Request, user User) (User, bool) {
	if err := r.ParseForm(); err != nil {
		a.store.FlashError(r.Context(), "The form could not be read.")
		return user, false
	}
	user.Name = strings.TrimSpace(r.PostForm.Get("name"))
	user.Email = strings.TrimSpace(r.PostForm.Get("email"))
	user.Plan = r.PostForm.Get("plan")
	user.Born = r.PostForm.Get("born")
	user.Bio = r.PostForm.Get("bio")
	user.Active = r.PostForm.Get("active") == "1"
	user.Roles = r.PostForm["roles[]"]

	err := a.validate.Struct(user)
	if err == nil {
		return user, true
	}
	bag, ok := session.FromValidation(err, nil)
	if !ok {
		a.logger.Error("validation failed", zap.Error(err))
		a.store.FlashError(r.Context(), "The form could not be validated.")
		return user, false
	}
	a.store.PutErrors(r.Context(), bag)
	a.store.FlashError(r.Context(), "Please correct the highlighted fields.")
	return user, false
}

func (a *app) renderForm(w http.ResponseWriter, r *http.Request, title string, user *User) {
	ctx := r.Context()
	renderer, err := formbuilder.Form()
	if err != nil {
		a.fail(w, err)
		return
	}

	f, err := renderer.Create(ctx, "users", user, false)
	if err != nil {
		a.fail(w, err)
		return
	}

	fields := []field.Descriptor{
		{Label: "Name", Name: "name", Type: field.Text, Value: user.Name, Options: field.Options{Placeholder: "Ada Lovelace"}},
		{Label: "Email", Name: "email", Type: field.Email, Value: user.Email},
		{Label: "Plan", Name: "plan", Type: field.Select, Value: user.Plan, Options: field.Options{Choices: planChoices}},
		{Label: "Bio", Name: "bio", Type: field.Textarea, Value: user.Bio},
		{Label: "Active", Name: "active", Type: field.Checkbox, Value: user.Active},
	}
	for _, d := range fields {
		el, err := f.Field(ctx, d.Label, d.Name, d.Type, d.Value, d.Options)
		if err != nil {
			a.fail(w, err)
			return
		}
		f.Append(el)
	}

	born, err := renderer.Datepicker(ctx, "Born", "born", user.Born)
	if err != nil {
		a.fail(w, err)
		return
	}
	roles, err := f.Checkboxes(ctx, "Roles", "roles", roleChoices)
	if err != nil {
		a.fail(w, err)
		return
	}
	f.Append(born, roles, renderer.Submit("Save"))

	a.render(w, r, title, f)
}

func (a *app) render(w http.ResponseWriter, r *http.Request, title string, body markup.Node) {
	renderer, err := formbuilder.Form()
	if err != nil {
		a.fail(w, err)
		return
	}
	messages, err := renderer.Messages(r.Context())
	if err != nil {
		a.fail(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	page := preview.Page{Title: title, Body: body}
	if messages != nil {
		page.Messages = messages
	}
	if err := a.pages.Render(r.Context(), w, page); err != nil {
		a.logger.Error("page not rendered", zap.String("title", title), zap.Error(err))
	}
}

func (a *app) fail(w http.ResponseWriter, err error) {
	a.logger.Error("request failed", zap.Error(err))
	http.Error(w, fmt.Sprintf("internal error: %v", err), http.StatusInternalServerError)
}
