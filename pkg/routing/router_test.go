package routing

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/chi/v5"
)

func TestChiResourceMountsNamedHandlers(t *testing.T) {
	router := chi.NewRouter()
	router.Use(MethodOverride)
	mounted := NewChi(router, nil)

	err := mounted.Resource("users", "/users", "user", ResourceHandlers{
		Store: func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, "store")
		},
		Update: func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, "update "+chi.URLParam(r, "user"))
		},
	})
	if err != nil {
		t.Fatalf("resource: %v", err)
	}
	if mounted.Routes().Has("users.index") {
		t.Fatalf("nil handlers should not be registered")
	}

	action, err := mounted.Routes().URL("users.update", map[string]string{"user": "5"})
	if err != nil {
		t.Fatalf("url: %v", err)
	}

	form := url.Values{MethodField: {"PUT"}}
	req := httptest.NewRequest(http.MethodPost, action, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Body.String(); got != "update 5" {
		t.Fatalf("spoofed PUT reached %q", got)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users", nil))
	if got := rec.Body.String(); got != "store" {
		t.Fatalf("POST /users reached %q", got)
	}
}

func TestChiSingleRoutes(t *testing.T) {
	router := chi.NewRouter()
	mounted := NewChi(router, NewRoutes())
	if err := mounted.Get("home", "/", func(w http.ResponseWriter, r *http.Request) { io.WriteString(w, "home") }); err != nil {
		t.Fatalf("get: %v", err)
	}
	if err := mounted.Post("home", "/", nil); err == nil {
		t.Fatalf("expected duplicate name to fail")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Body.String() != "home" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestGinHandleRegistersNamedRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	mounted := NewGin(engine, nil)

	err := mounted.Handle("posts.update", http.MethodPut, "/posts/{post:[0-9]+}", func(c *gin.Context) {
		c.String(http.StatusOK, "post "+c.Param("post"))
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	action, err := mounted.Routes().URL("posts.update", map[string]string{"post": "12"})
	if err != nil || action != "/posts/12" {
		t.Fatalf("url = %q (%v)", action, err)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, action, nil))
	if got := rec.Body.String(); got != "post 12" {
		t.Fatalf("unexpected body %q", got)
	}
}

func TestGinPath(t *testing.T) {
	if got := GinPath("/a/{x}/b/{y:[0-9]+}"); got != "/a/:x/b/:y" {
		t.Fatalf("gin path = %q", got)
	}
}
