package routing

import (
	"net/http"
	"strings"
)

// MethodField is the hidden input carrying the spoofed HTTP method.
const MethodField = "_method"

// MethodOverride rewrites POST requests carrying a _method form value of
// PUT, PATCH or DELETE so routers dispatch them to the matching route.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			switch method := strings.ToUpper(r.PostFormValue(MethodField)); method {
			case http.MethodPut, http.MethodPatch, http.MethodDelete:
				r.Method = method
			}
		}
		next.ServeHTTP(w, r)
	})
}
