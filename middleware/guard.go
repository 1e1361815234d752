package middleware

import (
	"net/http"
	"net/url"

	goSession "github.com/MrEthical07/goSession"
)

// Guard returns middleware enforcing the route gate for the wrapped handler.
// The decision mapping mirrors the admin console's protected views:
//
//   - loading: 503 with a Retry-After hint, since no redirect target is
//     knowable yet.
//   - redirect to login: 303 to the configured login path, carrying the
//     requested location in a "from" query parameter for bounce-back.
//   - redirect to landing: 303 to the configured landing path.
//   - render: the wrapped handler runs.
func Guard(store *goSession.Store, allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if store == nil {
				http.Error(w, "service unavailable", http.StatusServiceUnavailable)
				return
			}

			ctx := goSession.WithRequestOrigin(r.Context(), r.URL.Path)

			switch store.Authorize(ctx, allowedRoles...) {
			case goSession.DecisionLoading:
				w.Header().Set("Retry-After", "1")
				http.Error(w, "session loading", http.StatusServiceUnavailable)

			case goSession.DecisionRedirectLogin:
				target := store.LoginPath() + "?from=" + url.QueryEscape(r.URL.RequestURI())
				http.Redirect(w, r, target, http.StatusSeeOther)

			case goSession.DecisionRedirectLanding:
				http.Redirect(w, r, store.LandingPath(), http.StatusSeeOther)

			case goSession.DecisionRender:
				next.ServeHTTP(w, r.WithContext(ctx))
			}
		})
	}
}
