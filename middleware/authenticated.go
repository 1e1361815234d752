package middleware

import (
	"net/http"

	goSession "github.com/MrEthical07/goSession"
)

// RequireAuthenticated returns middleware that admits any authenticated
// session regardless of access level. Unauthenticated requests are redirected
// to the login path; there is no landing redirect because no allow-list
// exists to fail.
func RequireAuthenticated(store *goSession.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if store == nil {
				http.Error(w, "service unavailable", http.StatusServiceUnavailable)
				return
			}

			snap := store.Snapshot()
			switch {
			case snap.Loading:
				w.Header().Set("Retry-After", "1")
				http.Error(w, "session loading", http.StatusServiceUnavailable)
			case !snap.Authenticated:
				http.Redirect(w, r, store.LoginPath(), http.StatusSeeOther)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
