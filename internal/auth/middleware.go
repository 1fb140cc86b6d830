package auth

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/mulan-edu/mulan/internal/model"
	"github.com/mulan-edu/mulan/internal/repository"
)

// contextKey is unexported so only this package can read or write the
// current-user slot in a request context.
type contextKey string

const currentUserKey contextKey = "currentUser"

// CurrentUser resolves the session user on every request and stores the
// full record in the request context. It also refreshes the user's
// last-seen timestamp, so "last seen" on the profile page tracks real
// activity. A session pointing at a deleted user is cleared rather than
// treated as authenticated.
//
// This must run before RequireAuth in the middleware chain.
func CurrentUser(sessions *Sessions, users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := sessions.UserID(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetUserByID(r.Context(), userID)
			if err != nil {
				// Dead session: the account is gone or the store failed.
				// Either way the request proceeds as anonymous.
				_ = sessions.SignOut(w, r)
				next.ServeHTTP(w, r)
				return
			}

			now := time.Now().UTC()
			if err := users.TouchLastSeen(r.Context(), user.ID, now); err == nil {
				user.LastSeen = now
			}

			ctx := context.WithValue(r.Context(), currentUserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth gates protected routes. Anonymous requests are redirected
// to the login page with the original target captured in the next query
// parameter, so a successful login lands back where the user was headed.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			target := r.URL.Path
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, "/login?next="+url.QueryEscape(target), http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFromContext returns the authenticated user placed in the context by
// CurrentUser, or (nil, false) for anonymous requests.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(currentUserKey).(*model.User)
	return user, ok && user != nil
}
