package middleware

import (
	"context"
	"net/http"

	"github.com/Dan9191/task-manager/internal/models"
	"github.com/Dan9191/task-manager/internal/service"
)

// SessionCookie is the name of the signed session cookie.
const SessionCookie = "task_session"

type contextKey struct{}

var sessionKey contextKey

// AuthMiddleware resolves the session cookie to a live session before any
// data access. Unauthenticated requests are redirected to the login entry
// point and processing stops.
func AuthMiddleware(svc *service.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
			session, err := svc.Authenticate(r.Context(), cookie.Value)
			if err != nil {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
			ctx := context.WithValue(r.Context(), sessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFrom returns the authenticated session stored by AuthMiddleware.
func SessionFrom(ctx context.Context) (*models.Session, bool) {
	s, ok := ctx.Value(sessionKey).(*models.Session)
	return s, ok
}
