package middleware

import (
	"context"
	"net/http"

	"github.com/AnshRaj112/portfolio-backend/internal/apperrors"
	"github.com/AnshRaj112/portfolio-backend/internal/logger"
	"github.com/AnshRaj112/portfolio-backend/internal/models"
)

// SessionCookie carries the signed session token.
const SessionCookie = "token"

type ctxKey int

const userKey ctxKey = iota

// Authenticator resolves a session token to its identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// ErrorWriter renders err as the API error envelope.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// RequireAuth rejects requests without a valid session cookie and stores the
// acting identity in the request context.
func RequireAuth(authn Authenticator, writeErr ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			if c, err := r.Cookie(SessionCookie); err == nil {
				token = c.Value
			}

			u, err := authn.Authenticate(r.Context(), token)
			if err != nil {
				RecordAuthAttempt("session", false)
				if apperrors.HTTPStatus(err) >= http.StatusInternalServerError {
					logger.FromRequest(r).Error().Err(err).Msg("authentication failed")
				} else {
					logger.FromRequest(r).Debug().Err(err).Msg("request rejected by auth gate")
				}
				writeErr(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFromContext returns the identity stored by RequireAuth.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey).(*models.User)
	return u, ok && u != nil
}
