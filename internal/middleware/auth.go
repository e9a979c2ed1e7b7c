package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/amberbeaumont/IThelpdesklite/internal/config"
	"github.com/amberbeaumont/IThelpdesklite/internal/models"
	"github.com/amberbeaumont/IThelpdesklite/internal/utils"
)

type ctxKey string

const (
	CtxUserID ctxKey = "uid"
	CtxRole   ctxKey = "role"
)

const SessionCookie = "session"

func WithAuth(log zerolog.Logger, cfg config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// JWT from cookie "session" or Authorization: Bearer
			var tok string
			if c, err := r.Cookie(SessionCookie); err == nil {
				tok = c.Value
			} else if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
				tok = strings.TrimPrefix(h, "Bearer ")
			}

			if tok == "" {
				next.ServeHTTP(w, r) // unauthenticated; handlers can decide
				return
			}

			claims, err := utils.ParseJWT(cfg.SessionSecret, tok)
			if err != nil {
				log.Debug().Err(err).Msg("rejecting session token")
				// clear broken/expired cookie so it stops being sent
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    "",
					Path:     "/",
					HttpOnly: true,
					MaxAge:   -1,
				})
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), claims.UserID, models.Role(claims.Role))))
		})
	}
}

// WithActor stores the authenticated identity in ctx.
func WithActor(ctx context.Context, uid string, role models.Role) context.Context {
	ctx = context.WithValue(ctx, CtxUserID, uid)
	return context.WithValue(ctx, CtxRole, string(role))
}

// Actor returns the authenticated user id and role, if any.
func Actor(ctx context.Context) (string, models.Role) {
	uid, _ := utils.GetString(ctx, CtxUserID)
	role, _ := utils.GetString(ctx, CtxRole)
	return uid, models.Role(role)
}
