package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nattawatp/ai-tools-navigator/pkg/config"
)

type Middleware struct {
	jwtSecret []byte
}

func NewMiddleware(cfg *config.Config) *Middleware {
	return &Middleware{
		jwtSecret: []byte(cfg.JWTSecret),
	}
}

// AuthMiddleware verifies the JWT token from the cookie and rejects
// requests that lack a valid one. It only establishes WHO the actor
// is; role checks happen inside the services on every call.
func (m *Middleware) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		profileID, ok := m.profileIDFromCookie(r)
		if !ok {
			if isAPIRequest(r) {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
			} else {
				http.Redirect(w, r, "/auth/google/login", http.StatusTemporaryRedirect)
			}
			return
		}

		ctx := context.WithValue(r.Context(), "user_id", profileID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth attaches the actor when a valid cookie is present but
// never rejects; anonymous browsing and anonymous clicks are allowed.
func (m *Middleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if profileID, ok := m.profileIDFromCookie(r); ok {
			r = r.WithContext(context.WithValue(r.Context(), "user_id", profileID))
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) profileIDFromCookie(r *http.Request) (string, bool) {
	cookie, err := r.Cookie("auth_token")
	if err != nil {
		return "", false
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		return m.jwtSecret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}

// actorID reads the authenticated profile id from the request context,
// empty for anonymous requests.
func actorID(r *http.Request) string {
	id, _ := r.Context().Value("user_id").(string)
	return id
}

func isAPIRequest(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/")
}
