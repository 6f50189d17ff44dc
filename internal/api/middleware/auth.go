package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/picklewheel/picklewheel/internal/cache"
	"github.com/picklewheel/picklewheel/internal/domain"
	"github.com/picklewheel/picklewheel/internal/identity"
	"github.com/picklewheel/picklewheel/internal/service"
)

type contextKey string

const (
	UserKey contextKey = "user"

	// FrontendSecretHeader asserts the request comes from the sanctioned client.
	FrontendSecretHeader = "X-Frontend-Secret"
)

// FrontendSecret rejects requests that do not carry the shared frontend
// secret. It runs before identity resolution and also counts visits, so
// the counter reflects sanctioned-client traffic only.
func FrontendSecret(secret string, counters *cache.Counters) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get(FrontendSecretHeader) != secret {
				log.Printf("ERROR [middleware.FrontendSecret] missing or invalid frontend secret")
				writeError(w, http.StatusForbidden, "Forbidden")
				return
			}

			counters.IncrVisits(r.Context())
			next.ServeHTTP(w, r)
		})
	}
}

// Auth resolves the bearer identity token, observing the identity as a
// side effect, and stores the resulting user on the request context.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Printf("ERROR [middleware.Auth] missing authorization header")
				writeError(w, http.StatusUnauthorized, "Authorization header required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				log.Printf("ERROR [middleware.Auth] invalid authorization header format")
				writeError(w, http.StatusUnauthorized, "Invalid authorization header")
				return
			}

			user, err := authService.Authenticate(r.Context(), parts[1])
			if err != nil {
				if errors.Is(err, identity.ErrInvalidToken) {
					log.Printf("ERROR [middleware.Auth] token validation failed: %v", err)
					writeError(w, http.StatusUnauthorized, "Invalid token")
					return
				}
				log.Printf("ERROR [middleware.Auth] failed to observe identity: %v", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser returns the authenticated user stored by Auth.
func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(UserKey).(*domain.User)
	return user, ok
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
