package httpapi

import (
	"context"
	"net/http"
	"strings"

	"fitcoach-backend-go/internal/services"
)

type contextKey string

const ctxIdentity contextKey = "identity"

// WithAuth resolves the caller from the bearer token. When allowQuery is set
// the token may also come from the ?auth= query parameter.
func (s *Server) WithAuth(allowQuery bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" && allowQuery {
				token = strings.TrimSpace(r.URL.Query().Get("auth"))
			}
			identity, err := s.Services.Accounts.Authenticate(r.Context(), token)
			if err != nil {
				s.writeServiceError(w, r, err)
				return
			}
			ctx := context.WithValue(r.Context(), ctxIdentity, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
}

func CurrentIdentity(r *http.Request) services.Identity {
	if value, ok := r.Context().Value(ctxIdentity).(services.Identity); ok {
		return value
	}
	return services.Identity{}
}
