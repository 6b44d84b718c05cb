package api

import (
	"net/http"
	"strings"

	"github.com/foodgramapp/foodgram-server/internal/auth"
	"github.com/foodgramapp/foodgram-server/internal/store"
)

// viewerMiddleware resolves an optional "Bearer <token>" header into the
// viewer's user ID. A missing, malformed or expired token, or one whose
// user no longer exists, leaves the request anonymous.
func viewerMiddleware(tokens *auth.TokenService, st store.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokens.VerifyAccessToken(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			if _, err := st.GetUser(r.Context(), claims.UserID); err != nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(withViewerID(r.Context(), claims.UserID)))
		})
	}
}

// bearerToken extracts the token from an Authorization header value.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
