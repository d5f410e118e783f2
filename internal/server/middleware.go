package server

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// operatorAuthMiddleware gates operator routes behind a shared password
// checked against a bcrypt hash from configuration. Operators send the
// password as a bearer credential.
func operatorAuthMiddleware(passwordHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			password, found := strings.CutPrefix(auth, "Bearer ")
			if !found || password == "" {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)); err != nil {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
