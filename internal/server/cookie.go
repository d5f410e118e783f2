package server

import "net/http"

// stateCookieName carries the sealed progression token. This is the
// only place player progress lives; the server stores nothing.
const stateCookieName = "qh_state"

func stateTokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(stateCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func setStateCookie(w http.ResponseWriter, tok string) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
