package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func operatorRequest(t *testing.T, r *chi.Mux, method, path, password string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if password != "" {
		req.Header.Set("Authorization", "Bearer "+password)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOperatorAuth(t *testing.T) {
	r := testRouter(t)

	if w := operatorRequest(t, r, http.MethodGet, "/api/operator/location-check", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("no credentials: status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if w := operatorRequest(t, r, http.MethodGet, "/api/operator/location-check", "wrong"); w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestToggleLocationCheck(t *testing.T) {
	r := testRouter(t)

	w := operatorRequest(t, r, http.MethodGet, "/api/operator/location-check", testOperatorPassword)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var resp LocationCheckResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if !resp.LocationCheck {
		t.Fatal("check should start enabled")
	}

	w = operatorRequest(t, r, http.MethodPost, "/api/operator/location-check/toggle", testOperatorPassword)
	if w.Code != http.StatusOK {
		t.Fatalf("toggle: status = %d: %s", w.Code, w.Body.String())
	}
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.LocationCheck {
		t.Fatal("first toggle should disable")
	}

	w = operatorRequest(t, r, http.MethodPost, "/api/operator/location-check/toggle", testOperatorPassword)
	json.NewDecoder(w.Body).Decode(&resp)
	if !resp.LocationCheck {
		t.Fatal("second toggle should re-enable")
	}
}
