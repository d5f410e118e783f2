package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func postJSON(t *testing.T, r *chi.Mux, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshaling body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitResult(t *testing.T) {
	r := testRouter(t)

	w := get(t, r, "/api/scenarios/ancient-blood/init/qr-ab-plaza", nil)
	cookies := []*http.Cookie{stateCookie(t, w)}

	body := SubmitResultRequest{Nickname: "Maria", ElapsedSeconds: 542}

	w2 := postJSON(t, r, "/api/scenarios/ancient-blood/leaderboard", body, cookies)
	if w2.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w2.Code, w2.Body.String())
	}
	var resp SubmitResultResponse
	json.NewDecoder(w2.Body).Decode(&resp)
	if !resp.Recorded {
		t.Fatal("first submission not recorded")
	}

	// Resubmitting the same run is a no-op.
	w3 := postJSON(t, r, "/api/scenarios/ancient-blood/leaderboard", body, cookies)
	if w3.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w3.Code, w3.Body.String())
	}
	json.NewDecoder(w3.Body).Decode(&resp)
	if resp.Recorded {
		t.Fatal("resubmission recorded a second row")
	}

	w4 := get(t, r, "/api/scenarios/ancient-blood/leaderboard", nil)
	if w4.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w4.Code, w4.Body.String())
	}
	var board LeaderboardResponse
	json.NewDecoder(w4.Body).Decode(&board)
	if len(board.Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(board.Entries))
	}
	if board.Entries[0].Nickname != "Maria" || board.Entries[0].ElapsedSeconds != 542 {
		t.Errorf("entry = %+v", board.Entries[0])
	}
}

func TestSubmitResultValidation(t *testing.T) {
	r := testRouter(t)

	w := get(t, r, "/api/scenarios/ancient-blood/init/qr-ab-plaza", nil)
	cookies := []*http.Cookie{stateCookie(t, w)}

	// No cookie: hard failure.
	if w := postJSON(t, r, "/api/scenarios/ancient-blood/leaderboard",
		SubmitResultRequest{Nickname: "Maria", ElapsedSeconds: 10}, nil); w.Code != http.StatusConflict {
		t.Errorf("no cookie: status = %d, want %d", w.Code, http.StatusConflict)
	}

	// Token is for another scenario.
	if w := postJSON(t, r, "/api/scenarios/lima-centro/leaderboard",
		SubmitResultRequest{Nickname: "Maria", ElapsedSeconds: 10}, cookies); w.Code != http.StatusConflict {
		t.Errorf("scenario mismatch: status = %d, want %d", w.Code, http.StatusConflict)
	}

	// Empty nickname.
	if w := postJSON(t, r, "/api/scenarios/ancient-blood/leaderboard",
		SubmitResultRequest{Nickname: "   ", ElapsedSeconds: 10}, cookies); w.Code != http.StatusBadRequest {
		t.Errorf("empty nickname: status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestLeaderboardUnknownScenario(t *testing.T) {
	r := testRouter(t)

	if w := get(t, r, "/api/scenarios/atlantis/leaderboard", nil); w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
