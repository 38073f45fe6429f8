package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vovakirdan/beyond2048/internal/auth"
	"github.com/vovakirdan/beyond2048/internal/session"
	"github.com/vovakirdan/beyond2048/internal/storage"
)

type testEnv struct {
	srv    *Server
	store  *storage.Store
	issuer *auth.Issuer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	issuer, err := auth.NewIssuer("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer() failed: %v", err)
	}

	srv := NewServer(Options{
		Store:  store,
		Issuer: issuer,
		Game:   GameOptions{Size: 4, FourProbability: 0.1, HistoryLimit: 100, Seed: 7},
	})
	return &testEnv{srv: srv, store: store, issuer: issuer}
}

// testResponse mirrors envelope with a raw data field.
type testResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Token   string          `json:"token"`
	User    *storage.User   `json:"user"`
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (int, testResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.srv.ServeHTTP(rec, req)

	var resp testResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("%s %s: cannot decode %q: %v", method, path, rec.Body.String(), err)
	}
	return rec.Code, resp
}

func (e *testEnv) signup(t *testing.T, username string) string {
	t.Helper()
	code, resp := e.do(t, "POST", "/api/auth/signup", "", credentials{
		Name: "Test " + username, Username: username, Password: "secret123",
	})
	if code != http.StatusCreated {
		t.Fatalf("signup %s: status = %d (%s), want 201", username, code, resp.Message)
	}
	return resp.Token
}

func TestSignupLoginMe(t *testing.T) {
	env := newTestEnv(t)

	code, resp := env.do(t, "POST", "/api/auth/signup", "", credentials{
		Name: "Anna", Username: "anna", Password: "secret123",
	})
	if code != http.StatusCreated {
		t.Fatalf("signup status = %d, want 201", code)
	}
	if resp.Message != "User registered successfully" {
		t.Errorf("signup message = %q", resp.Message)
	}
	if resp.Token == "" || resp.User == nil || resp.User.Username != "anna" {
		t.Fatalf("signup response missing token or user: %+v", resp)
	}

	code, resp = env.do(t, "POST", "/api/auth/signup", "", credentials{
		Name: "Other", Username: "ANNA", Password: "secret123",
	})
	if code != http.StatusBadRequest || resp.Message != "User with this username already exists" {
		t.Errorf("duplicate signup = %d %q", code, resp.Message)
	}

	code, resp = env.do(t, "POST", "/api/auth/login", "", credentials{Username: "anna", Password: "wrong-pass"})
	if code != http.StatusUnauthorized || resp.Message != "Invalid username or password" {
		t.Errorf("bad login = %d %q", code, resp.Message)
	}

	code, resp = env.do(t, "POST", "/api/auth/login", "", credentials{Username: "anna", Password: "secret123"})
	if code != http.StatusOK || resp.Token == "" {
		t.Fatalf("login = %d %q", code, resp.Message)
	}
	token := resp.Token

	code, resp = env.do(t, "GET", "/api/auth/me", token, nil)
	if code != http.StatusOK {
		t.Fatalf("me status = %d, want 200", code)
	}
	if resp.User == nil || resp.User.Name != "Anna" {
		t.Errorf("me user = %+v", resp.User)
	}
	var sum storage.Summary
	if err := json.Unmarshal(resp.Data, &sum); err != nil {
		t.Fatalf("me data: %v", err)
	}
	if sum.GamesPlayed != 0 {
		t.Errorf("GamesPlayed = %d, want 0", sum.GamesPlayed)
	}

	code, resp = env.do(t, "POST", "/api/auth/logout", token, nil)
	if code != http.StatusOK || resp.Message != "Logged out successfully" {
		t.Errorf("logout = %d %q", code, resp.Message)
	}
}

func TestSignupValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		req  credentials
		msg  string
	}{
		{"missing name", credentials{Username: "a", Password: "secret123"}, "Please provide name, username and password"},
		{"missing password", credentials{Name: "A", Username: "a"}, "Please provide name, username and password"},
		{"short password", credentials{Name: "A", Username: "a", Password: "abc"}, "Password is too short"},
		{"long password", credentials{Name: "A", Username: "a", Password: strings.Repeat("x", auth.MaxPasswordLength+1)}, "Password is too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := env.do(t, "POST", "/api/auth/signup", "", tt.req)
			if code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", code)
			}
			if resp.Message != tt.msg {
				t.Errorf("message = %q, want %q", resp.Message, tt.msg)
			}
		})
	}
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t)

	stale, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		UserID: "someone",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	tests := []struct {
		name  string
		token string
		msg   string
	}{
		{"no token", "", "No authentication token, access denied"},
		{"garbage", "not-a-token", "Invalid token"},
		{"expired", stale, "Token has expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := env.do(t, "GET", "/api/stats", tt.token, nil)
			if code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", code)
			}
			if resp.Message != tt.msg {
				t.Errorf("message = %q, want %q", resp.Message, tt.msg)
			}
		})
	}
}

func TestStatsLifecycle(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "ben")

	results := []session.GameResult{
		{Score: 1200, HighestTile: 128, Moves: 150, Result: session.ResultLoss, TimePlayedSeconds: 300},
		{Score: 20000, HighestTile: 2048, Moves: 900, Result: session.ResultWin, Won: true, TimePlayedSeconds: 1500},
	}
	for _, r := range results {
		code, resp := env.do(t, "POST", "/api/stats", token, r)
		if code != http.StatusOK {
			t.Fatalf("record status = %d (%s), want 200", code, resp.Message)
		}
	}

	code, resp := env.do(t, "GET", "/api/stats", token, nil)
	if code != http.StatusOK {
		t.Fatalf("get stats status = %d", code)
	}
	var sum storage.Summary
	if err := json.Unmarshal(resp.Data, &sum); err != nil {
		t.Fatalf("stats data: %v", err)
	}
	if sum.GamesPlayed != 2 || sum.TotalWins != 1 || sum.BestScore != 20000 {
		t.Errorf("stats = %+v", sum.PlayerStats)
	}
	if sum.AverageScore != 10600 {
		t.Errorf("AverageScore = %d, want 10600", sum.AverageScore)
	}
	if len(sum.GameHistory) != 2 {
		t.Errorf("len(GameHistory) = %d, want 2", len(sum.GameHistory))
	}
	for _, g := range sum.GameHistory {
		if g.Timestamp.IsZero() {
			t.Errorf("game %s has zero timestamp", g.ID)
		}
	}

	code, resp = env.do(t, "POST", "/api/stats", token, session.GameResult{Score: -1, Result: session.ResultLoss})
	if code != http.StatusBadRequest || resp.Message != "Invalid game result" {
		t.Errorf("invalid result = %d %q", code, resp.Message)
	}

	code, resp = env.do(t, "DELETE", "/api/stats", token, nil)
	if code != http.StatusOK || resp.Message != "Stats reset successfully" {
		t.Fatalf("reset = %d %q", code, resp.Message)
	}

	_, resp = env.do(t, "GET", "/api/stats", token, nil)
	sum = storage.Summary{}
	if err := json.Unmarshal(resp.Data, &sum); err != nil {
		t.Fatalf("stats data: %v", err)
	}
	if sum.GamesPlayed != 0 || len(sum.GameHistory) != 0 {
		t.Errorf("after reset: %+v", sum)
	}
}

func TestLeaderboard(t *testing.T) {
	env := newTestEnv(t)

	scores := map[string]int{"anna": 500, "ben": 3000, "cleo": 1500}
	for name, score := range scores {
		token := env.signup(t, name)
		code, _ := env.do(t, "POST", "/api/stats", token, session.GameResult{
			Score: score, HighestTile: 64, Moves: 10, Result: session.ResultLoss,
		})
		if code != http.StatusOK {
			t.Fatalf("record %s: status = %d", name, code)
		}
	}
	env.signup(t, "idle")

	code, resp := env.do(t, "GET", "/api/stats/leaderboard?limit=2", "", nil)
	if code != http.StatusOK {
		t.Fatalf("leaderboard status = %d", code)
	}
	var entries []storage.LeaderboardEntry
	if err := json.Unmarshal(resp.Data, &entries); err != nil {
		t.Fatalf("leaderboard data: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Username != "ben" || entries[1].Username != "cleo" {
		t.Errorf("order = %s, %s; want ben, cleo", entries[0].Username, entries[1].Username)
	}
	if entries[0].Rank != 1 || entries[1].Rank != 2 {
		t.Errorf("ranks = %d, %d", entries[0].Rank, entries[1].Rank)
	}

	code, resp = env.do(t, "GET", "/api/stats/leaderboard?sort=bogus", "", nil)
	if code != http.StatusBadRequest || resp.Message != "Invalid sort parameter" {
		t.Errorf("bad sort = %d %q", code, resp.Message)
	}

	code, resp = env.do(t, "GET", "/api/stats/leaderboard?limit=abc", "", nil)
	if code != http.StatusBadRequest || resp.Message != "Invalid limit parameter" {
		t.Errorf("bad limit = %d %q", code, resp.Message)
	}
}

func TestLeaderboardEmpty(t *testing.T) {
	env := newTestEnv(t)

	code, resp := env.do(t, "GET", "/api/stats/leaderboard", "", nil)
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if string(resp.Data) != "[]" {
		t.Errorf("data = %s, want []", resp.Data)
	}
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)
	code, resp := env.do(t, "GET", "/healthz", "", nil)
	if code != http.StatusOK || !resp.Success {
		t.Errorf("healthz = %d %+v", code, resp)
	}
}
