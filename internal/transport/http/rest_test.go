package http

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"civiccents-service/internal/app"
	"civiccents-service/internal/domain"
	"civiccents-service/internal/infra/memory"
	"civiccents-service/internal/market"
)

type fakeLeaderboard struct {
	mu     sync.Mutex
	scores map[string]map[string]int
}

func newFakeLeaderboard() *fakeLeaderboard {
	return &fakeLeaderboard{scores: make(map[string]map[string]int)}
}

func (f *fakeLeaderboard) Record(_ context.Context, game, name string, score int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.scores[game] == nil {
		f.scores[game] = make(map[string]int)
	}
	if score > f.scores[game][name] {
		f.scores[game][name] = score
	}
	return nil
}

func (f *fakeLeaderboard) Top(_ context.Context, game string) ([]domain.LeaderboardEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var entries []domain.LeaderboardEntry
	for name, score := range f.scores[game] {
		entries = append(entries, domain.LeaderboardEntry{Name: name, Score: score})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
	return entries, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *fakeLeaderboard) {
	t.Helper()
	quizRepo := memory.NewQuizRepository(memory.NewStaticQuizLoader(memory.SeedQuizzes()), time.Minute)
	progressStore := memory.NewProgressStore()
	auth := memory.NewStaticAuthProvider(map[string]domain.User{
		"token-1": {Email: "kid@example.com"},
	})
	lb := newFakeLeaderboard()
	handler := NewHandler(
		app.NewQuizService(quizRepo, progressStore, auth),
		app.NewProgressService(quizRepo, progressStore, auth),
		nil, nil,
		market.NewSimulator(rand.New(rand.NewSource(1))),
		nil,
		lb,
	)
	server := httptest.NewServer(NewRouter(handler, nil))
	t.Cleanup(server.Close)
	return server, lb
}

func getJSON(t *testing.T, url, token string, out any) int {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, url, token string, body, out any) int {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func TestHealthz(t *testing.T) {
	server, _ := newTestServer(t)
	if code := getJSON(t, server.URL+"/healthz", "", nil); code != http.StatusOK {
		t.Fatalf("healthz = %d", code)
	}
}

func TestListQuizzesFiltersByCategory(t *testing.T) {
	server, _ := newTestServer(t)

	var all []domain.Quiz
	if code := getJSON(t, server.URL+"/api/quizzes", "", &all); code != http.StatusOK {
		t.Fatalf("list = %d", code)
	}
	if len(all) != 4 {
		t.Fatalf("got %d quizzes", len(all))
	}

	var finance []domain.Quiz
	if code := getJSON(t, server.URL+"/api/quizzes?category=finance", "", &finance); code != http.StatusOK {
		t.Fatalf("list finance = %d", code)
	}
	if len(finance) != 2 {
		t.Fatalf("got %d finance quizzes", len(finance))
	}
	for _, q := range finance {
		if q.Category != "finance" {
			t.Fatalf("got category %q", q.Category)
		}
	}
}

func TestGetQuizNotFound(t *testing.T) {
	server, _ := newTestServer(t)
	if code := getJSON(t, server.URL+"/api/quizzes/nope", "", nil); code != http.StatusNotFound {
		t.Fatalf("got %d, want 404", code)
	}
}

func TestSubmitAttemptAndProgress(t *testing.T) {
	server, _ := newTestServer(t)

	var quiz domain.Quiz
	if code := getJSON(t, server.URL+"/api/quizzes/budgeting-basics", "", &quiz); code != http.StatusOK {
		t.Fatalf("get quiz = %d", code)
	}
	answers := make([]string, len(quiz.Questions))
	for i, q := range quiz.Questions {
		answers[i] = q.CorrectAnswer
	}
	answers[len(answers)-1] = "wrong"

	var result domain.AttemptResult
	code := postJSON(t, server.URL+"/api/quizzes/budgeting-basics/attempts", "token-1",
		map[string]any{"answers": answers}, &result)
	if code != http.StatusOK {
		t.Fatalf("submit = %d", code)
	}
	if result.Score != 80 || result.CorrectAnswers != 4 || !result.Saved {
		t.Fatalf("result = %+v", result)
	}

	var summary app.ProgressSummary
	if code := getJSON(t, server.URL+"/api/progress", "token-1", &summary); code != http.StatusOK {
		t.Fatalf("progress = %d", code)
	}
	if summary.CompletedQuizzes != 1 || summary.AverageScore != 80 {
		t.Fatalf("summary = %+v", summary)
	}
	if len(summary.Attempts) != 1 || summary.Attempts[0].QuizID != "budgeting-basics" {
		t.Fatalf("attempts = %+v", summary.Attempts)
	}
}

func TestProgressRequiresAuth(t *testing.T) {
	server, _ := newTestServer(t)
	if code := getJSON(t, server.URL+"/api/progress", "", nil); code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401", code)
	}
}

func TestAssistantRoutesUnavailableWithoutLLM(t *testing.T) {
	server, _ := newTestServer(t)
	if code := postJSON(t, server.URL+"/api/chat", "", map[string]any{"message": "hi"}, nil); code != http.StatusServiceUnavailable {
		t.Fatalf("chat = %d, want 503", code)
	}
	if code := postJSON(t, server.URL+"/api/bias/analyze", "", map[string]any{"article_text": "x"}, nil); code != http.StatusServiceUnavailable {
		t.Fatalf("bias = %d, want 503", code)
	}
	if code := getJSON(t, server.URL+"/api/market/news", "", nil); code != http.StatusServiceUnavailable {
		t.Fatalf("news = %d, want 503", code)
	}
}

func TestMarketOrders(t *testing.T) {
	server, _ := newTestServer(t)

	var snap market.Snapshot
	code := postJSON(t, server.URL+"/api/market/orders", "",
		map[string]any{"symbol": "AAPL", "shares": 5, "side": "buy"}, &snap)
	if code != http.StatusOK {
		t.Fatalf("buy = %d", code)
	}
	if snap.Cash >= 10000 {
		t.Fatalf("cash did not decrease: %v", snap.Cash)
	}
	if len(snap.Positions) != 1 || snap.Positions[0].Shares != 5 {
		t.Fatalf("positions = %+v", snap.Positions)
	}

	if code := postJSON(t, server.URL+"/api/market/orders", "",
		map[string]any{"symbol": "AAPL", "shares": 50, "side": "sell"}, nil); code != http.StatusBadRequest {
		t.Fatalf("oversell = %d, want 400", code)
	}
	if code := postJSON(t, server.URL+"/api/market/orders", "",
		map[string]any{"symbol": "AAPL", "shares": 1, "side": "hold"}, nil); code != http.StatusBadRequest {
		t.Fatalf("bad side = %d, want 400", code)
	}

	if code := postJSON(t, server.URL+"/api/market/reset", "", nil, &snap); code != http.StatusOK {
		t.Fatalf("reset = %d", code)
	}
	if snap.Cash != 10000 || len(snap.Positions) != 0 {
		t.Fatalf("snapshot after reset = %+v", snap)
	}
}

func TestLeaderboardEndpoint(t *testing.T) {
	server, lb := newTestServer(t)
	if err := lb.Record(context.Background(), "math", "ada", 420); err != nil {
		t.Fatalf("record: %v", err)
	}

	var entries []domain.LeaderboardEntry
	if code := getJSON(t, server.URL+"/api/leaderboard/math", "", &entries); code != http.StatusOK {
		t.Fatalf("leaderboard = %d", code)
	}
	if len(entries) != 1 || entries[0].Name != "ada" || entries[0].Score != 420 {
		t.Fatalf("entries = %+v", entries)
	}

	if code := getJSON(t, server.URL+"/api/leaderboard/chess", "", nil); code != http.StatusNotFound {
		t.Fatalf("unknown game = %d, want 404", code)
	}
}
