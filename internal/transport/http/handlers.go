package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"civiccents-service/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

func (h *Handler) listQuizzes(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	quizzes, err := h.quizzes.ListQuizzes(r.Context(), category)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load quizzes")
		return
	}
	if quizzes == nil {
		quizzes = []domain.Quiz{}
	}
	writeJSON(w, http.StatusOK, quizzes)
}

func (h *Handler) getQuiz(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.quizzes.GetQuiz(r.Context(), chi.URLParam(r, "quizID"))
	if errors.Is(err, domain.ErrQuizNotFound) {
		writeError(w, http.StatusNotFound, "quiz not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load quiz")
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

type attemptRequest struct {
	Answers []string `json:"answers"`
}

func (h *Handler) submitAttempt(w http.ResponseWriter, r *http.Request) {
	var req attemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := h.quizzes.SubmitAttempt(r.Context(), bearerToken(r), chi.URLParam(r, "quizID"), req.Answers)
	if errors.Is(err, domain.ErrQuizNotFound) {
		writeError(w, http.StatusNotFound, "quiz not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to score attempt")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) getProgress(w http.ResponseWriter, r *http.Request) {
	summary, err := h.progress.Summary(r.Context(), bearerToken(r))
	if errors.Is(err, domain.ErrUnauthenticated) {
		writeError(w, http.StatusUnauthorized, "sign in to view progress")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load progress")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

type biasRequest struct {
	ArticleURL  string `json:"article_url"`
	ArticleText string `json:"article_text"`
}

func (h *Handler) analyzeBias(w http.ResponseWriter, r *http.Request) {
	if h.bias == nil {
		writeError(w, http.StatusServiceUnavailable, "assistant not configured")
		return
	}
	var req biasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	report, err := h.bias.Analyze(r.Context(), req.ArticleURL, req.ArticleText)
	if errors.Is(err, domain.ErrEmptyArticle) {
		writeError(w, http.StatusBadRequest, "provide an article URL or text")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadGateway, "Unable to analyze the article right now. Please try again.")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

type chatRequest struct {
	Message string               `json:"message"`
	History []domain.ChatMessage `json:"history"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func (h *Handler) chat(w http.ResponseWriter, r *http.Request) {
	if h.chatbot == nil {
		writeError(w, http.StatusServiceUnavailable, "assistant not configured")
		return
	}
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Reply: h.chatbot.Reply(r.Context(), req.History, req.Message)})
}

func (h *Handler) marketStocks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.sim.Snapshot())
}

type orderRequest struct {
	Symbol string `json:"symbol"`
	Shares int    `json:"shares"`
	Side   string `json:"side"`
}

func (h *Handler) marketOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var err error
	switch req.Side {
	case "buy":
		err = h.sim.Buy(req.Symbol, req.Shares)
	case "sell":
		err = h.sim.Sell(req.Symbol, req.Shares)
	default:
		writeError(w, http.StatusBadRequest, "side must be buy or sell")
		return
	}
	switch {
	case errors.Is(err, domain.ErrInvalidShares):
		writeError(w, http.StatusBadRequest, "shares must be positive")
	case errors.Is(err, domain.ErrUnknownSymbol):
		writeError(w, http.StatusBadRequest, "unknown symbol")
	case errors.Is(err, domain.ErrInsufficientFunds):
		writeError(w, http.StatusBadRequest, "not enough cash")
	case errors.Is(err, domain.ErrInsufficientShares):
		writeError(w, http.StatusBadRequest, "not enough shares")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "order failed")
	default:
		writeJSON(w, http.StatusOK, h.sim.Snapshot())
	}
}

func (h *Handler) marketReset(w http.ResponseWriter, r *http.Request) {
	h.sim.Reset()
	writeJSON(w, http.StatusOK, h.sim.Snapshot())
}

func (h *Handler) marketNews(w http.ResponseWriter, r *http.Request) {
	if h.news == nil {
		writeError(w, http.StatusServiceUnavailable, "assistant not configured")
		return
	}
	snap := h.sim.Snapshot()
	symbols := make([]string, 0, len(snap.Stocks))
	for _, s := range snap.Stocks {
		symbols = append(symbols, s.Symbol)
	}
	articles, err := h.news.Fetch(r.Context(), symbols)
	if err != nil {
		writeError(w, http.StatusBadGateway, "Unable to fetch market news right now. Please try again.")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]domain.NewsArticle{"articles": articles})
}

func (h *Handler) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	game := chi.URLParam(r, "game")
	if game != "math" && game != "word" {
		writeError(w, http.StatusNotFound, "unknown game")
		return
	}
	entries, err := h.leaderboard.Top(r.Context(), game)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load leaderboard")
		return
	}
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
