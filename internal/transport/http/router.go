package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"civiccents-service/internal/app"
	"civiccents-service/internal/assist"
	"civiccents-service/internal/domain"
	"civiccents-service/internal/market"
)

// Leaderboard is the speed-challenge ranking consumed by the transport.
type Leaderboard interface {
	Record(ctx context.Context, game, name string, score int) error
	Top(ctx context.Context, game string) ([]domain.LeaderboardEntry, error)
}

// Handler bundles the services behind the REST and websocket endpoints.
// The assistant fields may be nil when no LLM is configured; their routes
// then answer 503.
type Handler struct {
	quizzes     *app.QuizService
	progress    *app.ProgressService
	chatbot     *assist.Chatbot
	bias        *assist.BiasAnalyzer
	sim         *market.Simulator
	news        *market.NewsService
	leaderboard Leaderboard
}

func NewHandler(
	quizzes *app.QuizService,
	progress *app.ProgressService,
	chatbot *assist.Chatbot,
	bias *assist.BiasAnalyzer,
	sim *market.Simulator,
	news *market.NewsService,
	leaderboard Leaderboard,
) *Handler {
	return &Handler{
		quizzes:     quizzes,
		progress:    progress,
		chatbot:     chatbot,
		bias:        bias,
		sim:         sim,
		news:        news,
		leaderboard: leaderboard,
	}
}

// NewRouter wires every endpoint onto a chi router.
func NewRouter(h *Handler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))

		r.Route("/quizzes", func(r chi.Router) {
			r.Get("/", h.listQuizzes)
			r.Get("/{quizID}", h.getQuiz)
			r.Post("/{quizID}/attempts", h.submitAttempt)
		})
		r.Get("/progress", h.getProgress)
		r.Post("/bias/analyze", h.analyzeBias)
		r.Post("/chat", h.chat)

		r.Route("/market", func(r chi.Router) {
			r.Get("/stocks", h.marketStocks)
			r.Post("/orders", h.marketOrder)
			r.Post("/reset", h.marketReset)
			r.Get("/news", h.marketNews)
		})

		r.Get("/leaderboard/{game}", h.getLeaderboard)
	})

	r.Get("/ws/speed", h.serveSpeedWS)
	r.Get("/ws/budget", h.serveBudgetWS)
	r.Get("/ws/market", h.serveMarketWS)

	return r
}
