package cli

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	supa "github.com/supabase-community/supabase-go"

	"civiccents-service/internal/app"
	"civiccents-service/internal/assist"
	"civiccents-service/internal/config"
	"civiccents-service/internal/domain"
	"civiccents-service/internal/infra/memory"
	pginfra "civiccents-service/internal/infra/postgres"
	redisinfra "civiccents-service/internal/infra/redis"
	supainfra "civiccents-service/internal/infra/supabase"
	"civiccents-service/internal/llm"
	"civiccents-service/internal/market"
	transport "civiccents-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the learning service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := pginfra.SeedQuizzes(ctx, pool, memory.SeedQuizzes()); err != nil {
			log.Printf("seed quizzes: %v", err)
		}
	}

	var loader memory.QuizLoader = memory.NewStaticQuizLoader(memory.SeedQuizzes())
	if pool != nil {
		loader = pginfra.NewQuizLoader(pool)
	}

	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	var quizRepo app.QuizRepository
	if redisClient != nil {
		quizRepo = redisinfra.NewQuizCache(redisClient, loader, quizTTL)
	} else {
		quizRepo = memory.NewQuizRepository(loader, quizTTL)
	}

	var progressRepo app.ProgressRepository
	var auth app.AuthProvider
	switch {
	case cfg.Supabase.URL != "" && cfg.Supabase.Key != "":
		supaClient, err := supa.NewClient(cfg.Supabase.URL, cfg.Supabase.Key, nil)
		if err != nil {
			return err
		}
		progressRepo = supainfra.NewProgressRepository(supaClient)
		auth = supainfra.NewAuthProvider(supaClient)
	case pool != nil:
		progressRepo = pginfra.NewProgressRepository(pool)
		auth = devAuthProvider()
	default:
		progressRepo = memory.NewProgressStore()
		auth = devAuthProvider()
	}

	var leaderboard transport.Leaderboard
	if redisClient != nil {
		leaderboard = redisinfra.NewLeaderboard(redisClient, cfg.Leaderboard.Size)
	} else {
		leaderboard = memory.NewLeaderboard(cfg.Leaderboard.Size)
	}

	var chatbot *assist.Chatbot
	var bias *assist.BiasAnalyzer
	var news *market.NewsService
	if cfg.Gemini.APIKey != "" {
		gemini, err := llm.NewGemini(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return err
		}
		defer gemini.Close()
		chatbot = assist.NewChatbot(gemini)
		bias = assist.NewBiasAnalyzer(gemini)
		news = market.NewNewsService(gemini)
	} else {
		log.Printf("no gemini api key, assistant endpoints disabled")
	}

	sim := market.NewSimulator(rand.New(rand.NewSource(time.Now().UnixNano())))
	simCtx, stopSim := context.WithCancel(ctx)
	defer stopSim()
	go sim.Run(simCtx, config.TTLDuration(cfg.Market.TickInterval, market.TickInterval))

	quizService := app.NewQuizService(quizRepo, progressRepo, auth)
	progressService := app.NewProgressService(quizRepo, progressRepo, auth)

	handler := transport.NewHandler(quizService, progressService, chatbot, bias, sim, news, leaderboard)
	router := transport.NewRouter(handler, cfg.Server.AllowedOrigins)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting civiccents service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// devAuthProvider maps a single well-known token to a local identity so
// progress can be exercised without Supabase.
func devAuthProvider() app.AuthProvider {
	email := os.Getenv("DEV_USER_EMAIL")
	if email == "" {
		email = "student@localhost"
	}
	return memory.NewStaticAuthProvider(map[string]domain.User{
		"dev": {Email: email},
	})
}
