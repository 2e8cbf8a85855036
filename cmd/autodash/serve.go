package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"

	"github.com/AvaniDange/AutoDashAI/internal/agent"
	"github.com/AvaniDange/AutoDashAI/internal/api"
	"github.com/AvaniDange/AutoDashAI/internal/charts"
	"github.com/AvaniDange/AutoDashAI/internal/config"
	"github.com/AvaniDange/AutoDashAI/internal/llm"
	"github.com/AvaniDange/AutoDashAI/internal/logging"
	"github.com/AvaniDange/AutoDashAI/internal/session"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg := config.Load()
	log := logging.New(cfg.Environment, cfg.LogFilePath)
	defer log.Sync()

	synth := charts.NewSynthesizer(cfg.MaxChartPoints)
	store := session.NewMemoryStore(cfg.SessionTTL, cfg.SessionPurgeInterval)
	sessions := session.NewManager(store, synth)

	// The model fast path is optional; without a key the keyword rules
	// handle everything.
	var resolver agent.IntentResolver
	if cfg.GroqAPIKey != "" {
		client := llm.NewClient(llm.Config{
			APIKey:  cfg.GroqAPIKey,
			Model:   cfg.GroqModel,
			BaseURL: cfg.GroqBaseURL,
			Timeout: cfg.LLMTimeout,
		})
		resolver = llm.NewResolver(client, cfg.LLMTimeout)
		log.Infow("llm intent resolver enabled", "model", cfg.GroqModel)
	}
	engine := agent.NewEngine(synth, agent.SubstringMatcher{}, resolver, log)

	handler := api.NewHandler(sessions, engine, log)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CorsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("AutoDash backend is running"))
	})
	handler.RegisterRoutes(r)

	log.Infow("starting server", "port", cfg.Port, "environment", cfg.Environment)
	return http.ListenAndServe(":"+cfg.Port, r)
}
