package main

import (
	"context"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/i-sifat/onushilonhub-sub000/internal/api/http"
	"github.com/i-sifat/onushilonhub-sub000/internal/config"
	"github.com/i-sifat/onushilonhub-sub000/internal/db"
	"github.com/i-sifat/onushilonhub-sub000/internal/grammar"
	"github.com/i-sifat/onushilonhub-sub000/internal/question"
	"github.com/i-sifat/onushilonhub-sub000/internal/results"
	"github.com/i-sifat/onushilonhub-sub000/internal/session"
)

func main() {
	cfg := config.FromEnv()

	// --- Catalogs (read-only, loaded once) ---
	rules, err := grammar.LoadCatalog(filepath.Join(cfg.DataDir, "rules.json"))
	if err != nil {
		log.Fatalf("load rules: %v", err)
	}
	questions, err := question.LoadCatalog(filepath.Join(cfg.DataDir, "questions.json"))
	if err != nil {
		log.Fatalf("load questions: %v", err)
	}
	log.Printf("catalogs loaded: %d rules, %d questions", rules.Len(), questions.Len())

	// --- DB (test-result persistence) ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := results.NewSQLStore(dbh)

	// --- Viewer sessions ---
	sessions := session.NewManager(cfg.AuthHMACSecret, cfg.SessionTTL)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/sessions", api.StartSessionHandler(sessions))

	// Protected API (session token -> per-viewer reveal state)
	r.Group(func(pr chi.Router) {
		pr.Use(api.SessionMiddleware(sessions))

		pr.Delete("/sessions", api.EndSessionHandler(sessions))

		pr.Get("/grammar/rules", api.ListRulesHandler(rules, questions))
		pr.Get("/grammar/rules/{ruleID}", api.GetRuleHandler(rules))
		pr.Get("/grammar/rules/{ruleID}/questions", api.ListQuestionsByRuleHandler(questions))

		pr.Get("/questions", api.ListQuestionsHandler(questions))
		pr.Get("/questions/{questionID}", api.GetQuestionHandler(questions))
		pr.Get("/questions/{questionID}/rule/{ruleID}", api.GetQuestionByRuleHandler(questions))

		pr.Post("/reveal/toggle", api.ToggleRevealHandler())
		pr.Post("/reveal/clear", api.ClearRevealHandler())

		pr.Post("/tests", api.CreateTestHandler(questions))
		pr.Post("/tests/submit", api.SubmitTestHandler(questions, store))
		pr.Get("/results", api.ListResultsHandler(store))
		pr.Get("/results/summary", api.ResultsSummaryHandler(store))
	})

	// Admin maintenance (basic auth against the bcrypt hash from env)
	r.Group(func(ar chi.Router) {
		ar.Use(api.AdminOnly(cfg))
		ar.Get("/admin/data-quality", api.DataQualityHandler(questions))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (db=%s, data=%s)", cfg.HTTPAddr, cfg.DBDriver, cfg.DataDir)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
