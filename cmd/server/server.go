package main

import (
	"log"
	"net/http"

	"nursethink/config"
	"nursethink/db"
	"nursethink/handlers"
	"nursethink/logger"
	"nursethink/services"
	"nursethink/services/llm"

	"github.com/gorilla/mux"
)

func main() {
	cfg := config.Load()

	appLog, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLog.Sync()

	if cfg.APIKey() == "" {
		appLog.Warn("No API key configured; real AI requests will fail until one is set", "provider", cfg.LLMProvider)
	}

	generator, err := llm.NewFromConfig(cfg, appLog)
	if err != nil {
		appLog.Fatal("Failed to initialize LLM client", "error", err)
	}

	attempts, err := newAttemptRepository(cfg, appLog)
	if err != nil {
		appLog.Fatal("Failed to initialize attempt database", "error", err)
	}
	defer attempts.Close()

	sessions := services.NewSessionStore(appLog)
	coachService := services.NewCoachService(generator, attempts, sessions, appLog)

	router := newRouter(coachService, appLog)

	addr := ":" + cfg.Port
	appLog.Info("Server starting", "port", cfg.Port, "provider", cfg.LLMProvider)

	if err := http.ListenAndServe(addr, router); err != nil {
		appLog.Fatal("Server failed to start", "error", err)
	}
}

// newAttemptRepository uses Postgres when DB_URL is set and keeps attempts
// in memory otherwise.
func newAttemptRepository(cfg *config.Config, appLog *logger.Logger) (db.AttemptRepository, error) {
	if cfg.DatabaseURL == "" {
		appLog.Info("DB_URL not set; keeping the attempt log in memory")
		return db.NewMemoryAttemptRepository(), nil
	}
	repo, err := db.NewPostgresAttemptRepository(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	appLog.Info("Successfully connected to attempt database")
	return repo, nil
}

func newRouter(coachService *services.CoachService, appLog *logger.Logger) *mux.Router {
	router := mux.NewRouter()

	router.Use(corsMiddleware)
	router.Use(jsonMiddleware)

	router.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("OPTIONS")

	handlers.NewCoachHandler(coachService, appLog).RegisterRoutes(router)
	handlers.NewCaseHandler(coachService, appLog).RegisterRoutes(router)
	handlers.NewChatHandler(coachService, appLog).RegisterRoutes(router)

	router.HandleFunc("/health", healthCheckHandler).Methods("GET")
	return router
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "healthy"}`))
}
