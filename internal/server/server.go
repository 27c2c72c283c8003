// Package server provides the HTTP REST API for the resume analyzer.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/db"
	"github.com/jonathan/resume-analyzer/internal/engine"
	"github.com/jonathan/resume-analyzer/internal/explain"
	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/ontology"
	"github.com/jonathan/resume-analyzer/internal/server/middleware"
)

// maxConcurrentAnalyses bounds the background analysis goroutines.
const maxConcurrentAnalyses = 4

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	engine      *engine.Engine
	explainer   *explain.Explainer
	llmClient   llm.Client
	jwtService  *JWTService
	authHandler *AuthHandler
	sem         *semaphore.Weighted
	useBrowser  bool
	verbose     bool
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
	APIKey      string
	Ontology    string
	UseBrowser  bool
	Verbose     bool
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	ctx := context.Background()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	ont := ontology.Default()
	if cfg.Ontology != "" {
		ont, err = ontology.LoadFile(cfg.Ontology)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to load ontology: %w", err)
		}
	}

	s := &Server{
		db:         database,
		engine:     engine.New(ont),
		sem:        semaphore.NewWeighted(maxConcurrentAnalyses),
		useBrowser: cfg.UseBrowser,
		verbose:    cfg.Verbose,
	}

	// Explanations are optional; without an API key results are served
	// without prose.
	if cfg.APIKey != "" {
		client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		s.llmClient = client
		s.explainer = explain.New(client, ont)
	}

	// Initialize authentication services
	operatorConfig, err := config.NewOperatorConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create operator config: %w", err)
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(operatorConfig, s.jwtService)

	// Setup router
	mux := http.NewServeMux()
	authRequired := middleware.Auth(s.jwtService.AsTokenValidator())

	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.Handle("POST /analyses", authRequired(http.HandlerFunc(s.handleCreateAnalysis)))
	mux.Handle("GET /analyses", authRequired(http.HandlerFunc(s.handleListAnalyses)))
	mux.Handle("GET /analyses/{id}", authRequired(http.HandlerFunc(s.handleGetAnalysis)))
	mux.Handle("GET /analyses/{id}/explanation", authRequired(http.HandlerFunc(s.handleGetExplanation)))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests and blocks until shutdown
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Wait for in-flight background analyses before releasing resources
	if err := s.sem.Acquire(ctx, maxConcurrentAnalyses); err == nil {
		s.sem.Release(maxConcurrentAnalyses)
	}

	if s.llmClient != nil {
		s.llmClient.Close()
	}
	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":         "ok",
		"engine_version": engine.Version,
	})
}

// handleLogin handles operator login requests.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.authHandler.Login(w, r)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
