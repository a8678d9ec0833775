package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"studyhall/backend/features/stats"
	"studyhall/backend/features/study"
	"studyhall/backend/internal/adapter/gemini"
	"studyhall/backend/internal/config"
	"studyhall/backend/internal/middleware"
	"studyhall/backend/internal/profile"
	"studyhall/backend/internal/rag"
	"studyhall/backend/internal/worker"
)

type App struct {
	Handler        http.Handler
	Service        *rag.Service
	IngestConsumer *worker.IngestConsumer

	port int
}

func New(cfg *config.Config, deps *Dependencies) (*App, error) {
	// Adapters
	embedder := gemini.NewEmbedder(deps.Genai, cfg.EmbedModel, cfg.EmbeddingDim)
	generator := gemini.NewGenerator(deps.Genai, cfg.GenModel)

	queryLogger, err := rag.NewFileQueryLogger(cfg.QueryLogPath)
	if err != nil {
		slog.Warn("failed to create query logger, falling back to stdout", "error", err)
		queryLogger = rag.NewQueryLogger(os.Stdout)
	}

	timeout := time.Duration(cfg.LLMTimeoutSeconds) * time.Second
	ragService := rag.NewService(embedder, generator, deps.Index, queryLogger, timeout)

	// Feature: Study
	profileRepo := profile.NewPostgresRepo(deps.DB)
	studyHandler := study.NewHandler(ragService, profileRepo)

	// Feature: Stats
	statsHandler := stats.NewHandler(deps.Index)

	// Routes. CORS is terminated by the gateway in front of this service.
	mux := http.NewServeMux()

	mux.Handle("POST /ask", middleware.CorrelationID(http.HandlerFunc(studyHandler.Ask)))
	mux.Handle("POST /quizzes/generate", middleware.CorrelationID(http.HandlerFunc(studyHandler.GenerateQuiz)))
	mux.Handle("POST /flashcards/generate", middleware.CorrelationID(http.HandlerFunc(studyHandler.GenerateFlashcards)))
	mux.Handle("PUT /profiles/{user_id}", middleware.CorrelationID(http.HandlerFunc(studyHandler.UpdateProfile)))

	mux.Handle("GET /stats", middleware.CorrelationID(http.HandlerFunc(statsHandler.Get)))

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	ingestConsumer := worker.NewIngestConsumer(ragService, cfg.ChunkSize, cfg.ChunkOverlap)

	return &App{
		Handler:        mux,
		Service:        ragService,
		IngestConsumer: ingestConsumer,
		port:           cfg.ServerPort,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", a.port),
		Handler: a.Handler,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutting down server...")
		if err := srv.Shutdown(context.Background()); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("server starting", "port", a.port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}
