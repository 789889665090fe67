package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	api "github.com/studymitra/examprep-backend/internal/api/http"
	"github.com/studymitra/examprep-backend/internal/auth"
	"github.com/studymitra/examprep-backend/internal/config"
	"github.com/studymitra/examprep-backend/internal/content"
	"github.com/studymitra/examprep-backend/internal/db"
	"github.com/studymitra/examprep-backend/internal/ingest"
)

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	store := content.NewSQLStore(dbh, cfg.DBDriver)
	ingestSvc := ingest.NewService(store, logger)
	authSvc := auth.NewService(cfg.AuthSecret, cfg.AdminUser, cfg.AdminPassHash)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc))

	// Public study + signup surface
	r.Get("/chapters", api.ListChaptersHandler(store))
	r.Get("/chapters/{chapterNumber}/questions", api.ListChapterQuestionsHandler(store))
	r.Get("/chapters/{chapterNumber}/revisions", api.ListChapterRevisionsHandler(store))
	r.Post("/enrollments", api.CreateEnrollmentHandler(store))
	r.Post("/exam-applications", api.CreateExamApplicationHandler(store, api.ExamAppConfig{
		ExamDate: cfg.MockExamDate,
		Centre:   cfg.MockExamCentre,
	}))
	r.Get("/exam-applications/{card}", api.GetAdmitCardHandler(store))

	// Admin surface (JWT-gated; the ingest engine itself does no auth)
	r.Route("/admin", func(ar chi.Router) {
		ar.Use(auth.RequireAdmin(authSvc))

		ar.Post("/bulk-upload", api.BulkUploadHandler(ingestSvc, logger))

		ar.Get("/chapters", api.ListChaptersAdminHandler(store))
		ar.Post("/chapters", api.UpsertChapterHandler(store))
		ar.Delete("/chapters/{id}", api.DeleteChapterHandler(store))

		ar.Post("/questions", api.CreateQuestionHandler(store))
		ar.Delete("/questions/{id}", api.DeleteQuestionHandler(store))

		ar.Post("/revisions", api.CreateRevisionHandler(store))
		ar.Patch("/revisions/{id}/media", api.UpdateRevisionMediaHandler(store))
		ar.Delete("/revisions/{id}", api.DeleteRevisionHandler(store))

		ar.Get("/enrollments", api.ListEnrollmentsHandler(store))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	logger.Info("listening", zap.String("addr", cfg.HTTPAddr), zap.String("db", cfg.DBDriver))
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}
