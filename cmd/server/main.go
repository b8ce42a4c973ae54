package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/Dan9191/task-manager/internal/config"
	"github.com/Dan9191/task-manager/internal/handler"
	"github.com/Dan9191/task-manager/internal/middleware"
	"github.com/Dan9191/task-manager/internal/repository"
	"github.com/Dan9191/task-manager/internal/service"
	"github.com/Dan9191/task-manager/internal/utils/email"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	var mailer service.Mailer
	if cfg.SMTPHost != "" {
		mailer = email.NewSender(cfg, logger)
	}
	svc := service.NewService(repo, logger, cfg, mailer)
	h := handler.NewHandler(svc)

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/login", h.LoginPage).Methods("GET")
	// Stored profile photos
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(svc))
	authRouter.HandleFunc("/logout", h.Logout).Methods("POST")
	authRouter.HandleFunc("/dashboard", h.Dashboard).Methods("GET")
	authRouter.HandleFunc("/tasks", h.Tasks).Methods("GET")
	authRouter.HandleFunc("/tasks", h.SaveTask).Methods("POST")
	authRouter.HandleFunc("/profile", h.Profile).Methods("GET")
	authRouter.HandleFunc("/profile", h.UpdateProfile).Methods("POST")

	// Background jobs: hourly session purge, daily overdue digest
	c := cron.New()
	if _, err := c.AddFunc("@hourly", func() {
		if _, err := svc.PurgeSessions(context.Background()); err != nil {
			logger.Errorf("Session purge failed: %v", err)
		}
	}); err != nil {
		logger.Fatalf("Failed to schedule session purge: %v", err)
	}
	if _, err := c.AddFunc(cfg.ReminderCron, func() {
		if err := svc.SendOverdueReminders(context.Background()); err != nil {
			logger.Errorf("Overdue reminder job failed: %v", err)
		}
	}); err != nil {
		logger.Fatalf("Failed to schedule reminder job: %v", err)
	}
	c.Start()
	defer c.Stop()

	var httpHandler http.Handler = r
	if len(cfg.CORSOrigins) > 0 {
		httpHandler = cors.New(cors.Options{
			AllowedOrigins:   cfg.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST"},
			AllowedHeaders:   []string{"Content-Type"},
			AllowCredentials: true,
		}).Handler(r)
	}

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      httpHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
