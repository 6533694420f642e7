package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"coursepay/internal/config"
	"coursepay/internal/database"
	"coursepay/internal/gateway"
	"coursepay/internal/handler"
	"coursepay/internal/mw"
	"coursepay/internal/service"
	"coursepay/internal/storage"
	"coursepay/internal/worker"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.NewDB(cfg.DatabaseURI)
	if err != nil {
		slog.Error("failed to connect to DB", "error", err)
		os.Exit(1)
	}
	defer database.CloseDB(context.Background(), db)

	if err := database.InitSchema(db); err != nil {
		slog.Error("failed to init DB schema", "error", err)
		os.Exit(1)
	}

	// Storage
	purchaseRepo := storage.NewPurchaseRepo(db)
	orderRepo := storage.NewOrderRepo(db)

	// Gateway client
	gw := gateway.NewClient(gateway.Config{
		BaseURL:      cfg.GatewayBaseURL,
		ClientID:     cfg.GatewayClientID,
		ClientSecret: cfg.GatewayClientSecret,
		APIVersion:   cfg.GatewayAPIVersion,
	})

	// Services
	authSvc := service.NewAuthService(db)
	catalog := service.NewCourseCatalog()
	paymentSvc := service.NewPaymentService(gw, orderRepo, cfg.PlaceholderEmail, cfg.PlaceholderPhone)
	verifySvc := service.NewVerifyService(gw, purchaseRepo, orderRepo)

	// Worker
	reconciler := worker.NewReconciler(orderRepo, verifySvc)

	// Router
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Public routes
	r.Post("/api/user/register", handler.RegisterHandler(authSvc, cfg.JWTSecret))
	r.Post("/api/user/login", handler.LoginHandler(authSvc, cfg.JWTSecret))

	r.Get("/api/courses", handler.ListCoursesHandler(catalog))
	r.Get("/api/courses/{slug}", handler.GetCourseHandler(catalog))

	r.Post("/api/payments/create-order", handler.CreateOrderHandler(paymentSvc))
	r.Post("/api/payments/verify", handler.VerifyPaymentHandler(verifySvc))

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.JWTSecret))

		r.Get("/api/user/purchases", handler.ListPurchasesHandler(verifySvc))
	})

	srv := &http.Server{
		Addr:         cfg.RunAddress,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go reconciler.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	slog.Info("starting server", "addr", cfg.RunAddress)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-quit
	slog.Info("shutting down...")

	cancel() // stop worker
	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := srv.Shutdown(ctxShut); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}

	slog.Info("server stopped")
}
