package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/picotan/picotan-backend/internal/adapter/mongo"
	"github.com/picotan/picotan-backend/internal/auth"
	"github.com/picotan/picotan-backend/internal/config"
	authservice "github.com/picotan/picotan-backend/internal/service/auth"
	"github.com/picotan/picotan-backend/internal/service/read"
	"github.com/picotan/picotan-backend/internal/service/write"
	"github.com/picotan/picotan-backend/internal/transport/middleware"
	"github.com/picotan/picotan-backend/internal/transport/rest"
	"github.com/picotan/picotan-backend/pkg/furigana"
)

// Run is the application entry point. It loads configuration, initializes
// the logger, connects to MongoDB, wires services and HTTP handlers, and
// serves until the context is cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
	defer cancel()

	store, err := mongo.Connect(connectCtx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to store: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logger.Error("closing store", slog.Any("error", err))
		}
	}()
	logger.Info("connected to store", slog.String("database", cfg.Database.Name))

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)

	readSvc := read.NewService(logger, store)
	writeSvc := write.NewService(logger, store)
	authSvc := authservice.NewService(logger, cfg.Auth.Users, jwtManager)

	annotator, err := furigana.NewAnnotator()
	if err != nil {
		return fmt.Errorf("init furigana annotator: %w", err)
	}

	handler := newRouter(cfg, logger, store, readSvc, writeSvc, authSvc, annotator)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}

func newRouter(
	cfg *config.Config,
	logger *slog.Logger,
	store *mongo.Store,
	readSvc *read.Service,
	writeSvc *write.Service,
	authSvc *authservice.Service,
	annotator *furigana.Annotator,
) http.Handler {
	readHandler := rest.NewReadHandler(readSvc, logger)
	writeHandler := rest.NewWriteHandler(writeSvc, readSvc, logger)
	loginHandler := rest.NewLoginHandler(authSvc, logger)
	furiganaHandler := rest.NewFuriganaHandler(annotator, logger)
	healthHandler := rest.NewHealthHandler(store, BuildVersion())

	requireAuth := middleware.RequireAuth(authSvc)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", loginHandler.Login)
	mux.Handle("POST /api/read", requireAuth(http.HandlerFunc(readHandler.Read)))
	mux.Handle("POST /api/write", requireAuth(http.HandlerFunc(writeHandler.Write)))
	mux.Handle("POST /api/furigana", requireAuth(http.HandlerFunc(furiganaHandler.Annotate)))
	mux.HandleFunc("GET /live", healthHandler.Live)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /health", healthHandler.Health)

	chain := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)

	return chain(mux)
}
