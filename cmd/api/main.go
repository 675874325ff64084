package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/zhouzirui/todos/internal/config"
	"github.com/zhouzirui/todos/internal/handler"
	"github.com/zhouzirui/todos/internal/session"
	"github.com/zhouzirui/todos/internal/view"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	views, err := view.NewRenderer()
	if err != nil {
		log.Fatalf("failed to parse templates: %v", err)
	}

	sessions := newSessionStore(cfg.Session)
	router := handler.NewRouter(sessions, views)

	startServer(ctx, cfg.Server, router)
}

func newSessionStore(cfg config.SessionConfig) session.Store {
	opts := session.Options{
		Name:          cfg.Name,
		Secret:        cfg.Secret,
		EncryptionKey: cfg.EncryptionKey,
		MaxAge:        cfg.MaxAge,
		Secure:        cfg.Secure,
	}

	if cfg.Store == config.StoreMemory {
		log.Println("using in-memory session store")
		return session.NewMemoryStore(opts)
	}
	log.Println("using cookie session store")
	return session.NewCookieStore(opts)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("todos listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
