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

	"github.com/emergency-ai/backend/internal/config"
	"github.com/emergency-ai/backend/internal/handler"
	analyzeHandler "github.com/emergency-ai/backend/internal/handler/analyze"
	contactHandler "github.com/emergency-ai/backend/internal/handler/contact"
	firstaidHandler "github.com/emergency-ai/backend/internal/handler/firstaid"
	triageHandler "github.com/emergency-ai/backend/internal/handler/triage"
	"github.com/emergency-ai/backend/internal/model/contact"
	"github.com/emergency-ai/backend/internal/model/firstaid"
	"github.com/emergency-ai/backend/internal/service/classify"
	triageservice "github.com/emergency-ai/backend/internal/service/triage"
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

	catalog := firstaid.NewCatalog(firstaid.Seed())
	contactStore := contact.NewStore()

	// Missing credentials disable classification without killing the
	// process; affected requests degrade per the error contract.
	var classifier classify.Client
	if cfg.Classifier.Enabled() {
		classifier, err = classify.New(ctx, cfg.Classifier)
		if err != nil {
			log.Printf("warning: failed to initialize classification backend: %v", err)
			log.Println("continuing without classification - submissions will degrade to the safety fallback")
		} else {
			log.Printf("classification backend initialized (provider=%s)", cfg.Classifier.ResolveProvider())
		}
	} else {
		log.Println("no model credentials configured, classification disabled")
	}

	triageSvc := triageservice.NewService(classifier, catalog, cfg.Triage.HistoryLimit)

	router := handler.NewRouter(handler.Deps{
		Triage:   triageHandler.New(triageSvc, cfg.Triage.RequestTimeout),
		Analyze:  analyzeHandler.New(classifier, cfg.Triage.HistoryLimit, cfg.Triage.RequestTimeout),
		Contacts: contactHandler.New(contactStore),
		FirstAid: firstaidHandler.New(catalog),
	})

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Emergency AI backend listening on %s", serverCfg.Addr)
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
