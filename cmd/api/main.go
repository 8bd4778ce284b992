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

	"github.com/Opirel/finalProj-dnd-backend/internal/config"
	"github.com/Opirel/finalProj-dnd-backend/internal/handler"
	"github.com/Opirel/finalProj-dnd-backend/internal/observability"
	"github.com/Opirel/finalProj-dnd-backend/internal/service/ai"
	sessionService "github.com/Opirel/finalProj-dnd-backend/internal/service/session"
	"github.com/Opirel/finalProj-dnd-backend/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	metrics := observability.NewMetrics("dnd_backend")

	sessionStore, closeStore, err := buildStore(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize session store: %v", err)
	}
	if closeStore != nil {
		defer closeStore()
	}

	var replier sessionService.Replier
	if cfg.AI.Enabled() {
		aiSvc, err := ai.NewService(ctx, cfg.AI, metrics)
		if err != nil {
			log.Printf("warning: failed to initialize AI service: %v", err)
			log.Println("continuing without AI turns - check the ARK_* environment variables")
		} else {
			replier = aiSvc
			log.Println("AI service initialized successfully")
		}
	} else {
		log.Println("model credentials not configured, session updates will not get bot replies")
	}

	sessionSvc := sessionService.NewService(sessionStore, replier)
	router := handler.NewRouter(sessionSvc, metrics)

	startServer(ctx, cfg.Server, router)
}

// buildStore selects the persistence backend. MongoDB is the default;
// STORAGE_BACKEND=memory runs without a database for local development.
func buildStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	switch cfg.StorageBackend {
	case "memory":
		log.Println("using in-memory session store")
		return store.NewMemoryStore(), nil, nil
	default:
		log.Printf("using mongodb session store, database=%s", cfg.Mongo.Database)
		mongoStore, err := store.NewMongoStore(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, nil, err
		}
		closeStore := func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := mongoStore.Close(closeCtx); err != nil {
				log.Printf("failed to close mongodb connection: %v", err)
			}
		}
		return mongoStore, closeStore, nil
	}
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("dnd backend listening on %s", serverCfg.Addr)
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
