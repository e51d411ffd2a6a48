package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spotfix-admin/config"
	"spotfix-admin/controllers"
	"spotfix-admin/middlewares"
	"spotfix-admin/routes"
	"spotfix-admin/store"
	"spotfix-admin/views"

	"github.com/apex/log"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found")
	}

	cfg := config.Load()
	if err := config.SetupLogging(cfg); err != nil {
		log.WithError(err).Fatal("Invalid logging configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}

	issues, closeStore, err := openStore(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to open issue store")
	}
	defer closeStore()

	var counter middlewares.Counter
	redisClient, err := config.ConnectRedis(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to Redis")
	}
	if redisClient != nil {
		counter = redisClient
		defer redisClient.Close()
	} else {
		log.Info("REDIS_ADDRESS not set, status updates are not rate limited")
	}

	loc, _ := cfg.Location()
	tmpl, err := views.Load(views.Options{DateLayout: cfg.DateLayout, Location: loc})
	if err != nil {
		log.WithError(err).Fatal("Failed to parse templates")
	}

	h := controllers.NewHandlers(issues, cfg.StoreTimeout)
	router := routes.NewRouter(cfg, h, tmpl, counter)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Infof("Starting HTTP server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	log.Info("Server exited")
}

// openStore builds the configured IssueStore and a func releasing it.
func openStore(cfg *config.Config) (store.IssueStore, func(), error) {
	if cfg.StoreBackend == config.BackendMemory {
		if cfg.MemorySeedFile == "" {
			log.Warn("Using an empty in-memory issue store")
			return store.NewMemoryStore(), func() {}, nil
		}
		s, err := store.LoadMemoryStore(cfg.MemorySeedFile)
		if err != nil {
			return nil, nil, err
		}
		log.WithField("seed", cfg.MemorySeedFile).Info("Using seeded in-memory issue store")
		return s, func() {}, nil
	}

	client, db, err := config.ConnectDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.WithError(err).Error("Failed to disconnect from MongoDB")
		}
	}

	s := store.NewMongoStore(db.Collection(cfg.IssuesCollection))
	ctx, cancel := context.WithTimeout(context.Background(), cfg.StoreTimeout)
	defer cancel()
	if err := s.EnsureIndexes(ctx); err != nil {
		log.WithError(err).Warn("Failed to ensure issue indexes")
	}

	return s, closeFn, nil
}
