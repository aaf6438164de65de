package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/gatormarket/backend/internal/config"
	"github.com/gatormarket/backend/internal/handlers"
	"github.com/gatormarket/backend/internal/middleware"
	"github.com/gatormarket/backend/internal/services"
	"github.com/gatormarket/backend/internal/storage"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := storage.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal("connect to mongo", zap.Error(err))
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error("disconnect mongo", zap.Error(err))
		}
	}()

	db := client.Database(cfg.MongoDB)
	if err := storage.EnsureIndexes(ctx, db); err != nil {
		log.Fatal("ensure indexes", zap.Error(err))
	}

	listingService := services.NewMongoListingService(db, log)
	accountService := services.NewMongoAccountService(db, log)
	messageService := services.NewMongoMessageService(db, log)

	// Object storage is optional: the API runs without it, with uploads
	// answering 503 until the bucket comes back.
	imageStorage, err := services.NewImageStorage(ctx, services.ImageStorageConfig{
		Endpoint:      cfg.MinIOEndpoint,
		AccessKey:     cfg.MinIOAccessKey,
		SecretKey:     cfg.MinIOSecretKey,
		Bucket:        cfg.MinIOBucket,
		UseSSL:        cfg.MinIOUseSSL,
		PublicBaseURL: cfg.ImageBaseURL,
	}, log)
	if err != nil {
		log.Warn("object storage unavailable, uploads disabled", zap.Error(err))
		imageStorage = nil
	}

	listingsHandler := handlers.NewListingsHandler(listingService, log)
	accountsHandler := handlers.NewAccountsHandler(accountService, log)
	authHandler := handlers.NewAuthHandler(accountService, cfg.JWTSecret, cfg.JWTExpiration, log)
	messagesHandler := handlers.NewMessagesHandler(messageService, log)
	imageHandler := handlers.NewImageHandler(imageStorage, cfg.MaxUploadSizeMB*1024*1024, log)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestLogger(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/listings", func(r chi.Router) {
		r.Get("/", listingsHandler.List)
		r.Post("/", listingsHandler.Create)
		r.Get("/featured", listingsHandler.Featured)
		r.Get("/{listingID}", listingsHandler.Get)
		r.Patch("/{listingID}", listingsHandler.Update)
		r.Delete("/{listingID}", listingsHandler.Delete)
		r.Post("/{listingID}/sold", listingsHandler.MarkSold)
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	r.Route("/accounts", func(r chi.Router) {
		r.Get("/by-username/{username}", accountsHandler.GetByUsername)

		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(cfg.JWTSecret))
			r.Get("/", accountsHandler.List)
			r.Post("/", accountsHandler.Create)
			r.Get("/{accountID}", accountsHandler.Get)
			r.Patch("/{accountID}", accountsHandler.Update)
			r.Delete("/{accountID}", accountsHandler.Delete)
			r.Post("/{accountID}/deactivate", accountsHandler.Deactivate)
		})
	})

	r.Route("/messages", func(r chi.Router) {
		r.Get("/", messagesHandler.List)
		r.Post("/", messagesHandler.Create)
		r.Get("/conversations/{userID}", messagesHandler.Conversations)
		r.Get("/find-conversation", messagesHandler.FindConversation)
		r.Get("/unread-count", messagesHandler.UnreadCount)
		r.Get("/{messageID}", messagesHandler.Get)
		r.Delete("/{messageID}", messagesHandler.Delete)
		r.Post("/{messageID}/read", messagesHandler.MarkRead)
	})

	r.Post("/upload", imageHandler.Upload)

	srv := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: r,
	}

	go func() {
		log.Info("server listening", zap.String("addr", cfg.ServerAddress))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}
