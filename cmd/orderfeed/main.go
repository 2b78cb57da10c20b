package main

import (
	"context"
	"errors"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rookgm/orderfeed/config"
	"github.com/rookgm/orderfeed/internal/auth"
	"github.com/rookgm/orderfeed/internal/backend"
	"github.com/rookgm/orderfeed/internal/feed"
	handler "github.com/rookgm/orderfeed/internal/handler/http"
	"github.com/rookgm/orderfeed/internal/logger"
	"github.com/rookgm/orderfeed/internal/metrics"
	"github.com/rookgm/orderfeed/internal/middleware"
	"github.com/rookgm/orderfeed/internal/push"
	"github.com/rookgm/orderfeed/internal/repository"
	"github.com/rookgm/orderfeed/internal/repository/postgres"
	"github.com/rookgm/orderfeed/internal/service"
	"github.com/rookgm/orderfeed/internal/worker"
	"go.uber.org/zap"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const shutdownTimeout = 5 * time.Second

func main() {

	// create new config
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Log.Sync()

	// create context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// dependency injection
	creds := auth.NewCredentials(cfg.BackendToken)
	client := backend.NewClient(cfg.BackendURL, creds, cfg.RequestTimeout)
	m := metrics.New()

	rec := feed.NewReconciler()
	rec.Subscribe(m)

	notifiers := []service.Notifier{service.LogNotifier{}}

	// notification journal is optional
	var journal handler.NotificationLister
	if cfg.DatabaseDSN != "" {
		db, err := postgres.New(ctx, cfg.DatabaseDSN)
		if err != nil {
			logger.Log.Fatal("Error initializing database", zap.Error(err))
		}
		defer db.Close()

		// migrate database
		if err := db.Migrate(); err != nil {
			logger.Log.Fatal("Error migrating database", zap.Error(err))
		}

		notificationRepo := repository.NewNotificationRepository(db)
		notifiers = append(notifiers, service.NewJournalNotifier(notificationRepo))
		journal = notificationRepo
	}

	feedService := service.NewFeedService(client, rec,
		service.WithCredentials(creds),
		service.WithNotifiers(notifiers...),
		service.WithRecorder(m),
	)

	subscriber := push.NewSubscriber(push.Options{
		URL:      cfg.PushURL,
		Channel:  cfg.PushChannel,
		Tokens:   creds,
		Policy:   push.FixedPolicy{Interval: cfg.ReconnectDelay},
		Recorder: m,
		OnState:  m.StateChanged,
		OnDrop: func(err error) {
			logger.Log.Debug("push connection dropped", zap.Error(err))
		},
	})
	defer subscriber.Close()

	processor := worker.NewFeedProcessor(feedService, subscriber.Start(ctx), cfg.RefreshInterval)
	go processor.Run(ctx)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-creds.ReauthRequired():
				logger.Log.Warn("backend token rejected, set a new one with PUT /api/session/token")
			}
		}
	}()

	orderHandler := handler.NewOrderHandler(feedService, subscriber, creds, journal)

	router := chi.NewRouter()

	router.Use(chimw.RequestID)
	router.Use(chimw.Recoverer)
	router.Use(middleware.Logging(logger.Log))

	orderHandler.Routes(router)
	router.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Error shutting down server", zap.Error(err))
		}
	}()

	logger.Log.Info("Running server",
		zap.String("addr", cfg.ServerAddr),
		zap.String("backend", cfg.BackendURL),
		zap.String("push", cfg.PushURL))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Log.Fatal("Error starting server", zap.Error(err))
	}
}
