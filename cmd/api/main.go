package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/droppurity/leadsboard/internal/config"
	"github.com/droppurity/leadsboard/internal/entity"
	"github.com/droppurity/leadsboard/internal/infra/cache"
	"github.com/droppurity/leadsboard/internal/infra/database"
	"github.com/droppurity/leadsboard/internal/infra/http/handlers"
	custommw "github.com/droppurity/leadsboard/internal/infra/http/middleware"
	"github.com/droppurity/leadsboard/internal/infra/mail"
	"github.com/droppurity/leadsboard/internal/infra/push"
	"github.com/droppurity/leadsboard/internal/infra/queue"
	"github.com/droppurity/leadsboard/internal/infra/worker"
	"github.com/droppurity/leadsboard/internal/logger"
	"github.com/droppurity/leadsboard/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logg, err := logger.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logg.Sync()

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		logg.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	runMigrations(cfg.DatabaseURL, logg)

	// Cache de views é opcional: sem Redis, toda leitura vai ao banco.
	var viewCache usecase.ViewCache
	cacheClient, err := cache.NewClient(cfg.RedisURL)
	if err != nil {
		logg.Warn("redis unavailable, serving without view cache", zap.Error(err))
	} else {
		viewCache = cacheClient
		defer cacheClient.Close()
	}

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
	if err != nil {
		logg.Fatal("failed to connect to RabbitMQ", zap.Error(err))
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositórios
	leadRepo := database.NewLeadRepository(db)
	interactionRepo := database.NewInteractionRepository(db)
	subRepo := database.NewPushSubscriptionRepository(db)

	// 2. Gateways e Adapters
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	pushClient := push.NewClient(cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey, cfg.VAPIDSubscriber)
	mailSender := mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass)

	// 3. UseCases
	aggregator := usecase.NewInteractionAggregator(interactionRepo)
	getLeadsUC := usecase.NewGetLeadsUseCase(leadRepo, aggregator, viewCache, logg)
	getInteractionsUC := usecase.NewGetInteractionsUseCase(interactionRepo, viewCache, logg)
	getDashboardUC := usecase.NewGetDashboardUseCase(leadRepo, interactionRepo, viewCache, logg)
	createLeadUC := usecase.NewCreateLeadUseCase(leadRepo, viewCache, producer, logg)
	addInteractionUC := usecase.NewAddInteractionUseCase(leadRepo, interactionRepo, viewCache, logg)
	updateStatusUC := usecase.NewUpdateLeadStatusUseCase(leadRepo, viewCache, logg)
	logAttemptUC := usecase.NewLogContactAttemptUseCase(leadRepo, interactionRepo, viewCache, logg)
	dispatcherUC := usecase.NewSendNotificationsUseCase(subRepo, pushClient, cfg.DashboardURL, logg)

	// 4. Workers
	alertWorker := queue.NewWorker(rabbitMQ.Ch, dispatcherUC, mailSender, cfg.StaffAlertEmail, logg)
	go alertWorker.Start(queue.QueueName)

	expiryWorker := worker.NewTrialExpiryWorker(db, logg)
	go expiryWorker.Start(context.Background())

	// Redisparo agendado opcional (ex: resumo matinal para a equipe)
	if cfg.NotifyCron != "" {
		c := cron.New()
		_, cronErr := c.AddFunc(cfg.NotifyCron, func() {
			if _, err := dispatcherUC.Execute(context.Background()); err != nil {
				logg.Error("scheduled notification dispatch failed", zap.Error(err))
			}
		})
		if cronErr != nil {
			logg.Fatal("invalid NOTIFY_CRON expression", zap.Error(cronErr))
		}
		c.Start()
		defer c.Stop()
	}

	// 5. Handlers
	leadHandler := handlers.NewLeadHandler(getLeadsUC, createLeadUC, getDashboardUC, updateStatusUC)
	interactionHandler := handlers.NewInteractionHandler(addInteractionUC, logAttemptUC, getInteractionsUC)
	pushHandler := handlers.NewPushHandler(subRepo, logg)
	notifyHandler := handlers.NewNotifyHandler(dispatcherUC, cfg.NotificationSecret, logg)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn, cacheClient)

	// 6. Router
	r := chi.NewRouter()
	r.Use(custommw.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:3000", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// Listas do painel
		r.Get("/contacts", leadHandler.ListPlain(entity.LeadTypeContact))
		r.Get("/referrals", leadHandler.ListPlain(entity.LeadTypeReferral))
		r.Get("/free-trials", leadHandler.ListWithHistory(entity.LeadTypeFreeTrial))
		r.Get("/subscriptions", leadHandler.ListWithHistory(entity.LeadTypeSubscription))
		r.Get("/dashboard", leadHandler.HandleDashboard)
		r.Get("/leads/{leadType}/{id}", leadHandler.HandleGetByID)

		// Captura dos formulários do site
		r.Post("/contacts", leadHandler.Capture(entity.LeadTypeContact))
		r.Post("/referrals", leadHandler.Capture(entity.LeadTypeReferral))
		r.Post("/free-trials", leadHandler.Capture(entity.LeadTypeFreeTrial))
		r.Post("/subscriptions", leadHandler.Capture(entity.LeadTypeSubscription))

		// Actions de mutação do painel
		r.Post("/interactions", interactionHandler.HandleAddInteraction)
		r.Get("/interactions", interactionHandler.HandleList)
		r.Post("/contact-attempts", interactionHandler.HandleLogContactAttempt)
		r.Post("/lead-status", leadHandler.HandleUpdateStatus)

		// Web Push
		r.Post("/push/subscribe", pushHandler.HandleSubscribe)
		r.Post("/push/unsubscribe", pushHandler.HandleUnsubscribe)
		r.Post("/send-notifications", notifyHandler.HandleSendNotifications)
	})

	addr := ":" + cfg.Port
	logg.Info("leadsboard API listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, r); err != nil {
		logg.Fatal("server stopped", zap.Error(err))
	}
}

func runMigrations(databaseURL string, logg *zap.Logger) {
	m, err := migrate.New("file://migrations", databaseURL)
	if err != nil {
		logg.Fatal("failed to init migrations", zap.Error(err))
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		logg.Fatal("failed to run migrations", zap.Error(err))
	}
}
