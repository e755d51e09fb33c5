package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mcompany-dev/consult-booking-bot/internal/config"
	bookingRepo "github.com/mcompany-dev/consult-booking-bot/internal/infra/storage/booking"
	usersRepo "github.com/mcompany-dev/consult-booking-bot/internal/infra/storage/users"
	approvalService "github.com/mcompany-dev/consult-booking-bot/internal/service/approval"
	"github.com/mcompany-dev/consult-booking-bot/internal/service/slots"
	wizardService "github.com/mcompany-dev/consult-booking-bot/internal/service/wizard"
	"github.com/mcompany-dev/consult-booking-bot/internal/transport/telegram"
	"github.com/mcompany-dev/consult-booking-bot/pkg/logger"
	"github.com/mcompany-dev/consult-booking-bot/pkg/metrics"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting consult-booking-bot...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище профилей: PostgreSQL, если включен, иначе память процесса
	var profiles telegram.ProfileStore
	if cfg.Database.Enabled {
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		repo := usersRepo.NewRepository(db)
		if err := repo.Migrate(context.Background()); err != nil {
			log.Fatal("Failed to migrate users table: %v", err)
		}
		profiles = repo
	} else {
		profiles = usersRepo.NewMemory()
		log.Info("Database disabled, using in-memory profile store")
	}

	// Журнал бронирований живёт в памяти процесса
	ledger := bookingRepo.NewRepository()
	slotIndex := slots.NewIndex(ledger)

	// Telegram API
	api, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		log.Fatal("Failed to connect to Telegram: %v", err)
	}
	log.Info("Authorized on account @%s", api.Self.UserName)

	if cfg.Bot.AdminGroupID == 0 {
		log.Warn("bot.admin_group_id is not set: booking cards have nowhere to go")
	}

	sender := telegram.NewSender(api, cfg.Bot.AdminGroupID, metricsCollector, log)

	// Инициализируем сервисы
	approvals := approvalService.NewService(ledger, slotIndex, sender, metricsCollector, log)
	wizard := wizardService.NewService(ledger, slotIndex, profiles, approvals, sender, metricsCollector, log)

	bot := telegram.NewBot(
		api,
		sender,
		cfg.Bot.AdminGroupID,
		cfg.Bot.DefaultLang,
		cfg.Bot.AuditWebsiteURL,
		cfg.Bot.PollTimeout,
		wizard,
		approvals,
		profiles,
		metricsCollector,
		log,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go bot.Run(ctx)

	// Служебный HTTP-сервер: health и метрики
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ok")
	}).Methods(http.MethodGet)

	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Stopped gracefully")
}
