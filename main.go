package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/danielhkuo/campusboard/bus"
	"github.com/danielhkuo/campusboard/catalog"
	"github.com/danielhkuo/campusboard/cliparse"
	"github.com/danielhkuo/campusboard/engagement"
	"github.com/danielhkuo/campusboard/journal"
	"github.com/danielhkuo/campusboard/middleware"
	"github.com/danielhkuo/campusboard/profile"
	"github.com/danielhkuo/campusboard/reminder"
	"github.com/danielhkuo/campusboard/router"
	"github.com/danielhkuo/campusboard/store"
)

func main() {
	// Optional .env for development
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Open the durable store
	st, err := store.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("store open failed", "error", err)
		os.Exit(1)
	}
	defer st.Close()
	slog.Info("Durable store ready", "type", cfg.DatabaseType)

	// One bus per process, injected everywhere, never torn down
	eventBus := bus.New()

	// Repositories
	journalRepo := journal.NewRepository(st, eventBus)
	ledger := engagement.NewRepository(st, journalRepo)
	profiles := profile.NewRepository(st)

	// Reminder scheduling
	notifier := reminder.NewTimerNotifier(journalRepo, cfg.NotifyGranted)
	scheduler := reminder.NewScheduler(notifier, journalRepo)

	// Catalog view
	client := catalog.NewClient(cfg.CatalogURL)
	builder := catalog.NewBuilder(client, ledger, journalRepo)
	if _, err := builder.Refresh(context.Background()); err != nil {
		// Not fatal: the view stays empty until the feed comes back.
		slog.Warn("initial catalog fetch failed", "error", err)
	}

	// Periodic refresh keeps the cached view warm between pull-to-refreshes
	refresher := cron.New()
	if _, err := refresher.AddFunc(cfg.RefreshCron, func() {
		if _, err := builder.Refresh(context.Background()); err != nil {
			slog.Warn("scheduled catalog refresh failed", "error", err)
		}
	}); err != nil {
		slog.Error("invalid refresh cron expression", "cron", cfg.RefreshCron, "error", err)
		os.Exit(1)
	}
	refresher.Start()
	defer refresher.Stop()

	// Create router
	mux := router.NewRouter(router.Deps{
		Builder:   builder,
		Ledger:    ledger,
		Journal:   journalRepo,
		Profiles:  profiles,
		Scheduler: scheduler,
	})

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
