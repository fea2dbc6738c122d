package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shelflife/internal/config"
	"shelflife/internal/http/handlers"
	applog "shelflife/internal/log"
	"shelflife/internal/notify"
	"shelflife/internal/scheduler"
	"shelflife/internal/store"
	"shelflife/web"
)

func main() {
	cfg := config.Load()

	applog.Init(applog.Options{File: cfg.LogFile, Mode: cfg.LogMode})
	defer applog.Sync()

	loc, err := time.LoadLocation(cfg.Location)
	if err != nil {
		log.Printf("[warn] unknown TZ_LOCATION %q, using Local: %v", cfg.Location, err)
		loc = time.Local
	}

	backend, err := store.Open(cfg.StoreDriver, cfg.StoreDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer backend.Close()

	// Templates & app
	engine := web.NewEngine()
	deps := handlers.NewDeps(backend, notify.LogSender{}, notify.NewAlertRenderer(engine), loc)
	app := handlers.NewApp(deps, handlers.Options{Views: engine, AccessLog: os.Stdout})

	// Periodic expiry check; /api/cron/check-expiry triggers the same run on demand.
	sched := scheduler.New(loc)
	if cfg.ExpiryCheckSpec != "" && cfg.ExpiryCheckSpec != "off" {
		if _, err := sched.AddExpiryCheck(cfg.ExpiryCheckSpec, deps.Notifications); err != nil {
			log.Fatalf("bad EXPIRY_CHECK_SPEC %q: %v", cfg.ExpiryCheckSpec, err)
		}
		sched.Start()
		defer sched.Stop()
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		applog.Info(nil, "server.shutdown", nil)
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	applog.Info(nil, "server.start", map[string]any{"port": cfg.Port, "store": cfg.StoreDriver})
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
