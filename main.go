package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"sparkmeals/bot"
	"sparkmeals/config"
	"sparkmeals/db"
	"sparkmeals/metrics"
	"sparkmeals/services"
	"sparkmeals/web"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			runMigrate(cfg)
			return
		case "genkey":
			key, err := services.GenerateAPISecret(32)
			if err != nil {
				fmt.Fprintln(os.Stderr, "genkey:", err)
				os.Exit(1)
			}
			fmt.Println(key)
			return
		}
	}

	if cfg.Server.APISecretKey == "" {
		log.Printf("warning: API_SECRET_KEY not set, POST /api/send will reject every request")
	}
	if cfg.WhatsApp.BaseURL == "" {
		log.Printf("warning: WHATSAPP_API_BASE_URL not set, order confirmations will fail")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DB.Enabled() {
		if err := db.Init(ctx, cfg.DB); err != nil {
			fmt.Fprintln(os.Stderr, "db:", err)
			os.Exit(1)
		}
		defer db.Close()

		// Optional auto-migration (useful in production and for fresh DBs).
		// Set AUTO_MIGRATE=1 (or "true") to enable.
		if v := strings.TrimSpace(os.Getenv("AUTO_MIGRATE")); v == "1" || strings.EqualFold(v, "true") {
			if err := applyMigrations(ctx, false); err != nil {
				fmt.Fprintln(os.Stderr, "migrate:", err)
				os.Exit(1)
			}
		}
	}

	var staff services.StaffNotifier
	if cfg.Telegram.Enabled() {
		staffBot, err := bot.New(cfg.Telegram)
		if err != nil {
			log.Printf("warning: failed to initialize staff bot: %v", err)
		} else {
			staff = staffBot
			log.Printf("staff notifications enabled chat_id=%d", cfg.Telegram.AdminChatID)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	relay := services.NewRelay(services.NewWhatsAppClient(cfg.WhatsApp, nil), staff, cfg.Delivery.Fee)
	srv, err := web.New(relay, metrics.NewServerMetrics(reg, reg), web.Options{
		APISecretKey: cfg.Server.APISecretKey,
		ImagesDir:    cfg.Server.ImagesDir,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "web:", err)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.WhatsApp.Timeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("SparkMeals listening on :%s", cfg.Server.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintln(os.Stderr, "server:", err)
		os.Exit(1)
	}
	// Let in-flight staff notifications finish; each is bounded by its own timeout.
	relay.Wait()
}

func runMigrate(cfg *config.Config) {
	if !cfg.DB.Enabled() {
		fmt.Fprintln(os.Stderr, "migrate: DB_HOST not set")
		os.Exit(1)
	}
	ctx := context.Background()
	if err := db.Init(ctx, cfg.DB); err != nil {
		fmt.Fprintln(os.Stderr, "db:", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := applyMigrations(ctx, true); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}
