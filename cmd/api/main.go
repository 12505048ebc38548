package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	jwtauth "pet-adoption-hub/internal/adapters/auth/jwt"
	"pet-adoption-hub/internal/adapters/broker/rabbitmq"
	"pet-adoption-hub/internal/adapters/lock/local"
	redislock "pet-adoption-hub/internal/adapters/lock/redis"
	"pet-adoption-hub/internal/adapters/settings/remote"
	pg "pet-adoption-hub/internal/adapters/storage/postgres"
	"pet-adoption-hub/internal/config"
	"pet-adoption-hub/internal/jobs"
	"pet-adoption-hub/internal/platform/logger"
	"pet-adoption-hub/internal/ports/auth"
	"pet-adoption-hub/internal/ports/lock"
	"pet-adoption-hub/internal/ports/notify"
	"pet-adoption-hub/internal/ports/settings"
	"pet-adoption-hub/internal/router"
)

// @title Pet Adoption Hub API
// @version 1.0
// @description Adopciones, donaciones, voluntariado y recompensas.
// @BasePath /
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewFromEnv().Error("config error", map[string]any{"error": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	// Sin DB_DSN => in-memory (modo dev)
	var db *sql.DB
	if cfg.DatabaseURL != "" {
		db, err = pg.Open(cfg.DatabaseURL)
		if err != nil {
			log.Error("postgres connection failed", map[string]any{"error": err})
			os.Exit(1)
		}
		defer db.Close()

		if cfg.AutoMigrate {
			if err := pg.Migrate(db); err != nil {
				log.Error("migrations failed", map[string]any{"error": err})
				os.Exit(1)
			}
		}
	} else {
		log.Warn("DB_DSN not set; using in-memory storage", nil)
	}

	// Sin JWT_SECRET => modo dev con X-Debug-User-ID
	var verifier auth.AuthVerifier
	if cfg.JWTSecret != "" {
		verifier = jwtauth.NewVerifier(jwtauth.Config{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer})
	} else {
		log.Warn("JWT_SECRET not set; auth runs in dev header mode", nil)
	}

	var pub notify.Publisher = notify.Nop{}
	if cfg.AMQPURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, log)
		if err != nil {
			// Las notificaciones son best-effort: el servicio arranca igual.
			log.Warn("rabbitmq unavailable; notifications disabled", map[string]any{"error": err})
		} else {
			pub = p
		}
	}
	defer pub.Close()

	var toggle settings.Toggle
	if cfg.SettingsServiceURL != "" {
		t, err := remote.NewToggle(remote.Config{BaseURL: cfg.SettingsServiceURL, APIKey: cfg.SettingsServiceAPIKey})
		if err != nil {
			log.Error("settings service config invalid", map[string]any{"error": err})
			os.Exit(1)
		}
		toggle = t
	}

	app := router.New(router.Options{
		AuthVerifier:   verifier,
		DB:             db,
		Toggle:         toggle,
		Publisher:      pub,
		Logger:         log,
		AllowedOrigins: cfg.AllowedOrigins(),
	})

	var scheduler *jobs.Scheduler
	if cfg.RankingResetEnabled {
		var locker lock.Locker = local.NewLocker()
		if cfg.RedisURL != "" {
			rc, err := redislock.NewClient(context.Background(), cfg.RedisURL)
			if err != nil {
				log.Warn("redis unavailable; ranking reset lock is process-local", map[string]any{"error": err})
			} else {
				defer rc.Close()
				locker = redislock.NewLocker(rc, cfg.AppName+":lock")
			}
		}

		scheduler = jobs.NewScheduler(log)
		if err := scheduler.Add("ranking_reset", cfg.RankingResetSchedule, jobs.NewRankingReset(app.Rewards, locker, log)); err != nil {
			log.Error("scheduler setup failed", map[string]any{"error": err})
			os.Exit(1)
		}
		scheduler.Start()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      app.Handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "postgres": db != nil})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", map[string]any{"error": err})
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("shutting down", nil)
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", map[string]any{"error": err})
	}
	if scheduler != nil {
		scheduler.Stop(ctx)
	}
}
