package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-adoption/internal/adapters/auth/firebase"
	"pet-adoption/internal/adapters/auth/session"
	"pet-adoption/internal/adapters/media/s3"
	"pet-adoption/internal/adapters/notify/mail"
	pg "pet-adoption/internal/adapters/storage/postgres"
	redisstore "pet-adoption/internal/adapters/storage/redis"
	"pet-adoption/internal/config"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/ratelimit"
	"pet-adoption/internal/ports/auth"
	"pet-adoption/internal/router"
)

// buildOptions conecta la infraestructura configurada. Lo que no está configurado
// queda en nil y el router usa su alternativa (memoria, sin caché, sin límite).
func buildOptions(ctx context.Context, cfg config.Config, log logger.Logger) (router.Options, func(), error) {
	opts := router.Options{Config: cfg, Logger: log}
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (router.Options, func(), error) {
		cleanup()
		return router.Options{}, func() {}, err
	}

	// Postgres
	if cfg.Postgres.DSN != "" {
		if cfg.Postgres.MigrateOnStart {
			version, err := pg.Migrate(cfg.Postgres.DSN)
			if err != nil {
				return fail(fmt.Errorf("migrate: %w", err))
			}
			log.Info("migrations applied", map[string]any{"version": version})
		}
		pool, err := pg.Connect(ctx, pg.Config{DSN: cfg.Postgres.DSN, MaxConns: cfg.Postgres.MaxConns})
		if err != nil {
			return fail(fmt.Errorf("postgres: %w", err))
		}
		closers = append(closers, pool.Close)
		opts.Repos = router.PostgresRepos(pool)
	} else {
		log.Warn("postgres not configured, using in-memory store", nil)
	}

	// Redis: caché de regiones y límite de decisiones
	if cfg.Redis.Addr != "" {
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return fail(fmt.Errorf("redis: %w", err))
		}
		closers = append(closers, func() { _ = client.Close() })
		opts.Cache = redisstore.NewCacheRepo(client, "getpet:cache:")
		opts.Limiter = ratelimit.NewLimiter(
			redisstore.NewRateRepo(client), "getpet:choices",
			cfg.API.ChoicesPerMinute, cfg.API.ChoicesPer10Sec,
		)
	}

	// Fotos
	if cfg.S3.Endpoint != "" {
		storage, err := s3.NewStorage(s3.Config{
			Endpoint:   cfg.S3.Endpoint,
			AccessKey:  cfg.S3.AccessKey,
			SecretKey:  cfg.S3.SecretKey,
			Bucket:     cfg.S3.Bucket,
			UseSSL:     cfg.S3.UseSSL,
			PresignTTL: cfg.S3.PresignTTL,
		})
		if err != nil {
			return fail(err)
		}
		if err := storage.EnsureBucket(ctx); err != nil {
			log.Warn("s3 bucket check failed", map[string]any{"bucket": cfg.S3.Bucket, "err": err})
		}
		opts.Photos = storage
		opts.URLs = s3.NewPresignedURLs(storage, storage.PresignTTL(), log)
	}

	// Mail de cambios de estado
	notifier := mail.NewNotifier(mail.Config{
		SMTPAddr: cfg.Mail.SMTPAddr,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.From,
		To:       splitList(cfg.Mail.To),
	}, log)
	if notifier.Enabled() {
		opts.Notifier = notifier
	}

	// Auth
	if cfg.Auth.DevMode {
		log.Warn("auth dev mode: X-Debug-User-ID is trusted", nil)
		return opts, cleanup, nil
	}
	if cfg.Auth.JWTSecret == "" {
		return fail(errors.New("auth.jwt_secret is required unless auth.dev_mode is set"))
	}
	sessions := session.NewManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL)
	opts.Verifiers = []auth.AuthVerifier{sessions}
	opts.Issuer = sessions

	if cfg.Firebase.ProjectID != "" {
		fb, err := firebase.New(ctx, firebase.Config{
			ProjectID: cfg.Firebase.ProjectID,
			APIKey:    cfg.Firebase.APIKey,
			JWKSURL:   cfg.Firebase.JWKSURL,
			Timeout:   cfg.Firebase.Timeout,
		}, log)
		if err != nil {
			return fail(err)
		}
		opts.Firebase = fb
	} else {
		log.Warn("firebase not configured, connect endpoint disabled", nil)
	}

	return opts, cleanup, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
