package main

import (
	"context"
	"net/http"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"shopfront/internal/api"
	"shopfront/internal/config"
	"shopfront/internal/session"
	"shopfront/internal/web"
	"shopfront/internal/web/handlers"
)

func main() {
	cfg := config.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	var store session.Store = session.NewMemoryStore()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Fatal().Err(err).Msg("could not connect to redis")
		}
		defer rdb.Close()
		store = session.NewRedisStore(rdb)
		logger.Info().Str("addr", cfg.RedisAddr).Msg("sessions backed by redis")
	}

	handlers.SetAPIClient(api.NewClient(cfg.APIBaseURL, cfg.RequestTimeout))
	handlers.SetSessionStore(store)
	handlers.SetLogger(logger)
	handlers.SetSessionOptions(cfg.CookieName, cfg.SessionTTL)

	r := web.NewRouter()
	logger.Info().Str("addr", cfg.ListenAddr).Str("backend", cfg.APIBaseURL).Msg("console listening")
	if err := http.ListenAndServe(cfg.ListenAddr, r); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
