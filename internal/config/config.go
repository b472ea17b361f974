package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ListenAddr     string
	APIBaseURL     string
	RedisAddr      string
	SessionTTL     time.Duration
	CookieName     string
	RequestTimeout time.Duration
	LogLevel       string
}

// Load reads configuration from the environment, optionally seeded from a
// .env file. RedisAddr left empty selects the in-memory session store.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	v := viper.New()
	v.SetEnvPrefix("SHOP")
	v.AutomaticEnv()

	v.SetDefault("listen_addr", ":3000")
	v.SetDefault("api_base_url", "http://localhost:8000/api")
	v.SetDefault("redis_addr", "")
	v.SetDefault("session_ttl", "12h")
	v.SetDefault("cookie_name", "shop_session")
	v.SetDefault("request_timeout", "10s")
	v.SetDefault("log_level", "info")

	return Config{
		ListenAddr:     v.GetString("listen_addr"),
		APIBaseURL:     v.GetString("api_base_url"),
		RedisAddr:      v.GetString("redis_addr"),
		SessionTTL:     v.GetDuration("session_ttl"),
		CookieName:     v.GetString("cookie_name"),
		RequestTimeout: v.GetDuration("request_timeout"),
		LogLevel:       v.GetString("log_level"),
	}
}
