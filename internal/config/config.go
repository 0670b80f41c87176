package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Port         int
	DatabaseURL  string
	JWTSecret    string
	BaseURL      string
	CookieDomain string
	CookieSecure bool
	LogLevel     string
}

// Load reads an optional .env file and resolves settings from the
// environment. Flags in the cmd packages override the returned values.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found")
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", 8080)
	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", "5432")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("COOKIE_SECURE", false)

	cfg := Config{
		Port:         v.GetInt("PORT"),
		DatabaseURL:  v.GetString("DATABASE_URL"),
		JWTSecret:    v.GetString("JWT_SECRET"),
		BaseURL:      strings.TrimRight(v.GetString("BASE_URL"), "/"),
		CookieDomain: v.GetString("COOKIE_DOMAIN"),
		CookieSecure: v.GetBool("COOKIE_SECURE"),
		LogLevel:     v.GetString("LOG_LEVEL"),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = DBConnString(
			v.GetString("POSTGRES_USER"),
			v.GetString("POSTGRES_PASSWORD"),
			v.GetString("POSTGRES_HOST"),
			v.GetString("POSTGRES_PORT"),
			v.GetString("POSTGRES_DB"),
		)
	}

	return cfg
}

// Validate checks the settings the HTTP server cannot run without.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET required")
	}
	if c.BaseURL != "" {
		if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
			return fmt.Errorf("invalid BASE_URL: %w", err)
		}
	}
	return nil
}

func DBConnString(user, password, host, port, dbName string) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, password),
		Host:     host + ":" + port,
		Path:     "/" + dbName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// SetupLogging configures the global logrus logger.
func SetupLogging(level string) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.WithField("level", level).Warn("Unknown log level, using info")
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}
