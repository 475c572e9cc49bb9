package app

import (
	"os"
	"strings"

	"example.com/bookstore/internal/service"
)

type Config struct {
	Env, Port string

	DBDriver, DBDSN string

	StaticDir   string
	CORSOrigins []string

	SMTP service.SMTPConfig
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func LoadConfig() Config {
	return Config{
		Env:         getEnv("APP_ENV", "dev"),
		Port:        getEnv("APP_PORT", getEnv("PORT", "8080")),
		DBDriver:    getEnv("DB_DRIVER", "sqlite"),
		DBDSN:       getEnv("DB_DSN", strings.TrimPrefix(getEnv("DATABASE_URL", "bookstore.db"), "sqlite:///")),
		StaticDir:   getEnv("STATIC_DIR", "./frontend"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
		SMTP: service.SMTPConfig{
			Host: os.Getenv("SMTP_HOST"),
			Port: getEnv("SMTP_PORT", "1025"),
			From: getEnv("SMTP_FROM", "orders@bookstore.local"),
		},
	}
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
