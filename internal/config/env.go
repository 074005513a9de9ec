package config

import (
	"os"
	"strconv"
	"strings"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	UploadDir    string
	TemplateGlob string

	SessionSecret   string
	SessionTTLHours int

	SeedDemoData bool
}

func LoadEnv() Env {
	env := Env{
		AppAddr:         getenv("APP_ADDR", ":8080"),
		GinMode:         strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBUser:          getenv("DB_USER", "root"),
		DBPass:          strings.TrimSpace(os.Getenv("DB_PASS")),
		DBHost:          getenv("DB_HOST", "127.0.0.1:3306"),
		DBName:          getenv("DB_NAME", "rideshare"),
		UploadDir:       getenv("UPLOAD_DIR", "public/uploads"),
		TemplateGlob:    getenv("TEMPLATE_GLOB", "web/templates/*.tmpl"),
		SessionSecret:   getenv("SESSION_SECRET", "change-me-before-deploy"),
		SessionTTLHours: 24,
	}

	if raw := strings.TrimSpace(os.Getenv("SESSION_TTL_HOURS")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			env.SessionTTLHours = n
		}
	}

	env.SeedDemoData = strings.TrimSpace(os.Getenv("SEED_DEMO_DATA")) == "1"

	return env
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
