package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisURL string

	TicketSecret     string
	SearchStrictDate bool
	CORSOrigins      []string
}

// LoadEnv reads configuration from the process environment. envFile is loaded
// first when it exists; a missing file is not an error.
func LoadEnv(envFile string) Env {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		log.Printf("[CONFIG] gagal membaca %s: %v", envFile, err)
	}

	env := Env{
		AppAddr: getEnv("APP_ADDR", ":8080"),
		GinMode: getEnv("GIN_MODE", ""),

		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "hoponhub"),

		RedisURL: getEnv("REDIS_URL", ""),

		TicketSecret:     getEnv("TICKET_SECRET", ""),
		SearchStrictDate: getBool("SEARCH_STRICT_DATE", false),
		CORSOrigins:      splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),
	}
	if env.TicketSecret == "" {
		log.Printf("[CONFIG] TICKET_SECRET kosong: pembayaran tetap diproses tanpa ticket token")
	}
	return env
}

func getEnv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getBool(key string, def bool) bool {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("[CONFIG] %s=%q bukan boolean, pakai default %v", key, v, def)
		return def
	}
	return b
}

func splitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
