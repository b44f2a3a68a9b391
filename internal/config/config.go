package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	ServerPort    string
	APIPrefix     string
	JWTSecret     string
	JWTTTL        time.Duration
	BcryptCost    int
	RedisURL      string
	FrontendURLs  []string
	Env           string
	AdminEmail    string
	AdminPassword string
	SeedColumns   []string
}

// Load reads .env (if present) and then the process environment.
// It reports whether a .env file was found so the caller can log it.
func Load() (*Config, bool) {
	envFileLoaded := godotenv.Load() == nil

	return &Config{
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "kanban_user"),
		DBPassword:    getEnv("DB_PASSWORD", "kanban_pass"),
		DBName:        getEnv("DB_NAME", "kanban_db"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		APIPrefix:     normalizePrefix(getEnv("API_PREFIX", "/api")),
		JWTSecret:     getEnv("JWT_SECRET", "supersecretkey"),
		JWTTTL:        getEnvAsDuration("JWT_TTL", 7*24*time.Hour),
		BcryptCost:    getEnvAsInt("BCRYPT_COST", 10),
		RedisURL:      getEnv("REDIS_URL", ""),
		FrontendURLs:  getEnvAsList("FRONTEND_URL", []string{"http://localhost:5173", "http://127.0.0.1:5173"}),
		Env:           getEnv("ENV", "dev"),
		AdminEmail:    strings.ToLower(strings.TrimSpace(getEnv("ADMIN_EMAIL", ""))),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		SeedColumns:   getEnvAsList("SEED_COLUMNS", []string{"To Do", "In Progress", "Done"}),
	}, envFileLoaded
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func (c *Config) IsProduction() bool {
	return c.Env == "prod" || c.Env == "production"
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if v, err := strconv.Atoi(value); err == nil {
			return v
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if v, err := time.ParseDuration(value); err == nil && v > 0 {
			return v
		}
	}
	return defaultVal
}

func getEnvAsList(key string, defaultVal []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultVal
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func normalizePrefix(prefix string) string {
	prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	if prefix != "" && !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return prefix
}
