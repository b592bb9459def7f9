package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Redis   RedisConfig
	DB      DBConfig
	Auth    AuthConfig
	Server  ServerConfig
	Catalog CatalogConfig
	Bonus   BonusConfig
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.Name)
}

type AuthConfig struct {
	JWTSecret string
}

type ServerConfig struct {
	Port      string
	RateLimit string
}

// CatalogConfig points the engine at an external product catalog. When URL
// is empty the local product table serves the catalog instead.
type CatalogConfig struct {
	URL string
}

// BonusConfig holds the rates used to turn bonus events into wallet credits.
type BonusConfig struct {
	RepurchaseRate string
	PairValue      string
	RoyaltyRate    string
}

func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return Config{
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "altura"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", "altura-dev-secret"),
		},
		Server: ServerConfig{
			Port:      getEnv("SERVER_PORT", "8080"),
			RateLimit: getEnv("RATE_LIMIT", "60-M"),
		},
		Catalog: CatalogConfig{
			URL: getEnv("CATALOG_URL", ""),
		},
		Bonus: BonusConfig{
			RepurchaseRate: getEnv("REPURCHASE_BONUS_RATE", "0.03"),
			PairValue:      getEnv("PAIR_BONUS_VALUE", "10.00"),
			RoyaltyRate:    getEnv("ROYALTY_RATE", "0.01"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
