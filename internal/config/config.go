package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Host     string        `env:"HOST" envDefault:"0.0.0.0"`
	Port     string        `env:"PORT" envDefault:"8080"`
	LogLevel int           `env:"LOG_LEVEL" envDefault:"0"`
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	JWTSecret  string `env:"JWT_SECRET"`
	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"*"`

	DatabaseURL string `env:"DATABASE_URL"`
	DB          DB     `envPrefix:"DB_"`
}

type DB struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	User     string `env:"USER" envDefault:"postgres"`
	Password string `env:"PASSWORD" envDefault:"postgres"`
	Name     string `env:"NAME" envDefault:"blog"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("Failed to parse config: %v", err)
	}

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment variable is required")
	}

	return &cfg
}

// DSN returns DATABASE_URL when set, otherwise assembles a keyword/value
// connection string from the discrete DB_* parts.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.Name, c.DB.SSLMode,
	)
}

func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}
