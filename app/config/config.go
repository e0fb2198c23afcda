package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Env    string `yaml:"env" env:"APP_ENV"`
	AppURL string `yaml:"app_url" env:"APP_URL"`

	HTTP struct {
		Addr            string        `yaml:"addr" env:"HTTP_ADDR"`
		ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT"`
		WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
		AllowedOrigins  []string      `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" envSeparator:","`
		MaxBodyBytes    int64         `yaml:"max_body_bytes" env:"UPLOAD_MAX_BODY_BYTES"`
	} `yaml:"http"`

	Database struct {
		Driver string `yaml:"driver" env:"DB_DRIVER"`
		DSN    string `yaml:"dsn" env:"DATABASE_URL"`
	} `yaml:"database"`

	Storage struct {
		Type            string `yaml:"type" env:"STORAGE_TYPE"` // local, s3, gcs
		BasePath        string `yaml:"base_path" env:"STORAGE_BASE_PATH"`
		PublicURL       string `yaml:"public_url" env:"STORAGE_PUBLIC_URL"`
		Bucket          string `yaml:"bucket" env:"STORAGE_BUCKET"`
		Endpoint        string `yaml:"endpoint" env:"STORAGE_ENDPOINT"`
		Region          string `yaml:"region" env:"STORAGE_REGION"`
		AccessKey       string `yaml:"access_key" env:"STORAGE_ACCESS_KEY"`
		SecretKey       string `yaml:"secret_key" env:"STORAGE_SECRET_KEY"`
		CredentialsFile string `yaml:"credentials_file" env:"GCS_CREDENTIALS_FILE"`
	} `yaml:"storage"`

	Auth struct {
		JWTSecret string        `yaml:"jwt_secret" env:"JWT_SECRET"`
		TokenTTL  time.Duration `yaml:"token_ttl" env:"JWT_TTL"`
	} `yaml:"auth"`

	Seed struct {
		UserName  string `yaml:"user_name" env:"SEED_USER_NAME"`
		UserEmail string `yaml:"user_email" env:"SEED_USER_EMAIL"`
	} `yaml:"seed"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	cfg := &Config{Env: "development", AppURL: "http://localhost:8080"}
	cfg.HTTP.Addr = ":8080"
	cfg.HTTP.ReadTimeout = 15 * time.Second
	cfg.HTTP.WriteTimeout = 30 * time.Second
	cfg.HTTP.ShutdownTimeout = 10 * time.Second
	cfg.HTTP.MaxBodyBytes = 10 << 20
	cfg.Database.Driver = "postgres"
	cfg.Database.DSN = "host=localhost user=postgres password=postgres dbname=catalog port=5432 sslmode=disable"
	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = "./storage/public"
	cfg.Auth.TokenTTL = 24 * time.Hour
	cfg.Seed.UserName = "Admin"
	cfg.Seed.UserEmail = "admin@example.com"
	return cfg
}

// Load builds the configuration from the defaults, the YAML file named by
// CONFIG_PATH (if any), a .env file in the working directory (if any) and
// finally the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := readYAML(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readYAML(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver: %q", c.Database.Driver)
	}

	switch c.Storage.Type {
	case "local", "s3", "gcs":
	default:
		return fmt.Errorf("unsupported storage type: %q", c.Storage.Type)
	}

	if c.Auth.JWTSecret == "" {
		if c.Env != "development" {
			return errors.New("JWT_SECRET is required outside development")
		}
		c.Auth.JWTSecret = "development-secret"
	}
	return nil
}
