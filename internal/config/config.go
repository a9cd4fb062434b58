package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const DefaultPath = "configs/development.yaml"

// Storage drivers
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Server Server `yaml:"server"`

	Database Database `yaml:"database"`

	JWT JWT `yaml:"jwt"`

	Seed Seed `yaml:"seed"`
}

type Server struct {
	Address         string `yaml:"address"`
	ShutdownTimeout int    `yaml:"shutdown_timeout"` // In Seconds
}

type JWT struct {
	Secret     string `yaml:"secret"`
	ExpiresIn  int    `yaml:"expires_in"` // In Hours
	CookieName string `yaml:"cookie_name"`
}

type Database struct {
	Driver         string `yaml:"driver"`
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	User           string `yaml:"user"`
	Password       string `yaml:"password"`
	DBName         string `yaml:"dbname"`
	SSLMode        string `yaml:"sslmode"`
	MigrationsPath string `yaml:"migrations_path"`
}

// Seed controls the startup fixtures
type Seed struct {
	Enabled       bool   `yaml:"enabled"`
	AdminPassword string `yaml:"admin_password"`
	UserPassword  string `yaml:"user_password"`
}

// DSN returns the lib/pq connection string
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// URL returns the connection URL used by the migrator
func (d Database) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode)
}

// Load reads the config file named by CONFIG_PATH, or the development config
func Load() (*Config, error) {
	configPath := DefaultPath
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	return LoadFile(configPath)
}

// LoadFile reads the YAML config at path and applies environment overrides
func LoadFile(path string) (*Config, error) {
	// A missing .env is fine
	_ = godotenv.Load()

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := defaults()
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: Server{
			Address:         ":8080",
			ShutdownTimeout: 10,
		},
		Database: Database{
			Driver:         DriverPostgres,
			Port:           5432,
			SSLMode:        "disable",
			MigrationsPath: "migrations",
		},
		JWT: JWT{
			ExpiresIn:  24,
			CookieName: "dish_admin_token",
		},
		Seed: Seed{
			AdminPassword: "admin",
			UserPassword:  "user",
		},
	}
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("SERVER_ADDRESS"); v != "" {
		c.Server.Address = v
	}
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("DATABASE_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("DATABASE_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DATABASE_PORT %q: %w", v, err)
		}
		c.Database.Port = port
	}
	if v := os.Getenv("DATABASE_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.JWT.Secret = v
	}
	return nil
}

// Validate checks the settings the server cannot start without
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt secret is required")
	}
	if c.JWT.ExpiresIn <= 0 {
		return fmt.Errorf("jwt expires_in must be positive")
	}
	return nil
}
