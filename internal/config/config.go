package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Provider exposes read-only access to application configuration. Handlers
// and stores depend on this interface rather than the concrete Config so
// tests can substitute their own values.
type Provider interface {
	GetAppAddr() string
	GetDBURL() string
	GetDBUser() string
	GetDBPass() string
	GetDBNs() string
	GetDBDb() string
	GetUploadDir() string
}

// Config holds all configuration for the application.
type Config struct {
	AppAddr   string
	DBUrl     string
	DBNs      string
	DBDb      string
	DBUser    string
	DBPass    string
	UploadDir string
}

// New loads configuration from environment variables.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		AppAddr:   os.Getenv("APP_ADDR"),
		DBUrl:     os.Getenv("SURREAL_URL"),
		DBUser:    os.Getenv("SURREAL_USER"),
		DBPass:    os.Getenv("SURREAL_PASS"),
		DBNs:      os.Getenv("SURREAL_NS"),
		DBDb:      os.Getenv("SURREAL_DB"),
		UploadDir: os.Getenv("UPLOAD_DIR"),
	}

	if cfg.AppAddr == "" {
		cfg.AppAddr = ":8080"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}

	if cfg.DBUrl == "" || cfg.DBNs == "" || cfg.DBDb == "" {
		log.Fatal("Required environment variables SURREAL_URL, SURREAL_NS, or SURREAL_DB are not set.")
	}

	return cfg
}

func (c *Config) GetAppAddr() string   { return c.AppAddr }
func (c *Config) GetDBURL() string     { return c.DBUrl }
func (c *Config) GetDBUser() string    { return c.DBUser }
func (c *Config) GetDBPass() string    { return c.DBPass }
func (c *Config) GetDBNs() string      { return c.DBNs }
func (c *Config) GetDBDb() string      { return c.DBDb }
func (c *Config) GetUploadDir() string { return c.UploadDir }
