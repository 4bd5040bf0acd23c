package config

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort      string
	OnDemandAPIKey  string
	OnDemandBaseURL string
	MaxFileSize     int64
}

// LoadConfig reads configuration from the environment, after loading a
// local .env file when one exists. The OnDemand API key is a secret
// with no default: startup must fail without it.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	apiKey := os.Getenv("ONDEMAND_API_KEY")
	if apiKey == "" {
		return nil, errors.New("ONDEMAND_API_KEY must be set")
	}

	serverPort := os.Getenv("PORT")
	if serverPort == "" {
		serverPort = "5000"
	}

	baseURL := os.Getenv("ONDEMAND_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.on-demand.io"
	}

	return &Config{
		ServerPort:      serverPort,
		OnDemandAPIKey:  apiKey,
		OnDemandBaseURL: baseURL,
		MaxFileSize:     10 * 1024 * 1024, // 10 MB
	}, nil
}
