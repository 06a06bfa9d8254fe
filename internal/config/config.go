package config

import (
	"fmt"
	"log"
	"os"

	"lanshare/internal/utils"

	"github.com/joho/godotenv"
	pkgConfig "github.com/kerimovok/go-pkg-utils/config"
	"gopkg.in/yaml.v3"
)

// DefaultMaxUploadSize caps uploads when the config file does not set one.
const DefaultMaxUploadSize = 100 * 1024 * 1024 // 100MB

// StorageConfig holds upload storage settings
type StorageConfig struct {
	UploadDir     string `yaml:"upload_dir"`
	MaxUploadSize string `yaml:"max_upload_size"`
}

// MainConfig holds the root configuration
type MainConfig struct {
	Storage StorageConfig `yaml:"storage"`
}

var (
	Config MainConfig
)

// MaxUploadBytes returns the configured upload size cap in bytes
func (c StorageConfig) MaxUploadBytes() int64 {
	if c.MaxUploadSize == "" {
		return DefaultMaxUploadSize
	}
	size, err := utils.ParseSizeString(c.MaxUploadSize)
	if err != nil {
		log.Printf("Warning: invalid max_upload_size %q, using default: %v", c.MaxUploadSize, err)
		return DefaultMaxUploadSize
	}
	return size
}

// LoadConfig loads the configuration from the specified path
func LoadConfig() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		if pkgConfig.GetEnv("GO_ENV") != "production" {
			log.Println("Warning: Failed to load .env file")
		}
	}

	// Read config file
	data, err := os.ReadFile("config/storage.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if config.Storage.UploadDir == "" {
		config.Storage.UploadDir = "uploads"
	}

	// Store config globally
	Config = config

	log.Println("Storage configuration loaded successfully from config/storage.yaml")
	return nil
}

// GetConfig returns the current configuration
func GetConfig() MainConfig {
	return Config
}
