package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Storage  StorageConfig  `yaml:"storage" envconfig:"STORAGE"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	JWT      JWTConfig      `yaml:"jwt" envconfig:"JWT"`
	Uploads  UploadsConfig  `yaml:"uploads" envconfig:"UPLOADS"`
	Realtime RealtimeConfig `yaml:"realtime" envconfig:"REALTIME"`
	CORS     CORSConfig     `yaml:"cors" envconfig:"CORS"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host    string `yaml:"host" envconfig:"HOST"`
	Port    int    `yaml:"port" envconfig:"PORT"`
	BaseURL string `yaml:"base_url" envconfig:"BASE_URL"`
}

// StorageConfig contains storage configuration
type StorageConfig struct {
	Type    string        `yaml:"type" envconfig:"TYPE"` // memory, mongodb
	MongoDB MongoDBConfig `yaml:"mongodb" envconfig:"MONGODB"`
}

// MongoDBConfig contains MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string `yaml:"uri" envconfig:"URI"`
	Database string `yaml:"database" envconfig:"DATABASE"`
	Timeout  int    `yaml:"timeout" envconfig:"TIMEOUT"` // seconds
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL"`   // debug, info, warn, error
	Format string `yaml:"format" envconfig:"FORMAT"` // json, text
}

// JWTConfig contains JWT configuration
type JWTConfig struct {
	Secret      string `yaml:"secret" envconfig:"SECRET"`
	ExpiryHours int    `yaml:"expiry_hours" envconfig:"EXPIRY_HOURS"`
	Issuer      string `yaml:"issuer" envconfig:"ISSUER"`
}

// UploadsConfig contains song/artwork upload storage configuration
type UploadsConfig struct {
	Dir         string `yaml:"dir" envconfig:"DIR"`
	MaxSizeMB   int    `yaml:"max_size_mb" envconfig:"MAX_SIZE_MB"`
	ServedUnder string `yaml:"served_under" envconfig:"SERVED_UNDER"`
}

// RealtimeConfig contains WebSocket connection tuning
type RealtimeConfig struct {
	// WriteTimeoutSeconds bounds a single frame write so one stuck peer
	// cannot stall a room broadcast.
	WriteTimeoutSeconds int `yaml:"write_timeout_seconds" envconfig:"WRITE_TIMEOUT_SECONDS"`
	// PongTimeoutSeconds is how long a connection may go without answering
	// a ping before it is considered dead.
	PongTimeoutSeconds int `yaml:"pong_timeout_seconds" envconfig:"PONG_TIMEOUT_SECONDS"`
	// PingIntervalSeconds is the heartbeat interval. Must be below the pong
	// timeout.
	PingIntervalSeconds int   `yaml:"ping_interval_seconds" envconfig:"PING_INTERVAL_SECONDS"`
	MaxMessageBytes     int64 `yaml:"max_message_bytes" envconfig:"MAX_MESSAGE_BYTES"`
	// ChatRatePerSecond / ChatBurst limit inbound chat per connection.
	// Zero disables the limiter.
	ChatRatePerSecond float64 `yaml:"chat_rate_per_second" envconfig:"CHAT_RATE_PER_SECOND"`
	ChatBurst         int     `yaml:"chat_burst" envconfig:"CHAT_BURST"`
}

// CORSConfig contains CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
	AllowedMethods   []string `yaml:"allowed_methods" envconfig:"ALLOWED_METHODS"`
	AllowedHeaders   []string `yaml:"allowed_headers" envconfig:"ALLOWED_HEADERS"`
	AllowCredentials bool     `yaml:"allow_credentials" envconfig:"ALLOW_CREDENTIALS"`
	MaxAge           int      `yaml:"max_age" envconfig:"MAX_AGE"` // seconds
}

// Load loads configuration from file and environment variables
func Load(configFile string) (*Config, error) {
	// Start with defaults
	cfg := defaultConfig()

	// Load from YAML file if provided (overrides defaults)
	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			// File doesn't exist, that's ok - we'll use defaults and env vars
		} else {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	// Override with environment variables (highest priority)
	if err := envconfig.Process("RADIO", cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Set BaseURL if not provided
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = fmt.Sprintf("http://%s:%d", cfg.Server.Host, cfg.Server.Port)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible default values
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8001,
		},
		Storage: StorageConfig{
			Type: "memory",
			MongoDB: MongoDBConfig{
				URI:      "mongodb://localhost:27017",
				Database: "radio",
				Timeout:  10,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		JWT: JWTConfig{
			ExpiryHours: 24,
			Issuer:      "radio-backend",
		},
		Uploads: UploadsConfig{
			Dir:         "uploads",
			MaxSizeMB:   64,
			ServedUnder: "/uploads",
		},
		Realtime: RealtimeConfig{
			WriteTimeoutSeconds: 10,
			PongTimeoutSeconds:  60,
			PingIntervalSeconds: 25,
			MaxMessageBytes:     4096,
			ChatRatePerSecond:   5,
			ChatBurst:           10,
		},
		CORS: CORSConfig{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           43200,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Storage.Type != "memory" && c.Storage.Type != "mongodb" {
		return fmt.Errorf("invalid storage type: %s (must be memory or mongodb)", c.Storage.Type)
	}

	if c.Storage.Type == "mongodb" && c.Storage.MongoDB.URI == "" {
		return fmt.Errorf("mongodb uri is required when using mongodb storage")
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt secret is required")
	}

	if c.Realtime.PingIntervalSeconds >= c.Realtime.PongTimeoutSeconds {
		return fmt.Errorf("ping interval (%ds) must be below pong timeout (%ds)",
			c.Realtime.PingIntervalSeconds, c.Realtime.PongTimeoutSeconds)
	}

	return nil
}

// Address returns the server address
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
