package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Provider names accepted by STT_PROVIDER / LLM_PROVIDER
const (
	ProviderOpenAI     = "openai"
	ProviderAssemblyAI = "assemblyai"
	ProviderGroq       = "groq"
)

// Database drivers accepted by DB_DRIVER
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig     `envconfig:"SERVER"`
	Database DatabaseConfig   `envconfig:"DB"`
	STT      STTConfig        `envconfig:"STT"`
	LLM      LLMConfig        `envconfig:"LLM"`
	OpenAI   OpenAIConfig     `envconfig:"OPENAI"`
	Groq     GroqConfig       `envconfig:"GROQ"`
	Assembly AssemblyAIConfig `envconfig:"ASSEMBLYAI"`
	Storage  StorageConfig    `envconfig:"STORAGE"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string        `split_words:"true" default:"8080"`
	Host            string        `split_words:"true" default:"0.0.0.0"`
	Environment     string        `split_words:"true" default:"development"`
	AllowedOrigins  []string      `split_words:"true" default:"http://localhost:3000"`
	ShutdownTimeout time.Duration `split_words:"true" default:"10s"`
	MaxUploadSize   string        `split_words:"true" default:"25M"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver      string `split_words:"true" default:"postgres"`
	Host        string `split_words:"true" default:"localhost"`
	Port        string `split_words:"true" default:"5432"`
	User        string `split_words:"true" default:"postgres"`
	Password    string `split_words:"true" default:"postgres"`
	Name        string `split_words:"true" default:"voice_transcriber"`
	SSLMode     string `split_words:"true" default:"disable"`
	MaxConns    int    `split_words:"true" default:"25"`
	MinConns    int    `split_words:"true" default:"5"`
	AutoMigrate bool   `split_words:"true" default:"true"`
}

// STTConfig selects the speech-to-text provider
type STTConfig struct {
	Provider string `split_words:"true" default:"openai"`
	Model    string `split_words:"true" default:"whisper-1"`
}

// LLMConfig selects the summarization provider and its fixed sampling parameters
type LLMConfig struct {
	Provider    string  `split_words:"true" default:"openai"`
	Model       string  `split_words:"true" default:"gpt-3.5-turbo"`
	Temperature float64 `split_words:"true" default:"0.7"`
	MaxTokens   int     `split_words:"true" default:"150"`
}

// OpenAIConfig holds OpenAI API credentials
type OpenAIConfig struct {
	APIKey  string `split_words:"true"`
	BaseURL string `split_words:"true"`
}

// GroqConfig holds Groq API credentials
type GroqConfig struct {
	APIKey  string `split_words:"true"`
	BaseURL string `split_words:"true" default:"https://api.groq.com"`
}

// AssemblyAIConfig holds AssemblyAI API credentials
type AssemblyAIConfig struct {
	APIKey  string `split_words:"true"`
	BaseURL string `split_words:"true"`
}

// StorageConfig holds the optional audio archive configuration
type StorageConfig struct {
	Enabled         bool          `split_words:"true" default:"false"`
	Endpoint        string        `split_words:"true" default:"localhost:9000"`
	AccessKeyID     string        `split_words:"true" default:"minioadmin"`
	SecretAccessKey string        `split_words:"true" default:"minioadmin"`
	BucketName      string        `split_words:"true" default:"voice-transcriber"`
	UseSSL          bool          `split_words:"true" default:"false"`
	URLExpiry       time.Duration `split_words:"true" default:"15m"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: failed to read .env file: %v", err)
		}
	}

	config := &Config{}
	if err := envconfig.Process("", config); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverMemory, c.Database.Driver)
	}

	switch c.STT.Provider {
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when STT_PROVIDER=%s", ProviderOpenAI)
		}
	case ProviderAssemblyAI:
		if c.Assembly.APIKey == "" {
			return fmt.Errorf("ASSEMBLYAI_API_KEY is required when STT_PROVIDER=%s", ProviderAssemblyAI)
		}
	default:
		return fmt.Errorf("unsupported STT_PROVIDER %q", c.STT.Provider)
	}

	switch c.LLM.Provider {
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER=%s", ProviderOpenAI)
		}
	case ProviderGroq:
		if c.Groq.APIKey == "" {
			return fmt.Errorf("GROQ_API_KEY is required when LLM_PROVIDER=%s", ProviderGroq)
		}
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.LLM.Provider)
	}

	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("LLM_MAX_TOKENS must be positive")
	}
	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetServerAddr returns the listen address
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
