package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddr())
		assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
		assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
		assert.Equal(t, DriverPostgres, cfg.Database.Driver)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, ProviderOpenAI, cfg.STT.Provider)
		assert.Equal(t, "whisper-1", cfg.STT.Model)
		assert.Equal(t, "gpt-3.5-turbo", cfg.LLM.Model)
		assert.InDelta(t, 0.7, cfg.LLM.Temperature, 1e-9)
		assert.Equal(t, 150, cfg.LLM.MaxTokens)
		assert.False(t, cfg.Storage.Enabled)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("environment_overrides", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("SERVER_ENVIRONMENT", "production")
		t.Setenv("DB_DRIVER", "memory")
		t.Setenv("DB_USER", "transcriber")
		t.Setenv("DB_SSL_MODE", "require")
		t.Setenv("LLM_PROVIDER", "groq")
		t.Setenv("GROQ_API_KEY", "gsk-test")
		t.Setenv("LLM_MAX_TOKENS", "200")
		t.Setenv("STORAGE_ENABLED", "true")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.True(t, cfg.IsProduction())
		assert.Equal(t, DriverMemory, cfg.Database.Driver)
		assert.Equal(t, ProviderGroq, cfg.LLM.Provider)
		assert.Equal(t, "https://api.groq.com", cfg.Groq.BaseURL)
		assert.Equal(t, 200, cfg.LLM.MaxTokens)
		assert.True(t, cfg.Storage.Enabled)
		assert.Contains(t, cfg.GetDatabaseDSN(), "user=transcriber")
		assert.Contains(t, cfg.GetDatabaseDSN(), "sslmode=require")
	})

	t.Run("missing_api_key", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "OPENAI_API_KEY")
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Database: DatabaseConfig{Driver: DriverMemory},
			STT:      STTConfig{Provider: ProviderAssemblyAI},
			LLM:      LLMConfig{Provider: ProviderGroq, MaxTokens: 150},
			Groq:     GroqConfig{APIKey: "gsk"},
			Assembly: AssemblyAIConfig{APIKey: "aai"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "sqlite" }, wantErr: "DB_DRIVER"},
		{name: "unknown stt provider", mutate: func(c *Config) { c.STT.Provider = "vosk" }, wantErr: "STT_PROVIDER"},
		{name: "unknown llm provider", mutate: func(c *Config) { c.LLM.Provider = "ollama" }, wantErr: "LLM_PROVIDER"},
		{name: "assemblyai without key", mutate: func(c *Config) { c.Assembly.APIKey = "" }, wantErr: "ASSEMBLYAI_API_KEY"},
		{name: "groq without key", mutate: func(c *Config) { c.Groq.APIKey = "" }, wantErr: "GROQ_API_KEY"},
		{name: "zero max tokens", mutate: func(c *Config) { c.LLM.MaxTokens = 0 }, wantErr: "LLM_MAX_TOKENS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
