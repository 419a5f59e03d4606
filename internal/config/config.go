package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Core
	DatabaseURL string `env:"DATABASE_URL,required"`
	JWTSecret   string `env:"JWT_SECRET,required"`

	// LLM backend (OpenAI-compatible chat completions)
	LLMAPIKey        string  `env:"LLM_API_KEY,required"`
	LLMBaseURL       string  `env:"LLM_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	LLMModel         string  `env:"LLM_MODEL" envDefault:"llama-3.3-70b-versatile"`
	LLMFallbackModel string  `env:"LLM_FALLBACK_MODEL" envDefault:"llama-3.1-8b-instant"`
	LLMTemperature   float64 `env:"LLM_TEMPERATURE" envDefault:"0.7"`

	// Web search for the retrieval layer
	WebSearchEnabled bool `env:"WEB_SEARCH_ENABLED" envDefault:"true"`

	// Server
	Port           int      `env:"PORT" envDefault:"8080"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"info"`

	// Telegram ops alerts (disabled when token is empty)
	AlertBotToken  string `env:"ALERT_BOT_TOKEN"`
	AlertChatID    int64  `env:"ALERT_CHAT_ID"`
	AlertTopicOps  int    `env:"ALERT_TOPIC_OPS"`
	AlertTopicCrisis int  `env:"ALERT_TOPIC_CRISIS"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) AlertsEnabled() bool {
	return c.AlertBotToken != "" && c.AlertChatID != 0
}
