package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig
	RateLimit  RateLimitConfig

	// Orchestration
	App     AppConfig
	Session StoreConfig
	Summary StoreConfig
	Agent   AgentConfig
	Memory  MemoryConfig

	// Vector memory backend
	Qdrant QdrantConfig
	Voyage VoyageConfig

	// LLM Provider Abstraction
	LLM LLMConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port            int
	Mode            string
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// RateLimitConfig bounds chat requests per client IP.
type RateLimitConfig struct {
	Enabled bool
	PerMin  int
	Burst   int
}

// AppConfig carries the invocation scope shared by every agent run.
type AppConfig struct {
	Name          string
	DefaultUserID string
}

// StoreConfig bounds an in-process keyed store.
type StoreConfig struct {
	MaxSize int
	TTL     time.Duration
}

// AgentConfig selects the model behind each advisory agent.
type AgentConfig struct {
	MaxSteps       int
	RiskModel      string
	SentimentModel string
	AdvisorModel   string
}

const (
	MemoryBackendInMemory = "inmemory"
	MemoryBackendQdrant   = "qdrant"
)

// MemoryConfig selects the long-term memory backend.
type MemoryConfig struct {
	Backend     string
	MaxSessions int
	SearchLimit int
}

type QdrantConfig struct {
	URL            string
	CollectionName string
	VectorSize     int
}

type VoyageConfig struct {
	APIKey string
	Model  string
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"`
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/app/")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return load(v)
}

// LoadFile loads configuration from an explicit file path.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.HTTPServer.ShutdownTimeout = v.GetDuration("http_server.shutdown_timeout")
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")
	cfg.RateLimit.Enabled = v.GetBool("rate_limit.enabled")
	cfg.RateLimit.PerMin = v.GetInt("rate_limit.per_min")
	cfg.RateLimit.Burst = v.GetInt("rate_limit.burst")

	// Orchestration
	cfg.App.Name = v.GetString("app.name")
	cfg.App.DefaultUserID = v.GetString("app.default_user_id")
	cfg.Session.MaxSize = v.GetInt("session.max_size")
	cfg.Session.TTL = v.GetDuration("session.ttl")
	cfg.Summary.MaxSize = v.GetInt("summary.max_size")
	cfg.Summary.TTL = v.GetDuration("summary.ttl")
	cfg.Agent.MaxSteps = v.GetInt("agent.max_steps")
	cfg.Agent.RiskModel = v.GetString("agent.risk_model")
	cfg.Agent.SentimentModel = v.GetString("agent.sentiment_model")
	cfg.Agent.AdvisorModel = v.GetString("agent.advisor_model")
	cfg.Memory.Backend = v.GetString("memory.backend")
	cfg.Memory.MaxSessions = v.GetInt("memory.max_sessions")
	cfg.Memory.SearchLimit = v.GetInt("memory.search_limit")

	cfg.Qdrant.URL = v.GetString("qdrant.url")
	cfg.Qdrant.CollectionName = v.GetString("qdrant.collection_name")
	cfg.Qdrant.VectorSize = v.GetInt("qdrant.vector_size")
	if qdrantURL := v.GetString("qdrant_url"); qdrantURL != "" {
		cfg.Qdrant.URL = qdrantURL
	}

	// Voyage AI
	cfg.Voyage.APIKey = expandEnvVar(v, v.GetString("voyage.api_key"))
	cfg.Voyage.Model = v.GetString("voyage.model")
	if voyageKey := v.GetString("voyage_api_key"); voyageKey != "" {
		cfg.Voyage.APIKey = voyageKey
	}

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = v.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = v.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = v.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = v.GetString("llm.max_total_timeout")

	if v.IsSet("llm.providers") {
		if providersList, ok := v.Get("llm.providers").([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					cfg.LLM.Providers = append(cfg.LLM.Providers, ProviderConfig{
						Name:     getStringFromMap(providerMap, "name"),
						Enabled:  getBoolFromMap(providerMap, "enabled"),
						Priority: getIntFromMap(providerMap, "priority"),
						APIKey:   expandEnvVar(v, getStringFromMap(providerMap, "api_key")),
						BaseURL:  getStringFromMap(providerMap, "base_url"),
						Model:    getStringFromMap(providerMap, "model"),
						Timeout:  getStringFromMap(providerMap, "timeout"),
					})
				}
			}
		}
	}

	if err := validateLLMConfig(&cfg.LLM); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.mode", "debug")
	v.SetDefault("http_server.shutdown_timeout", "10s")
	v.SetDefault("logger.level", "debug")
	v.SetDefault("logger.mode", "development")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.per_min", 60)
	v.SetDefault("rate_limit.burst", 10)

	v.SetDefault("app.name", "RiskAssessorApp")
	v.SetDefault("app.default_user_id", "user_1")
	v.SetDefault("session.max_size", 10000)
	v.SetDefault("session.ttl", "2h")
	v.SetDefault("summary.max_size", 10000)
	v.SetDefault("summary.ttl", "24h")
	v.SetDefault("agent.max_steps", 5)
	v.SetDefault("agent.risk_model", "gemini-2.5-flash-lite")
	v.SetDefault("agent.sentiment_model", "gemini-2.5-flash-lite")
	v.SetDefault("agent.advisor_model", "gemini-2.5-flash")
	v.SetDefault("memory.backend", MemoryBackendInMemory)
	v.SetDefault("memory.max_sessions", 1000)
	v.SetDefault("memory.search_limit", 5)

	v.SetDefault("qdrant.url", "http://localhost:6333")
	v.SetDefault("qdrant.collection_name", "advisory_memory")
	v.SetDefault("qdrant.vector_size", 1024)
	v.SetDefault("voyage.model", "voyage-3")

	// LLM defaults
	v.SetDefault("llm.fallback_enabled", true)
	v.SetDefault("llm.retry_attempts", 3)
	v.SetDefault("llm.retry_delay", "1s")
	v.SetDefault("llm.max_total_timeout", "60s")
}

func (c *Config) validate() error {
	switch c.Memory.Backend {
	case MemoryBackendInMemory:
	case MemoryBackendQdrant:
		if c.Voyage.APIKey == "" {
			return fmt.Errorf("memory backend %q requires voyage.api_key", c.Memory.Backend)
		}
		if c.Qdrant.URL == "" {
			return fmt.Errorf("memory backend %q requires qdrant.url", c.Memory.Backend)
		}
	default:
		return fmt.Errorf("unknown memory backend %q", c.Memory.Backend)
	}
	if c.Agent.MaxSteps <= 0 {
		return fmt.Errorf("agent.max_steps must be positive")
	}
	if c.Session.MaxSize <= 0 || c.Summary.MaxSize <= 0 {
		return fmt.Errorf("session.max_size and summary.max_size must be positive")
	}
	if _, err := time.ParseDuration(c.LLM.RetryDelay); err != nil {
		return fmt.Errorf("llm.retry_delay: %w", err)
	}
	if _, err := time.ParseDuration(c.LLM.MaxTotalTimeout); err != nil {
		return fmt.Errorf("llm.max_total_timeout: %w", err)
	}
	return nil
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(v *viper.Viper, value string) string {
	if !strings.HasPrefix(value, "${") || !strings.HasSuffix(value, "}") {
		return value
	}

	envVar := value[2 : len(value)-1]
	if envValue := v.GetString(envVar); envValue != "" {
		return envValue
	}
	if envValue := v.GetString(strings.ToLower(envVar)); envValue != "" {
		return envValue
	}
	if envValue := os.Getenv(envVar); envValue != "" {
		return envValue
	}
	return ""
}

// validateLLMConfig validates the LLM configuration
func validateLLMConfig(cfg *LLMConfig) error {
	if len(cfg.Providers) == 0 {
		return fmt.Errorf("no LLM providers configured - please add llm.providers section to config.yaml")
	}

	enabledCount := 0
	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if provider.Model == "" {
			return fmt.Errorf("provider %s: model is required", provider.Name)
		}
		if !provider.Enabled {
			continue
		}
		enabledCount++

		if provider.Priority <= 0 {
			return fmt.Errorf("provider %s: priority must be positive", provider.Name)
		}
		if priorityMap[provider.Priority] {
			return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
		}
		priorityMap[provider.Priority] = true
	}

	if enabledCount == 0 {
		return fmt.Errorf("no enabled LLM providers")
	}

	return nil
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		switch n := val.(type) {
		case int:
			return n
		case int64:
			return int(n)
		case float64:
			return int(n)
		}
	}
	return 0
}
