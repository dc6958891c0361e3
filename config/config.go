package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// LLM Provider Abstraction
	LLM LLMConfig

	// Spendly specifics
	Chat     ChatConfig
	Session  SessionConfig
	Upload   UploadConfig
	Document DocumentConfig

	// Edge
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"` // Global timeout for entire fallback chain
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

// ChatConfig tunes the turn orchestrator.
type ChatConfig struct {
	NarrativeTimeout    string
	ExtractionTimeout   string
	HistoryWindow       int
	DefaultAnnualIncome float64
}

// SessionConfig selects and configures the session store.
type SessionConfig struct {
	Driver   string // file | memory | sqlite | postgres | redis
	Dir      string
	SQLite   SQLiteConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Cache    CacheConfig
}

type SQLiteConfig struct {
	Path string
}

type PostgresConfig struct {
	DSN string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      string
}

type CacheConfig struct {
	Enabled bool
	Size    int
	TTL     string
}

type UploadConfig struct {
	Dir       string
	MaxSizeMB int64
}

type DocumentConfig struct {
	UnidocLicenseKey string
	LLMCategorise    bool
}

type RateLimitConfig struct {
	Enabled        bool
	RequestsPerMin int
	Burst          int
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/spendly/
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/spendly/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")

	if viper.IsSet("llm.providers") {
		if providersList, ok := viper.Get("llm.providers").([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					cfg.LLM.Providers = append(cfg.LLM.Providers, ProviderConfig{
						Name:     getStringFromMap(providerMap, "name"),
						Enabled:  getBoolFromMap(providerMap, "enabled"),
						Priority: getIntFromMap(providerMap, "priority"),
						APIKey:   expandEnvVar(getStringFromMap(providerMap, "api_key")),
						BaseURL:  getStringFromMap(providerMap, "base_url"),
						Model:    getStringFromMap(providerMap, "model"),
						Timeout:  getStringFromMap(providerMap, "timeout"),
					})
				}
			}
		}
	}

	// Without a config file, a single Gemini provider can still be enabled from the environment.
	if len(cfg.LLM.Providers) == 0 {
		if key := viper.GetString("google_api_key"); key != "" {
			cfg.LLM.Providers = append(cfg.LLM.Providers, ProviderConfig{
				Name:     "gemini",
				Enabled:  true,
				Priority: 1,
				APIKey:   key,
				Model:    viper.GetString("gemini_model_name"),
				Timeout:  "30s",
			})
		}
	}

	if err := validateLLMConfig(&cfg.LLM); err != nil {
		return nil, err
	}

	// Chat
	cfg.Chat.NarrativeTimeout = viper.GetString("chat.narrative_timeout")
	cfg.Chat.ExtractionTimeout = viper.GetString("chat.extraction_timeout")
	cfg.Chat.HistoryWindow = viper.GetInt("chat.history_window")
	cfg.Chat.DefaultAnnualIncome = viper.GetFloat64("chat.default_annual_income")

	// Session store
	cfg.Session.Driver = viper.GetString("session.driver")
	cfg.Session.Dir = viper.GetString("session.dir")
	cfg.Session.SQLite.Path = viper.GetString("session.sqlite.path")
	cfg.Session.Postgres.DSN = viper.GetString("session.postgres.dsn")
	if dsn := viper.GetString("database_url"); dsn != "" {
		cfg.Session.Postgres.DSN = dsn
	}
	cfg.Session.Redis.Addr = viper.GetString("session.redis.addr")
	cfg.Session.Redis.Password = viper.GetString("session.redis.password")
	cfg.Session.Redis.DB = viper.GetInt("session.redis.db")
	cfg.Session.Redis.TTL = viper.GetString("session.redis.ttl")
	cfg.Session.Cache.Enabled = viper.GetBool("session.cache.enabled")
	cfg.Session.Cache.Size = viper.GetInt("session.cache.size")
	cfg.Session.Cache.TTL = viper.GetString("session.cache.ttl")

	// Uploads & documents
	cfg.Upload.Dir = viper.GetString("upload.dir")
	cfg.Upload.MaxSizeMB = viper.GetInt64("upload.max_size_mb")
	cfg.Document.UnidocLicenseKey = expandEnvVar(viper.GetString("document.unidoc_license_key"))
	if key := viper.GetString("unidoc_license_api_key"); key != "" {
		cfg.Document.UnidocLicenseKey = key
	}
	cfg.Document.LLMCategorise = viper.GetBool("document.llm_categorise")

	// Edge
	cfg.RateLimit.Enabled = viper.GetBool("rate_limit.enabled")
	cfg.RateLimit.RequestsPerMin = viper.GetInt("rate_limit.requests_per_min")
	cfg.RateLimit.Burst = viper.GetInt("rate_limit.burst")
	cfg.CORS.AllowedOrigins = splitList(viper.GetString("cors.allowed_origins"))

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8000)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	// LLM defaults
	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_attempts", 2)
	viper.SetDefault("llm.retry_delay", "1s")
	viper.SetDefault("llm.max_total_timeout", "60s")

	viper.SetDefault("chat.narrative_timeout", "20s")
	viper.SetDefault("chat.extraction_timeout", "15s")
	viper.SetDefault("chat.history_window", 8)
	viper.SetDefault("chat.default_annual_income", 600000)

	viper.SetDefault("session.driver", "file")
	viper.SetDefault("session.dir", "sessions")
	viper.SetDefault("session.sqlite.path", "sessions.db")
	viper.SetDefault("session.redis.addr", "localhost:6379")
	viper.SetDefault("session.cache.size", 1024)
	viper.SetDefault("session.cache.ttl", "10m")

	viper.SetDefault("upload.dir", "uploads")
	viper.SetDefault("upload.max_size_mb", 10)
	viper.SetDefault("document.llm_categorise", true)

	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests_per_min", 60)
	viper.SetDefault("rate_limit.burst", 10)
	viper.SetDefault("cors.allowed_origins", "http://localhost:4200,http://127.0.0.1:4200")
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if !strings.HasPrefix(value, "${") || !strings.HasSuffix(value, "}") {
		return value
	}

	envVar := value[2 : len(value)-1]
	if envValue := viper.GetString(envVar); envValue != "" {
		return envValue
	}
	if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
		return envValue
	}
	return os.Getenv(envVar)
}

// validateLLMConfig validates the LLM configuration.
// An empty provider list is allowed: narrative and extraction then degrade.
func validateLLMConfig(cfg *LLMConfig) error {
	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if !provider.Enabled {
			continue
		}
		if provider.Priority <= 0 {
			return fmt.Errorf("provider %s: priority must be positive", provider.Name)
		}
		if priorityMap[provider.Priority] {
			return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
		}
		priorityMap[provider.Priority] = true
	}

	return nil
}

// Duration parses raw, returning def when raw is empty or malformed.
func Duration(raw string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || d < 0 {
		return def
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
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
		if i, ok := val.(int); ok {
			return i
		}
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
