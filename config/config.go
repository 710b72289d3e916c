package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the agent system
type Config struct {
	General   GeneralConfig   `mapstructure:"general"`
	Server    ServerConfig    `mapstructure:"server"`
	Agent     AgentConfig     `mapstructure:"agent"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Search    SearchConfig    `mapstructure:"search"`
	Research  ResearchConfig  `mapstructure:"research"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	Debug          bool          `mapstructure:"debug"`
	LogLevel       string        `mapstructure:"log_level"`
	DataDir        string        `mapstructure:"data_dir"` // profile, daily plan, scratchpads
	DefaultTimeout time.Duration `mapstructure:"default_timeout"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AgentConfig contains executor loop budgets and routing defaults
type AgentConfig struct {
	MaxSteps        int    `mapstructure:"max_steps"`
	MaxStepsPerTask int    `mapstructure:"max_steps_per_task"`
	Model           string `mapstructure:"model"` // claude-* routes to anthropic, anything else to openai
}

// LLMConfig contains LLM provider configurations
type LLMConfig struct {
	OpenAI    LLMProviderConfig   `mapstructure:"openai"`
	Anthropic LLMProviderConfig   `mapstructure:"anthropic"`
	Models    map[string]LLMModel `mapstructure:"models"`
}

// LLMProviderConfig represents a single LLM provider configuration
type LLMProviderConfig struct {
	APIKey     string        `mapstructure:"api_key"`
	BaseURL    string        `mapstructure:"base_url"`
	MaxRetries int           `mapstructure:"max_retries"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// LLMModel represents a specific model configuration
type LLMModel struct {
	Name            string  `mapstructure:"name"`
	APIName         string  `mapstructure:"api_name"`
	MaxTokens       int     `mapstructure:"max_tokens"`
	Temperature     float64 `mapstructure:"temperature"`
	CostPer1K       float64 `mapstructure:"cost_per_1k_input"`
	CostPer1KOutput float64 `mapstructure:"cost_per_1k_output"`
}

// SearchConfig contains web search settings
type SearchConfig struct {
	Provider     string        `mapstructure:"provider"` // serper or brave
	SerperAPIKey string        `mapstructure:"serper_api_key"`
	BraveAPIKey  string        `mapstructure:"brave_api_key"`
	MaxResults   int           `mapstructure:"max_results"`
	Timeout      time.Duration `mapstructure:"timeout"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"` // redis cache, 0 disables
}

// ResearchConfig contains the cited deep-research backend settings
type ResearchConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// StorageConfig contains storage and persistence settings
type StorageConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Bleve    BleveConfig    `mapstructure:"bleve"`
}

// PostgresConfig contains Postgres connection settings
type PostgresConfig struct {
	URL      string        `mapstructure:"url"`
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	User     string        `mapstructure:"user"`
	Password string        `mapstructure:"password"`
	DBName   string        `mapstructure:"dbname"`
	SSLMode  string        `mapstructure:"sslmode"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// Configured reports whether any connection detail was provided.
func (p PostgresConfig) Configured() bool {
	return strings.TrimSpace(p.URL) != "" || strings.TrimSpace(p.Host) != "" || strings.TrimSpace(p.DBName) != ""
}

// DSN builds a postgres connection string from the configured fields.
func (p PostgresConfig) DSN() string {
	if strings.TrimSpace(p.URL) != "" {
		return p.URL
	}
	host := p.Host
	if host == "" {
		host = "localhost"
	}
	port := p.Port
	if port == "" {
		port = "5432"
	}
	ssl := p.SSLMode
	if ssl == "" {
		ssl = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", p.User, p.Password, host, port, p.DBName, ssl)
}

// RedisConfig contains Redis connection settings
type RedisConfig struct {
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// Configured reports whether a Redis host was provided.
func (r RedisConfig) Configured() bool { return strings.TrimSpace(r.Host) != "" }

// Addr returns the host:port address for the Redis client.
func (r RedisConfig) Addr() string {
	port := r.Port
	if port == "" {
		port = "6379"
	}
	return r.Host + ":" + port
}

// BleveConfig contains the evidence index settings
type BleveConfig struct {
	Path string `mapstructure:"path"` // empty means in-memory index
}

// SchedulerConfig controls the daily-plan scheduler
type SchedulerConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
	LockTTL  time.Duration `mapstructure:"lock_ttl"`
}

// TelemetryConfig contains telemetry and monitoring settings
type TelemetryConfig struct {
	Enabled      bool `mapstructure:"enabled"`
	CostTracking bool `mapstructure:"cost_tracking"`
}

func (c AgentConfig) Validate() error {
	if c.MaxSteps <= 0 {
		return fmt.Errorf("agent.max_steps must be > 0")
	}
	if c.MaxStepsPerTask <= 0 {
		return fmt.Errorf("agent.max_steps_per_task must be > 0")
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("agent.model is required")
	}
	return nil
}

// LoadConfig loads config from file, with PEPO_* env overrides.
// A missing config file is not fatal; defaults plus env apply.
func LoadConfig(path string) *Config {
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("json")

	viper.SetDefault("general.data_dir", ".pepo")
	viper.SetDefault("general.default_timeout", "60s")
	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("server.allowed_origins", []string{"*"})
	viper.SetDefault("agent.max_steps", 30)
	viper.SetDefault("agent.max_steps_per_task", 8)
	viper.SetDefault("agent.model", "claude-3-5-sonnet-20241022")
	viper.SetDefault("llm.openai.timeout", "120s")
	viper.SetDefault("llm.anthropic.timeout", "120s")
	viper.SetDefault("search.provider", "serper")
	viper.SetDefault("search.max_results", 10)
	viper.SetDefault("search.timeout", "15s")
	viper.SetDefault("search.cache_ttl", "0s")
	viper.SetDefault("research.base_url", "https://api.perplexity.ai")
	viper.SetDefault("research.model", "sonar")
	viper.SetDefault("research.timeout", "30s")
	viper.SetDefault("scheduler.enabled", true)
	viper.SetDefault("scheduler.interval", "1h")
	viper.SetDefault("scheduler.lock_ttl", "2m")
	viper.SetDefault("telemetry.enabled", true)
	viper.SetDefault("telemetry.cost_tracking", true)

	if path == "" {
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
		exe, _ := os.Executable()
		exeDir := filepath.Dir(exe)
		viper.AddConfigPath(exeDir)
		viper.AddConfigPath(filepath.Join(exeDir, ".."))
		viper.AddConfigPath(filepath.Join(exeDir, "..", "config"))
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("PEPO")
	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer)

	viper.AutomaticEnv() // read in environment variables that match (PEPO_*)

	if err := viper.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if path != "" || !notFound {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}

	if err := config.Agent.Validate(); err != nil {
		panic(err)
	}
	return &config
}
