// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Interface defines the contract for accessing application configuration.
// This allows for dependency injection and mocking in tests.
type Interface interface {
	Logger() LoggerConfig
	Database() DatabaseConfig
	Agent() AgentConfig
	Server() ServerConfig
	Data() DataConfig

	SetDataSource(DataSource)
	SetServerListenAddr(string)
}

// Config holds the entire application configuration. Sections are reached
// through the Interface getters.
type Config struct {
	LoggerCfg   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	DatabaseCfg DatabaseConfig `mapstructure:"database" yaml:"database"`
	AgentCfg    AgentConfig    `mapstructure:"agent" yaml:"agent"`
	ServerCfg   ServerConfig   `mapstructure:"server" yaml:"server"`
	DataCfg     DataConfig     `mapstructure:"data" yaml:"data"`
}

// --- Interface Method Implementations (Getters) ---

func (c *Config) Logger() LoggerConfig     { return c.LoggerCfg }
func (c *Config) Database() DatabaseConfig { return c.DatabaseCfg }
func (c *Config) Agent() AgentConfig       { return c.AgentCfg }
func (c *Config) Server() ServerConfig     { return c.ServerCfg }
func (c *Config) Data() DataConfig         { return c.DataCfg }

// --- Interface Method Implementations (Setters) ---

func (c *Config) SetDataSource(s DataSource)      { c.DataCfg.Source = s }
func (c *Config) SetServerListenAddr(addr string) { c.ServerCfg.ListenAddr = addr }

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// DatabaseConfig holds the database connection details.
type DatabaseConfig struct {
	URL            string        `mapstructure:"url" yaml:"url"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout" yaml:"connect_timeout"`
}

// DataSource selects where scan results are loaded from.
type DataSource string

const (
	DataSourceMock     DataSource = "mock"
	DataSourceFile     DataSource = "file"
	DataSourcePostgres DataSource = "postgres"
)

// DataConfig selects and configures the scan result source.
type DataConfig struct {
	Source DataSource `mapstructure:"source" yaml:"source"`
	// FilePath is the JSON document read when Source is "file".
	FilePath string `mapstructure:"file_path" yaml:"file_path"`
}

// ServerConfig tunes the dashboard HTTP API.
type ServerConfig struct {
	ListenAddr       string        `mapstructure:"listen_addr" yaml:"listen_addr"`
	ReadTimeout      time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout     time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	ShutdownTimeout  time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	DashboardRefresh time.Duration `mapstructure:"dashboard_refresh" yaml:"dashboard_refresh"`
	// LLMRateLimit is the sustained number of collaborator calls per second the
	// API admits; LLMBurst is the bucket size. Excess calls are rejected, not queued.
	LLMRateLimit float64  `mapstructure:"llm_rate_limit" yaml:"llm_rate_limit"`
	LLMBurst     int      `mapstructure:"llm_burst" yaml:"llm_burst"`
	AllowOrigins []string `mapstructure:"allow_origins" yaml:"allow_origins"`
	// MaxConnections caps simultaneously accepted connections. Zero means no cap.
	MaxConnections int `mapstructure:"max_connections" yaml:"max_connections"`
}

// AgentConfig holds settings related to the LLM collaborators.
type AgentConfig struct {
	LLM LLMRouterConfig `mapstructure:"llm" yaml:"llm"`
}

// LLMProvider defines the supported LLM providers.
type LLMProvider string

const (
	ProviderGemini LLMProvider = "gemini"
)

// LLMRouterConfig configures the model routing logic.
type LLMRouterConfig struct {
	DefaultFastModel     string                    `mapstructure:"default_fast_model" yaml:"default_fast_model"`
	DefaultPowerfulModel string                    `mapstructure:"default_powerful_model" yaml:"default_powerful_model"`
	Models               map[string]LLMModelConfig `mapstructure:"models" yaml:"models"`
}

// LLMModelConfig defines the configuration for a single LLM.
type LLMModelConfig struct {
	Provider    LLMProvider   `mapstructure:"provider" yaml:"provider"`
	Model       string        `mapstructure:"model" yaml:"model"`
	APIKey      string        `mapstructure:"api_key" yaml:"-"`
	Endpoint    string        `mapstructure:"endpoint" yaml:"endpoint"`
	APITimeout  time.Duration `mapstructure:"api_timeout" yaml:"api_timeout"`
	Temperature float32       `mapstructure:"temperature" yaml:"temperature"`
	TopP        float32       `mapstructure:"top_p" yaml:"top_p"`
	TopK        int           `mapstructure:"top_k" yaml:"top_k"`
	MaxTokens   int           `mapstructure:"max_tokens" yaml:"max_tokens"`
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// This should not happen with defaults, but good to be safe.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for various configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "scanlens")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "magenta")

	// -- Database --
	v.SetDefault("database.connect_timeout", "10s")

	// -- Data --
	v.SetDefault("data.source", string(DataSourceMock))
	v.SetDefault("data.file_path", "scan_results.json")

	// -- Server --
	v.SetDefault("server.listen_addr", "127.0.0.1:8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "90s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.dashboard_refresh", "30s")
	v.SetDefault("server.llm_rate_limit", 1.0)
	v.SetDefault("server.llm_burst", 3)
	v.SetDefault("server.allow_origins", []string{"*"})
	v.SetDefault("server.max_connections", 256)

	// -- Agent --
	// Model map keys are aliases. Viper splits keys on ".", so a dotted model
	// name such as gemini-2.5-flash only ever appears in the model field.
	v.SetDefault("agent.llm.default_fast_model", "fast")
	v.SetDefault("agent.llm.default_powerful_model", "powerful")
	v.SetDefault("agent.llm.models", map[string]any{
		"fast": map[string]any{
			"provider":    string(ProviderGemini),
			"model":       "gemini-2.5-flash",
			"api_timeout": "60s",
			"temperature": 0.2,
		},
		"powerful": map[string]any{
			"provider":    string(ProviderGemini),
			"model":       "gemini-2.5-pro",
			"api_timeout": "120s",
			"temperature": 0.2,
		},
	})
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config

	// Bind environment variables for sensitive data
	_ = v.BindEnv("database.url", "SCANLENS_DATABASE_URL")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// API keys live in the environment rather than the config file.
	if key := os.Getenv("SCANLENS_GEMINI_API_KEY"); key != "" {
		for name, m := range cfg.AgentCfg.LLM.Models {
			if m.Provider == ProviderGemini && m.APIKey == "" {
				m.APIKey = key
				cfg.AgentCfg.LLM.Models[name] = m
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if err := c.DataCfg.Validate(); err != nil {
		return fmt.Errorf("data configuration invalid: %w", err)
	}
	if c.DataCfg.Source == DataSourcePostgres && c.DatabaseCfg.URL == "" {
		return fmt.Errorf("database.url is required when data.source is postgres (SCANLENS_DATABASE_URL)")
	}
	if err := c.ServerCfg.Validate(); err != nil {
		return fmt.Errorf("server configuration invalid: %w", err)
	}
	if err := c.AgentCfg.LLM.Validate(); err != nil {
		return fmt.Errorf("agent.llm configuration invalid: %w", err)
	}
	return nil
}

// Validate checks the result source selection.
func (d *DataConfig) Validate() error {
	switch d.Source {
	case DataSourceMock, DataSourcePostgres:
		return nil
	case DataSourceFile:
		if d.FilePath == "" {
			return fmt.Errorf("file_path is required when source is file")
		}
		return nil
	default:
		return fmt.Errorf("unknown source %q (want mock, file or postgres)", d.Source)
	}
}

// Validate checks the HTTP API settings.
func (s *ServerConfig) Validate() error {
	if s.ListenAddr == "" {
		return fmt.Errorf("listen_addr is required")
	}
	if s.DashboardRefresh <= 0 {
		return fmt.Errorf("dashboard_refresh must be a positive duration")
	}
	if s.LLMRateLimit <= 0 {
		return fmt.Errorf("llm_rate_limit must be positive")
	}
	if s.LLMBurst <= 0 {
		return fmt.Errorf("llm_burst must be a positive integer")
	}
	if s.MaxConnections < 0 {
		return fmt.Errorf("max_connections must not be negative")
	}
	return nil
}

// Validate checks that the default models are configured.
func (r *LLMRouterConfig) Validate() error {
	for _, name := range []string{r.DefaultFastModel, r.DefaultPowerfulModel} {
		if name == "" {
			return fmt.Errorf("default_fast_model and default_powerful_model are required")
		}
		if strings.Contains(name, ".") {
			return fmt.Errorf("model alias %q must not contain \".\" (use the model field for the provider's model name)", name)
		}
		if _, ok := r.Models[name]; !ok {
			return fmt.Errorf("model %q is not defined under models", name)
		}
	}
	return nil
}
