// Package config loads the evaluator settings from an optional YAML file
// and LOAN_EVALUATOR_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const EnvPrefix = "LOAN_EVALUATOR"

// Configuration holds all configuration for the evaluator.
type Configuration struct {
	Server     ServerConfig
	Completion CompletionConfig
	Storage    StorageConfig
	RateLimit  RateLimitConfig
	Logging    LoggingConfig
}

type ServerConfig struct {
	Addr string
}

// CompletionConfig selects and configures the completion service.
type CompletionConfig struct {
	Provider    string // openai, anthropic
	Endpoint    string
	APIKey      string
	Model       string // anthropic only
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

type StorageConfig struct {
	RedisAddr  string        // empty keeps the latest results in memory
	CacheTTL   time.Duration // redis only
	SQLitePath string        // empty keeps the audit log in memory
	AuditLimit int
}

type RateLimitConfig struct {
	Capacity int
	Window   time.Duration
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string // debug, info, warn, error
	Format     string // json, console
	OutputFile string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("completion.provider", "openai")
	v.SetDefault("completion.endpoint", "")
	v.SetDefault("completion.apiKey", "")
	v.SetDefault("completion.model", "")
	v.SetDefault("completion.maxTokens", 500)
	v.SetDefault("completion.temperature", 0.1)
	v.SetDefault("completion.timeout", 30*time.Second)
	v.SetDefault("storage.redisAddr", "")
	v.SetDefault("storage.cacheTTL", 24*time.Hour)
	v.SetDefault("storage.sqlitePath", "")
	v.SetDefault("storage.auditLimit", 1000)
	v.SetDefault("rateLimit.capacity", 5)
	v.SetDefault("rateLimit.window", time.Minute)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.outputFile", "")
}

// LoadConfiguration reads configPath when it is not empty, then applies
// environment overrides such as LOAN_EVALUATOR_COMPLETION_APIKEY.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file, %s", err)
		}
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	if err := configuration.Validate(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

// Validate checks the settings that would otherwise fail on first use.
func (c *Configuration) Validate() error {
	switch c.Completion.Provider {
	case "openai":
		if c.Completion.Endpoint == "" {
			return errors.New("completion.endpoint is required for the openai provider")
		}
	case "anthropic":
	default:
		return fmt.Errorf("unknown completion provider %q", c.Completion.Provider)
	}
	if c.Completion.APIKey == "" {
		return errors.New("completion.apiKey is required")
	}
	if c.Completion.MaxTokens <= 0 {
		return fmt.Errorf("completion.maxTokens must be positive, got %d", c.Completion.MaxTokens)
	}
	if c.Completion.Temperature < 0 || c.Completion.Temperature > 2 {
		return fmt.Errorf("completion.temperature out of range: %v", c.Completion.Temperature)
	}
	if c.RateLimit.Capacity <= 0 || c.RateLimit.Window <= 0 {
		return errors.New("rateLimit.capacity and rateLimit.window must be positive")
	}
	return nil
}

// NewLogger creates a zap logger from the logging section.
func NewLogger(loggingConfig LoggingConfig) (*zap.Logger, error) {
	level := loggingConfig.Level
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	var zapConfig zap.Config
	switch loggingConfig.Format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
	case "json", "":
		zapConfig = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", loggingConfig.Format)
	}
	zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}
		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}
