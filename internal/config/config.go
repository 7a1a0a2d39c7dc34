package config

import (
	"fmt"
	"time"
)

// Config represents the application configuration
type Config struct {
	LLM     LLMConfig     `mapstructure:"llm" yaml:"llm"`
	Context ContextConfig `mapstructure:"context" yaml:"context"`
	Cache   CacheConfig   `mapstructure:"cache" yaml:"cache"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// LLMConfig contains LLM provider settings
type LLMConfig struct {
	Provider    string        `mapstructure:"provider" yaml:"provider"`
	APIKey      string        `mapstructure:"api_key" yaml:"api_key"`
	BaseURL     string        `mapstructure:"base_url" yaml:"base_url"`
	Model       string        `mapstructure:"model" yaml:"model"`
	MaxTokens   int           `mapstructure:"max_tokens" yaml:"max_tokens"`
	Temperature float64       `mapstructure:"temperature" yaml:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout"`
	MaxRetries  int           `mapstructure:"max_retries" yaml:"max_retries"`
}

// ContextConfig contains context extraction settings consumed by the
// archive loader and the corpus assembler
type ContextConfig struct {
	AllowExtensions []string `mapstructure:"allow_extensions" yaml:"allow_extensions"`
	IgnoreDirs      []string `mapstructure:"ignore_dirs" yaml:"ignore_dirs"`
	MaxChars        int      `mapstructure:"max_chars" yaml:"max_chars"`
}

// CacheConfig contains response cache settings
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled" yaml:"enabled"`
	TTL       time.Duration `mapstructure:"ttl" yaml:"ttl"`
	Directory string        `mapstructure:"directory" yaml:"directory"`
}

// OutputConfig contains output settings
type OutputConfig struct {
	File        string `mapstructure:"file" yaml:"file"`
	Frontmatter bool   `mapstructure:"frontmatter" yaml:"frontmatter"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration and applies defaults for invalid
// values
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "", "google", "openai", "anthropic":
	default:
		return fmt.Errorf("invalid llm.provider %q (supported: google, openai, anthropic)", c.LLM.Provider)
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = DefaultProvider
	}
	if c.LLM.Model == "" {
		c.LLM.Model = DefaultModel
	}
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultBaseURL(c.LLM.Provider)
	}
	if c.LLM.Timeout < time.Second {
		c.LLM.Timeout = DefaultLLMTimeout
	}
	if c.LLM.MaxRetries < 0 {
		c.LLM.MaxRetries = DefaultMaxRetries
	}

	if len(c.Context.AllowExtensions) == 0 {
		c.Context.AllowExtensions = DefaultAllowExtensions()
	}
	if len(c.Context.IgnoreDirs) == 0 {
		c.Context.IgnoreDirs = DefaultIgnoreDirs()
	}
	if c.Context.MaxChars <= 0 {
		c.Context.MaxChars = DefaultMaxChars
	}

	if c.Cache.TTL < time.Minute {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Output.File == "" {
		c.Output.File = DefaultOutputFile
	}
	return nil
}

// defaultBaseURL returns the API base URL for a provider
func defaultBaseURL(provider string) string {
	switch provider {
	case "openai":
		return "https://api.openai.com/v1"
	case "anthropic":
		return "https://api.anthropic.com"
	default:
		return DefaultGoogleBaseURL
	}
}
