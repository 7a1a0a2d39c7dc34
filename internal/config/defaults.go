package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values
const (
	// LLM defaults
	DefaultProvider      = "google"
	DefaultModel         = "gemini-2.5-pro"
	DefaultGoogleBaseURL = "https://generativelanguage.googleapis.com"
	DefaultLLMTimeout    = 120 * time.Second
	DefaultMaxRetries    = 3

	// Context defaults
	DefaultMaxChars = 2_000_000

	// Cache defaults
	DefaultCacheEnabled = true
	DefaultCacheTTL     = 24 * time.Hour

	// Output defaults
	DefaultOutputFile = "output.md"

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// DefaultAllowExtensions returns the file extensions eligible for
// inclusion in an archive context
func DefaultAllowExtensions() []string {
	return []string{
		".js", ".ts", ".tsx", ".json", ".css", ".html",
		".md", ".py", ".go", ".rs",
	}
}

// DefaultIgnoreDirs returns the directory names pruned unconditionally
// from an archive walk
func DefaultIgnoreDirs() []string {
	return []string{"node_modules", ".git", ".next", "__pycache__", "dist"}
}

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sentinel"
	}
	return filepath.Join(home, ".sentinel")
}

// CacheDir returns the cache directory path
func CacheDir() string {
	return filepath.Join(ConfigDir(), "cache")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:   DefaultProvider,
			Model:      DefaultModel,
			BaseURL:    DefaultGoogleBaseURL,
			Timeout:    DefaultLLMTimeout,
			MaxRetries: DefaultMaxRetries,
		},
		Context: ContextConfig{
			AllowExtensions: DefaultAllowExtensions(),
			IgnoreDirs:      DefaultIgnoreDirs(),
			MaxChars:        DefaultMaxChars,
		},
		Cache: CacheConfig{
			Enabled:   DefaultCacheEnabled,
			TTL:       DefaultCacheTTL,
			Directory: CacheDir(),
		},
		Output: OutputConfig{
			File:        DefaultOutputFile,
			Frontmatter: true,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
