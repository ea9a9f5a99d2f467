package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"zaur-newsdesk/internal/model"
)

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// StoreConfig selects and configures the storage backend. The backend is
// chosen once here; there is no runtime fallback between backends.
type StoreConfig struct {
	Backend         string      `mapstructure:"backend"` // memory, redis, sqlite, postgres
	Path            string      `mapstructure:"path"`    // sqlite file
	DSN             string      `mapstructure:"dsn"`     // postgres connection string
	Redis           RedisConfig `mapstructure:"redis"`
	MaxItems        int         `mapstructure:"max_items"`
	DiscoveryMaxAge string      `mapstructure:"discovery_max_age"` // duration string; empty keeps discoveries forever
}

// FetchConfig controls the aggregation cycle.
type FetchConfig struct {
	Interval  string `mapstructure:"interval"` // duration string, e.g., "30m"
	Timeout   string `mapstructure:"timeout"`  // per-source fetch timeout
	UserAgent string `mapstructure:"user_agent"`
}

// FeedConfig controls how the balanced feed is rendered.
type FeedConfig struct {
	PerSourceCap     int    `mapstructure:"per_source_cap"` // 0 = automatic
	DominantSource   string `mapstructure:"dominant_source"`
	DiscoveryDisplay string `mapstructure:"discovery_display"` // how long a discovery stays current
}

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// OpenAIConfig enables optional summary enrichment when an API key is set.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// Config is the top-level configuration structure.
type Config struct {
	App         AppConfig          `mapstructure:"app"`
	Store       StoreConfig        `mapstructure:"store"`
	Fetch       FetchConfig        `mapstructure:"fetch"`
	Feed        FeedConfig         `mapstructure:"feed"`
	Server      ServerConfig       `mapstructure:"server"`
	OpenAI      OpenAIConfig       `mapstructure:"openai"`
	SourcesFile string             `mapstructure:"sources_file"`
	Sources     []model.NewsSource `mapstructure:"sources"`
}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Store.Backend == "" {
		c.Store.Backend = "memory"
	}
	if c.Store.Path == "" {
		c.Store.Path = "./newsdesk.db"
	}
	if c.Store.Redis.Addr == "" {
		c.Store.Redis.Addr = "127.0.0.1:6379"
	}
	if c.Store.MaxItems == 0 {
		c.Store.MaxItems = 200
	}
	if c.Fetch.Interval == "" {
		c.Fetch.Interval = "30m"
	}
	if c.Fetch.Timeout == "" {
		c.Fetch.Timeout = "15s"
	}
	if c.Feed.DiscoveryDisplay == "" {
		c.Feed.DiscoveryDisplay = "10m"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
}

// sourcesFile mirrors the YAML shape of an external sources file.
type sourcesFile struct {
	Sources []model.NewsSource `yaml:"sources"`
}

// LoadSources returns the configured sources, preferring the inline list and
// otherwise reading the external sources file.
func (c *Config) LoadSources() ([]model.NewsSource, error) {
	if len(c.Sources) > 0 {
		return c.Sources, nil
	}
	if c.SourcesFile == "" {
		return nil, fmt.Errorf("no sources configured: set sources or sources_file")
	}
	raw, err := os.ReadFile(c.SourcesFile)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}
	var f sourcesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse sources file: %w", err)
	}
	if len(f.Sources) == 0 {
		return nil, fmt.Errorf("sources file %s lists no sources", c.SourcesFile)
	}
	return f.Sources, nil
}
