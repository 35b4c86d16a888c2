// Package config defines the YAML configuration surface for the
// evaluation agent. Every knob has a default; API keys fall back to
// environment variables so config files never need to carry secrets.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/greenlens/sdk/pkg/cache"
	"github.com/greenlens/sdk/pkg/llm"
	"github.com/greenlens/sdk/pkg/news"
)

// Environment variables consulted when the config file leaves the
// corresponding key empty.
const (
	EnvBraveAPIKey = "BRAVE_API_KEY"
	EnvNewsAPIKey  = "NEWSAPI_API_KEY"
	EnvBingAPIKey  = "BING_NEWS_API_KEY"
	EnvLLMAPIKey   = "LLM_API_KEY"
)

// NewsConfig configures the news search sources.
type NewsConfig struct {
	// Provider is the preferred source name: "brave", "newsapi" or "bing".
	// Other configured sources remain available as fallback.
	Provider string `yaml:"provider" json:"provider"`

	BraveAPIKey string `yaml:"brave_api_key" json:"-"`
	NewsAPIKey  string `yaml:"newsapi_api_key" json:"-"`
	BingAPIKey  string `yaml:"bing_api_key" json:"-"`

	// Keywords for the search query. Empty means the default list.
	Keywords []string `yaml:"keywords" json:"keywords"`

	MaxResults int `yaml:"max_results" json:"max_results"`
}

// LLMConfig configures the event extraction model.
type LLMConfig struct {
	APIKey      string        `yaml:"api_key" json:"-"`
	BaseURL     string        `yaml:"base_url" json:"base_url"`
	Model       string        `yaml:"model" json:"model"`
	Temperature float64       `yaml:"temperature" json:"temperature"`
	MaxTokens   int           `yaml:"max_tokens" json:"max_tokens"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout"`
}

// CacheConfig configures the search/extraction cache.
type CacheConfig struct {
	Enabled      bool          `yaml:"enabled" json:"enabled"`
	DatabasePath string        `yaml:"database_path" json:"database_path"`
	TTL          time.Duration `yaml:"ttl" json:"ttl"`
}

// AdaptersConfig configures the registry adapters.
type AdaptersConfig struct {
	// SBTiPath and CDPPath point at the reference CSV files. An empty path
	// leaves the adapter in the no-data state.
	SBTiPath string `yaml:"sbti_path" json:"sbti_path"`
	CDPPath  string `yaml:"cdp_path" json:"cdp_path"`

	// MatchCutoff is the fuzzy company-name match threshold in (0,1].
	// Zero means the default 0.7.
	MatchCutoff float64 `yaml:"match_cutoff" json:"match_cutoff"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Listen  string `yaml:"listen" json:"listen"`
}

// Config is the full agent configuration.
type Config struct {
	// Validators selects rule validators by name. Empty means all four.
	Validators []string `yaml:"validators" json:"validators"`

	// Weights overrides the scoring dimension weights.
	Weights map[string]float64 `yaml:"weights" json:"weights"`

	News     NewsConfig     `yaml:"news" json:"news"`
	LLM      LLMConfig      `yaml:"llm" json:"llm"`
	Cache    CacheConfig    `yaml:"cache" json:"cache"`
	Adapters AdaptersConfig `yaml:"adapters" json:"adapters"`
	Metrics  MetricsConfig  `yaml:"metrics" json:"metrics"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cacheCfg := cache.DefaultConfig()
	return &Config{
		News: NewsConfig{
			Provider:   "brave",
			Keywords:   nil,
			MaxResults: news.DefaultMaxResults,
		},
		LLM: LLMConfig{
			BaseURL:     llm.DefaultBaseURL,
			Model:       llm.DefaultModel,
			Temperature: llm.DefaultTemperature,
			MaxTokens:   llm.DefaultMaxTokens,
			Timeout:     llm.DefaultTimeout,
		},
		Cache: CacheConfig{
			Enabled:      true,
			DatabasePath: cacheCfg.DatabasePath,
			TTL:          cache.DefaultTTL,
		},
		Metrics: MetricsConfig{
			Listen: ":9090",
		},
	}
}

// Load reads the YAML file at path and fills in defaults and environment
// fallbacks. An empty path returns the default configuration with env
// fallbacks applied.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyDefaults()
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.News.Provider == "" {
		c.News.Provider = "brave"
	}
	if c.News.MaxResults <= 0 {
		c.News.MaxResults = news.DefaultMaxResults
	}
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = llm.DefaultBaseURL
	}
	if c.LLM.Model == "" {
		c.LLM.Model = llm.DefaultModel
	}
	if c.LLM.MaxTokens <= 0 {
		c.LLM.MaxTokens = llm.DefaultMaxTokens
	}
	if c.LLM.Timeout <= 0 {
		c.LLM.Timeout = llm.DefaultTimeout
	}
	if c.Cache.DatabasePath == "" {
		c.Cache.DatabasePath = cache.DefaultConfig().DatabasePath
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = cache.DefaultTTL
	}
	if c.Metrics.Listen == "" {
		c.Metrics.Listen = ":9090"
	}
}

func (c *Config) applyEnv() {
	if c.News.BraveAPIKey == "" {
		c.News.BraveAPIKey = os.Getenv(EnvBraveAPIKey)
	}
	if c.News.NewsAPIKey == "" {
		c.News.NewsAPIKey = os.Getenv(EnvNewsAPIKey)
	}
	if c.News.BingAPIKey == "" {
		c.News.BingAPIKey = os.Getenv(EnvBingAPIKey)
	}
	if c.LLM.APIKey == "" {
		c.LLM.APIKey = os.Getenv(EnvLLMAPIKey)
	}
}
