package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration.
type Config struct {
	AI     AIConfig     `toml:"ai"`
	Feed   FeedConfig   `toml:"feed"`
	Line   LineConfig   `toml:"line"`
	Digest DigestConfig `toml:"digest"`
}

// AIConfig holds generative-API provider settings.
type AIConfig struct {
	Provider string `toml:"provider"`
	APIKey   string `toml:"api_key"`
	Model    string `toml:"model"`
}

// FeedConfig holds the news feed settings.
type FeedConfig struct {
	URL      string `toml:"url"`
	MaxItems int    `toml:"max_items"`
}

// LineConfig holds LINE Messaging API credentials.
type LineConfig struct {
	ChannelToken string `toml:"channel_token"`
	UserID       string `toml:"user_id"`
}

// DigestConfig holds pipeline settings.
type DigestConfig struct {
	ItemDelaySeconds int    `toml:"item_delay_seconds"`
	DataDir          string `toml:"data_dir"`
}

const defaultConfigContent = `[ai]
provider = "openai"               # "openai" or "anthropic"
api_key = ""                      # Your API key (or set AI_API_KEY env var)
model = "gpt-4o-mini"             # Chat model used for summarization

[feed]
url = "https://news.yahoo.co.jp/rss/topics/top-picks.xml"
max_items = 3

[line]
channel_token = ""                # Or set LINE_CHANNEL_ACCESS_TOKEN env var
user_id = ""                      # Or set LINE_USER_ID env var

[digest]
item_delay_seconds = 1            # Pause between articles to avoid rate limits
data_dir = "./data"
`

// Load reads and parses the TOML config from the given path. If the file does
// not exist, it creates a default config file at that path. Environment
// variables override values from the file with highest priority.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := createDefault(path); err != nil {
			return nil, fmt.Errorf("creating default config: %w", err)
		}
		slog.Info("created default config file", "path", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Validate explicitly-set values before applying defaults, so that
	// explicitly writing "max_items = 0" is an error rather than silently
	// being replaced with the default.
	if err := validateExplicit(&cfg, md); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	applyDefaults(&cfg, md)
	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// createDefault writes the default config content to the given path,
// creating any parent directories as needed.
func createDefault(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigContent), 0o644); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

// validateExplicit checks values that were explicitly set in the TOML file.
func validateExplicit(cfg *Config, md toml.MetaData) error {
	if md.IsDefined("feed", "max_items") {
		if cfg.Feed.MaxItems < 1 {
			return fmt.Errorf("invalid feed.max_items %d: must be >= 1", cfg.Feed.MaxItems)
		}
	}
	if md.IsDefined("digest", "item_delay_seconds") {
		if cfg.Digest.ItemDelaySeconds < 0 {
			return fmt.Errorf("invalid digest.item_delay_seconds %d: must be >= 0", cfg.Digest.ItemDelaySeconds)
		}
	}
	return nil
}

// applyDefaults sets default values for any unset fields. Metadata is
// needed to tell an omitted item_delay_seconds apart from an explicit 0,
// which is a valid value (no pacing).
func applyDefaults(cfg *Config, md toml.MetaData) {
	if cfg.AI.Provider == "" {
		cfg.AI.Provider = "openai"
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "gpt-4o-mini"
	}
	if cfg.Feed.URL == "" {
		cfg.Feed.URL = "https://news.yahoo.co.jp/rss/topics/top-picks.xml"
	}
	if cfg.Feed.MaxItems == 0 {
		cfg.Feed.MaxItems = 3
	}
	if !md.IsDefined("digest", "item_delay_seconds") {
		cfg.Digest.ItemDelaySeconds = 1
	}
	if cfg.Digest.DataDir == "" {
		cfg.Digest.DataDir = "./data"
	}
}

// applyEnvOverrides applies environment variable overrides. Environment
// variables take highest priority over config file values.
//
// Priority for ai.api_key:
//  1. AI_API_KEY (generic, highest)
//  2. OPENAI_API_KEY (when provider is "openai")
//  3. ANTHROPIC_API_KEY (when provider is "anthropic")
func applyEnvOverrides(cfg *Config) {
	// Apply provider-specific env var first (lower priority).
	switch cfg.AI.Provider {
	case "openai":
		if v := os.Getenv("OPENAI_API_KEY"); v != "" {
			cfg.AI.APIKey = v
		}
	case "anthropic":
		if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
			cfg.AI.APIKey = v
		}
	}

	// AI_API_KEY overrides everything (highest priority).
	if v := os.Getenv("AI_API_KEY"); v != "" {
		cfg.AI.APIKey = v
	}

	if v := os.Getenv("LINE_CHANNEL_ACCESS_TOKEN"); v != "" {
		cfg.Line.ChannelToken = v
	}
	if v := os.Getenv("LINE_USER_ID"); v != "" {
		cfg.Line.UserID = v
	}
	if v := os.Getenv("FEED_URL"); v != "" {
		cfg.Feed.URL = v
	}
}

// validate checks that configuration values are within acceptable ranges.
// Credentials are not required here; commands that need them call
// RequireAI or RequireDelivery at startup.
func validate(cfg *Config) error {
	switch cfg.AI.Provider {
	case "openai", "anthropic":
		// valid
	default:
		return fmt.Errorf("invalid ai.provider %q: must be \"openai\" or \"anthropic\"", cfg.AI.Provider)
	}

	if cfg.Feed.MaxItems < 1 {
		return fmt.Errorf("invalid feed.max_items %d: must be >= 1", cfg.Feed.MaxItems)
	}

	if cfg.AI.APIKey == "" {
		slog.Warn("ai.api_key is empty: set it in the config file or via AI_API_KEY environment variable")
	}

	return nil
}

// RequireAI returns an error if the generative-API credentials needed for
// summarization are missing.
func (c *Config) RequireAI() error {
	if c.AI.APIKey == "" {
		return errors.New("ai.api_key is required: set it in the config file or via AI_API_KEY")
	}
	return nil
}

// RequireDelivery returns an error if any credential needed for a full
// delivery run (summarization plus LINE push) is missing.
func (c *Config) RequireDelivery() error {
	if err := c.RequireAI(); err != nil {
		return err
	}
	if c.Line.ChannelToken == "" {
		return errors.New("line.channel_token is required: set it in the config file or via LINE_CHANNEL_ACCESS_TOKEN")
	}
	if c.Line.UserID == "" {
		return errors.New("line.user_id is required: set it in the config file or via LINE_USER_ID")
	}
	return nil
}
