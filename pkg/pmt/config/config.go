// Package config loads settings from an optional YAML file and PMT_*
// environment overrides via viper. Every knob has a default mirroring the
// original dashboard so the binary runs with no config at all.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/komsit37/pmt/pkg/pmt/news"
	"github.com/komsit37/pmt/pkg/pmt/types"
)

// Config holds high-level settings required across the application.
type Config struct {
	WatchlistPath string        `mapstructure:"watchlist_path"`
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`
	CacheSize     int           `mapstructure:"cache_size"`
	FetchTimeout  time.Duration `mapstructure:"fetch_timeout"`
	RateLimit     int           `mapstructure:"rate_limit"`

	ShortRange string `mapstructure:"short_range"`
	VolRange   string `mapstructure:"vol_range"`

	NewsPerSource int                `mapstructure:"news_per_source"`
	Feeds         []types.FeedSource `mapstructure:"feeds"`

	// FearName and SectorName are the display names of the reference
	// indicators the report reads from the results map.
	FearName   string `mapstructure:"fear_name"`
	SectorName string `mapstructure:"sector_name"`

	// Rules selects the PEG adjustment table: "classic" or "strict".
	Rules string `mapstructure:"rules"`

	// Benchmarks maps a display name to a fixed reference price for the
	// report's level commentary.
	Benchmarks map[string]float64 `mapstructure:"benchmarks"`
}

// Load reads the optional config file (./pmt.yaml or
// ~/.config/pmt/pmt.yaml) and applies PMT_* environment overrides.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("pmt")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "pmt"))
	}
	v.SetEnvPrefix("PMT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if len(cfg.Feeds) == 0 {
		cfg.Feeds = news.DefaultFeeds()
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("watchlist_path", defaultWatchlistPath())
	v.SetDefault("cache_ttl", time.Minute)
	v.SetDefault("cache_size", 256)
	v.SetDefault("fetch_timeout", 8*time.Second)
	v.SetDefault("rate_limit", 5)
	v.SetDefault("short_range", "5d")
	v.SetDefault("vol_range", "1mo")
	v.SetDefault("news_per_source", news.DefaultPerSource)
	v.SetDefault("fear_name", "VIX")
	v.SetDefault("sector_name", "Philadelphia Semi")
	v.SetDefault("rules", "classic")
	v.SetDefault("benchmarks", map[string]float64{
		"Samsung Electronics": 182400,
		"Korea Aerospace":     177100,
	})
}

func defaultWatchlistPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "watchlist.json"
	}
	return filepath.Join(home, ".config", "pmt", "watchlist.json")
}
