// Package config loads and validates the engine's runtime configuration:
// strategy variant, sizing/risk constants, feed and broker endpoints, and
// journal destinations.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the complete engine configuration.
type Config struct {
	Strategy StrategyConfig `json:"strategy" yaml:"strategy"`
	Sizing   SizingConfig   `json:"sizing" yaml:"sizing"`
	Feed     FeedConfig     `json:"feed" yaml:"feed"`
	Broker   BrokerConfig   `json:"broker" yaml:"broker"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
	Ban      BanConfig      `json:"ban" yaml:"ban"`
}

// StrategyConfig selects the formula variant and its exit-policy
// modifiers (§6 configuration enumeration).
type StrategyConfig struct {
	FormulaVariant  string  `json:"formula_variant" yaml:"formula_variant"` // F1, F3, F4
	BanMode         bool    `json:"ban_mode" yaml:"ban_mode"`
	WithCancel      bool    `json:"with_cancel" yaml:"with_cancel"`
	CancelThreshold float64 `json:"cancel_threshold" yaml:"cancel_threshold"`
}

// SizingConfig holds the order-sizing and eligibility constants.
type SizingConfig struct {
	ReserveBalance      float64 `json:"reserve_balance" yaml:"reserve_balance"`
	AllowedPriceLow     float64 `json:"allowed_price_low" yaml:"allowed_price_low"`
	AllowedPriceHigh    float64 `json:"allowed_price_high" yaml:"allowed_price_high"`
	TradingHoursZone    string  `json:"trading_hours_zone" yaml:"trading_hours_zone"`
	VolumeDivisor       int     `json:"volume_divisor" yaml:"volume_divisor"`
	BuyingPowerFraction float64 `json:"buying_power_fraction" yaml:"buying_power_fraction"`
}

// FeedConfig names the upstream market-data websocket endpoint.
type FeedConfig struct {
	WSURL  string `json:"ws_url" yaml:"ws_url"`
	APIKey string `json:"api_key" yaml:"api_key"`
}

// BrokerConfig names the brokerage REST endpoint and credentials.
type BrokerConfig struct {
	BaseURL    string `json:"base_url" yaml:"base_url"`
	APIKeyID   string `json:"api_key_id" yaml:"api_key_id"`
	APISecret  string `json:"api_secret" yaml:"api_secret"`
	Historical string `json:"historical_base_url" yaml:"historical_base_url"`
}

// JournalConfig selects the journal backend and its destinations.
type JournalConfig struct {
	Type        string `json:"type" yaml:"type"` // "file" or "sqlite"
	BarDumpRoot string `json:"bar_dump_root" yaml:"bar_dump_root"`
	DBPath      string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// BanConfig names the ban-list persistence path.
type BanConfig struct {
	ListPath string `json:"list_path" yaml:"list_path"`
}

// LoadFromFile loads configuration from a file, parsing it as YAML and
// falling back to JSON if YAML parsing fails. The file extension is not
// consulted.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on
// extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	switch c.Strategy.FormulaVariant {
	case "F1", "F3", "F4":
	default:
		return fmt.Errorf("strategy.formula_variant must be F1, F3, or F4, got %q", c.Strategy.FormulaVariant)
	}
	if c.Sizing.ReserveBalance < 0 {
		return fmt.Errorf("sizing.reserve_balance must be non-negative")
	}
	if c.Sizing.AllowedPriceLow <= 0 || c.Sizing.AllowedPriceHigh <= c.Sizing.AllowedPriceLow {
		return fmt.Errorf("sizing.allowed_price_low/high must form a positive, non-empty range")
	}
	if c.Sizing.TradingHoursZone == "" {
		return fmt.Errorf("sizing.trading_hours_zone is required")
	}
	if c.Sizing.VolumeDivisor <= 0 {
		return fmt.Errorf("sizing.volume_divisor must be positive")
	}
	if c.Sizing.BuyingPowerFraction <= 0 || c.Sizing.BuyingPowerFraction > 1 {
		return fmt.Errorf("sizing.buying_power_fraction must be in (0, 1]")
	}
	if c.Feed.WSURL == "" {
		return fmt.Errorf("feed.ws_url is required")
	}
	if c.Broker.BaseURL == "" {
		return fmt.Errorf("broker.base_url is required")
	}
	switch c.Journal.Type {
	case "file":
		if c.Journal.BarDumpRoot == "" {
			return fmt.Errorf("journal.bar_dump_root required for file journal type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for sqlite journal type")
		}
	default:
		return fmt.Errorf("journal.type must be 'file' or 'sqlite'")
	}
	if c.Ban.ListPath == "" {
		return fmt.Errorf("ban.list_path is required")
	}
	return nil
}

// Default returns a configuration with the defaults named in the
// external interfaces section: F1 variant, $25,000 reserve, (0.7,
// 370.5) price range, Los Angeles trading-hours zone, volume divisor
// 40, 95% buying-power fraction, 0.03 cancel threshold (a price offset
// above the requested buy price).
func Default() *Config {
	return &Config{
		Strategy: StrategyConfig{
			FormulaVariant:  "F1",
			BanMode:         true,
			WithCancel:      true,
			CancelThreshold: 0.03,
		},
		Sizing: SizingConfig{
			ReserveBalance:      25000,
			AllowedPriceLow:     0.7,
			AllowedPriceHigh:    370.5,
			TradingHoursZone:    "America/Los_Angeles",
			VolumeDivisor:       40,
			BuyingPowerFraction: 0.95,
		},
		Journal: JournalConfig{
			Type:        "file",
			BarDumpRoot: "./buy_sell_data",
		},
		Ban: BanConfig{
			ListPath: "./ban_list.json",
		},
	}
}
