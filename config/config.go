package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config holds harvester configuration.
type Config struct {
	ListenAddr            string
	OllamaURL             string
	OllamaModel           string
	SuggestTimeout        time.Duration
	NavigationTimeout     time.Duration
	StepTimeout           time.Duration
	SettleInterval        time.Duration
	MaxPages              int
	MaxScrollPasses       int
	MaxReviewsDefault     int
	MaxReviewsMin         int
	MaxReviewsMax         int
	MaxConcurrentSessions int
	RateLimitPerMinute    int
	SelectorCacheSize     int
	UserAgent             string
	Headless              bool
	ValidateReviews       bool
	OutputFile            string
	OutputFormat          string // csv, json, or dual
	Verbose               bool
}

// DefaultConfig returns conservative defaults for a local Ollama setup.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:            ":8000",
		OllamaURL:             "http://localhost:11434",
		OllamaModel:           "llama3.2:3b",
		SuggestTimeout:        30 * time.Second,
		NavigationTimeout:     30 * time.Second,
		StepTimeout:           5 * time.Second,
		SettleInterval:        2 * time.Second,
		MaxPages:              50,
		MaxScrollPasses:       5,
		MaxReviewsDefault:     500,
		MaxReviewsMin:         10,
		MaxReviewsMax:         1000,
		MaxConcurrentSessions: 4,
		RateLimitPerMinute:    30,
		SelectorCacheSize:     128,
		UserAgent:             "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/117.0.0.0 Safari/537.36",
		Headless:              true,
		ValidateReviews:       false,
		OutputFile:            "",
		OutputFormat:          "csv",
		Verbose:               false,
	}
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen address cannot be empty")
	}
	if c.OllamaURL != "" {
		parsedURL, err := url.Parse(c.OllamaURL)
		if err != nil {
			return fmt.Errorf("invalid ollama URL: %w", err)
		}
		if parsedURL.Host == "" {
			return fmt.Errorf("ollama URL must include a host")
		}
		if c.OllamaModel == "" {
			return fmt.Errorf("ollama model cannot be empty when ollama URL is set")
		}
	}
	if c.SuggestTimeout <= 0 {
		return fmt.Errorf("suggest timeout must be positive")
	}
	if c.NavigationTimeout <= 0 {
		return fmt.Errorf("navigation timeout must be positive")
	}
	if c.StepTimeout <= 0 {
		return fmt.Errorf("step timeout must be positive")
	}
	if c.SettleInterval <= 0 {
		return fmt.Errorf("settle interval must be positive")
	}
	if c.MaxPages <= 0 {
		return fmt.Errorf("max pages must be positive")
	}
	if c.MaxScrollPasses <= 0 {
		return fmt.Errorf("max scroll passes must be positive")
	}
	if c.MaxReviewsMin <= 0 {
		return fmt.Errorf("max reviews floor must be positive")
	}
	if c.MaxReviewsMax < c.MaxReviewsMin {
		return fmt.Errorf("max reviews ceiling (%d) cannot be below floor (%d)", c.MaxReviewsMax, c.MaxReviewsMin)
	}
	if c.MaxReviewsDefault < c.MaxReviewsMin || c.MaxReviewsDefault > c.MaxReviewsMax {
		return fmt.Errorf("max reviews default must fall within [%d, %d]", c.MaxReviewsMin, c.MaxReviewsMax)
	}
	if c.MaxConcurrentSessions <= 0 {
		return fmt.Errorf("max concurrent sessions must be positive")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("rate limit must be positive")
	}
	if c.SelectorCacheSize <= 0 {
		return fmt.Errorf("selector cache size must be positive")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user agent cannot be empty")
	}
	if c.OutputFormat != "csv" && c.OutputFormat != "json" && c.OutputFormat != "dual" {
		return fmt.Errorf("output format must be csv, json, or dual")
	}
	return nil
}
