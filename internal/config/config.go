// Load envs from .env
// Load YAML config
// Apply env overrides and defaults
// Validate before the bot starts

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go-gig-router/internal/categorizer"
	"go-gig-router/internal/filter"
	"go-gig-router/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPath      = "configs/config.yaml"
	DefaultSearchURL = "https://www.upwork.com/nx/search/jobs/?page=1&per_page=20&q=%28frontend%20OR%20backend%20OR%20%22full%20stack%22%20OR%20scraping%20OR%20scrapping%20OR%20automation%20OR%20automations%29&sort=recency"
)

// channelEnv maps each category to the env var holding its chat id.
var channelEnv = map[models.Category]string{
	models.CategoryFrontend:   "FRONTEND_CHANNEL_ID",
	models.CategoryBackend:    "BACKEND_CHANNEL_ID",
	models.CategoryFullstack:  "FULLSTACK_CHANNEL_ID",
	models.CategoryAutomation: "AUTOMATION_CHANNEL_ID",
	models.CategoryScraping:   "SCRAPING_CHANNEL_ID",
	models.CategoryOther:      "OTHER_CHANNEL_ID",
}

type Config struct {
	TelegramToken string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	AdminChatID   int64  `yaml:"admin_chat_id" env:"TELEGRAM_CHAT_ID"`
	// category label -> chat id
	Channels map[string]int64 `yaml:"channels"`

	//Search
	SearchURL     string        `yaml:"search_url"`
	CheckInterval time.Duration `yaml:"check_interval"`
	FirstRunLimit int           `yaml:"first_run_limit"`
	DetailDelay   time.Duration `yaml:"detail_delay"`

	//Dispatch
	MaxRetries   int           `yaml:"max_retries"`
	RetryDelay   time.Duration `yaml:"retry_delay"`
	SendInterval time.Duration `yaml:"send_interval"`

	//Classification overrides; empty means built-in tables
	Categories     map[string][]string `yaml:"categories"`
	ForbiddenTerms map[string][]string `yaml:"forbidden_terms"`

	//Runtime
	Headless    bool   `yaml:"headless"`
	CookiesPath string `yaml:"cookies_path"`
	LogFile     string `yaml:"log_file"`
	LogLevel    string `yaml:"log_level"`
	ServerAddr  string `yaml:"server_addr"`
}

// Load reads .env, then the YAML file at path (a missing file is not an
// error), then environment overrides, then fills defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = DefaultPath
	}

	cfg := &Config{Headless: true}

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		c.TelegramToken = token
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		c.AdminChatID = id
	}

	for category, key := range channelEnv {
		raw := os.Getenv(key)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		if c.Channels == nil {
			c.Channels = make(map[string]int64)
		}
		c.Channels[string(category)] = id
	}

	if url := os.Getenv("SEARCH_URL"); url != "" {
		c.SearchURL = url
	}
	if port := os.Getenv("PORT"); port != "" {
		c.ServerAddr = ":" + port
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
	if headless := os.Getenv("HEADLESS"); headless != "" {
		v, err := strconv.ParseBool(headless)
		if err != nil {
			return fmt.Errorf("invalid HEADLESS: %w", err)
		}
		c.Headless = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.SearchURL == "" {
		c.SearchURL = DefaultSearchURL
	}
	if c.CheckInterval <= 0 {
		c.CheckInterval = 120 * time.Second
	}
	if c.FirstRunLimit <= 0 {
		c.FirstRunLimit = 5
	}
	if c.DetailDelay <= 0 {
		c.DetailDelay = time.Second
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = 5 * time.Second
	}
	if c.SendInterval <= 0 {
		c.SendInterval = time.Second
	}
	if c.CookiesPath == "" {
		c.CookiesPath = ".cookies"
	}
	if c.LogFile == "" {
		c.LogFile = "bot.log"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.ServerAddr == "" {
		c.ServerAddr = ":8080"
	}
}

// Validate checks what the bot needs to run. The CLI skips it.
func (c *Config) Validate() error {
	var errs []error
	if c.TelegramToken == "" {
		errs = append(errs, errors.New("TELEGRAM_BOT_TOKEN is required"))
	}
	if len(c.Channels) == 0 {
		errs = append(errs, errors.New("at least one category channel id is required"))
	}
	for label := range c.Channels {
		if _, err := models.ParseCategory(strings.ToLower(label)); err != nil {
			errs = append(errs, fmt.Errorf("channels: %w", err))
		}
	}
	for label := range c.Categories {
		if _, err := models.ParseCategory(strings.ToLower(label)); err != nil {
			errs = append(errs, fmt.Errorf("categories: %w", err))
		}
	}
	return errors.Join(errs...)
}

// ChannelIDs returns the category -> chat id mapping. Unknown labels are
// dropped; Validate reports them.
func (c *Config) ChannelIDs() map[models.Category]int64 {
	out := make(map[models.Category]int64, len(c.Channels))
	for label, id := range c.Channels {
		category, err := models.ParseCategory(strings.ToLower(label))
		if err != nil || id == 0 {
			continue
		}
		out[category] = id
	}
	return out
}

// Keywords returns the configured keyword table, or the built-in one when
// none is configured.
func (c *Config) Keywords() map[models.Category][]string {
	if len(c.Categories) == 0 {
		return categorizer.DefaultKeywords()
	}
	out := make(map[models.Category][]string, len(c.Categories))
	for label, words := range c.Categories {
		category, err := models.ParseCategory(strings.ToLower(label))
		if err != nil {
			continue
		}
		out[category] = words
	}
	return out
}

func (c *Config) Forbidden() map[string][]string {
	if len(c.ForbiddenTerms) == 0 {
		return filter.DefaultForbiddenTerms()
	}
	return c.ForbiddenTerms
}
