package store

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Mode        string   `yaml:"mode"` // DRY_RUN (in-memory stores) or LIVE (Postgres)
	PollSeconds int      `yaml:"poll_seconds"`
	Pairs       []string `yaml:"pairs"`

	Database struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Name     string `yaml:"name"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
	} `yaml:"database"`

	Collector struct {
		Listen        string `yaml:"listen"`
		FetchOnIngest bool   `yaml:"fetch_on_ingest"`
	} `yaml:"collector"`

	News struct {
		CalendarURL    string `yaml:"calendar_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		RefreshMinutes int    `yaml:"refresh_minutes"`
	} `yaml:"news"`

	Trade struct {
		PositionSize int    `yaml:"position_size"`
		RiskLevel    string `yaml:"risk_level"`
		Strategy     string `yaml:"strategy"`
	} `yaml:"trade"`
}

func (c *Config) Validate() error {
	if c.Mode != "DRY_RUN" && c.Mode != "LIVE" {
		return fmt.Errorf("invalid mode '%s': must be 'DRY_RUN' or 'LIVE'", c.Mode)
	}
	if len(c.Pairs) == 0 {
		return errors.New("pairs cannot be empty")
	}
	if c.Mode == "LIVE" && c.Database.Host == "" {
		return errors.New("database.host is required in LIVE mode")
	}
	if c.Trade.RiskLevel != "low" && c.Trade.RiskLevel != "medium" && c.Trade.RiskLevel != "high" {
		return fmt.Errorf("trade.risk_level must be 'low', 'medium', or 'high', got '%s'", c.Trade.RiskLevel)
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	if c.PollSeconds == 0 {
		c.PollSeconds = 60
	}
	if c.Collector.Listen == "" {
		c.Collector.Listen = "127.0.0.1:8080"
	}
	if c.News.CalendarURL == "" {
		c.News.CalendarURL = "https://www.forexfactory.com/calendar.php"
	}
	if c.News.TimeoutSeconds == 0 {
		c.News.TimeoutSeconds = 60
	}
	if c.News.RefreshMinutes == 0 {
		c.News.RefreshMinutes = 30
	}
	if c.Trade.PositionSize == 0 {
		c.Trade.PositionSize = 100
	}
	if c.Trade.RiskLevel == "" {
		c.Trade.RiskLevel = "medium"
	}
	if c.Trade.Strategy == "" {
		c.Trade.Strategy = "dynamic"
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}
