// Package config loads screener configuration from YAML with environment
// variable overrides. The resulting struct is built once at startup and
// passed explicitly to collaborators.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// EmailConfig holds SMTP delivery settings.
type EmailConfig struct {
	From     string `yaml:"from"`
	To       string `yaml:"to"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	UseTLS   bool   `yaml:"use_tls"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// SMSConfig holds Twilio delivery settings.
type SMSConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
	ToNumber   string `yaml:"to_number"`
}

// ScreenerConfig holds default screening parameters. CLI flags override them.
type ScreenerConfig struct {
	Period      string  `yaml:"period"`
	Interval    string  `yaml:"interval"`
	Window      int     `yaml:"window"`
	Oversold    float64 `yaml:"oversold"`
	Overbought  float64 `yaml:"overbought"`
	PollSeconds int     `yaml:"poll_seconds"`
}

// Config holds all application configuration.
type Config struct {
	Email   EmailConfig `yaml:"email"`
	SMS     SMSConfig   `yaml:"sms"`
	Webhook struct {
		URL string `yaml:"url"`
	} `yaml:"webhook"`
	Screener   ScreenerConfig `yaml:"screener"`
	DataSource struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"data_source"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("EMAIL_FROM"); v != "" {
		cfg.Email.From = v
	}
	if v := os.Getenv("EMAIL_TO"); v != "" {
		cfg.Email.To = v
	}
	if v := os.Getenv("EMAIL_HOST"); v != "" {
		cfg.Email.Host = v
	}
	if v := os.Getenv("EMAIL_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Email.Port = port
		}
	}
	if v := os.Getenv("EMAIL_USE_TLS"); v != "" {
		if useTLS, err := strconv.ParseBool(v); err == nil {
			cfg.Email.UseTLS = useTLS
		}
	}
	if v := os.Getenv("EMAIL_USER"); v != "" {
		cfg.Email.Username = v
	}
	if v := os.Getenv("EMAIL_PASSWORD"); v != "" {
		cfg.Email.Password = v
	}
	if v := os.Getenv("TWILIO_ACCOUNT_SID"); v != "" {
		cfg.SMS.AccountSID = v
	}
	if v := os.Getenv("TWILIO_AUTH_TOKEN"); v != "" {
		cfg.SMS.AuthToken = v
	}
	if v := os.Getenv("TWILIO_PHONE_NUMBER"); v != "" {
		cfg.SMS.FromNumber = v
	}
	if v := os.Getenv("TWILIO_TO_NUMBER"); v != "" {
		cfg.SMS.ToNumber = v
	}
	if v := os.Getenv("SLACK_WEBHOOK"); v != "" {
		cfg.Webhook.URL = v
	}
	if v := os.Getenv("QUOTE_API_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("QUOTE_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Screener.Period == "" {
		cfg.Screener.Period = "90d"
	}
	if cfg.Screener.Interval == "" {
		cfg.Screener.Interval = "1d"
	}
	if cfg.Screener.Window == 0 {
		cfg.Screener.Window = 14
	}
	if cfg.Screener.Oversold == 0 {
		cfg.Screener.Oversold = 30
	}
	if cfg.Screener.Overbought == 0 {
		cfg.Screener.Overbought = 70
	}
	if cfg.Screener.PollSeconds == 0 {
		cfg.Screener.PollSeconds = 300
	}

	return cfg, nil
}

// Validate checks that the screening parameters are usable.
func (c *Config) Validate() error {
	if c.Screener.Window < 1 {
		return fmt.Errorf("screener.window must be positive")
	}
	if c.Screener.Oversold < 0 || c.Screener.Oversold > 100 {
		return fmt.Errorf("screener.oversold must be in [0,100]")
	}
	if c.Screener.Overbought < 0 || c.Screener.Overbought > 100 {
		return fmt.Errorf("screener.overbought must be in [0,100]")
	}
	if c.Screener.PollSeconds <= 0 {
		return fmt.Errorf("screener.poll_seconds must be positive")
	}
	return nil
}
