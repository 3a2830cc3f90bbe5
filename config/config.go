package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/glbter/fund-returns/entities"
)

const DefaultPath = "configs/config.yaml"

type Config struct {
	HTTP struct {
		Addr            string        `yaml:"addr"`
		RequestTimeout  time.Duration `yaml:"request_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"http"`
	Dataset struct {
		// Path to a returns CSV. Empty means the built-in table.
		Path string `yaml:"path"`
	} `yaml:"dataset"`
	Dashboard struct {
		Title          string   `yaml:"title"`
		DefaultPeriods []string `yaml:"default_periods"`
	} `yaml:"dashboard"`
	Events struct {
		RabbitURL string `yaml:"rabbit_url"`
		Queue     string `yaml:"queue"`
		Buffer    int    `yaml:"buffer"`
	} `yaml:"events"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Load reads config from a YAML file, applies environment overrides and
// fills in defaults. A missing file is not an error.
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

	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("DATASET_PATH"); v != "" {
		cfg.Dataset.Path = v
	}
	if v := os.Getenv("RABBIT_URL"); v != "" {
		cfg.Events.RabbitURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.HTTP.RequestTimeout == 0 {
		cfg.HTTP.RequestTimeout = 60 * time.Second
	}
	if cfg.HTTP.ShutdownTimeout == 0 {
		cfg.HTTP.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Dashboard.Title == "" {
		cfg.Dashboard.Title = "Vanguard Target Retirement Fund Returns"
	}
	if len(cfg.Dashboard.DefaultPeriods) == 0 {
		for _, p := range entities.DefaultPeriods {
			cfg.Dashboard.DefaultPeriods = append(cfg.Dashboard.DefaultPeriods, p.String())
		}
	}
	if cfg.Events.Queue == "" {
		cfg.Events.Queue = "fund_returns_renders"
	}
	if cfg.Events.Buffer == 0 {
		cfg.Events.Buffer = 64
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.HTTP.RequestTimeout < 0 {
		return fmt.Errorf("http.request_timeout must not be negative")
	}
	if c.HTTP.ShutdownTimeout < 0 {
		return fmt.Errorf("http.shutdown_timeout must not be negative")
	}
	if c.Events.Buffer < 0 {
		return fmt.Errorf("events.buffer must not be negative")
	}
	if _, err := c.Periods(); err != nil {
		return fmt.Errorf("dashboard.default_periods: %w", err)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	return nil
}

// Periods returns the configured default periods.
func (c *Config) Periods() ([]entities.Period, error) {
	periods := make([]entities.Period, 0, len(c.Dashboard.DefaultPeriods))
	for _, s := range c.Dashboard.DefaultPeriods {
		p, err := entities.ParsePeriod(s)
		if err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}

	return periods, nil
}
