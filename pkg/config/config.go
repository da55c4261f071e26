package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML duration
// strings ("10s", "5m") as well as integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var n int64
	if err := value.Decode(&n); err == nil {
		*d = Duration(n)
		return nil
	}

	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("invalid duration value %q", value.Value)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std converts to the standard library duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int      `yaml:"port"`
		ReadTimeout     Duration `yaml:"read_timeout"`
		WriteTimeout    Duration `yaml:"write_timeout"`
		ShutdownTimeout Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logger struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logger"`
	Dashboard struct {
		Symbol         string `yaml:"symbol"`
		Token          string `yaml:"token"`
		HistoryDays    int    `yaml:"history_days"`
		SentimentLimit int    `yaml:"sentiment_limit"`
		LocalDataPath  string `yaml:"local_data_path"`
		CutoffDate     string `yaml:"cutoff_date"`
	} `yaml:"dashboard"`
	Cache struct {
		MaxSize         int      `yaml:"max_size"`
		CleanupInterval Duration `yaml:"cleanup_interval"`
		HistoryTTL      Duration `yaml:"history_ttl"`
		SentimentTTL    Duration `yaml:"sentiment_ttl"`
		PredictionTTL   Duration `yaml:"prediction_ttl"`
		Redis           struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	CoinDesk struct {
		BaseURL   string   `yaml:"base_url"`
		Market    string   `yaml:"market"`
		Aggregate int      `yaml:"aggregate"`
		Timeout   Duration `yaml:"timeout"`
	} `yaml:"coindesk"`
	FearGreed struct {
		BaseURL string   `yaml:"base_url"`
		Timeout Duration `yaml:"timeout"`
	} `yaml:"feargreed"`
	Predictor struct {
		BaseURL      string            `yaml:"base_url"`
		Timeout      Duration          `yaml:"timeout"`
		Tokens       map[string]string `yaml:"tokens"`
		WindowSize   int               `yaml:"window_size"`
		LiveFeatures bool              `yaml:"live_features"`
		ModelPath    string            `yaml:"model_path"`
		FeaturesPath string            `yaml:"features_path"`
	} `yaml:"predictor"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("COINDESK_BASE_URL"); v != "" {
		c.CoinDesk.BaseURL = v
	}
	if v := os.Getenv("FEARGREED_BASE_URL"); v != "" {
		c.FearGreed.BaseURL = v
	}
	if v := os.Getenv("PREDICTOR_BASE_URL"); v != "" {
		c.Predictor.BaseURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
		c.Cache.Redis.Enabled = true
	}
	if v := os.Getenv("MODEL_PATH"); v != "" {
		c.Predictor.ModelPath = v
	}
	if v := os.Getenv("FEATURES_PATH"); v != "" {
		c.Predictor.FeaturesPath = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = Duration(10 * time.Second)
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = Duration(10 * time.Second)
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = Duration(10 * time.Second)
	}
	if c.Dashboard.HistoryDays <= 0 {
		c.Dashboard.HistoryDays = 30
	}
	if c.Dashboard.SentimentLimit <= 0 {
		c.Dashboard.SentimentLimit = 10
	}
	if c.Cache.MaxSize <= 0 {
		c.Cache.MaxSize = 1000
	}
	if c.Cache.CleanupInterval <= 0 {
		c.Cache.CleanupInterval = Duration(5 * time.Minute)
	}
	if c.Cache.HistoryTTL <= 0 {
		c.Cache.HistoryTTL = Duration(time.Hour)
	}
	if c.Cache.SentimentTTL <= 0 {
		c.Cache.SentimentTTL = Duration(time.Hour)
	}
	if c.Cache.PredictionTTL <= 0 {
		c.Cache.PredictionTTL = Duration(10 * time.Minute)
	}
	if c.CoinDesk.Aggregate <= 0 {
		c.CoinDesk.Aggregate = 1
	}
	if c.CoinDesk.Timeout <= 0 {
		c.CoinDesk.Timeout = Duration(10 * time.Second)
	}
	if c.FearGreed.Timeout <= 0 {
		c.FearGreed.Timeout = Duration(10 * time.Second)
	}
	if c.Predictor.Timeout <= 0 {
		c.Predictor.Timeout = Duration(10 * time.Second)
	}
	if c.Predictor.WindowSize <= 0 {
		c.Predictor.WindowSize = 30
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Dashboard.Symbol == "" {
		return fmt.Errorf("dashboard.symbol is required")
	}
	if c.Dashboard.Token == "" {
		return fmt.Errorf("dashboard.token is required")
	}
	if c.Dashboard.CutoffDate != "" {
		if _, err := time.Parse("2006-01-02", c.Dashboard.CutoffDate); err != nil {
			return fmt.Errorf("dashboard.cutoff_date must be YYYY-MM-DD, got %q", c.Dashboard.CutoffDate)
		}
	}
	if c.Cache.Redis.Enabled && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("cache.redis.addr is required when redis is enabled")
	}
	return nil
}

// Cutoff returns the parsed dashboard cutoff date, or the zero time
// when no cutoff is configured.
func (c *Config) Cutoff() time.Time {
	if c.Dashboard.CutoffDate == "" {
		return time.Time{}
	}
	t, _ := time.Parse("2006-01-02", c.Dashboard.CutoffDate)
	return t
}
