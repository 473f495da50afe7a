package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Kafka struct {
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic"`
		RequiredAcks int           `yaml:"required_acks"`
		Compression  string        `yaml:"compression"`
		MaxAttempts  int           `yaml:"max_attempts"`
		Linger       time.Duration `yaml:"linger"`
		BatchSize    int           `yaml:"batch_size"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
	} `yaml:"kafka"`
	Collection struct {
		SourceTimeout  time.Duration `yaml:"source_timeout"`
		RetentionDays  int           `yaml:"retention_days"`
		RunLogDays     int           `yaml:"run_log_days"`
		EnabledSources []string      `yaml:"enabled_sources"`
	} `yaml:"collection"`
	Scheduler struct {
		TickInterval    time.Duration `yaml:"tick_interval"`
		DailyHour       int           `yaml:"daily_hour"`
		DailyMinute     int           `yaml:"daily_minute"`
		MarketOpenHour  int           `yaml:"market_open_hour"`
		MarketCloseHour int           `yaml:"market_close_hour"`
		HourlyMinute    int           `yaml:"hourly_minute"`
	} `yaml:"scheduler"`
	Forecast struct {
		Strategy    string        `yaml:"strategy"` // enhanced or basic
		DefaultDays int           `yaml:"default_days"`
		HistoryDays int           `yaml:"history_days"`
		CacheTTL    time.Duration `yaml:"cache_ttl"`
		Redis       struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"forecast"`
	Zamace struct {
		WebSocketURL string        `yaml:"websocket_url"`
		MaxQuotes    int           `yaml:"max_quotes"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
	} `yaml:"zamace"`
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

	if v := os.Getenv("CLICKHOUSE_HOST"); v != "" {
		c.ClickHouse.Host = v
	}
	if v := os.Getenv("CLICKHOUSE_PASSWORD"); v != "" {
		c.ClickHouse.Password = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("ENABLED_SOURCES"); v != "" {
		c.Collection.EnabledSources = strings.Split(v, ",")
	}
	if v := os.Getenv("RETENTION_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Collection.RetentionDays = n
		}
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Collection.SourceTimeout == 0 {
		c.Collection.SourceTimeout = 10 * time.Second
	}
	if c.Collection.RetentionDays == 0 {
		c.Collection.RetentionDays = 180
	}
	if c.Collection.RunLogDays == 0 {
		c.Collection.RunLogDays = 90
	}
	if len(c.Collection.EnabledSources) == 0 {
		c.Collection.EnabledSources = []string{"ZNFU", "MACO", "CSO", "IAPRI"}
	}
	if c.Scheduler.TickInterval == 0 {
		c.Scheduler.TickInterval = time.Minute
	}
	if c.Scheduler.DailyHour == 0 {
		c.Scheduler.DailyHour = 8
	}
	if c.Scheduler.MarketOpenHour == 0 {
		c.Scheduler.MarketOpenHour = 8
	}
	if c.Scheduler.MarketCloseHour == 0 {
		c.Scheduler.MarketCloseHour = 18
	}
	if c.Scheduler.HourlyMinute == 0 {
		c.Scheduler.HourlyMinute = 30
	}
	if c.Forecast.Strategy == "" {
		c.Forecast.Strategy = "enhanced"
	}
	if c.Forecast.DefaultDays == 0 {
		c.Forecast.DefaultDays = 7
	}
	if c.Forecast.HistoryDays == 0 {
		c.Forecast.HistoryDays = 90
	}
	if c.Forecast.CacheTTL == 0 {
		c.Forecast.CacheTTL = 15 * time.Minute
	}
	if c.Zamace.MaxQuotes == 0 {
		c.Zamace.MaxQuotes = 50
	}
	if c.Zamace.ReadTimeout == 0 {
		c.Zamace.ReadTimeout = 5 * time.Second
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required")
	}
	if c.ClickHouse.Database == "" {
		return fmt.Errorf("clickhouse.database is required")
	}
	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty")
	}
	if c.Kafka.Topic == "" {
		return fmt.Errorf("kafka.topic is required")
	}
	if c.Scheduler.DailyHour < 0 || c.Scheduler.DailyHour > 23 {
		return fmt.Errorf("scheduler.daily_hour must be 0-23, got %d", c.Scheduler.DailyHour)
	}
	if c.Scheduler.MarketOpenHour >= c.Scheduler.MarketCloseHour {
		return fmt.Errorf("scheduler market window is empty: open=%d close=%d",
			c.Scheduler.MarketOpenHour, c.Scheduler.MarketCloseHour)
	}
	if s := c.Forecast.Strategy; s != "enhanced" && s != "basic" {
		return fmt.Errorf("forecast.strategy must be enhanced or basic, got %q", s)
	}
	return nil
}
