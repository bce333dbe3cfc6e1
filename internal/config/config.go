package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	System     SystemConfig              `mapstructure:"system"`
	Monitoring MonitoringConfig          `mapstructure:"monitoring"`
	Server     ServerConfig              `mapstructure:"server"`
	Exchanges  map[string]ExchangeConfig `mapstructure:"exchanges"`
	Arbitrage  ArbitrageConfig           `mapstructure:"arbitrage"`
}

type SystemConfig struct {
	LogLevel              string `mapstructure:"log_level"`
	LogFile               string `mapstructure:"log_file"`
	PerformanceMonitoring bool   `mapstructure:"performance_monitoring"`
	SimulateActivity      bool   `mapstructure:"simulate_activity"`
	ThreadPoolSize        int    `mapstructure:"thread_pool_size"`
}

type MonitoringConfig struct {
	Interval           time.Duration `mapstructure:"interval"`
	LatencyThresholdMs float64       `mapstructure:"latency_threshold_ms"`
	MemoryThresholdMB  float64       `mapstructure:"memory_threshold_mb"`
	CPUThresholdPct    float64       `mapstructure:"cpu_threshold_pct"`
}

type ServerConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Endpoint string `mapstructure:"endpoint"`
}

type ExchangeConfig struct {
	Enabled              bool            `mapstructure:"enabled"`
	WebsocketURL         string          `mapstructure:"websocket_url"`
	RestURL              string          `mapstructure:"rest_url"`
	ConnectionTimeout    time.Duration   `mapstructure:"connection_timeout"`
	ReconnectInterval    time.Duration   `mapstructure:"reconnect_interval"`
	MaxReconnectAttempts int             `mapstructure:"max_reconnect_attempts"`
	RateLimit            RateLimitConfig `mapstructure:"rate_limit"`
}

type RateLimitConfig struct {
	RequestsPerSecond int `mapstructure:"requests_per_second"`
	BurstSize         int `mapstructure:"burst_size"`
}

type ArbitrageConfig struct {
	MinProfitThreshold      float64 `mapstructure:"min_profit_threshold"`
	MaxLatencyMs            int     `mapstructure:"max_latency_ms"`
	SignalStrengthThreshold float64 `mapstructure:"signal_strength_threshold"`
	ConfidenceThreshold     float64 `mapstructure:"confidence_threshold"`
	MaxPositionSize         float64 `mapstructure:"max_position_size"`
	MaxPortfolioExposure    float64 `mapstructure:"max_portfolio_exposure"`
	MaxLeverage             float64 `mapstructure:"max_leverage"`
	StopLossPercentage      float64 `mapstructure:"stop_loss_percentage"`
	TakeProfitPercentage    float64 `mapstructure:"take_profit_percentage"`
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	// Set default values
	if config.System.LogLevel == "" {
		config.System.LogLevel = "info"
	}
	if config.Monitoring.Interval == 0 {
		config.Monitoring.Interval = time.Second
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.Endpoint == "" {
		config.Server.Endpoint = "/api/v1"
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the invariants the engine relies on at startup.
func (c *Config) Validate() error {
	if c.Monitoring.Interval < 0 {
		return fmt.Errorf("monitoring interval must be positive, got %s", c.Monitoring.Interval)
	}
	if c.System.ThreadPoolSize < 0 {
		return fmt.Errorf("thread pool size must not be negative, got %d", c.System.ThreadPoolSize)
	}

	for name, ex := range c.Exchanges {
		if !ex.Enabled {
			continue
		}
		if ex.WebsocketURL == "" {
			return fmt.Errorf("exchange %s is enabled but has no websocket_url", name)
		}
		if ex.RestURL == "" {
			return fmt.Errorf("exchange %s is enabled but has no rest_url", name)
		}
	}

	return nil
}

// IsExchangeEnabled reports whether the named exchange is configured and enabled.
func (c *Config) IsExchangeEnabled(name string) bool {
	ex, ok := c.Exchanges[name]
	return ok && ex.Enabled
}

// EnabledExchanges returns the sorted names of all enabled exchanges.
func (c *Config) EnabledExchanges() []string {
	var names []string
	for name, ex := range c.Exchanges {
		if ex.Enabled {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
