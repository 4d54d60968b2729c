package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/suraksha-app/suraksha/internal/safety"
)

// Config holds the full application configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	Safety  SafetyConfig  `yaml:"safety" mapstructure:"safety"`
	Map     MapConfig     `yaml:"map" mapstructure:"map"`
	Notify  NotifyConfig  `yaml:"notify" mapstructure:"notify"`
	Geo     GeoConfig     `yaml:"geo" mapstructure:"geo"`
	CheckIn CheckInConfig `yaml:"checkin" mapstructure:"checkin"`
}

// StoreConfig configures the data backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"` // memory | sqlite | postgres
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port          int     `yaml:"port" mapstructure:"port"`
	RateLimitRPS  float64 `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	RateBurst     int     `yaml:"rate_burst" mapstructure:"rate_burst"`
	AllowedOrigin string  `yaml:"allowed_origin" mapstructure:"allowed_origin"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// SafetyConfig configures the safety-score engine.
type SafetyConfig struct {
	Weights safety.Weights `yaml:"weights" mapstructure:"weights"`
}

// MapConfig configures the area-rating map model.
type MapConfig struct {
	HitRadiusPx    float64 `yaml:"hit_radius_px" mapstructure:"hit_radius_px"`
	ViewportWidth  float64 `yaml:"viewport_width" mapstructure:"viewport_width"`
	ViewportHeight float64 `yaml:"viewport_height" mapstructure:"viewport_height"`
	SeedFile       string  `yaml:"seed_file" mapstructure:"seed_file"` // optional YAML seed override
}

// NotifyConfig configures alert dispatch. An empty webhook URL routes alerts
// to the log.
type NotifyConfig struct {
	WebhookURL string `yaml:"webhook_url" mapstructure:"webhook_url"`
}

// GeoConfig configures the geolocation fallback position.
type GeoConfig struct {
	DefaultLat float64 `yaml:"default_lat" mapstructure:"default_lat"`
	DefaultLng float64 `yaml:"default_lng" mapstructure:"default_lng"`
}

// CheckInConfig configures periodic safety check-ins.
type CheckInConfig struct {
	IntervalMinutes   int `yaml:"interval_minutes" mapstructure:"interval_minutes"`
	SafetyRadiusMeter int `yaml:"safety_radius_meters" mapstructure:"safety_radius_meters"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SURAKSHA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "memory")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit_rps", 20)
	v.SetDefault("server.rate_burst", 40)
	v.SetDefault("server.allowed_origin", "*")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("safety.weights.time_of_day", 0.30)
	v.SetDefault("safety.weights.crime_rate", 0.25)
	v.SetDefault("safety.weights.crowdedness", 0.15)
	v.SetDefault("safety.weights.lighting", 0.15)
	v.SetDefault("safety.weights.known_safe_zones", 0.15)
	v.SetDefault("map.hit_radius_px", 10)
	v.SetDefault("map.viewport_width", 800)
	v.SetDefault("map.viewport_height", 600)
	v.SetDefault("geo.default_lat", 19.033)
	v.SetDefault("geo.default_lng", 73.0297)
	v.SetDefault("checkin.interval_minutes", 15)
	v.SetDefault("checkin.safety_radius_meters", 50)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cross-field consistency.
func (c *Config) Validate() error {
	var errs []string

	if c.Store.Driver != "memory" && c.Store.Driver != "sqlite" && c.Store.Driver != "postgres" {
		errs = append(errs, fmt.Sprintf("unknown store driver %q", c.Store.Driver))
	}
	if c.Store.Driver != "memory" && c.Store.DatabaseURL == "" {
		errs = append(errs, fmt.Sprintf("store driver %q requires database_url", c.Store.Driver))
	}

	// Factor weights must sum to 1.0 so a full-marks location scores 10.
	if sum := c.Safety.Weights.Sum(); math.Abs(sum-1.0) > 0.001 {
		errs = append(errs, fmt.Sprintf("safety weights should sum to 1.0, got %.3f", sum))
	}

	if c.Map.HitRadiusPx <= 0 {
		errs = append(errs, "map hit_radius_px must be > 0")
	}
	if c.CheckIn.IntervalMinutes <= 0 {
		errs = append(errs, "checkin interval_minutes must be > 0")
	}

	if len(errs) > 0 {
		return eris.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// DefaultLocation returns the configured fallback position.
func (c *Config) DefaultLocation() (lat, lng float64) {
	return c.Geo.DefaultLat, c.Geo.DefaultLng
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
