// Package config loads environment- and file-driven settings for the API
// service and initializes the global logger.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Server     ServerConfig       `mapstructure:"server"`
	Storage    StorageConfig      `mapstructure:"storage"`
	Data       DataConfig         `mapstructure:"data"`
	Log        LogConfig          `mapstructure:"log"`
	Display    DisplayConfig      `mapstructure:"display"`
	Pollutants []string           `mapstructure:"pollutants"`
	Thresholds map[string]float64 `mapstructure:"thresholds"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	BearerToken string `mapstructure:"bearer_token"`
}

// StorageConfig configures the reading log backend.
type StorageConfig struct {
	Driver      string `mapstructure:"driver"`
	Path        string `mapstructure:"path"`
	DatabaseURL string `mapstructure:"database_url"`
}

// DataConfig locates the startup inputs.
type DataConfig struct {
	CatalogFile    string `mapstructure:"catalog_file"`
	HistoricalFile string `mapstructure:"historical_file"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DisplayConfig carries map-rendering defaults for downstream consumers.
type DisplayConfig struct {
	DefaultZoom    int               `mapstructure:"default_zoom"`
	MapStyle       string            `mapstructure:"map_style"`
	CategoryColors map[string]string `mapstructure:"category_colors"`
}

// Load reads configuration from config.yaml (working directory or ./config)
// and AETHER_-prefixed environment variables, optionally seeded from .env.
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("AETHER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys without a meaningful default still need one registered, or
	// AutomaticEnv never surfaces them through Unmarshal.
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.bearer_token", "")
	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.path", "data/readings.json")
	v.SetDefault("storage.database_url", "")
	v.SetDefault("data.catalog_file", "config/sensors.json")
	v.SetDefault("data.historical_file", "data/historical.csv")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("display.default_zoom", 7)
	v.SetDefault("display.map_style", "open-street-map")
	v.SetDefault("display.category_colors", map[string]string{
		"Safe":      "green",
		"Moderate":  "yellow",
		"Unhealthy": "orange",
		"Dangerous": "red",
		"No data":   "gray",
	})
	v.SetDefault("pollutants", []string{"pm25", "pm10", "no2", "o3"})
	v.SetDefault("thresholds", map[string]float64{
		"pm25_safe":     25.0,
		"pm25_moderate": 50.0,
		"pm25_danger":   75.0,
		"pm10_safe":     50.0,
		"pm10_moderate": 100.0,
		"pm10_danger":   150.0,
	})

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, eris.Wrap(err, "config: unmarshal")
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Storage.Driver {
	case "file", "sqlite":
		if c.Storage.Path == "" {
			return eris.Errorf("config: storage.path is required for driver %q", c.Storage.Driver)
		}
	case "postgres":
		if c.Storage.DatabaseURL == "" {
			return eris.New(`config: storage.database_url is required for driver "postgres"`)
		}
	default:
		return eris.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}
	if len(c.Pollutants) == 0 {
		return eris.New("config: at least one pollutant is required")
	}
	return nil
}

// StorageDSN returns the backend-specific location of the reading log.
func (c Config) StorageDSN() string {
	if c.Storage.Driver == "postgres" {
		return c.Storage.DatabaseURL
	}
	return c.Storage.Path
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
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
