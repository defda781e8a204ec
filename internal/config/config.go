package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	ServerAddress  string        `mapstructure:"SERVER_ADDRESS"`
	DBSource       string        `mapstructure:"DB_SOURCE"`
	UserAgent      string        `mapstructure:"WINDOW_WEATHER_USER_AGENT"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	ZipBaseURL     string        `mapstructure:"ZIP_BASE_URL"`
	PointsBaseURL  string        `mapstructure:"POINTS_BASE_URL"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	LogFormat      string        `mapstructure:"LOG_FORMAT"`
	GinMode        string        `mapstructure:"GIN_MODE"`
}

// LoadConfig reads app.env from path, then lets environment variables override it.
// A missing config file is not an error.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	v.SetDefault("DB_SOURCE", "")
	v.SetDefault("WINDOW_WEATHER_USER_AGENT", "")
	v.SetDefault("REQUEST_TIMEOUT", 15*time.Second)
	v.SetDefault("ZIP_BASE_URL", "https://api.zippopotam.us")
	v.SetDefault("POINTS_BASE_URL", "https://api.weather.gov")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("GIN_MODE", "release")

	v.AutomaticEnv()

	var config Config
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("config: failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("config: failed to unmarshal config: %w", err)
	}

	if config.RequestTimeout <= 0 {
		return config, fmt.Errorf("config: REQUEST_TIMEOUT must be positive, got %s", config.RequestTimeout)
	}

	return config, nil
}

// Logger builds the process logger from LOG_LEVEL and LOG_FORMAT.
// Unknown levels fall back to info; LOG_FORMAT=console selects human readable output.
func (c Config) Logger() zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if strings.EqualFold(c.LogFormat, "console") {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stderr)
	}

	return logger.Level(level).With().Timestamp().Logger()
}
