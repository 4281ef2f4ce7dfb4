package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/novetrasys/npad/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. NPAD_SERVER_ADDRESS.
const EnvPrefix = "NPAD"

// Settings are application-level options, separate from assumption files.
type Settings struct {
	Preset       string         `mapstructure:"preset"`
	Format       string         `mapstructure:"format"`
	Logging      LoggingConfig  `mapstructure:"logging"`
	Server       ServerConfig   `mapstructure:"server"`
	ReviewPolicy PolicySettings `mapstructure:"review_policy"`
}

// LoggingConfig holds logging level and encoder format.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig holds HTTP server options.
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

// PolicySettings are the review-cost thresholds in dollars.
type PolicySettings struct {
	SmallCaseCeiling float64 `mapstructure:"small_case_ceiling"`
	LargeCaseFloor   float64 `mapstructure:"large_case_floor"`
}

// Policy converts the thresholds to a domain policy.
func (p PolicySettings) Policy() domain.ReviewCostPolicy {
	return domain.ReviewCostPolicy{
		SmallCaseCeiling: decimal.NewFromFloat(p.SmallCaseCeiling),
		LargeCaseFloor:   decimal.NewFromFloat(p.LargeCaseFloor),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("preset", "Default")
	v.SetDefault("format", "console")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.max_body_bytes", int64(1<<20))
	v.SetDefault("review_policy.small_case_ceiling", 2000.0)
	v.SetDefault("review_policy.large_case_floor", 5000.0)
}

// DefaultSettings returns the settings used when no file or environment
// override is present.
func DefaultSettings() Settings {
	v := viper.New()
	setDefaults(v)
	var s Settings
	// defaults alone always decode
	_ = v.Unmarshal(&s)
	return s
}

// LoadSettings reads settings from path (any format viper understands) and
// the environment. A .env file in the working directory is loaded first if
// present. An empty path reads only defaults and environment.
func LoadSettings(path string) (*Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the settings.
func (s *Settings) Validate() error {
	if err := s.ReviewPolicy.Policy().Validate(); err != nil {
		return fmt.Errorf("review policy: %w", err)
	}
	if s.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("server shutdown timeout cannot be negative")
	}
	if s.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server max body bytes must be positive")
	}
	return nil
}
