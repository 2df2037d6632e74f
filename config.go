package typeschema

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultRefPrefix is where references point by default: the named-schema
// section of the surrounding document.
const DefaultRefPrefix = "#/components/schemas/"

// Config consolidates generation settings
type Config struct {
	// NamingTransform is applied to raw field names without an override. Required.
	NamingTransform NameTransform `json:"-"`
	// SchemaNameSelector names repository entries. Required.
	SchemaNameSelector SchemaNameSelector `json:"-"`
	RefPrefix          string             `json:"refPrefix"`
	Logging            LoggingConfig      `json:"logging"`
	Telemetry          TelemetryConfig    `json:"telemetry"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"` // json or console
}

// TelemetryConfig contains metrics settings
type TelemetryConfig struct {
	Enabled   bool   `json:"enabled"`
	MeterName string `json:"meterName"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		NamingTransform:    CamelCase,
		SchemaNameSelector: DefaultSchemaName,
		RefPrefix:          DefaultRefPrefix,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Telemetry: TelemetryConfig{
			Enabled:   false,
			MeterName: "github.com/lychee-technology/typeschema",
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.NamingTransform == nil {
		return &ConfigError{Field: "namingTransform", Message: "must be set"}
	}

	if c.SchemaNameSelector == nil {
		return &ConfigError{Field: "schemaNameSelector", Message: "must be set"}
	}

	if c.RefPrefix == "" {
		return &ConfigError{Field: "refPrefix", Message: "must not be empty"}
	}

	if c.Logging.Level != "" {
		if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
			return &ConfigError{Field: "logging.level", Message: err.Error()}
		}
	}

	switch strings.ToLower(c.Logging.Format) {
	case "", "json", "console":
	default:
		return &ConfigError{Field: "logging.format", Message: "must be json or console"}
	}

	if c.Telemetry.Enabled && c.Telemetry.MeterName == "" {
		return &ConfigError{Field: "telemetry.meterName", Message: "must be set when telemetry is enabled"}
	}

	return nil
}

// Build creates a zap logger from the logging settings.
func (c LoggingConfig) Build() (*zap.Logger, error) {
	var zc zap.Config
	if strings.EqualFold(c.Format, "console") {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	if c.Level != "" {
		level, err := zap.ParseAtomicLevel(c.Level)
		if err != nil {
			return nil, &ConfigError{Field: "logging.level", Message: err.Error()}
		}
		zc.Level = level
	}
	return zc.Build()
}
