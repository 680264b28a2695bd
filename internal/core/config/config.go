package config

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// TMS holds the transportation management system API configuration.
	TMS TMSConfig `mapstructure:",squash"`

	// Location holds the vehicle location provider configuration.
	Location LocationConfig `mapstructure:",squash"`

	// Database holds the PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:",squash"`

	// Cache holds the Redis cache settings.
	Cache CacheConfig `mapstructure:",squash"`
}

// TMSConfig holds the connection details for the upstream TMS API,
// which owns trips, loadsheets and disposition records.
type TMSConfig struct {
	// URL is the base URL of the TMS API.
	URL string `mapstructure:"TMS_URL" required:"true"`
	// APIKey authenticates requests against the TMS API.
	APIKey string `mapstructure:"TMS_API_KEY" required:"true"`
}

// LocationConfig holds the connection details for the telematics
// vehicle-location provider.
type LocationConfig struct {
	// URL is the base URL of the vehicle location service.
	URL string `mapstructure:"LOCATION_URL" required:"true"`
}

// DatabaseConfig holds the PostgreSQL connection settings for the
// lane repository.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string.
	URL string `mapstructure:"DATABASE_URL" required:"true"`
	// MaxConns caps the connection pool size.
	MaxConns int `mapstructure:"DATABASE_MAX_CONNS" default:"10"`
}

// CacheConfig holds the Redis settings for the lane reference-data cache.
type CacheConfig struct {
	// RedisURL is the Redis connection string (redis://[:password@]host[:port][/db]).
	RedisURL string `mapstructure:"REDIS_URL" default:"redis://localhost:6379"`
	// LaneTTLSeconds is how long cached lane reads stay valid. Writes
	// invalidate eagerly, so this only bounds staleness across instances.
	LaneTTLSeconds int `mapstructure:"LANE_CACHE_TTL_SECONDS" default:"300"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			v.BindEnv(key)
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
