package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/bohselecta/luvler-metering/internal/types"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Auth       AuthConfig       `validate:"required"`
	Blob       BlobConfig       `validate:"required"`
	Cache      CacheConfig
	Sentry     SentryConfig
	Tiers      TiersConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

// AuthConfig carries the JWT secret used to validate caller tokens and the
// static key guarding the admin surface. An empty AdminKey disables admin
// routes entirely rather than leaving them open.
type AuthConfig struct {
	Secret   string `validate:"required"`
	AdminKey string
}

// BlobConfig configures the key-value blob store that backs usage and
// billing records. Provider "memory" keeps everything in-process and is
// meant for local development only.
type BlobConfig struct {
	Provider  string `validate:"required,oneof=s3 memory"`
	Region    string
	Bucket    string
	KeyPrefix string
	// Endpoint overrides the S3 endpoint for S3-compatible stores
	Endpoint string
}

type CacheConfig struct {
	Enabled    bool
	TTLSeconds int
}

type SentryConfig struct {
	Enabled     bool
	DSN         string
	Environment string
	SampleRate  float64
}

// TiersConfig allows deployments to override the catalog allowance for a
// tier without a code change, ex: tiers.allowances.individual: 100
type TiersConfig struct {
	Allowances map[string]int64
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/luvler")

	v.SetEnvPrefix("LUVLER")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(types.ModeLocal))
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", string(types.LogLevelInfo))
	v.SetDefault("blob.provider", "memory")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttlseconds", 60)
	v.SetDefault("sentry.samplerate", 0.1)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Blob.Provider == "s3" && c.Blob.Bucket == "" {
		return fmt.Errorf("blob.bucket is required when blob.provider is s3")
	}
	return nil
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts or other non-web applications
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Auth:       AuthConfig{Secret: "local-dev-secret"},
		Blob:       BlobConfig{Provider: "memory"},
		Cache:      CacheConfig{Enabled: true, TTLSeconds: 60},
	}
}
