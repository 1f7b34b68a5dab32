package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/learnhub/learnhub/internal/types"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Postgres   PostgresConfig   `validate:"required"`
	Auth       AuthConfig       `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type PostgresConfig struct {
	Host                 string `validate:"required"`
	Port                 int    `validate:"required"`
	User                 string `validate:"required"`
	Password             string
	DBName               string `validate:"required"`
	SSLMode              string `validate:"required"`
	AutoMigrate          bool
	MaxOpenConns         int
	MaxIdleConns         int
	ConnMaxLifetimeHours int
}

type AuthConfig struct {
	Provider types.AuthProvider `validate:"required"`
	Secret   string
	Supabase SupabaseConfig
}

type SupabaseConfig struct {
	BaseURL    string
	ServiceKey string
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

func NewConfig() (*Configuration, error) {
	// A missing .env file is fine, env vars may come from the environment.
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/learnhub")

	v.SetEnvPrefix("LEARNHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
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

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a configuration for local development and scripts.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Postgres: PostgresConfig{
			Host:    "localhost",
			Port:    5432,
			User:    "learnhub",
			DBName:  "learnhub",
			SSLMode: "disable",
		},
		Auth: AuthConfig{
			Provider: types.AuthProviderJWT,
			Secret:   "local-dev-secret",
		},
		Logging: LoggingConfig{Level: types.LogLevelDebug},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
