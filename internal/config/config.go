package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const envPrefix = "HESTIA"

type Config struct {
	Env        string           `validate:"required"` // Env is the current environment: local, development, production.
	HTTP       HTTPConfig       // HTTP holds the API server configuration.
	Monitoring MonitoringConfig // Monitoring holds the health/metrics server configuration.
	Postgres   PostgresConfig   // Postgres holds the database configuration.
}

// HTTPConfig struct holds the configuration of the public API server.
type HTTPConfig struct {
	Address         string        `validate:"required"` // Address is the listen address, e.g. ":8000".
	ReadTimeout     time.Duration `validate:"gte=0"`
	WriteTimeout    time.Duration `validate:"gte=0"`
	IdleTimeout     time.Duration `validate:"gte=0"`
	ShutdownTimeout time.Duration `validate:"gt=0"` // ShutdownTimeout bounds graceful shutdown.
}

// MonitoringConfig struct holds the configuration of the /healthz and /metrics server.
type MonitoringConfig struct {
	Port int `validate:"required,min=1,max=65535"`
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `validate:"required"` // Host is the database server address.
	Port     string `validate:"required"` // Port is the database server port.
	User     string `validate:"required"` // User is the database user.
	Password string // Password is the database user's password.
	Dbname   string `validate:"required"` // Dbname is the name of the database.
}

func setDefaults(vpr *viper.Viper) {
	vpr.SetDefault("env", "local")
	vpr.SetDefault("http.address", ":8000")
	vpr.SetDefault("http.read_timeout", 10*time.Second)
	vpr.SetDefault("http.write_timeout", 10*time.Second)
	vpr.SetDefault("http.idle_timeout", 60*time.Second)
	vpr.SetDefault("http.shutdown_timeout", 15*time.Second)
	vpr.SetDefault("monitoring.port", 8080)
	vpr.SetDefault("postgres.port", "5432")
}

// Load reads the configuration from the YAML file at path, if any, and from HESTIA_* environment
// variables, which take precedence. HESTIA_POSTGRES_HOST overrides postgres.host, and so on.
func Load(path string) (*Config, error) {
	vpr := viper.New()
	setDefaults(vpr)

	vpr.SetEnvPrefix(envPrefix)
	vpr.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vpr.AutomaticEnv()

	if path != "" {
		// check if file exists
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file does not exist: %s", path)
		}

		vpr.SetConfigFile(path)
		vpr.SetConfigType("yaml")
		if err := vpr.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Env: vpr.GetString("env"),
		HTTP: HTTPConfig{
			Address:         vpr.GetString("http.address"),
			ReadTimeout:     vpr.GetDuration("http.read_timeout"),
			WriteTimeout:    vpr.GetDuration("http.write_timeout"),
			IdleTimeout:     vpr.GetDuration("http.idle_timeout"),
			ShutdownTimeout: vpr.GetDuration("http.shutdown_timeout"),
		},
		Monitoring: MonitoringConfig{
			Port: vpr.GetInt("monitoring.port"),
		},
		Postgres: PostgresConfig{
			Host:     vpr.GetString("postgres.host"),
			Port:     vpr.GetString("postgres.port"),
			User:     vpr.GetString("postgres.user"),
			Password: vpr.GetString("postgres.password"),
			Dbname:   vpr.GetString("postgres.db_name"),
		},
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoad loads the configuration from the file named by CONFIG_PATH (optional) and the environment.
// It panics if the configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		panic("config error: " + err.Error())
	}

	return cfg
}
