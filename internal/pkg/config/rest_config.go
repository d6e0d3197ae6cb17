package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. CGW_PORT or CGW_LOGGER_LOG_LEVEL
const EnvPrefix = "CGW"

// RestConfig is the configuration of the REST service
type RestConfig struct {
	Port     string           `mapstructure:"port" validate:"required,numeric"`
	Logger   LoggerSettings   `mapstructure:"logger"`
	Database DatabaseSettings `mapstructure:"database"`
	Gateway  GatewaySettings  `mapstructure:"gateway"`
}

// Validate checks the RestConfig and all nested settings
func (c *RestConfig) Validate() error {
	validate := validator.New()

	if err := validate.Var(c.Port, "required,numeric"); err != nil {
		return fmt.Errorf("validation failed for RestConfig port: %w", err)
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if c.Gateway.Audit.Enabled {
		if err := c.Database.Validate(); err != nil {
			return err
		}
	}
	return c.Gateway.Validate()
}

// InitializeRestConfig reads the YAML file at path, applies CGW_ environment
// overrides and validates the result.
func InitializeRestConfig(path string) (*RestConfig, error) {
	v := viper.New()
	setRestDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg RestConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setRestDefaults(v *viper.Viper) {
	d := DefaultGatewaySettings()

	v.SetDefault("port", "8080")
	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("database.type", SqliteDbType)
	v.SetDefault("database.dsn", "crypto-gateway.db")

	v.SetDefault("gateway.argon2.time_cost", d.Argon2.TimeCost)
	v.SetDefault("gateway.argon2.memory_cost", d.Argon2.MemoryCost)
	v.SetDefault("gateway.argon2.parallelism", d.Argon2.Parallelism)
	v.SetDefault("gateway.argon2.key_length", d.Argon2.KeyLength)
	v.SetDefault("gateway.argon2.salt_length", d.Argon2.SaltLength)
	v.SetDefault("gateway.pbkdf2.iterations", d.PBKDF2.Iterations)
	v.SetDefault("gateway.pbkdf2.key_length", d.PBKDF2.KeyLength)
	v.SetDefault("gateway.pbkdf2.salt_length", d.PBKDF2.SaltLength)
	v.SetDefault("gateway.bcrypt.cost", d.Bcrypt.Cost)
	v.SetDefault("gateway.scrypt.log_n", d.Scrypt.LogN)
	v.SetDefault("gateway.scrypt.r", d.Scrypt.R)
	v.SetDefault("gateway.scrypt.p", d.Scrypt.P)
	v.SetDefault("gateway.scrypt.key_length", d.Scrypt.KeyLength)
	v.SetDefault("gateway.scrypt.salt_length", d.Scrypt.SaltLength)
	v.SetDefault("gateway.sessions.max_sessions", d.Sessions.MaxSessions)
	v.SetDefault("gateway.sessions.ttl", d.Sessions.TTL)
	v.SetDefault("gateway.audit.enabled", d.Audit.Enabled)
	v.SetDefault("gateway.audit.retention", d.Audit.Retention)
}
