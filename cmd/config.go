package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// Config holds all runtime settings. Values come from environment variables;
// list-valued settings are comma separated.
type Config struct {
	HTTPPort string `koanf:"http_port"`

	DBHost     string `koanf:"db_host"`
	DBPort     string `koanf:"db_port"`
	DBUser     string `koanf:"db_user"`
	DBPassword string `koanf:"db_password"`
	DBName     string `koanf:"db_name"`
	DBSslMode  string `koanf:"db_sslmode"`

	JWTSecret string `koanf:"jwt_secret"`

	MailRelayEndpoint string `koanf:"mail_relay_endpoint"`
	MailRelayAPIKey   string `koanf:"mail_relay_api_key"`

	AdminEmails       []string `koanf:"admin_emails"`
	CourierDeskEmails []string `koanf:"courier_desk_emails"`

	StaleOrderThreshold time.Duration `koanf:"stale_order_threshold"`
	StaleOrderSchedule  string        `koanf:"stale_order_schedule"`
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads settings from the environment and applies defaults.
func LoadConfig() (Config, error) {
	k := koanf.New(".")

	if err := k.Load(env.Provider(".", env.Opt{
		TransformFunc: func(key, value string) (string, any) {
			lowered := strings.ToLower(key)
			if lowered == "admin_emails" || lowered == "courier_desk_emails" {
				return lowered, splitList(value)
			}
			return lowered, value
		},
	}), nil); err != nil {
		return Config{}, errors.Wrap(err, "load environment")
	}

	config := Config{
		HTTPPort:            "8080",
		DBPort:              "5432",
		DBSslMode:           "disable",
		StaleOrderThreshold: 30 * time.Minute,
		StaleOrderSchedule:  "*/10 * * * *",
	}

	if err := k.UnmarshalWithConf("", &config, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &config,
			TagName:          "koanf",
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		},
	}); err != nil {
		return Config{}, errors.Wrap(err, "parse configuration")
	}

	if err := config.validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) validate() error {
	if c.DBHost == "" {
		return errors.New("DB_HOST is required")
	}
	if c.DBUser == "" {
		return errors.New("DB_USER is required")
	}
	if c.DBName == "" {
		return errors.New("DB_NAME is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	return nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
