package main

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string   `mapstructure:"PORT"`
	Environment    string   `mapstructure:"ENVIRONMENT"`
	Version        string   `mapstructure:"VERSION"`
	TLSCertFile    string   `mapstructure:"TLS_CERT_FILE"`
	TLSKeyFile     string   `mapstructure:"TLS_KEY_FILE"`
	TrustedOrigins []string `mapstructure:"TRUSTED_ORIGINS"`

	StoreDriver   string `mapstructure:"STORE_DRIVER"`
	MongoURI      string `mapstructure:"MONGODB_URI"`
	MongoDatabase string `mapstructure:"MONGODB_DATABASE"`

	DBHost         string `mapstructure:"POSTGRES_HOST"`
	DBPort         string `mapstructure:"POSTGRES_PORT"`
	DBUser         string `mapstructure:"POSTGRES_USER"`
	DBPassword     string `mapstructure:"POSTGRES_PASSWORD"`
	DBName         string `mapstructure:"POSTGRES_DB"`
	MigrationsPath string `mapstructure:"MIGRATIONS_PATH"`

	Secret   string        `mapstructure:"SECRET"`
	TokenTTL time.Duration `mapstructure:"TOKEN_TTL"`

	MQHost     string `mapstructure:"RABBITMQ_HOST"`
	MQPort     string `mapstructure:"RABBITMQ_PORT"`
	MQUser     string `mapstructure:"RABBITMQ_USER"`
	MQPassword string `mapstructure:"RABBITMQ_PASSWORD"`

	MailHost      string `mapstructure:"MAIL_HOST"`
	MailPort      int    `mapstructure:"MAIL_PORT"`
	MailUser      string `mapstructure:"MAIL_USER"`
	MailPassword  string `mapstructure:"MAIL_PASSWORD"`
	MailSender    string `mapstructure:"MAIL_SENDER"`
	MailRecipient string `mapstructure:"MAIL_RECIPIENT"`

	RateLimitEnabled bool    `mapstructure:"LIMITER_ENABLED"`
	RateLimitRPS     float64 `mapstructure:"LIMITER_RPS"`
	RateLimitBurst   int     `mapstructure:"LIMITER_BURST"`
}

const (
	storeMongo    = "mongo"
	storePostgres = "postgres"
)

var defaults = map[string]any{
	"PORT":              "3003",
	"ENVIRONMENT":       "development",
	"VERSION":           "1.0.0",
	"TLS_CERT_FILE":     "",
	"TLS_KEY_FILE":      "",
	"TRUSTED_ORIGINS":   []string{},
	"STORE_DRIVER":      storeMongo,
	"MONGODB_URI":       "mongodb://localhost:27017",
	"MONGODB_DATABASE":  "bloglist",
	"POSTGRES_HOST":     "localhost",
	"POSTGRES_PORT":     "5432",
	"POSTGRES_USER":     "",
	"POSTGRES_PASSWORD": "",
	"POSTGRES_DB":       "bloglist",
	"MIGRATIONS_PATH":   "file://migrations",
	"SECRET":            "",
	"TOKEN_TTL":         time.Duration(0),
	"RABBITMQ_HOST":     "",
	"RABBITMQ_PORT":     "5672",
	"RABBITMQ_USER":     "guest",
	"RABBITMQ_PASSWORD": "guest",
	"MAIL_HOST":         "",
	"MAIL_PORT":         587,
	"MAIL_USER":         "",
	"MAIL_PASSWORD":     "",
	"MAIL_SENDER":       "Blog List <no-reply@bloglist.local>",
	"MAIL_RECIPIENT":    "",
	"LIMITER_ENABLED":   true,
	"LIMITER_RPS":       2.0,
	"LIMITER_BURST":     4,
}

// loadConfig reads the dotenv file at path. Environment variables override the
// file, and a missing file is not an error.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	if c.Secret == "" {
		return errors.New("SECRET must be set")
	}

	switch c.StoreDriver {
	case storeMongo, storePostgres:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.TokenTTL < 0 {
		return errors.New("TOKEN_TTL must not be negative")
	}

	return nil
}
