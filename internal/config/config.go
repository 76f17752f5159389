// Package config reads settings from an optional config.yaml, the environment and .env.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
)

type Config struct {
	HTTPAddr  string `mapstructure:"HTTP_ADDR"`
	BaseURL   string `mapstructure:"BASE_URL"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	RateLimit int    `mapstructure:"RATE_LIMIT"`

	Store string      `mapstructure:"STORE"`
	DB    DBConfig    `mapstructure:",squash"`
	Mongo MongoConfig `mapstructure:",squash"`

	SessionKey     string        `mapstructure:"SESSION_KEY"`
	AdminAPIKey    string        `mapstructure:"ADMIN_API_KEY"`
	SecureCookies  bool          `mapstructure:"SECURE_COOKIES"`
	AuthDelay      time.Duration `mapstructure:"AUTH_DELAY"`
	OrderCacheSize int           `mapstructure:"ORDER_CACHE_SIZE"`

	Google GoogleConfig `mapstructure:",squash"`
	SMTP   SMTPConfig   `mapstructure:",squash"`
	Kafka  KafkaConfig  `mapstructure:",squash"`

	TelegramToken   string `mapstructure:"TELEGRAM_BOT_TOKEN"`
	TelegramChatIDs string `mapstructure:"TELEGRAM_CHAT_IDS"`
}

type DBConfig struct {
	DSN      string `mapstructure:"DB_DSN"`
	Host     string `mapstructure:"DB_HOST"`
	Port     string `mapstructure:"DB_PORT"`
	User     string `mapstructure:"DB_USER"`
	Password string `mapstructure:"DB_PASSWORD"`
	Name     string `mapstructure:"DB_NAME"`
	SSLMode  string `mapstructure:"DB_SSLMODE"`
}

// ConnString returns DSN when set, otherwise builds one from the parts.
func (c DBConfig) ConnString() string {
	if strings.TrimSpace(c.DSN) != "" {
		return c.DSN
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
}

type MongoConfig struct {
	URI      string `mapstructure:"MONGO_URI"`
	Database string `mapstructure:"MONGO_DB"`
}

type GoogleConfig struct {
	ClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	ClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
}

func (g GoogleConfig) Enabled() bool { return g.ClientID != "" && g.ClientSecret != "" }

type SMTPConfig struct {
	Host string `mapstructure:"SMTP_HOST"`
	Port int    `mapstructure:"SMTP_PORT"`
	User string `mapstructure:"SMTP_USER"`
	Pass string `mapstructure:"SMTP_PASS"`
	To   string `mapstructure:"ORDER_NOTIFY_EMAIL"`
}

type KafkaConfig struct {
	Brokers string `mapstructure:"KAFKA_BROKERS"`
	Topic   string `mapstructure:"KAFKA_TOPIC"`
}

// BrokerList splits the comma separated broker addresses.
func (k KafkaConfig) BrokerList() []string {
	var out []string
	for _, b := range strings.Split(k.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

var defaults = map[string]any{
	"HTTP_ADDR":        ":8080",
	"BASE_URL":         "http://localhost:8080",
	"LOG_LEVEL":        "info",
	"RATE_LIMIT":       120,
	"STORE":            StoreMemory,
	"DB_HOST":          "localhost",
	"DB_PORT":          "5432",
	"DB_USER":          "postgres",
	"DB_PASSWORD":      "postgres",
	"DB_NAME":          "fightshop",
	"DB_SSLMODE":       "disable",
	"MONGO_URI":        "mongodb://localhost:27017",
	"MONGO_DB":         "fightshop",
	"AUTH_DELAY":       "0s",
	"ORDER_CACHE_SIZE": 256,
	"SMTP_PORT":        587,
	"KAFKA_TOPIC":      "orders",
}

// Load reads config.yaml from ./ or ./deploy/ when present; environment variables
// always win.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./")
	v.AddConfigPath("./deploy/")
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()
	// AutomaticEnv only covers keys viper already knows about.
	for _, k := range envOnly {
		_ = v.BindEnv(k)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var envOnly = []string{
	"DB_DSN", "SESSION_KEY", "ADMIN_API_KEY", "SECURE_COOKIES",
	"GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET",
	"SMTP_HOST", "SMTP_USER", "SMTP_PASS", "ORDER_NOTIFY_EMAIL",
	"KAFKA_BROKERS", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_IDS",
}

func (c *Config) validate() error {
	switch c.Store {
	case StoreMemory, StorePostgres, StoreMongo:
	default:
		return fmt.Errorf("unknown STORE %q, want memory, postgres or mongo", c.Store)
	}
	if c.OrderCacheSize < 0 {
		return fmt.Errorf("ORDER_CACHE_SIZE must not be negative")
	}
	return nil
}
