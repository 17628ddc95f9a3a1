package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Broker   BrokerConfig
	Admin    AdminConfig
	Booking  BookingConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

// BrokerConfig configures the AMQP notifier gateway. An empty URL means
// notifications are logged instead of published.
type BrokerConfig struct {
	URL string
}

// AdminConfig carries the bcrypt hash of the admin API token. Requester
// resolution happens at the boundary; the core only sees the result.
type AdminConfig struct {
	TokenHash string
}

type BookingConfig struct {
	// MaxTxRetries bounds retries of a booking transaction after a
	// transient store-level conflict.
	MaxTxRetries int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("BOOKING_MAX_TX_RETRIES", 3)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Broker: BrokerConfig{
			URL: viper.GetString("AMQP_URL"),
		},
		Admin: AdminConfig{
			TokenHash: viper.GetString("ADMIN_TOKEN_HASH"),
		},
		Booking: BookingConfig{
			MaxTxRetries: viper.GetInt("BOOKING_MAX_TX_RETRIES"),
		},
	}

	return config, nil
}
