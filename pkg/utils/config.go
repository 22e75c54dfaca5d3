package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Payment  PaymentConfig
	Email    EmailConfig
	Storage  StorageConfig
}

type AppConfig struct {
	Name    string
	Port    string
	BaseURL string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host           string
	Port           string
	Name           string
	User           string
	Password       string
	MaxConns       int32
	MigrationsPath string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// CartTTLHours is how long an untouched draft survives.
	CartTTLHours int
}

type PaymentConfig struct {
	StripeKey string
	Currency  string
	// MockCheckout synthesizes a successful card payment without calling any
	// provider. Demo posture only; must stay false in production.
	MockCheckout bool
	// DepositRateBP and MemberDiscountBP are basis points (3000 = 30%).
	DepositRateBP    int
	MemberDiscountBP int
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type StorageConfig struct {
	// Root directory for uploaded proofs and generated receipts.
	Path string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("MIGRATIONS_PATH", "migrations")
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("BASE_URL", "http://localhost:8080")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CART_TTL_HOURS", 24)
	viper.SetDefault("PAYMENT_CURRENCY", "myr")
	viper.SetDefault("PAYMENT_MOCK", false)
	viper.SetDefault("DEPOSIT_RATE_BP", 3000)
	viper.SetDefault("MEMBER_DISCOUNT_BP", 1000)
	viper.SetDefault("STORAGE_PATH", "storage/")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			BaseURL: viper.GetString("BASE_URL"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:           viper.GetString("DB_HOST"),
			Port:           viper.GetString("DB_PORT"),
			Name:           viper.GetString("DB_NAME"),
			User:           viper.GetString("DB_USER"),
			Password:       viper.GetString("DB_PASS"),
			MaxConns:       viper.GetInt32("DB_MAX_CONNS"),
			MigrationsPath: viper.GetString("MIGRATIONS_PATH"),
		},
		Redis: RedisConfig{
			Addr:         viper.GetString("REDIS_ADDR"),
			Password:     viper.GetString("REDIS_PASS"),
			DB:           viper.GetInt("REDIS_DB"),
			CartTTLHours: viper.GetInt("CART_TTL_HOURS"),
		},
		Payment: PaymentConfig{
			StripeKey:        viper.GetString("STRIPE_KEY"),
			Currency:         viper.GetString("PAYMENT_CURRENCY"),
			MockCheckout:     viper.GetBool("PAYMENT_MOCK"),
			DepositRateBP:    viper.GetInt("DEPOSIT_RATE_BP"),
			MemberDiscountBP: viper.GetInt("MEMBER_DISCOUNT_BP"),
		},
		Email: EmailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
		},
		Storage: StorageConfig{
			Path: viper.GetString("STORAGE_PATH"),
		},
	}

	return config, nil
}
