package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Duffel API configuration.
	DuffelAPIKey  string `mapstructure:"DUFFEL_API_KEY"`
	DuffelBaseURL string `mapstructure:"DUFFEL_BASE_URL"`

	// Reference carrier used for reproducible sandbox bookings.
	ReferenceCarrierName string `mapstructure:"REFERENCE_CARRIER_NAME"`
	ReferenceCarrierCode string `mapstructure:"REFERENCE_CARRIER_CODE"`

	// Gemini API key for the conversation loop.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisChatDB   int    `mapstructure:"REDIS_CHAT_DB"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DUFFEL_BASE_URL", "https://api.duffel.com")
	viper.SetDefault("REFERENCE_CARRIER_NAME", "Duffel Airways")
	viper.SetDefault("REFERENCE_CARRIER_CODE", "ZZ")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CHAT_DB", 0)
	viper.SetDefault("GEMINI_API_KEY", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
