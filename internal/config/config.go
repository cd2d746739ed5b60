/**
 * @description
 * Configuration management for the platform backend. Uses Viper to read
 * settings from environment variables, with an optional .env file for local
 * development. Missing database credentials or signing secret are fatal at
 * boot; everything else has a default or degrades gracefully.
 *
 * @dependencies
 * - github.com/spf13/viper: Configuration library.
 */

package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the platform backend.
type Config struct {
	ServerPort            string `mapstructure:"SERVER_PORT"`
	DatabaseURL           string `mapstructure:"DATABASE_URL"`
	JWTSecret             string `mapstructure:"JWT_SECRET"`
	RedisURL              string `mapstructure:"REDIS_URL"`
	RabbitMQURL           string `mapstructure:"RABBITMQ_URL"`
	LoginRateLimit        int    `mapstructure:"LOGIN_RATE_LIMIT_PER_MINUTE"`
	PendingDigestSchedule string `mapstructure:"PENDING_DIGEST_SCHEDULE"`
}

// LoadConfig reads configuration from environment variables and the optional
// .env file at the given path.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("SERVER_PORT", "3000")
	viper.SetDefault("LOGIN_RATE_LIMIT_PER_MINUTE", 10)
	viper.SetDefault("PENDING_DIGEST_SCHEDULE", "0 * * * *")

	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("PORT")
	_ = viper.BindEnv("DATABASE_URL")
	_ = viper.BindEnv("JWT_SECRET")
	_ = viper.BindEnv("REDIS_URL")
	_ = viper.BindEnv("RABBITMQ_URL")
	_ = viper.BindEnv("LOGIN_RATE_LIMIT_PER_MINUTE")
	_ = viper.BindEnv("PENDING_DIGEST_SCHEDULE")

	if err = viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("level=warn component=config msg=\"failed to read config file; using environment values\" err=%v", err)
		}
		err = nil
	}

	if err = viper.Unmarshal(&config); err != nil {
		return
	}

	// Platform hosts (Railway/Render) inject PORT rather than SERVER_PORT.
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		config.ServerPort = port
	}
	if config.LoginRateLimit < 0 {
		config.LoginRateLimit = 0
	}

	return
}
