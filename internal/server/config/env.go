package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig mirrors Config with env tags. It is a separate DTO so that
// unset variables leave the current Config values untouched.
type envConfig struct {
	Address       string        `env:"ADDRESS"`
	DatabaseDSN   string        `env:"DATABASE_DSN"`
	SecretKey     string        `env:"SECRET_KEY"`
	TokenValidity time.Duration `env:"TOKEN_VALIDITY"`
	BcryptCost    int           `env:"BCRYPT_COST"`
}

// parseEnv overlays configuration from environment variables onto config.
// Only variables that are actually set override the existing values.
func parseEnv(config *Config) {
	c := envConfig{}
	if err := env.Parse(&c); err != nil {
		panic(err)
	}

	if c.Address != "" {
		config.Address = c.Address
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidity != 0 {
		config.TokenValidity = c.TokenValidity
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
}
