package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/psidorov/interviewhub/internal/flagx"
)

// JsonConfig is an intermediate DTO used only for reading JSON
// configuration files. Durations are expressed in hours to keep the file
// format simple. After unmarshalling, set fields are copied into the
// runtime Config.
type JsonConfig struct {
	Address            string `json:"address"`
	DatabaseDSN        string `json:"database_dsn"`
	SecretKey          string `json:"secret_key"`
	TokenValidityHours int    `json:"token_validity_hours"`
	BcryptCost         int    `json:"bcrypt_cost"`
}

// parseJson loads configuration values from the JSON file named by the
// -c or -config command-line flags, if any. Missing flag means no file is
// loaded; an unreadable or invalid file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
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
	if c.TokenValidityHours != 0 {
		config.TokenValidity = time.Duration(c.TokenValidityHours) * time.Hour
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
}
