package config

import (
	"os"
	"time"

	"github.com/go-yaml/yaml"
)

type Config struct {
	Server Server `yaml:"server"`
	Auth   Auth   `yaml:"auth"`
}

type Server struct {
	Listen        string `yaml:"listen"`
	PostgresDsn   string `yaml:"postgresDsn"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`
	RedisDB       int    `yaml:"redisDB"`
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
}

type Auth struct {
	Secret      string `yaml:"secret"`
	TokenExpiry string `yaml:"tokenExpiry"` // Go duration string, default 24h

	// ---
	Expiry time.Duration
}

func Load(path string) (Config, error) {

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}

	var config Config
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, err
	}

	if config.Server.Listen == "" {
		config.Server.Listen = ":8000"
	}

	config.Auth.Expiry = 24 * time.Hour
	if config.Auth.TokenExpiry != "" {
		expiry, err := time.ParseDuration(config.Auth.TokenExpiry)
		if err != nil {
			return Config{}, err
		}
		config.Auth.Expiry = expiry
	}

	return config, nil
}
