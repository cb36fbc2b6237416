package config

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Version is set at build time.
var Version = "dev"

// Config holds client configuration for the pgrest CLI.
type Config struct {
	// BaseURL is the PostgREST endpoint, e.g. http://localhost:3000.
	BaseURL string `mapstructure:"baseURL"`
	// Token is sent as a bearer token when non-empty.
	Token string `mapstructure:"token"`
	// Schema switches to a database schema other than the server default.
	Schema string `mapstructure:"schema"`
	// Timeout bounds each request.
	Timeout time.Duration `mapstructure:"timeout"`
	// Headers are extra default headers sent with every request.
	Headers map[string]string `mapstructure:"headers"`
}

func Default() Config {
	return Config{
		BaseURL: "http://localhost:3000",
		Timeout: 30 * time.Second,
	}
}

// Load reads config from file or environment
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("pgrest")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config"))
		}
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("PGREST")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Viper lowercases map keys; restore canonical header names since
	// these feed Client.SetHeader.
	if len(cfg.Headers) > 0 {
		canonical := make(map[string]string, len(cfg.Headers))
		for key, value := range cfg.Headers {
			canonical[http.CanonicalHeaderKey(key)] = value
		}
		cfg.Headers = canonical
	}

	return &cfg, nil
}
