package config

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/tommorgenstern/gradus/internal/paths"
)

// Environment file loaded from the working directory when present.
//
// In a deployed image this is the file the build materialized from the
// template; locally it is optional.
const envFile = ".env"

// Runtime configuration of the dashboard server.
//
// Loaded once at startup and passed by value to every consumer; nothing
// reads the environment after Load returns.
type Config struct {
	Bind    string // Address the server binds (default 0.0.0.0).
	Port    int    // Port the server binds (default 8000, from PORT).
	Workers int    // Worker process count (default 2).
	DataDir string // Directory for program and goals data files.
	Debug   bool   // Enables debug logging and verbose error output.
}

// Returns the listen address in host:port form.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Bind, strconv.Itoa(c.Port))
}

// Loads the runtime configuration.
//
// A .env file in the working directory is loaded first if it exists (it is
// never required), then environment variables override the built-in
// defaults: PORT, BIND, WORKERS, DATA_DIR, DEBUG.
func Load() (Config, error) {
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("%w: %v", ErrEnvFile, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("%w: %v", ErrEnvFile, err)
	}

	v := viper.New()
	v.SetDefault("bind", "0.0.0.0")
	v.SetDefault("port", 8000)
	v.SetDefault("workers", 2)
	v.SetDefault("data_dir", paths.Data())
	v.SetDefault("debug", false)
	v.AutomaticEnv()

	cfg := Config{
		Bind:    v.GetString("bind"),
		Port:    v.GetInt("port"),
		Workers: v.GetInt("workers"),
		DataDir: v.GetString("data_dir"),
		Debug:   v.GetBool("debug"),
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("%w: port %d", ErrInvalidConfig, cfg.Port)
	}
	if cfg.Workers < 1 {
		return Config{}, fmt.Errorf("%w: workers %d", ErrInvalidConfig, cfg.Workers)
	}

	return cfg, nil
}
