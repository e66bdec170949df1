package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/anrid/japan-population/pkg/resas"
	"github.com/anrid/japan-population/pkg/stats"
)

// Config holds user-configurable defaults shared by all commands.
type Config struct {
	APIKey     string       `json:"api_key,omitempty"`
	BaseURL    string       `json:"base_url"`
	Metric     stats.Metric `json:"metric"`
	Policy     stats.Policy `json:"policy"`
	TimeoutSec int          `json:"timeout_sec"`
	Palette    []string     `json:"palette"`
	Width      int          `json:"width"`
	Height     int          `json:"height"`
}

// Environment variables consulted for the API key, in order.
var apiKeyEnv = []string{"RESAS_API_KEY", "REACT_APP_RESAS_API_KEY"}

// Default is the configuration used when neither a file nor the
// environment overrides anything. It targets the public RESAS origin.
func Default() Config {
	return Config{
		BaseURL:    resas.DefaultBaseURL,
		Metric:     stats.MetricTotal,
		Policy:     stats.PolicyLenient,
		TimeoutSec: 30,
		Palette:    []string{"#8884d8", "#82ca9d", "#ffc658"},
		Width:      1024,
		Height:     400,
	}
}

// Path is the location of the config file, "" when the user config
// directory is unknown.
func Path() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appDir, "config.json")
}

const appDir = "japan-population"

// Load loads config from disk and applies environment overrides; returns
// defaults when there is no config file.
func Load() Config {
	cfg := Default()
	if p := Path(); p != "" {
		if err := readFile(p, &cfg); err != nil && !os.IsNotExist(err) {
			log.Printf("warning: config %s: %v", p, err)
		}
	}
	applyEnv(&cfg)
	return cfg
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	for _, name := range apiKeyEnv {
		if v := os.Getenv(name); v != "" {
			cfg.APIKey = v
			break
		}
	}
	if v := os.Getenv("RESAS_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
}

// Save writes the config to disk. The API key is never written; it belongs
// in the environment.
func Save(cfg Config) error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	cfg.APIKey = ""
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

func (c Config) Timeout() time.Duration {
	if c.TimeoutSec <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSec) * time.Second
}

// Client returns a RESAS client configured from c.
func (c Config) Client() *resas.Client {
	return resas.New(c.BaseURL, c.APIKey, c.Timeout())
}

// Validate reports settings no command can work with.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("no API key: set %s", apiKeyEnv[0])
	}
	if !c.Metric.Valid() {
		return fmt.Errorf("metric %d: %w", int(c.Metric), stats.ErrInvalidMetric)
	}
	if len(c.Palette) == 0 {
		return fmt.Errorf("empty palette")
	}
	return nil
}
