package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	Notifier NotifierConfig `yaml:"notifier"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type StorageConfig struct {
	Type string `yaml:"type"` // "file", "postgres" or "memory"
	Path string `yaml:"path"` // data directory for the file store
	URL  string `yaml:"url"`  // connection string for the postgres store
}

type NotifierConfig struct {
	Interval Duration `yaml:"interval"`
	Debounce Duration `yaml:"debounce"`
}

type LoggingConfig struct {
	Development bool `yaml:"development"`
}

// Duration lets yaml carry values like "20m" or "300ms".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func Default() *Config {
	return &Config{
		Server:  ServerConfig{Host: "", Port: "8080"},
		Storage: StorageConfig{Type: "file", Path: "data"},
		Notifier: NotifierConfig{
			Interval: Duration(20 * time.Minute),
			Debounce: Duration(300 * time.Millisecond),
		},
		Logging: LoggingConfig{Development: true},
	}
}

// Load reads the given yaml file, falling back to defaults when it does
// not exist. Zero-value fields are filled with defaults so a partial
// config is always usable.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "file"
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = "data"
	}
	if cfg.Notifier.Interval == 0 {
		cfg.Notifier.Interval = Duration(20 * time.Minute)
	}
	if cfg.Notifier.Debounce == 0 {
		cfg.Notifier.Debounce = Duration(300 * time.Millisecond)
	}

	return cfg, nil
}

func (c *Config) ServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
