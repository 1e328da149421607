package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the service configuration consumed by the API server and, for
// the data/telemetry sections, by the CLI.
type Config struct {
	Server    ServerConfig    `json:"server"`
	Data      DataConfig      `json:"data"`
	Telemetry TelemetryConfig `json:"telemetry"`
}

type ServerConfig struct {
	Port           int      `json:"port"`
	AllowedOrigins []string `json:"allowedOrigins"`
}

type DataConfig struct {
	// DatasetDir holds CSV input series selectable by name.
	DatasetDir string `json:"datasetDir"`
	// PlantDir holds YAML plant presets.
	PlantDir string `json:"plantDir"`
	// PriceZone is the Nord Pool bidding zone for price fetches.
	PriceZone string `json:"priceZone"`
	// PriceBaseURL overrides the price API endpoint (tests, mirrors).
	PriceBaseURL string `json:"priceBaseUrl"`
}

// TelemetryConfig enables the optional InfluxDB ledger sink.
type TelemetryConfig struct {
	Enabled bool   `json:"enabled"`
	URL     string `json:"url"`
	Token   string `json:"token"`
	Org     string `json:"org"`
	Bucket  string `json:"bucket"`
}

// Load reads the configuration file (YAML or JSON by extension) and applies
// HD_ environment overrides (HD_SERVER__PORT=9090 sets server.port).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("HD_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "hd_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a ready configuration without reading a file (CLI use).
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

func (c *Config) SetDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}
	if c.Data.DatasetDir == "" {
		c.Data.DatasetDir = "./data/datasets"
	}
	if c.Data.PlantDir == "" {
		c.Data.PlantDir = "./examples/plants"
	}
	if c.Data.PriceZone == "" {
		c.Data.PriceZone = "ee"
	}
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Telemetry.Enabled {
		if c.Telemetry.URL == "" || c.Telemetry.Org == "" || c.Telemetry.Bucket == "" {
			return errors.New("telemetry requires url, org and bucket when enabled")
		}
	}
	return nil
}
