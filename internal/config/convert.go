package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Default converter files, relative to the directory holding the binary.
const (
	DefaultCSVFile  = "data/tablita_V2.csv"
	DefaultJSONFile = "data/epea_data.json"
)

// executable locates the running binary; replaced in tests.
var executable = os.Executable

// ConvertConfig holds the converter settings. The converter takes no flags:
// unset paths default to the data directory next to the binary, set paths
// are used as given.
type ConvertConfig struct {
	CSVPath   string `env:"CONVERT_CSV_PATH"`
	JSONPath  string `env:"CONVERT_JSON_PATH"`
	Brokers   string `env:"KAFKA_BROKERS"`
	Topic     string `env:"KAFKA_TOPIC" envDefault:"epea-campaigns"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// LoadConvert reads the converter configuration from the environment.
func LoadConvert() (*ConvertConfig, error) {
	var cfg ConvertConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.CSVPath == "" || cfg.JSONPath == "" {
		dir, err := binaryDir()
		if err != nil {
			return nil, err
		}
		if cfg.CSVPath == "" {
			cfg.CSVPath = filepath.Join(dir, DefaultCSVFile)
		}
		if cfg.JSONPath == "" {
			cfg.JSONPath = filepath.Join(dir, DefaultJSONFile)
		}
	}
	if cfg.PublishEnabled() && cfg.Topic == "" {
		return nil, fmt.Errorf("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}
	return &cfg, nil
}

func binaryDir() (string, error) {
	exe, err := executable()
	if err != nil {
		return "", fmt.Errorf("locate converter binary: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// KafkaBrokers returns the broker list, empty when publishing is disabled.
func (c *ConvertConfig) KafkaBrokers() []string {
	if c.Brokers == "" {
		return nil
	}
	return sharedcfg.ParseBrokers(c.Brokers)
}

// PublishEnabled reports whether converted campaigns are published to Kafka.
func (c *ConvertConfig) PublishEnabled() bool {
	return len(c.KafkaBrokers()) > 0
}
