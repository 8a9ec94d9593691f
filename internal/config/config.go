// Package config reads the environment-driven settings of the viewer and
// the converter.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/couchcryptid/epea-campaigns/internal/domain"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all viewer settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Startup resources. Sources are a local path or an http(s) URL; an
	// empty template source or layout file selects the embedded default.
	DataSource     string
	TemplateSource string
	LayoutFile     string
	FetchTimeout   time.Duration

	IconCacheSize int
	DefaultLang   domain.Lang
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("FETCH_TIMEOUT", "5s"))
	if err != nil || fetchTimeout <= 0 {
		return nil, errors.New("invalid FETCH_TIMEOUT")
	}

	cacheSize, err := parseIconCacheSize()
	if err != nil {
		return nil, err
	}

	lang, ok := domain.ParseLang(sharedcfg.EnvOrDefault("DEFAULT_LANG", string(domain.LangES)))
	if !ok {
		return nil, errors.New("DEFAULT_LANG must be es or en")
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		DataSource:     sharedcfg.EnvOrDefault("DATA_SOURCE", "data/epea_data.json"),
		TemplateSource: os.Getenv("TEMPLATE_SOURCE"),
		LayoutFile:     os.Getenv("LAYOUT_FILE"),
		FetchTimeout:   fetchTimeout,

		IconCacheSize: cacheSize,
		DefaultLang:   lang,
	}

	if cfg.DataSource == "" {
		return nil, errors.New("DATA_SOURCE is required")
	}

	return cfg, nil
}

func parseIconCacheSize() (int, error) {
	s := os.Getenv("ICON_CACHE_SIZE")
	if s == "" {
		return 500, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid ICON_CACHE_SIZE: must be a positive integer")
	}
	return n, nil
}
