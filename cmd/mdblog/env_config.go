package main

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-mdblog/internal/config"
)

// envPrefix starts every environment variable read by mdblog.
const envPrefix = "MDBLOG_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath  string // MDBLOG_CONFIG: config file name or path
	SourceDir   string // MDBLOG_SOURCE_DIR: source directory
	OutputDir   string // MDBLOG_OUTPUT_DIR: output directory
	SiteTitle   string // MDBLOG_SITE_TITLE: site title
	BaseURL     string // MDBLOG_BASE_URL: absolute link prefix
	Style       string // MDBLOG_STYLE: stylesheet name
	DateFormat  string // MDBLOG_DATE_FORMAT: display date format
	OnCollision string // MDBLOG_ON_COLLISION: skip or overwrite
	Drafts      bool   // MDBLOG_DRAFTS: include draft posts
}

// knownEnvVars lists valid MDBLOG_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDBLOG_CONFIG":       true,
	"MDBLOG_SOURCE_DIR":   true,
	"MDBLOG_OUTPUT_DIR":   true,
	"MDBLOG_SITE_TITLE":   true,
	"MDBLOG_BASE_URL":     true,
	"MDBLOG_STYLE":        true,
	"MDBLOG_DATE_FORMAT":  true,
	"MDBLOG_ON_COLLISION": true,
	"MDBLOG_DRAFTS":       true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparseable booleans are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:  os.Getenv("MDBLOG_CONFIG"),
		SourceDir:   os.Getenv("MDBLOG_SOURCE_DIR"),
		OutputDir:   os.Getenv("MDBLOG_OUTPUT_DIR"),
		SiteTitle:   os.Getenv("MDBLOG_SITE_TITLE"),
		BaseURL:     os.Getenv("MDBLOG_BASE_URL"),
		Style:       os.Getenv("MDBLOG_STYLE"),
		DateFormat:  os.Getenv("MDBLOG_DATE_FORMAT"),
		OnCollision: os.Getenv("MDBLOG_ON_COLLISION"),
	}

	if drafts := os.Getenv("MDBLOG_DRAFTS"); drafts != "" {
		if v, err := strconv.ParseBool(drafts); err == nil {
			cfg.Drafts = v
		}
	}

	return cfg
}

// warnUnknownEnvVars logs a warning for each unrecognized MDBLOG_* variable.
// Helps catch typos like MDBLOG_OUTPUT instead of MDBLOG_OUTPUT_DIR.
func warnUnknownEnvVars(logger *slog.Logger) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			logger.Warn("unknown environment variable (typo?)", "name", name)
		}
	}
}

// applyEnvConfig copies set environment values over the config file values.
// Flags are merged afterwards, giving: flags > env > config > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	setIf(&cfg.Source.Dir, env.SourceDir)
	setIf(&cfg.Output.Dir, env.OutputDir)
	setIf(&cfg.Site.Title, env.SiteTitle)
	setIf(&cfg.Site.BaseURL, env.BaseURL)
	setIf(&cfg.Assets.Style, env.Style)
	setIf(&cfg.Date.Format, env.DateFormat)
	setIf(&cfg.Build.OnCollision, env.OnCollision)
	if env.Drafts {
		cfg.Build.Drafts = true
	}
}

// setIf overwrites dst when value is non-empty.
func setIf(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
