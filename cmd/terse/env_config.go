package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/go-terse/internal/config"
)

const envPrefix = "TERSE_"

// envConfig holds configuration from TERSE_* environment variables.
type envConfig struct {
	ConfigPath  string        // TERSE_CONFIG: config name or path
	Style       string        // TERSE_STYLE: CSS style name or path
	Timeout     time.Duration // TERSE_TIMEOUT: PDF generation timeout
	InputDir    string        // TERSE_INPUT_DIR: default input directory
	OutputDir   string        // TERSE_OUTPUT_DIR: default output directory
	Lang        string        // TERSE_LANG: document language
	PageSize    string        // TERSE_PAGE_SIZE: a4, letter, legal
	IndentWidth int           // TERSE_INDENT: spaces per level
	Workers     int           // TERSE_WORKERS: parallel workers
}

// knownEnvVars lists valid TERSE_* variables, to catch typos.
var knownEnvVars = map[string]bool{
	"TERSE_CONFIG":     true,
	"TERSE_STYLE":      true,
	"TERSE_TIMEOUT":    true,
	"TERSE_INPUT_DIR":  true,
	"TERSE_OUTPUT_DIR": true,
	"TERSE_LANG":       true,
	"TERSE_PAGE_SIZE":  true,
	"TERSE_INDENT":     true,
	"TERSE_WORKERS":    true,
}

// loadEnvConfig reads TERSE_* variables through getenv. Unparseable or
// non-positive numbers and durations are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("TERSE_CONFIG"),
		Style:      getenv("TERSE_STYLE"),
		InputDir:   getenv("TERSE_INPUT_DIR"),
		OutputDir:  getenv("TERSE_OUTPUT_DIR"),
		Lang:       getenv("TERSE_LANG"),
		PageSize:   getenv("TERSE_PAGE_SIZE"),
	}

	if v := getenv("TERSE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	cfg.IndentWidth = positiveInt(getenv("TERSE_INDENT"))
	cfg.Workers = positiveInt(getenv("TERSE_WORKERS"))

	return cfg
}

func positiveInt(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0
	}
	return n
}

// warnUnknownEnvVars logs a warning for every unrecognized TERSE_* variable.
func warnUnknownEnvVars(logger zerolog.Logger, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			logger.Warn().Str("variable", name).Msg("unknown environment variable (typo?)")
		}
	}
}

// applyEnvConfig fills config fields the file left empty. Flags are merged
// later and override both.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" && cfg.CSS.Style == "" {
		cfg.CSS.Style = env.Style
	}
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Lang != "" && cfg.Document.Lang == "" {
		cfg.Document.Lang = env.Lang
	}
	if env.PageSize != "" && cfg.Page.Size == "" {
		cfg.Page.Size = env.PageSize
	}
	if env.IndentWidth > 0 && cfg.Compile.IndentWidth == 0 {
		cfg.Compile.IndentWidth = env.IndentWidth
	}
}
