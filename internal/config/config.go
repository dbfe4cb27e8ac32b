package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/alnah/go-terse/internal/codec"
)

// AppName names the directory under $XDG_CONFIG_HOME searched for configs.
const AppName = "go-terse"

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxTitleLength       = 200  // <title> text
	MaxLangLength        = 35   // BCP 47 tags stay short
	MaxPathLength        = 4096 // PATH_MAX on Linux
	MaxStyleLength       = 4096 // name, path, or short inline CSS
	MaxHighlightLength   = 50   // chroma style name
	MaxPageSizeLength    = 10   // "letter", "a4", "legal"
	MaxOrientationLength = 10   // "portrait", "landscape"
	MaxIndentWidth       = 16
)

// Config holds CLI configuration. Zero values mean "use the default".
type Config struct {
	Compile  CompileConfig  `yaml:"compile" toml:"compile"`
	Document DocumentConfig `yaml:"document" toml:"document"`
	Input    InputConfig    `yaml:"input" toml:"input"`
	Output   OutputConfig   `yaml:"output" toml:"output"`
	CSS      CSSConfig      `yaml:"css" toml:"css"`
	Assets   AssetsConfig   `yaml:"assets" toml:"assets"`
	Page     PageConfig     `yaml:"page" toml:"page"`
}

// CompileConfig tunes the compiler.
type CompileConfig struct {
	IndentWidth    int    `yaml:"indentWidth" toml:"indentWidth"`       // spaces per level (0 = 4)
	Markdown       bool   `yaml:"markdown" toml:"markdown"`             // render content as inline Markdown
	HighlightStyle string `yaml:"highlightStyle" toml:"highlightStyle"` // chroma style (empty = no highlighting)
}

// DocumentConfig defines the HTML shell.
type DocumentConfig struct {
	Title    string `yaml:"title" toml:"title"`       // empty = file name
	Lang     string `yaml:"lang" toml:"lang"`         // empty = "en"
	Fragment bool   `yaml:"fragment" toml:"fragment"` // write the bare fragment
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir" toml:"defaultDir"` // empty = must specify
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir" toml:"defaultDir"` // empty = same as source
	PDF        bool   `yaml:"pdf" toml:"pdf"`               // render PDF instead of HTML
}

// CSSConfig defines CSS styling options.
type CSSConfig struct {
	Style string `yaml:"style" toml:"style"` // name, path, or CSS (empty = "default")
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath" toml:"basePath"` // empty = embedded assets
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size" toml:"size"`               // "letter", "a4", "legal"
	Orientation string  `yaml:"orientation" toml:"orientation"` // "portrait", "landscape"
	Margin      float64 `yaml:"margin" toml:"margin"`           // inches
}

// Validate checks field lengths and enumerations. Called by LoadConfig.
func (c *Config) Validate() error {
	if c.Compile.IndentWidth < 0 || c.Compile.IndentWidth > MaxIndentWidth {
		return fmt.Errorf("%w: compile.indentWidth must be between 1 and %d, got %d", ErrInvalidValue, MaxIndentWidth, c.Compile.IndentWidth)
	}

	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"compile.highlightStyle", c.Compile.HighlightStyle, MaxHighlightLength},
		{"document.title", c.Document.Title, MaxTitleLength},
		{"document.lang", c.Document.Lang, MaxLangLength},
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"css.style", c.CSS.Style, MaxStyleLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Page.Size != "" {
		switch strings.ToLower(c.Page.Size) {
		case "letter", "a4", "legal":
		default:
			return fmt.Errorf("%w: page.size %q (must be letter, a4, or legal)", ErrInvalidValue, c.Page.Size)
		}
	}
	if c.Page.Orientation != "" {
		switch strings.ToLower(c.Page.Orientation) {
		case "portrait", "landscape":
		default:
			return fmt.Errorf("%w: page.orientation %q (must be portrait or landscape)", ErrInvalidValue, c.Page.Orientation)
		}
	}
	if c.Page.Margin < 0 {
		return fmt.Errorf("%w: page.margin must not be negative, got %.2f", ErrInvalidValue, c.Page.Margin)
	}
	if c.Document.Fragment && c.Output.PDF {
		return fmt.Errorf("%w: document.fragment and output.pdf are mutually exclusive", ErrInvalidValue)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration where every field means "default".
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise it's searched in the working directory, then in
// $XDG_CONFIG_HOME/go-terse. A missing file is an error.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	format, err := codec.FormatFor(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := codec.UnmarshalStrict(format, data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// UserConfigDir returns the per-user config directory.
func UserConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// SearchPaths lists the files LoadConfig tries for a config name: each
// location with .yaml, .yml and .toml, working directory first.
func SearchPaths(name string) []string {
	dirs := []string{"", UserConfigDir()}
	paths := make([]string, 0, len(dirs)*len(codec.Extensions))
	for _, dir := range dirs {
		for _, ext := range codec.Extensions {
			paths = append(paths, filepath.Join(dir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing search path for name.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, path := range paths {
		if fileExists(path) {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
