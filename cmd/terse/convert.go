package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	terse "github.com/alnah/go-terse"
	"github.com/alnah/go-terse/internal/config"
	"github.com/alnah/go-terse/internal/logging"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrReadSource       = errors.New("failed to read source file")
	ErrWriteOutput      = errors.New("failed to write output file")
	ErrCreateOutputDir  = errors.New("failed to create output directory")
	ErrInvalidTimeout   = errors.New("invalid timeout")
	ErrConversionFailed = errors.New("conversion failed")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// outputMode selects what convert writes.
type outputMode int

const (
	modeDocument outputMode = iota // full HTML document
	modeFragment                   // bare HTML fragment
	modePDF                        // PDF through the browser
)

func (m outputMode) ext() string {
	if m == modePDF {
		return ".pdf"
	}
	return ".html"
}

func modeFor(cfg *config.Config) outputMode {
	switch {
	case cfg.Output.PDF:
		return modePDF
	case cfg.Document.Fragment:
		return modeFragment
	default:
		return modeDocument
	}
}

// conversionParams groups parameters shared by every file of a batch.
type conversionParams struct {
	mode  outputMode
	title string // empty = derived from the file name
	lang  string
	page  *terse.PageSettings
}

// input builds the library input for one source.
func (p *conversionParams) input(source, sourceDir, title string) terse.Input {
	return terse.Input{
		Source:    source,
		SourceDir: sourceDir,
		Document:  &terse.Document{Title: title, Lang: p.lang},
		Page:      p.page,
		HTMLOnly:  p.mode != modePDF,
		Fragment:  p.mode == modeFragment,
	}
}

// runConvert orchestrates the conversion: config, flags, discovery, batch.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment, logger zerolog.Logger) error {
	envCfg := loadEnvConfig(env.Getenv)
	warnUnknownEnvVars(logger, env.Environ())

	if flags.workers == 0 {
		flags.workers = envCfg.Workers
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.timeout, envCfg.Timeout)
	if err != nil {
		return err
	}

	page, err := buildPageSettings(cfg)
	if err != nil {
		return err
	}
	params := &conversionParams{
		mode:  modeFor(cfg),
		title: cfg.Document.Title,
		lang:  cfg.Document.Lang,
		page:  page,
	}
	opts := buildOptions(cfg, flags.assets.noStyle, timeout, logger)

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}

	if inputPath == stdinPath {
		return convertStdin(ctx, env, opts, params, flags.output, logger)
	}

	files, err := discoverFiles(inputPath, resolveOutputDir(flags.output, cfg), params.mode.ext())
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no %s files found in %s", ErrNoInput, sourceExt, inputPath)
	}

	pool := env.NewPool(min(terse.ResolvePoolSize(flags.workers), len(files)), opts...)
	defer func() {
		if err := pool.Close(); err != nil {
			logger.Debug().Err(err).Msg("closing converter pool")
		}
	}()

	done := logging.OperationStart(logger.With().Int("files", len(files)).Int("workers", pool.Size()).Logger(), "convert")
	results := convertBatch(ctx, pool, files, params, logger)
	done()

	printResults(results, flags.common.quiet, flags.common.verbose, env.Stdout, env.Stderr)
	return batchError(results)
}

// loadConfig loads the config named by the flag, else by TERSE_CONFIG,
// else returns defaults.
func loadConfig(flagName, envName string) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}
	return config.LoadConfig(name)
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.compile.indent != 0 {
		cfg.Compile.IndentWidth = flags.compile.indent
	}
	if flags.compile.markdown {
		cfg.Compile.Markdown = true
	}
	if flags.compile.highlightStyle != "" {
		cfg.Compile.HighlightStyle = flags.compile.highlightStyle
	}

	if flags.document.title != "" {
		cfg.Document.Title = flags.document.title
	}
	if flags.document.lang != "" {
		cfg.Document.Lang = flags.document.lang
	}

	// --pdf and --fragment each override the other's config value.
	if flags.pdf {
		cfg.Output.PDF = true
		cfg.Document.Fragment = flags.document.fragment
	}
	if flags.document.fragment {
		cfg.Document.Fragment = true
		cfg.Output.PDF = flags.pdf
	}

	if flags.page.size != "" {
		cfg.Page.Size = flags.page.size
	}
	if flags.page.orientation != "" {
		cfg.Page.Orientation = flags.page.orientation
	}
	if flags.page.margin != 0 {
		cfg.Page.Margin = flags.page.margin
	}

	if flags.assets.style != "" {
		cfg.CSS.Style = flags.assets.style
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}

	// The flag is recorded so hints see the effective width.
	if flags.compile.indent == 0 {
		flags.compile.indent = cfg.Compile.IndentWidth
	}
}

// resolveTimeout picks the PDF timeout: flag, then TERSE_TIMEOUT. Zero
// means the library default.
func resolveTimeout(flagValue string, envValue time.Duration) (time.Duration, error) {
	if flagValue == "" {
		return envValue, nil
	}

	d, err := time.ParseDuration(flagValue)
	if err != nil {
		return 0, fmt.Errorf("%w: %q (use e.g. 30s, 2m)", ErrInvalidTimeout, flagValue)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s (must be positive)", ErrInvalidTimeout, flagValue)
	}
	return d, nil
}

// buildPageSettings returns nil when no page field is set, so the library
// applies its defaults.
func buildPageSettings(cfg *config.Config) (*terse.PageSettings, error) {
	if cfg.Page == (config.PageConfig{}) {
		return nil, nil
	}

	page := terse.DefaultPageSettings()
	if cfg.Page.Size != "" {
		page.Size = strings.ToLower(cfg.Page.Size)
	}
	if cfg.Page.Orientation != "" {
		page.Orientation = strings.ToLower(cfg.Page.Orientation)
	}
	if cfg.Page.Margin != 0 {
		page.Margin = cfg.Page.Margin
	}

	if err := page.Validate(); err != nil {
		return nil, err
	}
	return page, nil
}

// buildOptions maps the merged config to library options.
func buildOptions(cfg *config.Config, noStyle bool, timeout time.Duration, logger zerolog.Logger) []terse.Option {
	opts := []terse.Option{terse.WithLogger(logger)}

	if cfg.Compile.IndentWidth > 0 {
		opts = append(opts, terse.WithIndentWidth(cfg.Compile.IndentWidth))
	}
	if cfg.Compile.Markdown {
		opts = append(opts, terse.WithMarkdown())
	}
	if cfg.Compile.HighlightStyle != "" {
		opts = append(opts, terse.WithHighlighting(cfg.Compile.HighlightStyle))
	}
	if timeout > 0 {
		opts = append(opts, terse.WithTimeout(timeout))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, terse.WithAssetPath(cfg.Assets.BasePath))
	}

	switch {
	case noStyle:
		opts = append(opts, terse.WithoutStyle())
	case cfg.CSS.Style != "":
		opts = append(opts, terse.WithStyle(cfg.CSS.Style))
	}
	return opts
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// convertStdin compiles standard input. Output goes to stdout unless
// output names a file.
func convertStdin(ctx context.Context, env *Environment, opts []terse.Option, params *conversionParams, output string, logger zerolog.Logger) error {
	source, err := io.ReadAll(env.Stdin)
	if err != nil {
		return fmt.Errorf("%w: stdin: %v", ErrReadSource, err)
	}

	pool := env.NewPool(1, opts...)
	defer func() {
		if err := pool.Close(); err != nil {
			logger.Debug().Err(err).Msg("closing converter pool")
		}
	}()

	conv, err := pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer pool.Release(conv)

	// Relative paths resolve against the working directory.
	sourceDir, _ := os.Getwd()
	ctx = logger.With().Str("file", "<stdin>").Logger().WithContext(ctx)

	res, err := conv.Convert(ctx, params.input(string(source), sourceDir, params.title))
	if err != nil {
		return err
	}

	data := res.HTML
	if params.mode == modePDF {
		data = res.PDF
	}

	if output == "" || output == stdinPath {
		if _, err := env.Stdout.Write(data); err != nil {
			return fmt.Errorf("%w: stdout: %v", ErrWriteOutput, err)
		}
		return nil
	}
	return writeOutput(output, data)
}

// writeOutput creates the parent directory and writes data to path.
func writeOutput(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrCreateOutputDir, err)
	}
	// #nosec G306 -- outputs are meant to be readable
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}
