package terse

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/alnah/go-terse/internal/assets"
	"github.com/alnah/go-terse/internal/fileutil"
	"github.com/alnah/go-terse/internal/pipeline"
)

// Converter runs the full pipeline: preprocess, compile, wrap in a document
// with CSS, and render to PDF. A Converter owns at most one browser and is
// not safe for concurrent use; share converters through a ConverterPool.
type Converter struct {
	compiler     *Compiler
	logger       zerolog.Logger
	preprocessor pipeline.SourcePreprocessor
	wrapper      *pipeline.DocumentWrapper
	css          string
	pdfConverter pdfConverter
}

// NewConverter creates a Converter. It fails on an invalid indent width,
// an unknown style or highlight style, and an unreadable asset path.
func NewConverter(opts ...Option) (*Converter, error) {
	s := newSettings(opts)

	compiler, err := newCompiler(s)
	if err != nil {
		return nil, err
	}

	resolver, err := assets.NewAssetResolver(s.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}

	tmpl, err := resolver.LoadTemplate(assets.DocumentTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading document template: %w", err)
	}
	wrapper, err := pipeline.NewDocumentWrapper(tmpl)
	if err != nil {
		return nil, err
	}

	css, err := resolveStyle(resolver, s)
	if err != nil {
		return nil, err
	}
	codeCSS, err := compiler.highlightCSS()
	if err != nil {
		return nil, fmt.Errorf("building highlight CSS: %w", err)
	}
	if codeCSS != "" {
		css = joinCSS(css, codeCSS)
	}

	c := &Converter{
		compiler:     compiler,
		logger:       s.logger,
		preprocessor: pipeline.LineNormalizer{},
		wrapper:      wrapper,
		css:          css,
		pdfConverter: s.pdfConverter,
	}
	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(s.timeout)
	}
	return c, nil
}

// resolveStyle turns the style setting (name, path, or CSS content) into CSS.
func resolveStyle(loader assets.AssetLoader, s settings) (string, error) {
	if s.noStyle || s.style == "" {
		return "", nil
	}

	if fileutil.IsFilePath(s.style) {
		content, err := os.ReadFile(s.style) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("loading style file %q: %w", s.style, err)
		}
		return string(content), nil
	}

	if fileutil.IsCSS(s.style) {
		return s.style, nil
	}

	css, err := loader.LoadStyle(s.style)
	if err != nil {
		return "", fmt.Errorf("loading style %q: %w", s.style, err)
	}
	return css, nil
}

func joinCSS(parts ...string) string {
	var out string
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += "\n"
		}
		out += p
	}
	return out
}

// Convert runs the pipeline for one input. Input.Fragment stops after the
// compile, Input.HTMLOnly after the document is built. Internal panics are
// recovered and returned as errors.
//
// A logger attached to ctx with zerolog's Logger.WithContext replaces the
// converter's logger for this call.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := input.Page.Validate(); err != nil {
		return nil, err
	}

	source := c.preprocessor.PreprocessSource(ctx, input.Source)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := c.loggerFor(ctx)
	compiled, err := c.compiler.compile(source, logger)
	if err != nil {
		return nil, err
	}
	res := &ConvertResult{Warnings: compiled.Warnings}

	if input.Fragment {
		res.HTML = []byte(compiled.HTML)
		return res, nil
	}

	doc := &pipeline.DocumentData{CSS: c.css}
	if input.Document != nil {
		doc.Title = input.Document.Title
		doc.Lang = input.Document.Lang
		doc.CSS = joinCSS(c.css, input.Document.CSS)
	}

	htmlContent, err := c.wrapper.Wrap(ctx, compiled.HTML, doc)
	if err != nil {
		return nil, fmt.Errorf("wrapping document: %w", err)
	}
	res.HTML = []byte(htmlContent)

	if input.HTMLOnly {
		return res, nil
	}

	// Only the copy sent to the browser gets file:// URLs.
	printable, err := pipeline.RewriteRelativePaths(ctx, htmlContent, input.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("rewriting relative paths: %w", err)
	}

	logger.Debug().Int("bytes", len(printable)).Msg("rendering PDF")
	pdf, err := c.pdfConverter.ToPDF(ctx, printable, &pdfOptions{Page: input.Page})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	res.PDF = pdf
	return res, nil
}

func (c *Converter) loggerFor(ctx context.Context) zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return *l
	}
	return c.logger
}

// Close releases the browser, if one was started.
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}
