package terse

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// ---------------------------------------------------------------------------
// TestNewConverter
// ---------------------------------------------------------------------------

func TestNewConverter_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{"invalid indent width", []Option{WithIndentWidth(0)}, ErrInvalidIndentWidth},
		{"unknown style", []Option{WithStyle("no-such-style")}, ErrStyleNotFound},
		{"invalid asset path", []Option{WithAssetPath("/nonexistent/terse/assets")}, ErrInvalidAssetPath},
		{"missing style file", []Option{WithStyle("./missing/style.css")}, os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewConverter(append(tt.opts, withPDFConverter(&mockPDFConverter{}))...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewConverter() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewConverter_Styles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	stylePath := filepath.Join(dir, "mine.css")
	if err := os.WriteFile(stylePath, []byte("body { color: olive; }"), 0o644); err != nil {
		t.Fatalf("writing style: %v", err)
	}
	assetDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(assetDir, "styles"), 0o755); err != nil {
		t.Fatalf("creating styles dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(assetDir, "styles", "brand.css"), []byte("body { color: teal; }"), 0o644); err != nil {
		t.Fatalf("writing brand style: %v", err)
	}

	tests := []struct {
		name        string
		opts        []Option
		wantContain string
		wantNoStyle bool
	}{
		{"default style", nil, "font-family", false},
		{"named style", []Option{WithStyle("print")}, "@page", false},
		{"style file", []Option{WithStyle(stylePath)}, "olive", false},
		{"inline CSS", []Option{WithStyle("p { margin: 0 }")}, "margin: 0", false},
		{"custom asset path", []Option{WithAssetPath(assetDir), WithStyle("brand")}, "teal", false},
		{"no style", []Option{WithoutStyle()}, "", true},
		{"highlight CSS added", []Option{WithoutStyle(), WithHighlighting("monokai")}, ".chroma", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv := newTestConverter(t, &mockPDFConverter{}, tt.opts...)
			res, err := conv.Convert(context.Background(), Input{Source: "p", HTMLOnly: true})
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}

			html := string(res.HTML)
			if tt.wantNoStyle {
				if strings.Contains(html, "<style>") {
					t.Errorf("HTML should not contain a style block: %q", html)
				}
				return
			}
			if !strings.Contains(html, tt.wantContain) {
				t.Errorf("HTML should contain %q", tt.wantContain)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConvert
// ---------------------------------------------------------------------------

func TestConvert_Fragment(t *testing.T) {
	t.Parallel()

	mock := &mockPDFConverter{}
	conv := newTestConverter(t, mock)

	res, err := conv.Convert(context.Background(), Input{
		Source:   "ul\n    li \"one\"",
		Fragment: true,
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if got := string(res.HTML); got != "<ul><li>one</li></ul>" {
		t.Errorf("HTML = %q", got)
	}
	if res.PDF != nil || mock.calls != 0 {
		t.Error("Fragment should skip PDF generation")
	}
}

func TestConvert_HTMLOnly(t *testing.T) {
	t.Parallel()

	mock := &mockPDFConverter{}
	conv := newTestConverter(t, mock)

	res, err := conv.Convert(context.Background(), Input{
		Source:    "div\n    img src=logo.png",
		SourceDir: "/docs",
		Document:  &Document{Title: "Report", Lang: "de", CSS: "img { width: 1in; }"},
		HTMLOnly:  true,
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	html := string(res.HTML)
	for _, want := range []string{
		"<!DOCTYPE html>",
		`<html lang="de">`,
		"<title>Report</title>",
		"img { width: 1in; }</style>",
		`<div><img src="logo.png" /></div>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML should contain %q:\n%s", want, html)
		}
	}
	if mock.calls != 0 {
		t.Error("HTMLOnly should skip PDF generation")
	}
}

func TestConvert_PDF(t *testing.T) {
	t.Parallel()

	mock := &mockPDFConverter{pdf: []byte("%PDF-1.7")}
	conv := newTestConverter(t, mock)
	page := &PageSettings{Size: PageSizeA4, Orientation: OrientationLandscape, Margin: 1}

	res, err := conv.Convert(context.Background(), Input{
		Source:    "div\n    img src=images/logo.png",
		SourceDir: t.TempDir(),
		Page:      page,
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if string(res.PDF) != "%PDF-1.7" {
		t.Errorf("PDF = %q", res.PDF)
	}
	if mock.opts == nil || mock.opts.Page != page {
		t.Error("page settings should reach the PDF converter")
	}
	if !strings.Contains(mock.html, `src="file://`) {
		t.Errorf("HTML sent to the browser should use file:// paths: %q", mock.html)
	}
	if strings.Contains(string(res.HTML), "file://") {
		t.Error("returned HTML should keep the original relative paths")
	}
}

func TestConvert_Warnings(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, &mockPDFConverter{})
	res, err := conv.Convert(context.Background(), Input{Source: "div\n    .orphan", Fragment: true})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Line != 2 {
		t.Errorf("Warnings = %v, want one on line 2", res.Warnings)
	}
}

func TestConvert_ContextLogger(t *testing.T) {
	t.Parallel()

	var base, scoped bytes.Buffer
	conv := newTestConverter(t, &mockPDFConverter{}, WithLogger(zerolog.New(&base)))

	ctx := zerolog.New(&scoped).With().Str("file", "page.terse").Logger().WithContext(context.Background())
	if _, err := conv.Convert(ctx, Input{Source: "div\n    .orphan", Fragment: true}); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if base.Len() != 0 {
		t.Errorf("converter logger should be bypassed, got %q", base.String())
	}
	for _, want := range []string{`"file":"page.terse"`, `"line":2`} {
		if !strings.Contains(scoped.String(), want) {
			t.Errorf("context logger output should contain %q: %q", want, scoped.String())
		}
	}

	// Without a context logger the converter's own logger is used.
	if _, err := conv.Convert(context.Background(), Input{Source: "div\n    .orphan", Fragment: true}); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !strings.Contains(base.String(), `"kind":"misconfigured-node"`) {
		t.Errorf("converter logger output = %q", base.String())
	}
}

func TestConvert_Errors(t *testing.T) {
	t.Parallel()

	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	pdfErr := errors.New("chrome crashed")

	tests := []struct {
		name    string
		ctx     context.Context
		input   Input
		mockErr error
		wantErr error
	}{
		{"empty source", context.Background(), Input{Source: ""}, nil, ErrEmptySource},
		{"structural error", context.Background(), Input{Source: "a\nb"}, nil, ErrStructure},
		{"invalid page", context.Background(), Input{Source: "p", Page: &PageSettings{Size: "a0", Orientation: "portrait", Margin: 1}}, nil, ErrInvalidPageSize},
		{"canceled context", canceled, Input{Source: "p"}, nil, context.Canceled},
		{"PDF failure", context.Background(), Input{Source: "p"}, pdfErr, pdfErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv := newTestConverter(t, &mockPDFConverter{err: tt.mockErr})
			_, err := conv.Convert(tt.ctx, tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Convert() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConverter_Close(t *testing.T) {
	t.Parallel()

	mock := &mockPDFConverter{}
	conv := newTestConverter(t, mock)
	if err := conv.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if mock.closed != 1 {
		t.Errorf("Close() should close the PDF converter once, got %d", mock.closed)
	}
}
