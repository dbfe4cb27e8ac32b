//go:build integration

package terse

// Notes:
// - These tests start a real browser through go-rod, which downloads
//   Chromium on first run when none is found.
// - One shared pool keeps browser start-up to a minimum.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testTimeout = 60 * time.Second

var testPool *ConverterPool

func TestMain(m *testing.M) {
	testPool = NewConverterPool(min(ResolvePoolSize(0), 2), WithTimeout(testTimeout))
	code := m.Run()
	_ = testPool.Close()
	os.Exit(code)
}

func acquireConverter(t *testing.T) *Converter {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	conv, err := testPool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	t.Cleanup(func() { testPool.Release(conv) })
	return conv
}

func assertValidPDF(t *testing.T, data []byte) {
	t.Helper()

	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("data does not have PDF magic bytes, got prefix: %q", data[:min(10, len(data))])
	}
	if len(data) < 100 {
		t.Errorf("PDF data suspiciously small: %d bytes", len(data))
	}
}

func TestConvert_PDF_Integration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input Input
	}{
		{
			name:  "minimal document",
			input: Input{Source: "main\n    h1 \"Hello\"\n    p \"World\""},
		},
		{
			name: "landscape a4",
			input: Input{
				Source: "article\n    h1 \"Report\"",
				Page:   &PageSettings{Size: PageSizeA4, Orientation: OrientationLandscape, Margin: 1},
			},
		},
		{
			name: "titled document",
			input: Input{
				Source:   "div\n    p \"Titled\"",
				Document: &Document{Title: "Integration", Lang: "fr", CSS: "p { color: teal; }"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv := acquireConverter(t)
			res, err := conv.Convert(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			assertValidPDF(t, res.PDF)
			if len(res.HTML) == 0 {
				t.Error("expected the HTML document alongside the PDF")
			}
		})
	}
}

func TestConvert_PDF_RelativeImage_Integration(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	// 1x1 transparent GIF.
	gif := []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\x00\x00\x00\xff\xff\xff\x21\xf9\x04\x01\x00\x00\x00\x00\x2c\x00\x00\x00\x00\x01\x00\x01\x00\x00\x02\x02\x44\x01\x00\x3b")
	if err := os.WriteFile(filepath.Join(dir, "dot.gif"), gif, 0o600); err != nil {
		t.Fatal(err)
	}

	conv := acquireConverter(t)
	res, err := conv.Convert(context.Background(), Input{
		Source:    "figure\n    img src=dot.gif alt=dot",
		SourceDir: dir,
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	assertValidPDF(t, res.PDF)
	if !bytes.Contains(res.HTML, []byte(`src="dot.gif"`)) {
		t.Errorf("returned HTML should keep the relative path, got %s", res.HTML)
	}
}

func TestConvert_PDF_Timeout_Integration(t *testing.T) {
	t.Parallel()

	conv := acquireConverter(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := conv.Convert(ctx, Input{Source: "p \"late\""}); err == nil {
		t.Error("expected an error for a canceled context")
	}
}
