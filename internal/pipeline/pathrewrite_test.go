package pipeline

// Notes:
// - Tests RewriteRelativePaths through its public API, plus localFileURL,
//   which carries the containment check.
// - Error branches in parseRoots and rendering are not covered: x/net/html does
//   not fail on the markup the compiler produces.

import (
	"context"
	"runtime"
	"strings"
	"testing"
)

func testSourceDir() string {
	if runtime.GOOS == "windows" {
		return `C:\docs`
	}
	return "/docs"
}

// ---------------------------------------------------------------------------
// TestRewriteRelativePaths
// ---------------------------------------------------------------------------

func TestRewriteRelativePaths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		html         string
		sourceDir    string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "relative image",
			html:         `<img src="images/logo.png" />`,
			sourceDir:    testSourceDir(),
			wantContains: []string{`src="file://`},
		},
		{
			name:         "relative link",
			html:         `<a href="./other.terse">Other</a>`,
			sourceDir:    testSourceDir(),
			wantContains: []string{`href="file://`},
		},
		{
			name:         "relative stylesheet",
			html:         `<link rel="stylesheet" href="theme.css" />`,
			sourceDir:    testSourceDir(),
			wantContains: []string{`href="file://`},
		},
		{
			name:         "empty sourceDir returns unchanged",
			html:         `<img src="./logo.png" />`,
			sourceDir:    "",
			wantContains: []string{`<img src="./logo.png" />`},
		},
		{
			name:         "absolute path unchanged",
			html:         `<img src="/abs/logo.png">`,
			sourceDir:    testSourceDir(),
			wantContains: []string{`src="/abs/logo.png"`},
		},
		{
			name:         "URLs unchanged",
			html:         `<img src="https://example.com/a.png"><img src="data:image/png;base64,AB"><a href="mailto:me@example.com">m</a><img src="//cdn.example.com/b.png">`,
			sourceDir:    testSourceDir(),
			wantExcludes: []string{"file://"},
		},
		{
			name:         "anchor unchanged",
			html:         `<a href="#section">Link</a>`,
			sourceDir:    testSourceDir(),
			wantContains: []string{`href="#section"`},
		},
		{
			name:         "script and media unchanged",
			html:         `<script src="./app.js"></script><video src="./v.mp4"></video><source src="./a.mp3">`,
			sourceDir:    testSourceDir(),
			wantExcludes: []string{"file://"},
		},
		{
			name:         "traversal outside sourceDir unchanged",
			html:         `<img src="images/../../../etc/passwd">`,
			sourceDir:    testSourceDir(),
			wantContains: []string{`src="images/../../../etc/passwd"`},
		},
		{
			name:         "spaces are percent-encoded",
			html:         `<img src="./my images/logo.png">`,
			sourceDir:    testSourceDir(),
			wantContains: []string{"my%20images"},
		},
		{
			name:         "other attributes kept",
			html:         `<img src="./logo.png" alt="Logo" class="logo" width="100">`,
			sourceDir:    testSourceDir(),
			wantContains: []string{`alt="Logo"`, `class="logo"`, `width="100"`, `src="file://`},
		},
		{
			name:         "fragment is not wrapped",
			html:         `<p>Hello</p><img src="./logo.png"><p>World</p>`,
			sourceDir:    testSourceDir(),
			wantContains: []string{"<p>Hello</p>", `src="file://`},
			wantExcludes: []string{"<html>", "<body>"},
		},
		{
			name:         "full document keeps its structure",
			html:         "<!DOCTYPE html>\n<html><head><title>T</title></head><body><div><p><img src=\"./logo.png\"></p></div></body></html>",
			sourceDir:    testSourceDir(),
			wantContains: []string{"<html", "<title>T</title>", `src="file://`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RewriteRelativePaths(context.Background(), tt.html, tt.sourceDir)
			if err != nil {
				t.Fatalf("RewriteRelativePaths() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("RewriteRelativePaths() = %q, want to contain %q", got, want)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("RewriteRelativePaths() = %q, should not contain %q", got, exclude)
				}
			}
		})
	}
}

func TestRewriteRelativePaths_DeepNesting(t *testing.T) {
	t.Parallel()

	const depth = 300
	html := strings.Repeat("<div>", depth) + `<img src="deep.png">` + strings.Repeat("</div>", depth)

	got, err := RewriteRelativePaths(context.Background(), html, testSourceDir())
	if err != nil {
		t.Fatalf("RewriteRelativePaths() error = %v", err)
	}
	if !strings.Contains(got, `src="file://`) {
		t.Error("deeply nested image should be rewritten")
	}
}

func TestRewriteRelativePaths_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := RewriteRelativePaths(ctx, `<img src="a.png">`, testSourceDir()); err == nil {
		t.Error("RewriteRelativePaths() with canceled context should fail")
	}
}

// ---------------------------------------------------------------------------
// Path helpers
// ---------------------------------------------------------------------------

func TestLocalFileURL(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("unix paths")
	}

	tests := []struct {
		ref    string
		want   string
		wantOK bool
	}{
		{"./image.png", "file:///docs/image.png", true},
		{"images/logo.png", "file:///docs/images/logo.png", true},
		{"images/../logo.png", "file:///docs/logo.png", true},
		{"my images/logo.png", "file:///docs/my%20images/logo.png", true},
		{"日本語/logo.png", "file:///docs/%E6%97%A5%E6%9C%AC%E8%AA%9E/logo.png", true},
		{"../parent.png", "", false},
		{"images/../../etc/passwd", "", false},
		{"", "", false},
		{"#anchor", "", false},
		{"/absolute/path.png", "", false},
		{"//cdn.example.com/img.png", "", false},
		{"http://example.com/img.png", "", false},
		{"https://example.com/img.png", "", false},
		{"file:///abs/path.png", "", false},
		{"data:image/png;base64,ABC", "", false},
		{"mailto:me@example.com", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			t.Parallel()

			got, ok := localFileURL(tt.ref, "/docs")
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("localFileURL(%q) = (%q, %v), want (%q, %v)", tt.ref, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
