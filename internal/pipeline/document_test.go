package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-terse/internal/assets"
)

func newTestWrapper(t *testing.T) *DocumentWrapper {
	t.Helper()

	tmpl, err := assets.LoadTemplate(assets.DocumentTemplateName)
	if err != nil {
		t.Fatalf("LoadTemplate() error = %v", err)
	}
	w, err := NewDocumentWrapper(tmpl)
	if err != nil {
		t.Fatalf("NewDocumentWrapper() error = %v", err)
	}
	return w
}

// ---------------------------------------------------------------------------
// DocumentWrapper
// ---------------------------------------------------------------------------

func TestDocumentWrapper_Wrap(t *testing.T) {
	t.Parallel()

	w := newTestWrapper(t)

	tests := []struct {
		name         string
		data         *DocumentData
		wantContains []string
	}{
		{
			name:         "nil data uses defaults",
			data:         nil,
			wantContains: []string{`<html lang="en">`, "<title>Document</title>", "<div><p>hi</p></div>"},
		},
		{
			name:         "title and lang",
			data:         &DocumentData{Title: "Guide", Lang: "fr"},
			wantContains: []string{`<html lang="fr">`, "<title>Guide</title>"},
		},
		{
			name:         "title is escaped, body is not",
			data:         &DocumentData{Title: "a < b"},
			wantContains: []string{"<title>a &lt; b</title>", "<div><p>hi</p></div>"},
		},
		{
			name:         "CSS lands in head",
			data:         &DocumentData{CSS: "p { color: red; }"},
			wantContains: []string{"<style>p { color: red; }</style></head>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := w.Wrap(context.Background(), "<div><p>hi</p></div>", tt.data)
			if err != nil {
				t.Fatalf("Wrap() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("Wrap() = %q, want to contain %q", got, want)
				}
			}
		})
	}
}

func TestDocumentWrapper_Errors(t *testing.T) {
	t.Parallel()

	if _, err := NewDocumentWrapper("{{.Title"); err == nil {
		t.Error("NewDocumentWrapper() with a broken template should fail")
	}

	w, err := NewDocumentWrapper("{{.Missing}}")
	if err != nil {
		t.Fatalf("NewDocumentWrapper() error = %v", err)
	}
	if _, err := w.Wrap(context.Background(), "x", nil); !errors.Is(err, ErrDocumentRender) {
		t.Errorf("Wrap() error = %v, want ErrDocumentRender", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newTestWrapper(t).Wrap(ctx, "x", nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Wrap() error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// InjectCSS
// ---------------------------------------------------------------------------

func TestInjectCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		css  string
		want string
	}{
		{"empty CSS", "<p>x</p>", "", "<p>x</p>"},
		{"before head close", "<head></head><body></body>", "a{}", "<head><style>a{}</style></head><body></body>"},
		{"case-insensitive head", "<HEAD></HEAD>", "a{}", "<HEAD><style>a{}</style></HEAD>"},
		{"after body open", `<body class="x"><p>y</p></body>`, "a{}", `<body class="x"><style>a{}</style><p>y</p></body>`},
		{"prepended to fragment", "<p>y</p>", "a{}", "<style>a{}</style><p>y</p>"},
		{"style close is escaped", "<p>y</p>", "</style><script>", `<style><\/style><script></style><p>y</p>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := InjectCSS(tt.html, tt.css); got != tt.want {
				t.Errorf("InjectCSS() = %q, want %q", got, tt.want)
			}
		})
	}
}
