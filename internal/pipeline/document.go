package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// Defaults applied by DocumentWrapper when DocumentData leaves them empty.
const (
	DefaultTitle = "Document"
	DefaultLang  = "en"
)

// ErrDocumentRender indicates the document template failed to execute.
var ErrDocumentRender = errors.New("document template rendering failed")

// DocumentData describes the shell around a compiled fragment.
type DocumentData struct {
	Title string
	Lang  string
	CSS   string
}

// DocumentWrapper places a compiled fragment inside an HTML5 document.
type DocumentWrapper struct {
	tmpl *template.Template
}

// NewDocumentWrapper parses tmplContent. The template sees .Title, .Lang
// and .Body, the latter already marked safe.
func NewDocumentWrapper(tmplContent string) (*DocumentWrapper, error) {
	tmpl, err := template.New("document").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing document template: %w", err)
	}
	return &DocumentWrapper{tmpl: tmpl}, nil
}

// Wrap renders the document for fragment and injects data.CSS into its head.
// A nil data uses the defaults.
func (w *DocumentWrapper) Wrap(ctx context.Context, fragment string, data *DocumentData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var d DocumentData
	if data != nil {
		d = *data
	}
	if d.Title == "" {
		d.Title = DefaultTitle
	}
	if d.Lang == "" {
		d.Lang = DefaultLang
	}

	var buf bytes.Buffer
	err := w.tmpl.Execute(&buf, struct {
		Title string
		Lang  string
		Body  template.HTML
	}{
		Title: d.Title,
		Lang:  d.Lang,
		Body:  template.HTML(fragment), // #nosec G203 -- compiler output is HTML by contract
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}

	return InjectCSS(buf.String(), d.CSS), nil
}

// InjectCSS inserts a <style> block before </head>, else right after the
// opening <body> tag, else at the start of the content.
func InjectCSS(htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		if closeIdx := strings.Index(htmlContent[idx:], ">"); closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}

	return styleBlock + htmlContent
}

// sanitizeCSS escapes "</" so the CSS cannot close the style element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
