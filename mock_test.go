package terse

import (
	"context"
	"sync"
	"testing"
)

// mockPDFConverter records what it was asked to render.
type mockPDFConverter struct {
	mu     sync.Mutex
	html   string
	opts   *pdfOptions
	calls  int
	closed int
	pdf    []byte
	err    error
}

func (m *mockPDFConverter) ToPDF(_ context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	m.html = htmlContent
	m.opts = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.pdf != nil {
		return m.pdf, nil
	}
	return []byte("%PDF-1.4 mock"), nil
}

func (m *mockPDFConverter) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed++
	return m.err
}

// newTestConverter builds a Converter whose PDF stage is mocked.
func newTestConverter(t testing.TB, mock *mockPDFConverter, opts ...Option) *Converter {
	t.Helper()

	conv, err := NewConverter(append(opts, withPDFConverter(mock))...)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	return conv
}
