package main

// Notes:
// - Shared mocks and environment builders for the cmd tests.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	terse "github.com/alnah/go-terse"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

// mockConverter records inputs and returns a fixed result.
type mockConverter struct {
	mu     sync.Mutex
	inputs []terse.Input
	result *terse.ConvertResult
	err    error
}

func (m *mockConverter) Convert(_ context.Context, input terse.Input) (*terse.ConvertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs = append(m.inputs, input)
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockConverter) calls() []terse.Input {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]terse.Input(nil), m.inputs...)
}

// mockPool hands out a single shared converter and tracks how many are
// checked out at once.
type mockPool struct {
	mu         sync.Mutex
	conv       Converter
	size       int
	acquireErr error
	released   int
	inUse      int
	peak       int
	closed     bool
}

func (p *mockPool) Acquire(_ context.Context) (Converter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inUse++
	p.peak = max(p.peak, p.inUse)
	return p.conv, nil
}

func (p *mockPool) Release(Converter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inUse--
	p.released++
}

func (p *mockPool) Size() int { return p.size }

func (p *mockPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// ---------------------------------------------------------------------------
// Environment Builders
// ---------------------------------------------------------------------------

// testEnv returns an environment with buffered streams, the given variables
// and the real converter pool.
func testEnv(t *testing.T, stdin string, vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	env := &Environment{
		Stdin:   strings.NewReader(stdin),
		Stdout:  stdout,
		Stderr:  stderr,
		Getenv:  func(k string) string { return vars[k] },
		Environ: func() []string { return environ(vars) },
		NewPool: newPoolAdapter,
	}
	return env, stdout, stderr
}

func environ(vars map[string]string) []string {
	out := make([]string, 0, len(vars))
	for k, v := range vars {
		out = append(out, k+"="+v)
	}
	return out
}
