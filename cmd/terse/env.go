package main

import (
	"io"
	"os"

	terse "github.com/alnah/go-terse"
)

// Environment holds injectable dependencies for testability: standard
// streams, the process environment, and the converter pool factory.
type Environment struct {
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string
	NewPool func(size int, opts ...terse.Option) Pool
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
		NewPool: newPoolAdapter,
	}
}
