package main

import (
	"context"
	"fmt"

	terse "github.com/alnah/go-terse"
)

// Converter is the part of *terse.Converter the CLI uses.
type Converter interface {
	Convert(ctx context.Context, input terse.Input) (*terse.ConvertResult, error)
}

var _ Converter = (*terse.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire(ctx context.Context) (Converter, error)
	Release(Converter)
	Size() int
	Close() error
}

// poolAdapter exposes a *terse.ConverterPool as a Pool.
type poolAdapter struct {
	pool *terse.ConverterPool
}

var _ Pool = (*poolAdapter)(nil)

func newPoolAdapter(size int, opts ...terse.Option) Pool {
	return &poolAdapter{pool: terse.NewConverterPool(size, opts...)}
}

func (a *poolAdapter) Acquire(ctx context.Context) (Converter, error) {
	conv, err := a.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// Release panics if c did not come from this adapter.
func (a *poolAdapter) Release(c Converter) {
	conv, ok := c.(*terse.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", c))
	}
	a.pool.Release(conv)
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

func (a *poolAdapter) Close() error {
	return a.pool.Close()
}
