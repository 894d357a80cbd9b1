// Package mock provides test doubles for diffpane interfaces.
package mock

import (
	"context"

	"github.com/fwojciec/diffpane"
)

// Compile-time interface verification.
var (
	_ diffpane.Comparer         = (*Comparer)(nil)
	_ diffpane.ReferenceFetcher = (*ReferenceFetcher)(nil)
)

// Comparer is a mock implementation of diffpane.Comparer.
type Comparer struct {
	CompareFn func(ctx context.Context, req diffpane.CompareRequest) (diffpane.CompareResult, diffpane.Alignment, error)
}

func (c *Comparer) Compare(ctx context.Context, req diffpane.CompareRequest) (diffpane.CompareResult, diffpane.Alignment, error) {
	return c.CompareFn(ctx, req)
}

// ReferenceFetcher is a mock implementation of diffpane.ReferenceFetcher.
type ReferenceFetcher struct {
	FetchFn func(ctx context.Context, path string) ([]byte, error)
}

func (f *ReferenceFetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	return f.FetchFn(ctx, path)
}
