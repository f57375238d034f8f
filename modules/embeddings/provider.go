// Package embeddings implements the pluggable embedding provider
// (component B): text in, unit-norm vector of fixed dimension D out.
package embeddings

import "context"

// Provider is the duck-typed capability set every embedding backend must
// implement in full before it is registered (§9 "Duck-typed embedding
// providers").
type Provider interface {
	Name() string
	Dimension() int
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// ErrDimensionMismatch is returned by a remote provider's EmbedBatch when a
// vector in the response has a length other than the configured D.
type ErrDimensionMismatch struct {
	Provider string
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return "embedding provider " + e.Provider + ": dimension mismatch"
}
