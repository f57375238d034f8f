package embeddings

import (
	"context"
	"encoding/binary"
	"math"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// LocalHashProvider is the reference embedding provider (§4.8 "hashing"):
// deterministic, dependency-free beyond the hash function itself. Each
// token is hashed into a signed bucket in [0, D); the resulting vector is
// L2-normalized.
type LocalHashProvider struct {
	dimension int
}

// NewLocalHashProvider creates a hashing provider of the given dimension.
func NewLocalHashProvider(dimension int) *LocalHashProvider {
	return &LocalHashProvider{dimension: dimension}
}

func (p *LocalHashProvider) Name() string { return "localhash" }

func (p *LocalHashProvider) Dimension() int { return p.dimension }

// Embed tokenizes on whitespace, hashes each token with blake2b, and
// accumulates a signed contribution into the bucket the hash selects — the
// same "feature hashing" trick `HashingVectorizer` implementations use,
// here built directly on blake2b rather than a generic hashing-vectorizer
// library (none is grounded in the retrieved pack).
func (p *LocalHashProvider) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float64, p.dimension)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		sum := blake2b.Sum256([]byte(token))
		bucket := binary.BigEndian.Uint64(sum[:8]) % uint64(p.dimension)
		sign := 1.0
		if sum[8]&1 == 1 {
			sign = -1.0
		}
		vec[bucket] += sign
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)

	out := make([]float32, p.dimension)
	if norm == 0 {
		return out, nil
	}
	for i, v := range vec {
		out[i] = float32(v / norm)
	}
	return out, nil
}

// EmbedBatch embeds each text independently; hashing is CPU-only and does
// not benefit from batching the way a remote provider's HTTP batching does.
func (p *LocalHashProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := p.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
