package embeddings

import (
	"fmt"

	"golang.org/x/sync/singleflight"
)

// instanceGroup collapses concurrent first-use constructions of the
// process-wide provider singleton into one (§9 "Global caches": "the
// embedding provider is acquired lazily and memoized per process").
var instanceGroup singleflight.Group

var cached Provider

// New constructs a Provider from config values. It makes no request and
// does not check the provider's native dimension against the configured D;
// remote providers report a disagreement only when an EmbedBatch response
// holds a vector of another length (ErrDimensionMismatch).
func New(provider, modelName, apiBaseURL, apiKey string, dimension int, gigachatAuthURL, gigachatClientID, gigachatClientSecret string) (Provider, error) {
	switch provider {
	case "localhash", "":
		return NewLocalHashProvider(dimension), nil
	case "sbert", "fastembed", "openai":
		return NewRemoteProvider(provider, apiBaseURL, apiKey, modelName, dimension), nil
	case "gigachat":
		return NewGigachatProvider(apiBaseURL, gigachatAuthURL, gigachatClientID, gigachatClientSecret, modelName, dimension), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", provider)
	}
}

// Acquire returns the process-wide provider singleton, building it on
// first call via singleflight so concurrent callers during startup never
// race to construct two separate clients against the same backend.
func Acquire(provider, modelName, apiBaseURL, apiKey string, dimension int, gigachatAuthURL, gigachatClientID, gigachatClientSecret string) (Provider, error) {
	if cached != nil {
		return cached, nil
	}

	v, err, _ := instanceGroup.Do("provider", func() (any, error) {
		if cached != nil {
			return cached, nil
		}
		p, err := New(provider, modelName, apiBaseURL, apiKey, dimension, gigachatAuthURL, gigachatClientID, gigachatClientSecret)
		if err != nil {
			return nil, err
		}
		cached = p
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Provider), nil
}
