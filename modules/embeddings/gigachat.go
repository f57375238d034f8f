package embeddings

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// GigachatProvider is the same RemoteProvider contract, but token
// acquisition goes through OAuth2 client-credentials instead of a static
// API key. The token source fetches a new token once the cached one has
// expired; a 401 from the embedding endpoint is returned as an error and
// is not retried with a fresh token.
type GigachatProvider struct {
	remote      *RemoteProvider
	tokenSource oauth2.TokenSource
}

// NewGigachatProvider constructs a provider whose bearer token is
// refreshed transparently by the oauth2 client-credentials flow.
func NewGigachatProvider(baseURL, authURL, clientID, clientSecret, modelName string, dimension int) *GigachatProvider {
	cfg := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     authURL,
	}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Timeout: 10 * time.Second})

	return &GigachatProvider{
		remote:      NewRemoteProvider("gigachat", baseURL, "", modelName, dimension),
		tokenSource: cfg.TokenSource(ctx),
	}
}

func (p *GigachatProvider) Name() string { return "gigachat" }

func (p *GigachatProvider) Dimension() int { return p.remote.dimension }

func (p *GigachatProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := p.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (p *GigachatProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	tok, err := p.tokenSource.Token()
	if err != nil {
		return nil, err
	}
	p.remote.apiKey = tok.AccessToken
	return p.remote.EmbedBatch(ctx, texts)
}
