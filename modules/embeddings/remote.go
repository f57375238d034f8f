package embeddings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// RemoteProvider is a thin HTTP client over an embedding endpoint shared by
// the sbert, fastembed, and openai-compatible backends — all three speak
// the same "POST {input: [...]} -> {embeddings: [[...]]}"-shaped contract
// at the API boundary this repo integrates against, so one client type
// with a configurable name/URL/headers covers all three (§4.8: "no
// corresponding Go embedding-model binding exists in the pack").
type RemoteProvider struct {
	name      string
	dimension int
	baseURL   string
	apiKey    string
	modelName string
	client    *http.Client
}

// NewRemoteProvider constructs a RemoteProvider for sbert/fastembed/openai.
func NewRemoteProvider(name, baseURL, apiKey, modelName string, dimension int) *RemoteProvider {
	return &RemoteProvider{
		name:      name,
		dimension: dimension,
		baseURL:   baseURL,
		apiKey:    apiKey,
		modelName: modelName,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *RemoteProvider) Name() string { return p.name }

func (p *RemoteProvider) Dimension() int { return p.dimension }

func (p *RemoteProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := p.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

type remoteEmbedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type remoteEmbedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

func (p *RemoteProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	body, err := json.Marshal(remoteEmbedRequest{Model: p.modelName, Input: texts})
	if err != nil {
		return nil, fmt.Errorf("marshal embed request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build embed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s embed request: %w", p.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%s embed request: status %d", p.name, resp.StatusCode)
	}

	var out remoteEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode %s embed response: %w", p.name, err)
	}
	for _, v := range out.Embeddings {
		if len(v) != p.dimension {
			return nil, &ErrDimensionMismatch{Provider: p.name, Expected: p.dimension, Actual: len(v)}
		}
	}
	return out.Embeddings, nil
}
