package backends

import (
	"context"
	"encoding/json"
)

// ExtractClient talks to the named-entity extraction service.
type ExtractClient struct {
	client *HTTPClient
}

func NewExtractClient(client *HTTPClient) *ExtractClient {
	return &ExtractClient{client: client}
}

// Extract posts the question text and returns the extraction payload.
func (c *ExtractClient) Extract(ctx context.Context, text string) (json.RawMessage, error) {
	return c.client.PostJSON(ctx, "/extract", map[string]string{"text": text})
}

func (c *ExtractClient) Name() string { return "extract" }

func (c *ExtractClient) Check(ctx context.Context) error { return c.client.Ping(ctx) }

// SpectroClient talks to the spectrum prediction service.
type SpectroClient struct {
	client *HTTPClient
}

func NewSpectroClient(client *HTTPClient) *SpectroClient {
	return &SpectroClient{client: client}
}

// Spectroscopy posts a molecule name and returns the predicted spectra.
func (c *SpectroClient) Spectroscopy(ctx context.Context, molecule string) (json.RawMessage, error) {
	return c.client.PostJSON(ctx, "/spectroscopy", map[string]string{"molecule": molecule})
}

func (c *SpectroClient) Name() string { return "spectro" }

func (c *SpectroClient) Check(ctx context.Context) error { return c.client.Ping(ctx) }

// RetroClient talks to the retrosynthesis planning service.
type RetroClient struct {
	client *HTTPClient
}

func NewRetroClient(client *HTTPClient) *RetroClient {
	return &RetroClient{client: client}
}

// Retrosynthesis posts a SMILES string and returns the planned routes.
func (c *RetroClient) Retrosynthesis(ctx context.Context, smiles string) (json.RawMessage, error) {
	return c.client.PostJSON(ctx, "/retrosynthesis", map[string]string{"smiles": smiles})
}

func (c *RetroClient) Name() string { return "retro" }

func (c *RetroClient) Check(ctx context.Context) error { return c.client.Ping(ctx) }
