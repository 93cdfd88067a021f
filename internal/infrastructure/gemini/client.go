package gemini

import (
	"context"
	"fmt"

	"github.com/g-vidhulakripali/Barcode-Scanner-API/config"
	"google.golang.org/genai"
)

// ClientConfig builds the genai client configuration for the selected backend.
// Vertex AI uses project/location credentials; otherwise the API key is used.
func ClientConfig(cfg config.GeminiConfig) *genai.ClientConfig {
	clientCfg := &genai.ClientConfig{}

	if cfg.UseVertexAI {
		clientCfg.Backend = genai.BackendVertexAI
		clientCfg.Project = cfg.Project
		clientCfg.Location = cfg.Location
		clientCfg.HTTPOptions.APIVersion = cfg.APIVersion
	} else {
		clientCfg.Backend = genai.BackendGeminiAPI
		clientCfg.APIKey = cfg.APIKey
	}

	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}

	return clientCfg
}

// NewClient creates the process-wide Gemini client
func NewClient(ctx context.Context, cfg config.GeminiConfig) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, ClientConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}
	return client, nil
}
