package domain

import (
	"context"

	"google.golang.org/genai"
)

// ContentGenerator defines the interface for calling a Gemini text model.
// *genai.Models satisfies it.
type ContentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}
