package usecase

import (
	"github.com/g-vidhulakripali/Barcode-Scanner-API/internal/domain"
	"google.golang.org/genai"
)

// groundingSources collects the web citations of the first candidate.
// Missing structure at any level yields an empty, non-nil slice.
func groundingSources(resp *genai.GenerateContentResponse) []domain.GroundingSource {
	sources := []domain.GroundingSource{}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return sources
	}
	metadata := resp.Candidates[0].GroundingMetadata
	if metadata == nil {
		return sources
	}

	for _, chunk := range metadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		if chunk.Web.URI == "" || chunk.Web.Title == "" {
			continue
		}
		sources = append(sources, domain.GroundingSource{
			URI:   chunk.Web.URI,
			Title: chunk.Web.Title,
		})
	}

	return sources
}
