package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/g-vidhulakripali/Barcode-Scanner-API/internal/domain"
	logx "github.com/g-vidhulakripali/Barcode-Scanner-API/pkg/logger"
	"google.golang.org/genai"
)

const (
	// DefaultModel is the Gemini model used when none is configured
	DefaultModel = "gemini-2.5-flash"

	generationTemperature float32 = 0.5
)

// ProductServiceConfig holds configuration for the product service
type ProductServiceConfig struct {
	Model string
}

// ProductService fabricates product records with a Gemini model
type ProductService struct {
	generator domain.ContentGenerator
	model     string
}

// NewProductService creates a new product service with dependencies
func NewProductService(generator domain.ContentGenerator, config ProductServiceConfig) *ProductService {
	model := config.Model
	if model == "" {
		model = DefaultModel
	}

	return &ProductService{
		generator: generator,
		model:     model,
	}
}

// Model returns the Gemini model name the service calls
func (s *ProductService) Model() string {
	return s.model
}

// FetchProductDetails asks the model for a product record.
// Flow: prompt -> generate -> extract JSON span -> parse -> sources -> return
func (s *ProductService) FetchProductDetails(
	ctx context.Context,
	query *domain.ProductQuery,
) (domain.ProductRecord, error) {
	if query == nil {
		return nil, domain.ErrInvalidRequest
	}

	prompt := buildProductPrompt(query.ProductName, query.Country)
	config := generationConfig(query.UseSearch)

	started := time.Now()
	resp, err := s.generator.GenerateContent(ctx, s.model, genai.Text(prompt), config)
	if err != nil {
		logx.Error().Err(err).
			Str("model", s.model).
			Bool("use_search", query.UseSearch).
			Msg("Gemini GenerateContent failed")
		return nil, fmt.Errorf("%w (use_search=%t): %v", domain.ErrUpstreamCall, query.UseSearch, err)
	}

	text := responseText(resp)
	logx.Debug().
		Str("model", s.model).
		Bool("use_search", query.UseSearch).
		Dur("latency", time.Since(started)).
		Int("text_len", len(text)).
		Msg("Gemini reply received")

	if text == "" {
		return nil, domain.ErrEmptyResponse
	}

	span, err := extractJSONSpan(text)
	if err != nil {
		logx.Warn().Str("reply", truncate(text, 200)).Msg("no JSON object in Gemini reply")
		return nil, err
	}

	record, err := parseProductJSON(span)
	if err != nil {
		logx.Warn().Err(err).Str("span", truncate(span, 200)).Msg("malformed JSON in Gemini reply")
		return nil, err
	}

	delete(record, domain.FieldVisualDescription)
	record[domain.FieldSources] = groundingSources(resp)

	return record, nil
}

// generationConfig returns the request config; search adds the Google Search tool
func generationConfig(useSearch bool) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(generationTemperature),
	}
	if useSearch {
		config.Tools = []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		}
	}
	return config
}

// responseText concatenates the non-thought text parts of the first candidate
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
