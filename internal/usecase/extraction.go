package usecase

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/g-vidhulakripali/Barcode-Scanner-API/internal/domain"
)

// extractJSONSpan returns the text between the first '{' and the last '}'.
//
// This is a heuristic, not a parser: prose that itself contains braces, or a
// reply with several top-level objects, produces the widest span and will
// usually fail to parse.
func extractJSONSpan(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", domain.ErrNoJSONFound
	}
	return text[start : end+1], nil
}

// parseProductJSON decodes the extracted span into a record.
// Field types are not checked; whatever the model produced is kept.
func parseProductJSON(span string) (domain.ProductRecord, error) {
	var record domain.ProductRecord
	if err := json.Unmarshal([]byte(span), &record); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrClientFormat, err)
	}
	return record, nil
}
