package usecase

import "fmt"

// productPromptTemplate asks for a single JSON object shaped like domain.ProductRecord.
// visualDescription is requested from the model but never returned to callers.
const productPromptTemplate = `
Search Google for a real product matching "%s" available for consumers in %s.
Based on the search results, generate a single JSON object with the exact structure below.
Your entire response MUST be only this JSON object and nothing else.

{
    "productName": "string",
    "brand": "string",
    "description": "string (a detailed paragraph)",
    "category": "string",
    "price": "number",
    "currency": "string (e.g., USD, EUR, INR, based on the country)",
    "specifications": [{ "key": "string", "value": "string" }],
    "barcode": "string (a plausible 12 or 13-digit barcode)",
    "isEdible": "boolean",
    "healthBenefits": ["string"],
    "ingredients": ["string"],
    "manufacturedIn": "string (country name)",
    "availableStores": ["string (names of stores in the specified country)"],
    "visualDescription": "string"
}
`

// buildProductPrompt renders the prompt for a product/country pair
func buildProductPrompt(productName, country string) string {
	return fmt.Sprintf(productPromptTemplate, productName, country)
}
