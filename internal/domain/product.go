package domain

// ProductQuery represents a product details request
type ProductQuery struct {
	ProductName string `json:"productName" form:"productName" binding:"required"`
	Country     string `json:"country" form:"country" binding:"required"`
	UseSearch   bool   `json:"-" form:"useSearch"`
}

// ProductRecord is the product object returned to callers.
// It is kept as a plain map so values pass through exactly as the model produced them.
type ProductRecord map[string]interface{}

// GroundingSource represents a web page the model cited while answering
type GroundingSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// Record keys the service manages itself
const (
	FieldSources           = "sources"
	FieldVisualDescription = "visualDescription"
)
