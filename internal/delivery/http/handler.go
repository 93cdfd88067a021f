package http

import (
	"errors"
	"net/http"

	"github.com/g-vidhulakripali/Barcode-Scanner-API/internal/domain"
	"github.com/g-vidhulakripali/Barcode-Scanner-API/internal/usecase"
	logx "github.com/g-vidhulakripali/Barcode-Scanner-API/pkg/logger"
	"github.com/gin-gonic/gin"
)

const (
	serviceName    = "barcode-scanner-api"
	serviceVersion = "1.0.0"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	productService *usecase.ProductService
	metrics        *Metrics
}

// NewHandler creates a new HTTP handler.
// metrics may be nil, in which case nothing is recorded.
func NewHandler(productService *usecase.ProductService, metrics *Metrics) *Handler {
	return &Handler{
		productService: productService,
		metrics:        metrics,
	}
}

// productRequest is the POST body
type productRequest struct {
	ProductName string `json:"productName" binding:"required"`
	Country     string `json:"country" binding:"required"`
}

// searchParams carries the useSearch query flag shared by both verbs
type searchParams struct {
	UseSearch bool `form:"useSearch"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	})
}

// FetchProductDetailsPost handles POST /fetch-product-details
func (h *Handler) FetchProductDetailsPost(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithDetail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var params searchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		abortWithDetail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	h.fetchProductDetails(c, &domain.ProductQuery{
		ProductName: req.ProductName,
		Country:     req.Country,
		UseSearch:   params.UseSearch,
	})
}

// FetchProductDetailsGet handles GET /fetch-product-details
func (h *Handler) FetchProductDetailsGet(c *gin.Context) {
	var query domain.ProductQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortWithDetail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	h.fetchProductDetails(c, &query)
}

func (h *Handler) fetchProductDetails(c *gin.Context, query *domain.ProductQuery) {
	if h.productService == nil {
		abortWithDetail(c, http.StatusServiceUnavailable, "product service not configured")
		return
	}

	record, err := h.productService.FetchProductDetails(c.Request.Context(), query)
	h.metrics.observeFetch(query.UseSearch, err)
	if err != nil {
		logx.Error().Err(err).
			Str("request_id", c.GetString(requestIDKey)).
			Str("product_name", query.ProductName).
			Str("country", query.Country).
			Bool("use_search", query.UseSearch).
			Msg("fetch product details failed")
		abortWithDetail(c, statusForError(err), err.Error())
		return
	}

	c.JSON(http.StatusOK, record)
}

// statusForError maps service errors to HTTP status codes.
// Every upstream or parsing failure is a 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func abortWithDetail(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": detail})
}
