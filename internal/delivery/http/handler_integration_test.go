package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/g-vidhulakripali/Barcode-Scanner-API/config"
	"github.com/g-vidhulakripali/Barcode-Scanner-API/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockGenerator is a domain.ContentGenerator returning a canned reply
type mockGenerator struct {
	text   string
	chunks []*genai.GroundingChunk
	err    error

	lastConfig *genai.GenerateContentConfig
}

func (m *mockGenerator) GenerateContent(
	ctx context.Context,
	model string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	m.lastConfig = config
	if m.err != nil {
		return nil, m.err
	}
	candidate := &genai.Candidate{
		Content: &genai.Content{Role: "model", Parts: []*genai.Part{{Text: m.text}}},
	}
	if m.chunks != nil {
		candidate.GroundingMetadata = &genai.GroundingMetadata{GroundingChunks: m.chunks}
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{candidate}}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"chrome-extension://*", "http://localhost:3000"},
		},
		Gemini: config.GeminiConfig{
			APIKey: "test-api-key",
			Model:  "gemini-2.5-flash",
		},
	}
}

// setupTestRouter creates a router without a product service
func setupTestRouter() *gin.Engine {
	return SetupRouter(testConfig(), NewHandler(nil, NewMetrics()))
}

// setupTestRouterWithGenerator wires the real product service to gen
func setupTestRouterWithGenerator(gen *mockGenerator) *gin.Engine {
	svc := usecase.NewProductService(gen, usecase.ProductServiceConfig{})
	return SetupRouter(testConfig(), NewHandler(svc, NewMetrics()))
}

func doRequest(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, target, nil)
	} else {
		req, _ = http.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), "body: %s", w.Body.String())
	return response
}

func TestHealthCheckEndpoint(t *testing.T) {
	t.Run("returns healthy status", func(t *testing.T) {
		w := doRequest(setupTestRouter(), "GET", "/health", "")

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeBody(t, w)
		assert.Equal(t, "healthy", response["status"])
		assert.Equal(t, "barcode-scanner-api", response["service"])
		assert.NotEmpty(t, response["version"])
	})

	t.Run("accepts GET requests only", func(t *testing.T) {
		router := setupTestRouter()
		for _, method := range []string{"POST", "PUT", "DELETE", "PATCH"} {
			w := doRequest(router, method, "/health", "")
			assert.Equal(t, http.StatusNotFound, w.Code, "method %s", method)
		}
	})
}

func TestFetchProductDetailsPost(t *testing.T) {
	t.Run("returns extracted record with empty sources", func(t *testing.T) {
		gen := &mockGenerator{text: `Sure! {"productName":"Widget","brand":"Acme"} thanks`}
		router := setupTestRouterWithGenerator(gen)

		w := doRequest(router, "POST", "/fetch-product-details", `{"productName":"Widget","country":"Germany"}`)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.JSONEq(t, `{"productName":"Widget","brand":"Acme","sources":[]}`, w.Body.String())
		assert.Empty(t, gen.lastConfig.Tools)
	})

	t.Run("useSearch attaches search tool and returns sources", func(t *testing.T) {
		gen := &mockGenerator{
			text: `{"productName":"Widget","visualDescription":"red"}`,
			chunks: []*genai.GroundingChunk{
				{Web: &genai.GroundingChunkWeb{URI: "https://shop.example/widget", Title: "Widget Shop"}},
				{Web: &genai.GroundingChunkWeb{URI: "https://no-title.example"}},
			},
		}
		router := setupTestRouterWithGenerator(gen)

		w := doRequest(router, "POST", "/fetch-product-details?useSearch=true", `{"productName":"Widget","country":"Germany"}`)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.JSONEq(t, `{
			"productName": "Widget",
			"sources": [{"uri": "https://shop.example/widget", "title": "Widget Shop"}]
		}`, w.Body.String())
		require.Len(t, gen.lastConfig.Tools, 1)
		assert.NotNil(t, gen.lastConfig.Tools[0].GoogleSearch)
	})

	t.Run("returns 422 for missing productName", func(t *testing.T) {
		router := setupTestRouterWithGenerator(&mockGenerator{text: `{}`})

		w := doRequest(router, "POST", "/fetch-product-details", `{"country":"Germany"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.NotEmpty(t, decodeBody(t, w)["detail"])
	})

	t.Run("returns 422 for invalid JSON", func(t *testing.T) {
		router := setupTestRouterWithGenerator(&mockGenerator{text: `{}`})

		w := doRequest(router, "POST", "/fetch-product-details", `{invalid json}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("returns 422 for non-boolean useSearch", func(t *testing.T) {
		router := setupTestRouterWithGenerator(&mockGenerator{text: `{}`})

		w := doRequest(router, "POST", "/fetch-product-details?useSearch=maybe", `{"productName":"Widget","country":"Germany"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("returns 503 when service not configured", func(t *testing.T) {
		w := doRequest(setupTestRouter(), "POST", "/fetch-product-details", `{"productName":"Widget","country":"Germany"}`)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		detail, ok := decodeBody(t, w)["detail"].(string)
		require.True(t, ok)
		assert.Contains(t, detail, "not configured")
	})
}

func TestFetchProductDetailsGet(t *testing.T) {
	t.Run("returns record from query parameters", func(t *testing.T) {
		gen := &mockGenerator{text: "```json\n{\"productName\":\"Milk\",\"price\":1.29}\n```"}
		router := setupTestRouterWithGenerator(gen)

		w := doRequest(router, "GET", "/fetch-product-details?productName=Milk&country=France", "")

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.JSONEq(t, `{"productName":"Milk","price":1.29,"sources":[]}`, w.Body.String())
		assert.Empty(t, gen.lastConfig.Tools)
	})

	t.Run("useSearch=1 enables search", func(t *testing.T) {
		gen := &mockGenerator{text: `{}`}
		router := setupTestRouterWithGenerator(gen)

		w := doRequest(router, "GET", "/fetch-product-details?productName=Milk&country=France&useSearch=1", "")

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.Len(t, gen.lastConfig.Tools, 1)
	})

	t.Run("returns 422 for missing country", func(t *testing.T) {
		router := setupTestRouterWithGenerator(&mockGenerator{text: `{}`})

		w := doRequest(router, "GET", "/fetch-product-details?productName=Milk", "")

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.NotEmpty(t, decodeBody(t, w)["detail"])
	})

	t.Run("rejects other methods", func(t *testing.T) {
		router := setupTestRouterWithGenerator(&mockGenerator{text: `{}`})
		for _, method := range []string{"PUT", "DELETE", "PATCH"} {
			w := doRequest(router, method, "/fetch-product-details", "")
			assert.Equal(t, http.StatusNotFound, w.Code, "method %s", method)
		}
	})
}

func TestFetchProductDetailsErrors(t *testing.T) {
	tests := []struct {
		name       string
		gen        *mockGenerator
		target     string
		wantDetail string
		wantPrefix string
	}{
		{
			name:       "upstream failure names the search mode",
			gen:        &mockGenerator{err: errors.New("permission denied")},
			target:     "/fetch-product-details?productName=Milk&country=France&useSearch=true",
			wantDetail: "Gemini API call failed (use_search=true): permission denied",
		},
		{
			name:       "empty reply",
			gen:        &mockGenerator{text: ""},
			target:     "/fetch-product-details?productName=Milk&country=France",
			wantDetail: "Empty response from Gemini API",
		},
		{
			name:       "reply without JSON",
			gen:        &mockGenerator{text: "Sorry, I can't help with that."},
			target:     "/fetch-product-details?productName=Milk&country=France",
			wantDetail: "No valid JSON found in response",
		},
		{
			name:       "malformed JSON",
			gen:        &mockGenerator{text: `{"productName": Milk}`},
			target:     "/fetch-product-details?productName=Milk&country=France",
			wantPrefix: "Failed to parse JSON from Gemini response: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouterWithGenerator(tt.gen)

			w := doRequest(router, "GET", tt.target, "")

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			response := decodeBody(t, w)
			assert.Len(t, response, 1)
			detail, ok := response["detail"].(string)
			require.True(t, ok)
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, detail)
			} else {
				assert.True(t, strings.HasPrefix(detail, tt.wantPrefix), detail)
			}
		})
	}
}

func TestCORSIntegration(t *testing.T) {
	t.Run("health endpoint has CORS for Chrome extension", func(t *testing.T) {
		router := setupTestRouter()
		req, _ := http.NewRequest("GET", "/health", nil)
		req.Header.Set("Origin", "chrome-extension://abcdefghijklmnop")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "chrome-extension://abcdefghijklmnop", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("preflight on product endpoint", func(t *testing.T) {
		router := setupTestRouter()
		req, _ := http.NewRequest("OPTIONS", "/fetch-product-details", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRecoveryMiddleware(t *testing.T) {
	t.Run("recovers from panic without crashing server", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/panic", func(c *gin.Context) {
			panic("test panic")
		})

		w := doRequest(router, "GET", "/panic", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Internal Server Error", decodeBody(t, w)["detail"])
	})
}

func TestRequestID(t *testing.T) {
	t.Run("generates a request id", func(t *testing.T) {
		w := doRequest(setupTestRouter(), "GET", "/health", "")
		assert.Len(t, w.Header().Get("X-Request-ID"), 36)
	})

	t.Run("propagates an incoming request id", func(t *testing.T) {
		router := setupTestRouter()
		req, _ := http.NewRequest("GET", "/health", nil)
		req.Header.Set("X-Request-ID", "abc-123")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
	})
}
