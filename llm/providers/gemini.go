package providers

import (
	"net/http"
	"os"

	"github.com/rhpds/showroom-tool/llm"
)

// GeminiProvider targets Google's OpenAI compatibility endpoint for
// Gemini models. The request and response wire formats are shared with
// OpenAIProvider.
type GeminiProvider struct {
	OpenAIProvider // shared chat completions codec
}

func init() {
	llm.RegisterProvider(&GeminiProvider{})
}

// Name returns the provider identifier.
func (g *GeminiProvider) Name() string {
	return "gemini"
}

// BuildURL constructs the Gemini compatibility endpoint.
func (g *GeminiProvider) BuildURL(baseURL string) string {
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta/openai"
	}
	return g.OpenAIProvider.BuildURL(baseURL)
}

// SetHeaders adds Gemini authentication headers.
func (g *GeminiProvider) SetHeaders(req *http.Request) {
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
}
