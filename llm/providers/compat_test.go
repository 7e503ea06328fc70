package providers

import (
	"net/http"
	"testing"

	"github.com/rhpds/showroom-tool/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiProvider(t *testing.T) {
	p := &GeminiProvider{}

	t.Run("name", func(t *testing.T) {
		assert.Equal(t, "gemini", p.Name())
	})

	t.Run("default URL", func(t *testing.T) {
		assert.Equal(t,
			"https://generativelanguage.googleapis.com/v1beta/openai/chat/completions",
			p.BuildURL(""))
	})

	t.Run("catalog URL wins", func(t *testing.T) {
		assert.Equal(t,
			"https://example.com/v1/chat/completions",
			p.BuildURL("https://example.com/v1"))
	})

	t.Run("headers", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "gem-key")

		req, _ := http.NewRequest("POST", p.BuildURL(""), nil)
		p.SetHeaders(req)

		assert.Equal(t, "Bearer gem-key", req.Header.Get("Authorization"))
	})
}

func TestLocalProvider(t *testing.T) {
	p := &LocalProvider{}

	t.Run("name", func(t *testing.T) {
		assert.Equal(t, "local", p.Name())
	})

	t.Run("URL from environment", func(t *testing.T) {
		t.Setenv("LOCAL_OPENAI_BASE_URL", "http://localhost:11434/v1")

		assert.Equal(t, "http://localhost:11434/v1/chat/completions", p.BuildURL(""))
	})

	t.Run("explicit base URL wins", func(t *testing.T) {
		t.Setenv("LOCAL_OPENAI_BASE_URL", "http://ignored:1/v1")

		assert.Equal(t, "http://vllm:8000/v1/chat/completions", p.BuildURL("http://vllm:8000/v1"))
	})

	t.Run("headers optional", func(t *testing.T) {
		t.Setenv("LOCAL_OPENAI_API_KEY", "")

		req, _ := http.NewRequest("POST", "http://localhost:11434/v1/chat/completions", nil)
		p.SetHeaders(req)

		assert.Empty(t, req.Header.Get("Authorization"))
	})
}

// The compatibility providers must speak the same wire format as
// OpenAIProvider, differing only in identity, URL, and auth.
func TestCompatProvidersShareCodec(t *testing.T) {
	messages := []llm.Message{
		{Role: "system", Content: "Analyze."},
		{Role: "user", Content: "Lab content"},
	}
	temp := 0.1

	base, err := (&OpenAIProvider{}).BuildRequestBody("some-model", messages, &temp, 1024, nil)
	require.NoError(t, err)

	gemini, err := (&GeminiProvider{}).BuildRequestBody("some-model", messages, &temp, 1024, nil)
	require.NoError(t, err)
	assert.Equal(t, string(base), string(gemini))

	local, err := (&LocalProvider{}).BuildRequestBody("some-model", messages, &temp, 1024, nil)
	require.NoError(t, err)
	assert.Equal(t, string(base), string(local))
}

func TestProvidersRegistered(t *testing.T) {
	for _, name := range []string{"openai", "gemini", "anthropic", "local"} {
		p := llm.GetProvider(name)
		require.NotNil(t, p, "provider %s", name)
		assert.Equal(t, name, p.Name())
	}
}
