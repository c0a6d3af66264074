package provider

import (
	"context"
	"fmt"

	"github.com/avasant/docuchat/internal/config"
	"github.com/avasant/docuchat/internal/rag/embedding"
	"github.com/avasant/docuchat/internal/rag/embedding/googleembedding"
	"github.com/avasant/docuchat/internal/rag/embedding/openaiembedding"
	"github.com/avasant/docuchat/internal/rag/llm"
	"github.com/avasant/docuchat/internal/rag/llm/gemini"
	"github.com/avasant/docuchat/internal/rag/llm/openai"
)

// NewEmbedder returns the embedding client for the configured AI provider.
func NewEmbedder(ctx context.Context) (embedding.Embedder, error) {
	switch config.AIProvider() {
	case "openai":
		return openaiembedding.GetOpenAIEmbeddingClient(config.OpenAIEmbeddingModel, config.Env("OPENAI_API_KEY", "")), nil
	case "gemini":
		e := googleembedding.GetGoogleEmbeddingClient(ctx, config.GoogleEmbeddingModel, config.Env("GEMINI_API_KEY", ""))
		if e == nil {
			return nil, fmt.Errorf("google embedding client init failed")
		}
		return e, nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", config.AIProvider())
	}
}

// NewLLM returns the generation client for the configured AI provider.
func NewLLM(ctx context.Context) (llm.Provider, error) {
	switch config.AIProvider() {
	case "openai":
		return openai.GetOpenAIClient(config.OpenAIModelName, config.Env("OPENAI_API_KEY", "")), nil
	case "gemini":
		p := gemini.GetGeminiClient(ctx, config.GeminiModelName, config.Env("GEMINI_API_KEY", ""))
		if p == nil {
			return nil, fmt.Errorf("gemini client init failed")
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", config.AIProvider())
	}
}
