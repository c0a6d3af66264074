package openai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openaigo "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/avasant/docuchat/internal/domain"
	"github.com/avasant/docuchat/pkg/logger_i"
)

func newStubbedClient(t *testing.T, body string) *llmClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	logger = logger_i.NewLogger("llm_openai_test")
	return &llmClient{
		client:    openaigo.NewClient(option.WithAPIKey("test-key"), option.WithBaseURL(srv.URL)),
		modelName: "gpt-test",
	}
}

func TestGenerate_TrimsModelOutput(t *testing.T) {
	c := newStubbedClient(t, `{"id":"chatcmpl-1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"\n  widgets ship in March.  \n"}}]}`)

	answer, err := c.Generate(context.Background(), "when?", []string{"widgets ship in March."}, nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if answer != "widgets ship in March." {
		t.Errorf("answer not trimmed: %q", answer)
	}
}

func TestGenerate_WhitespaceOnlyResponse(t *testing.T) {
	c := newStubbedClient(t, `{"id":"chatcmpl-1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"   \n  "}}]}`)

	_, err := c.Generate(context.Background(), "when?", []string{"context"}, nil)
	var genErr *domain.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError for blank response, got %v", err)
	}
}
