package openai

import (
	"context"
	"errors"
	"strings"
	"sync"

	openaigo "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/avasant/docuchat/internal/config"
	"github.com/avasant/docuchat/internal/domain"
	"github.com/avasant/docuchat/internal/rag/llm"
	"github.com/avasant/docuchat/pkg/logger_i"
)

type llmClient struct {
	client    openaigo.Client
	modelName string
}

var logger *logger_i.Logger
var openaiClient *llmClient
var once sync.Once

func GetOpenAIClient(modelName string, apikey string) llm.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_openai")
		openaiClient = &llmClient{
			client:    openaigo.NewClient(option.WithAPIKey(apikey)),
			modelName: modelName,
		}
		logger.Info("OpenAI client created", "model", modelName)
	})
	return openaiClient
}

func (c *llmClient) Generate(ctx context.Context, userQuery string, matches []string, messageHistory []string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, config.GenerationTimeout)
	defer cancel()

	userPrompt := llm.BuildUserPrompt(userQuery, matches, messageHistory)

	res, err := c.client.Chat.Completions.New(ctx, openaigo.ChatCompletionNewParams{
		Model: openaigo.ChatModel(c.modelName),
		Messages: []openaigo.ChatCompletionMessageParamUnion{
			openaigo.SystemMessage(config.ModelContext),
			openaigo.UserMessage(userPrompt),
		},
	})
	if err != nil {
		logger.Error("Error generating content", "error", err)
		return "", &domain.GenerationError{Err: err}
	}
	if len(res.Choices) == 0 {
		return "", &domain.GenerationError{Err: errors.New("empty model response")}
	}
	answer := strings.TrimSpace(res.Choices[0].Message.Content)
	if answer == "" {
		return "", &domain.GenerationError{Err: errors.New("empty model response")}
	}
	return answer, nil
}
