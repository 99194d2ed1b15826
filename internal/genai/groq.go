package genai

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultGroqBaseURL is the OpenAI-compatible endpoint of the Groq API.
const DefaultGroqBaseURL = "https://api.groq.com/openai/v1"

// DefaultGroqModel is the completion model used unless overridden.
const DefaultGroqModel = "llama-3.3-70b-versatile"

var errEmptyCompletion = errors.New("empty completion")

// GroqClient implements Client against the Groq API via the OpenAI SDK.
type GroqClient struct {
	client *openai.Client
	model  string
}

// NewGroqClient builds a client for the given credentials. baseURL and model
// fall back to the Groq defaults when empty.
func NewGroqClient(apiKey, baseURL, model string) *GroqClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL == "" {
		baseURL = DefaultGroqBaseURL
	}
	cfg.BaseURL = baseURL
	if model == "" {
		model = DefaultGroqModel
	}
	return &GroqClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Complete sends the conversation history as a chat completion request and
// returns the first choice. A response with no choices or only whitespace
// content is reported as an error so the Adapter can fall back.
func (c *GroqClient) Complete(ctx context.Context, messages []Message, opts CompletionOptions) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
		TopP:        1,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", errEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}
