package utils

import (
	"context"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIChatClient talks to any OpenAI-compatible chat completion endpoint,
// including hosted gateways reached through BaseURL.
type OpenAIChatClient struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float32
	maxTokens   int
}

func NewOpenAIChatClient(cfg ChatClientConfig) *OpenAIChatClient {
	return &OpenAIChatClient{
		apiKey:      cfg.APIKey,
		baseURL:     cfg.BaseURL,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

// GenerateTravelPlan opens a dedicated connection pool per call and releases
// it before returning, whatever the outcome.
func (c *OpenAIChatClient) GenerateTravelPlan(ctx context.Context, travelRequest string) (string, error) {
	if strings.TrimSpace(travelRequest) == "" {
		return "", ErrInvalidInput
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	defer transport.CloseIdleConnections()

	conf := openai.DefaultConfig(c.apiKey)
	if c.baseURL != "" {
		conf.BaseURL = c.baseURL
	}
	conf.HTTPClient = &http.Client{Transport: transport}
	client := openai.NewClientWithConfig(conf)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: TravelPlanSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: TravelPlanUserPrompt(travelRequest)},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", aiError("chat completion failed: %v", err)
	}
	if len(resp.Choices) == 0 {
		return "", aiError("chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
