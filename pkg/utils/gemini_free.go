package utils

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiChatClient struct {
	apiKey      string
	endpoint    string
	model       string
	temperature float32
	maxTokens   int
}

func NewGeminiChatClient(cfg ChatClientConfig) *GeminiChatClient {
	model := cfg.Model
	if model == "" {
		model = "gemini-1.5-flash" // Free tier model
	}
	return &GeminiChatClient{
		apiKey:      cfg.APIKey,
		endpoint:    cfg.BaseURL,
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

func (c *GeminiChatClient) GenerateTravelPlan(ctx context.Context, travelRequest string) (string, error) {
	if strings.TrimSpace(travelRequest) == "" {
		return "", ErrInvalidInput
	}

	opts := []option.ClientOption{option.WithAPIKey(c.apiKey)}
	if c.endpoint != "" {
		opts = append(opts, option.WithEndpoint(c.endpoint))
	}
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return "", aiError("failed to create Gemini client: %v", err)
	}
	defer client.Close()

	model := client.GenerativeModel(c.model)
	model.SystemInstruction = genai.NewUserContent(genai.Text(TravelPlanSystemPrompt))
	model.SetTemperature(c.temperature)
	if c.maxTokens > 0 {
		model.SetMaxOutputTokens(int32(c.maxTokens))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(TravelPlanUserPrompt(travelRequest)))
	if err != nil {
		return "", aiError("gemini: %v", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", aiError("gemini returned no content")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}
