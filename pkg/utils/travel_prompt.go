package utils

import (
	"context"
	"fmt"
	"strings"
)

// TravelPlanClientInterface asks a chat model for an itinerary and returns
// its raw reply text. Implementations do not validate or retry the reply.
type TravelPlanClientInterface interface {
	GenerateTravelPlan(ctx context.Context, travelRequest string) (string, error)
}

// ChatClientConfig is the provider-neutral connection setup.
type ChatClientConfig struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
}

const TravelPlanSystemPrompt = "你是一个专业的旅行规划师。请根据用户的旅行需求，生成一个详细、实用的旅行计划。" +
	"计划应该包括：目的地、旅行天数、每日行程安排（包括时间、景点、活动、预算等）、总预算估算。" +
	"请以JSON格式返回，包含以下字段：destination, duration, totalBudget, days（数组，包含day, date, title, activities数组）。" +
	"activities数组包含：name, time, budget, description。" +
	"请确保返回的数据结构清晰，便于前端解析。"

func TravelPlanUserPrompt(travelRequest string) string {
	return "请为以下旅行需求生成计划：" + travelRequest
}

// NewTravelPlanClient picks the implementation for cfg.Provider.
func NewTravelPlanClient(cfg ChatClientConfig) (TravelPlanClientInterface, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai", "":
		return NewOpenAIChatClient(cfg), nil
	case "gemini":
		return NewGeminiChatClient(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s. Use 'openai' or 'gemini'", cfg.Provider)
	}
}

func aiError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnexpectedBehaviorOfAI, fmt.Sprintf(format, args...))
}
