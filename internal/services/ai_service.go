package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"
)

// AIService estimates the carbohydrate content of a meal from a free-text
// description. Gemini is the primary provider, OpenAI the fallback.
type AIService struct {
	geminiClient *genai.Client
	openaiClient *openai.Client
}

// CarbEstimate is the structured answer of a carb estimation request.
type CarbEstimate struct {
	FoodItems    []string `json:"food_items"`
	Carbs        float64  `json:"carbs"`
	Confidence   string   `json:"confidence"`
	AnalysisText string   `json:"analysis_text"`
}

// NewAIService creates the AI estimation service. The OpenAI client is only
// set up when a key is provided.
func NewAIService(geminiAPIKey, openaiAPIKey string) (*AIService, error) {
	geminiClient, err := genai.NewClient(context.Background(), option.WithAPIKey(geminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	svc := &AIService{geminiClient: geminiClient}
	if openaiAPIKey != "" {
		svc.openaiClient = openai.NewClient(openaiAPIKey)
	}
	return svc, nil
}

const carbEstimatePrompt = `You are a certified diabetes educator specializing in nutrition analysis.
You will analyze the meal description below and estimate its total carbohydrate content for diabetes management.

TASK:
1. Identify the food items in the description
2. Estimate total carbohydrates (in grams) based on standard nutritional databases
3. Assess your confidence in this estimation (low, medium, high)
4. Provide the information in a specific JSON format

REQUIREMENTS:
- Be medically precise in your carbohydrate estimation
- Include likely hidden ingredients that contain carbs
- Use standard portion sizes when the description gives no weight
- Keep the analysis text concise and focused on how the estimate was made

CRITICAL JSON FORMAT REQUIREMENTS:
- Your response MUST be a valid JSON object
- Do not include any markdown formatting or explanatory text around the JSON
- The JSON must have these exact fields:
  {
    "food_items": ["item1", "item2"],
    "carbs": 123.45,
    "confidence": "low|medium|high",
    "analysis_text": "Your analysis"
  }

MEAL DESCRIPTION:
%s`

// EstimateCarbs analyzes a meal description with the selected provider.
func (s *AIService) EstimateCarbs(ctx context.Context, description string, useOpenAI bool) (*CarbEstimate, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("meal description is empty")
	}
	if useOpenAI && s.openaiClient != nil {
		return s.estimateWithOpenAI(ctx, description)
	}
	return s.estimateWithGemini(ctx, description)
}

func (s *AIService) estimateWithGemini(ctx context.Context, description string) (*CarbEstimate, error) {
	model := s.geminiClient.GenerativeModel("gemini-1.5-flash")

	resp, err := model.GenerateContent(ctx, genai.Text(fmt.Sprintf(carbEstimatePrompt, description)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected response part type from Gemini")
	}

	jsonStr := extractJSON(string(text))
	if jsonStr == "" {
		return nil, fmt.Errorf("no valid JSON found in response")
	}

	var result CarbEstimate
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &result, nil
}

func (s *AIService) estimateWithOpenAI(ctx context.Context, description string) (*CarbEstimate, error) {
	resp, err := s.openaiClient.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4oMini,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: fmt.Sprintf(carbEstimatePrompt, description),
				},
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from OpenAI")
	}

	jsonStr := extractJSON(resp.Choices[0].Message.Content)
	if jsonStr == "" {
		return nil, fmt.Errorf("no valid JSON found in response")
	}

	var result CarbEstimate
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &result, nil
}

// extractJSON pulls a JSON object out of a response that may wrap it in code
// blocks or surrounding text.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(s, "}")
	if end == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}
