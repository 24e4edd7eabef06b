package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/nutriplan/nutriplan-api/internal/domain"
)

// GeminiClient implements domain.ModelClient on the Gemini API.
type GeminiClient struct {
	client    *genai.Client
	modelName string
}

// NewGeminiClient creates a model client authenticated with an API key.
func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if modelName == "" {
		modelName = "gemini-3-pro-preview"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &GeminiClient{
		client:    client,
		modelName: modelName,
	}, nil
}

// Chat replays the session history and submits one new user message.
// There is no separate system channel: the instructions travel inside
// the history as the seed pair.
func (g *GeminiClient) Chat(ctx context.Context, history []domain.Turn, message string) (string, error) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, t := range history {
		contents = append(contents, genai.NewContentFromText(t.Text, toGenaiRole(t.Role)))
	}
	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))

	return g.generate(ctx, contents)
}

// Generate submits a single self-contained prompt with no history.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	return g.generate(ctx, contents)
}

func (g *GeminiClient) generate(ctx context.Context, contents []*genai.Content) (string, error) {
	temp := float32(0.7)
	topP := float32(0.9)

	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		TopP:            &topP,
		MaxOutputTokens: 16384,
	}

	res, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned empty text")
	}

	return text, nil
}

func toGenaiRole(r domain.Role) genai.Role {
	if r == domain.RoleModel {
		return genai.RoleModel
	}
	return genai.RoleUser
}
