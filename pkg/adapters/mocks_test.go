package adapters

import (
	"context"

	"google.golang.org/genai"
)

// --- Mocks ---

// mockModels は ContentModels インターフェースのテスト用モックなのだ。
type mockModels struct {
	calls        int
	lastModel    string
	lastContents []*genai.Content
	lastConfig   *genai.GenerateContentConfig
	generateFunc func(ctx context.Context, model string, contents []*genai.Content) (*genai.GenerateContentResponse, error)
}

func (m *mockModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.calls++
	m.lastModel = model
	m.lastContents = contents
	m.lastConfig = config
	if m.generateFunc != nil {
		return m.generateFunc(ctx, model, contents)
	}
	return &genai.GenerateContentResponse{}, nil
}

func responseWith(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content:      &genai.Content{Role: genai.RoleModel, Parts: parts},
				FinishReason: genai.FinishReasonStop,
			},
		},
	}
}
