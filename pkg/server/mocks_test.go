package server

import (
	"context"
	"sync/atomic"

	"github.com/shouni/gemini-ad-kit/pkg/domain"
)

// --- Mocks ---

// mockGenerator は ContentGenerator のテスト用モックなのだ。
type mockGenerator struct {
	calls        atomic.Int32
	generateFunc func(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResponse, error)
}

func (m *mockGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResponse, error) {
	m.calls.Add(1)
	if m.generateFunc != nil {
		return m.generateFunc(ctx, req)
	}
	return &domain.GenerationResponse{
		Parts: []domain.ResponsePart{domain.BinaryPart{MimeType: "image/png", Data: "aW1hZ2U="}},
	}, nil
}
