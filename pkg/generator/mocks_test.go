package generator

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/shouni/gemini-ad-kit/pkg/domain"
	"github.com/shouni/gemini-ad-kit/pkg/imgutil"
)

// --- Mocks ---

// mockGenerator は ContentGenerator のテスト用モックなのだ。
type mockGenerator struct {
	calls        atomic.Int32
	generateFunc func(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResponse, error)

	mu      sync.Mutex
	lastReq domain.GenerationRequest
}

func (m *mockGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResponse, error) {
	m.calls.Add(1)
	m.mu.Lock()
	m.lastReq = req
	m.mu.Unlock()
	if m.generateFunc != nil {
		return m.generateFunc(ctx, req)
	}
	return &domain.GenerationResponse{
		Parts: []domain.ResponsePart{domain.BinaryPart{MimeType: "image/png", Data: "ZmFrZQ=="}},
	}, nil
}

func (m *mockGenerator) request() domain.GenerationRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastReq
}

func pngAsset(data string) *domain.ImageAsset {
	return &domain.ImageAsset{Name: "x.png", MimeType: "image/png", Source: imgutil.BytesSource(data)}
}

func jpegAsset(data string) *domain.ImageAsset {
	return &domain.ImageAsset{Name: "x.jpg", MimeType: "image/jpeg", Source: imgutil.BytesSource(data)}
}
