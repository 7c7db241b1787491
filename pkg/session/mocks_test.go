package session

import (
	"context"
	"time"

	"github.com/shouni/gemini-ad-kit/pkg/domain"
	"github.com/shouni/gemini-ad-kit/pkg/generator"
)

// --- Mocks ---

// mockStore は Store インターフェースを実装するのだ。
type mockStore struct {
	data    map[string]interface{}
	lastTTL time.Duration
	sets    int
}

func (m *mockStore) Get(key string) (interface{}, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *mockStore) Set(key string, value interface{}, d time.Duration) {
	if m.data == nil {
		m.data = make(map[string]interface{})
	}
	m.data[key] = value
	m.lastTTL = d
	m.sets++
}

func (m *mockStore) Delete(key string) {
	delete(m.data, key)
}

type nopGenerator struct{}

func (nopGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResponse, error) {
	return &domain.GenerationResponse{}, nil
}

func newFactory(count *int) StudioFactory {
	return func() (*generator.Studio, error) {
		*count++
		return generator.NewStudio(nopGenerator{})
	}
}
