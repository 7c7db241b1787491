package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/shouni/gemini-ad-kit/pkg/generator"
)

// DefaultTTL は最後のアクセスからセッションを破棄するまでの既定時間です。
const DefaultTTL = 60 * time.Minute

// Store はセッションの保存先を抽象化するインターフェースです。
// go-cache の *cache.Cache はそのまま満たします。
type Store interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}, d time.Duration)
	Delete(key string)
}

// StudioFactory は新しいセッション用の Studio を作ります。
type StudioFactory func() (*generator.Studio, error)

// Registry はブラウザごとの Studio を保持します。
// 最後のアクセスから TTL が過ぎたセッションは破棄されます。
type Registry struct {
	store   Store
	factory StudioFactory
	ttl     time.Duration

	// 同じIDへの同時アクセスで Studio が二重に作られないようにする
	mu sync.Mutex
}

// Option は Registry の設定を変更します。
type Option func(*Registry)

// WithStore は保存先を差し替えます。
func WithStore(s Store) Option {
	return func(r *Registry) {
		if s != nil {
			r.store = s
		}
	}
}

// NewRegistry は Registry を初期化します。ttl が0以下の場合は DefaultTTL を使います。
func NewRegistry(factory StudioFactory, ttl time.Duration, opts ...Option) (*Registry, error) {
	if factory == nil {
		return nil, fmt.Errorf("factory (StudioFactory) is required")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	r := &Registry{
		factory: factory,
		ttl:     ttl,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.store == nil {
		r.store = cache.New(ttl, ttl/2)
	}
	return r, nil
}

// TTL はセッションの有効期間を返します。
func (r *Registry) TTL() time.Duration {
	return r.ttl
}

// lookup は既存のセッションを探し、見つかれば有効期限を延長します。
func (r *Registry) lookup(id string) (*generator.Studio, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookupLocked(id)
}

func (r *Registry) lookupLocked(id string) (*generator.Studio, bool) {
	if id == "" {
		return nil, false
	}
	cached, found := r.store.Get(id)
	if !found {
		return nil, false
	}
	studio, ok := cached.(*generator.Studio)
	if !ok || studio == nil {
		slog.Warn("セッションデータが不正な型です", "session_id", id, "type", fmt.Sprintf("%T", cached))
		r.store.Delete(id)
		return nil, false
	}
	r.store.Set(id, studio, r.ttl)
	return studio, true
}

// Resolve は id のセッションを返します。id が空、不正、または期限切れの場合は
// 新しいIDでセッションを作り、created に true を返します。
func (r *Registry) Resolve(ctx context.Context, id string) (string, *generator.Studio, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := uuid.Parse(id); err == nil {
		if studio, ok := r.lookupLocked(id); ok {
			return id, studio, false, nil
		}
	}

	studio, err := r.factory()
	if err != nil {
		return "", nil, false, fmt.Errorf("セッションの作成に失敗しました: %w", err)
	}
	newID := uuid.NewString()
	r.store.Set(newID, studio, r.ttl)
	slog.InfoContext(ctx, "新しいセッションを作成しました", "session_id", newID)
	return newID, studio, true, nil
}
