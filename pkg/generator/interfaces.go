package generator

import (
	"context"

	"github.com/shouni/gemini-ad-kit/pkg/domain"
)

// ContentGenerator は外部の生成メディアAPIを抽象化するインターフェースです。
// 1回の呼び出しが1回の外部リクエストに対応します。
type ContentGenerator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResponse, error)
}

// EncodeFunc は選択済み画像を送信用に変換する関数です。
type EncodeFunc func(role domain.ImageRole, asset *domain.ImageAsset) (domain.EncodedImage, error)

// ComposeFunc は OptionSet から指示文を組み立てる関数です。
type ComposeFunc func(opts domain.OptionSet) string
