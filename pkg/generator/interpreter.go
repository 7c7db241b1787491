package generator

import (
	"github.com/shouni/gemini-ad-kit/pkg/domain"
	"github.com/shouni/gemini-ad-kit/pkg/utils"
)

// Interpret はレスポンスのパーツを先頭から走査し、最初に見つかった画像パーツを結果にします。
// 2枚目以降の画像やテキストは無視します。画像が1つも無ければ text (空なら固定メッセージ) を失敗理由にします。
func Interpret(parts []domain.ResponsePart, text string) domain.GenerationResult {
	for _, part := range parts {
		switch p := part.(type) {
		case domain.BinaryPart:
			return domain.ImageResult(utils.DataURL(p.MimeType, p.Data))
		case *domain.BinaryPart:
			if p != nil {
				return domain.ImageResult(utils.DataURL(p.MimeType, p.Data))
			}
		}
	}
	return domain.FailureResult(domain.ReasonNoImage, text)
}
